// Package optimize reorders the drawing work of a canonical plotter document
// to reduce pen-up travel.
//
// # Overview
//
// Optimization runs in three steps over the output of [hpgl.Canonicalize]:
//
//  1. [Extract] splits the canonical stream into shapes (continuous pen-down
//     polylines), grouped by the pen color that drew them, into a [Plot].
//  2. [Optimize] computes a visiting order for each color independently with
//     a greedy nearest-neighbor heuristic ([NearestNeighbor]).
//  3. [Emit] turns the reordered plot back into canonical commands, one color
//     at a time in ascending order.
//
// Color 0 means "no pen". Shapes drawn with it are kept in the plot but are
// never reordered and never emitted.
//
// # Example
//
//	canon, _ := hpgl.Canonicalize(cmds)
//	plot, err := optimize.Extract(canon)
//	if err != nil {
//	    return err
//	}
//	plot, err = optimize.Optimize(ctx, plot, optimize.Options{})
//	fmt.Print(hpgl.Render(optimize.Emit(plot)))
//
// The tour is a heuristic, not an optimal traveling-salesman solution. It is
// deterministic: optimizing an already optimized plot does not change it.
package optimize
