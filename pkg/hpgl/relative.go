package hpgl

// Relativize rewrites every absolute move in cmds as a relative move from
// the previous position, starting at the origin. Other commands are lifted
// unchanged into the parsed model.
//
// The result is meant for plotters that are driven by relative moves, for
// example to splice a drawing in at an arbitrary pen position. It cannot be
// fed back into [Canonicalize], which rejects relative coordinates.
func Relativize(cmds []CanonicalCommand) []Command {
	var pos Point
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		if p, ok := c.(CanonicalPlot); ok {
			out = append(out, PlotRelative{Points: []Point{{X: p.Point.X - pos.X, Y: p.Point.Y - pos.Y}}})
			pos = p.Point
			continue
		}
		out = append(out, Decanonicalize([]CanonicalCommand{c})...)
	}
	return out
}
