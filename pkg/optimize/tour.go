package optimize

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options configures [Optimize].
type Options struct {
	// Workers bounds how many colors are optimized concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// NearestNeighbor returns shapes in greedy visiting order.
//
// The first shape stays first. Each following stop is the remaining shape
// whose start point is nearest to the end point of the previous stop. Ties go
// to the shape that came first in the input. The input slice is not modified.
func NearestNeighbor(shapes []Shape) []Shape {
	if len(shapes) == 0 {
		return nil
	}
	tour := make([]Shape, 0, len(shapes))
	visited := make([]bool, len(shapes))

	tour = append(tour, shapes[0])
	visited[0] = true
	for len(tour) < len(shapes) {
		from := tour[len(tour)-1].End()
		best, bestDist := -1, 0.0
		for i, s := range shapes {
			if visited[i] {
				continue
			}
			d := Distance(from, s.Start())
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		visited[best] = true
		tour = append(tour, shapes[best])
	}
	return tour
}

// Optimize reorders the shapes of every color except [NoPen] with
// [NearestNeighbor]. Colors are independent and are processed concurrently.
// The input plot is left untouched.
func Optimize(ctx context.Context, plot *Plot, opts Options) (*Plot, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	colors := plot.Colors()
	tours := make([][]Shape, len(colors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range colors {
		if c == NoPen {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tours[i] = NearestNeighbor(plot.Shapes(c))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := NewPlot()
	for i, c := range colors {
		out.Ensure(c)
		if c == NoPen {
			for _, s := range plot.Shapes(c) {
				out.Add(c, s)
			}
			continue
		}
		for _, s := range tours[i] {
			out.Add(c, s)
		}
	}
	return out, nil
}
