package optimize

import (
	"math"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// Distance returns the Euclidean distance between a and b. It is exact in
// ordering for any pair of 32-bit coordinates.
func Distance(a, b hpgl.Point) float64 {
	return math.Hypot(float64(a.X)-float64(b.X), float64(a.Y)-float64(b.Y))
}

// TravelDistance returns the pen-up travel needed to visit shapes in order:
// the sum of distances from each shape's end to the next shape's start.
func TravelDistance(shapes []Shape) float64 {
	total := 0.0
	for i := 1; i < len(shapes); i++ {
		total += Distance(shapes[i-1].End(), shapes[i].Start())
	}
	return total
}

// PlotTravel sums [TravelDistance] over every color except [NoPen].
func PlotTravel(plot *Plot) float64 {
	total := 0.0
	for _, c := range plot.Colors() {
		if c != NoPen {
			total += TravelDistance(plot.Shapes(c))
		}
	}
	return total
}
