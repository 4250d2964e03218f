package optimize

import (
	"slices"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// NoPen is the reserved color that disables drawing.
const NoPen uint8 = 0

// Shape is one continuous polyline. Shapes stored in a [Plot] are never empty.
type Shape []hpgl.Point

// Start returns the first point of s.
func (s Shape) Start() hpgl.Point { return s[0] }

// End returns the last point of s.
func (s Shape) End() hpgl.Point { return s[len(s)-1] }

// Plot maps pen colors to their shapes in drawing order.
type Plot struct {
	shapes map[uint8][]Shape
}

// NewPlot returns an empty plot.
func NewPlot() *Plot {
	return &Plot{shapes: make(map[uint8][]Shape)}
}

// Ensure records color c in the plot without adding shapes.
func (p *Plot) Ensure(c uint8) {
	if _, ok := p.shapes[c]; !ok {
		p.shapes[c] = nil
	}
}

// Add appends s to the shapes of color c. Empty shapes are ignored.
func (p *Plot) Add(c uint8, s Shape) {
	p.Ensure(c)
	if len(s) == 0 {
		return
	}
	p.shapes[c] = append(p.shapes[c], s)
}

// Has reports whether color c has an entry, possibly without shapes.
func (p *Plot) Has(c uint8) bool {
	_, ok := p.shapes[c]
	return ok
}

// Shapes returns the shapes of color c in drawing order.
func (p *Plot) Shapes(c uint8) []Shape {
	return p.shapes[c]
}

// Colors returns every color with an entry, in ascending order.
func (p *Plot) Colors() []uint8 {
	colors := make([]uint8, 0, len(p.shapes))
	for c := range p.shapes {
		colors = append(colors, c)
	}
	slices.Sort(colors)
	return colors
}

// Len returns the total number of shapes across all colors.
func (p *Plot) Len() int {
	n := 0
	for _, shapes := range p.shapes {
		n += len(shapes)
	}
	return n
}

// Points returns the total number of points across all shapes.
func (p *Plot) Points() int {
	n := 0
	for _, shapes := range p.shapes {
		for _, s := range shapes {
			n += len(s)
		}
	}
	return n
}

// Clone returns a copy of p that shares point data but not shape order.
func (p *Plot) Clone() *Plot {
	out := NewPlot()
	for c, shapes := range p.shapes {
		out.shapes[c] = slices.Clone(shapes)
	}
	return out
}
