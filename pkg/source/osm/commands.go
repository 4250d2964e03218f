package osm

import (
	"maps"
	"slices"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// Sheet extent the bounds are projected onto.
const (
	SheetX = 10300
	SheetY = 7650
)

// Pens assigned by [PenFor].
const (
	PenNone     uint8 = 0
	PenBuilding uint8 = 1
	PenPark     uint8 = 2
	PenHighway  uint8 = 3
)

// Options controls [Map.Commands].
type Options struct {
	// SkipUnstyled drops ways that would be drawn with pen 0 instead of
	// emitting their moves under SP0.
	SkipUnstyled bool
}

// PenFor picks the pen a way is drawn with.
func PenFor(tags map[string]string) uint8 {
	if _, ok := tags["building"]; ok {
		return PenBuilding
	}
	if l := tags["leisure"]; l == "park" || l == "playground" {
		return PenPark
	}
	if _, ok := tags["highway"]; ok {
		return PenHighway
	}
	return PenNone
}

// Transform projects n onto the sheet. The northern edge of b lands on x=0
// and the western edge on y=0. Fractions are truncated toward zero.
func (b Bounds) Transform(n Node) hpgl.Point {
	scaleX := SheetX / (b.MaxLat - b.MinLat)
	scaleY := SheetY / (b.MaxLon - b.MinLon)
	return hpgl.Pt(
		SheetX-int((n.Lat-b.MinLat)*scaleX),
		int((n.Lon-b.MinLon)*scaleY),
	)
}

// Commands draws every way of m in ascending id order, followed by a final
// SP0. Each way selects its pen, lifts before its first visible point and
// lowers after each one.
func (m *Map) Commands(opts Options) []hpgl.Command {
	var out []hpgl.Command
	for _, id := range slices.Sorted(maps.Keys(m.Ways)) {
		w := m.Ways[id]
		pen := PenFor(w.Tags)
		if pen == PenNone && opts.SkipUnstyled {
			continue
		}
		out = append(out, hpgl.SelectPen{Pen: pen})
		out = append(out, m.way(w)...)
	}
	return append(out, hpgl.SelectPen{Pen: PenNone})
}

func (m *Map) way(w Way) []hpgl.Command {
	var out []hpgl.Command
	first := true
	for i, ref := range w.Nodes {
		n, ok := m.Nodes[ref]
		if !ok || !m.visible(w, i, n) {
			continue
		}
		if first {
			out = append(out, hpgl.PenUp{})
			first = false
		}
		out = append(out,
			hpgl.PlotAbsolute{Points: []hpgl.Point{m.Bounds.Transform(n)}},
			hpgl.PenDown{},
		)
	}
	return out
}

// visible reports whether the i-th node of w, or one of its neighbours, is
// inside the bounds. The last node counts as its own successor.
func (m *Map) visible(w Way, i int, n Node) bool {
	if m.Bounds.Contains(n) {
		return true
	}
	if i > 0 {
		if prev, ok := m.Nodes[w.Nodes[i-1]]; ok && m.Bounds.Contains(prev) {
			return true
		}
	}
	if i+1 < len(w.Nodes) {
		if next, ok := m.Nodes[w.Nodes[i+1]]; ok && m.Bounds.Contains(next) {
			return true
		}
	}
	return false
}
