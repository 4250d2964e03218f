package hpgl

// Sheet is the drawable area of the plotters this tool was built around, in
// plotter units. It is the default limit for [CheckBounds].
var Sheet = Bounds{Min: Pt(0, 0), Max: Pt(10300, 7650)}

// Bounds is an axis-aligned rectangle with inclusive corners.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Empty reports whether b contains no points, which is the case for the
// bounds of a document without moves.
func (b Bounds) Empty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Width returns the horizontal extent of b, or 0 if b is empty.
func (b Bounds) Width() int {
	if b.Empty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of b, or 0 if b is empty.
func (b Bounds) Height() int {
	if b.Empty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// BoundsOf returns the smallest rectangle containing every move in cmds.
// The result is [Bounds.Empty] when cmds contains no moves.
func BoundsOf(cmds []CanonicalCommand) Bounds {
	b := Bounds{Min: Pt(1, 1), Max: Pt(0, 0)}
	for _, c := range cmds {
		p, ok := c.(CanonicalPlot)
		if !ok {
			continue
		}
		if b.Empty() {
			b = Bounds{Min: p.Point, Max: p.Point}
			continue
		}
		b.Min.X = min(b.Min.X, p.Point.X)
		b.Min.Y = min(b.Min.Y, p.Point.Y)
		b.Max.X = max(b.Max.X, p.Point.X)
		b.Max.Y = max(b.Max.Y, p.Point.Y)
	}
	return b
}

// CheckBounds returns the moves in cmds that fall outside limit, in order.
// The check is advisory: hardware limits vary and callers decide whether to
// warn or refuse.
func CheckBounds(cmds []CanonicalCommand, limit Bounds) []Point {
	var out []Point
	for _, c := range cmds {
		if p, ok := c.(CanonicalPlot); ok && !limit.Contains(p.Point) {
			out = append(out, p.Point)
		}
	}
	return out
}
