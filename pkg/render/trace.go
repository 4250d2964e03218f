package render

import "github.com/matzehuels/penpath/pkg/hpgl"

// Segment is one visible straight stroke.
type Segment struct {
	From, To hpgl.Point
	Pen      uint8
}

// Trace walks cmds and returns the segments that would be drawn, in order.
//
// Position starts at the origin with the pen up and pen 0 selected. PenUp
// travels to its last point without drawing. PenDown lowers the pen and
// draws through its points. PlotAbsolute and PlotRelative draw only while the
// pen is down. Initialize lifts the pen.
func Trace(cmds []hpgl.Command) []Segment {
	var (
		out     []Segment
		pos     hpgl.Point
		pen     uint8
		penDown bool
	)
	moveTo := func(p hpgl.Point) {
		if penDown && pen != 0 {
			out = append(out, Segment{From: pos, To: p, Pen: pen})
		}
		pos = p
	}

	for _, c := range cmds {
		switch c := c.(type) {
		case hpgl.PenUp:
			penDown = false
			if n := len(c.Points); n > 0 {
				pos = c.Points[n-1]
			}
		case hpgl.PenDown:
			penDown = true
			for _, p := range c.Points {
				moveTo(p)
			}
		case hpgl.PlotAbsolute:
			for _, p := range c.Points {
				moveTo(p)
			}
		case hpgl.PlotRelative:
			for _, d := range c.Points {
				moveTo(hpgl.Pt(pos.X+d.X, pos.Y+d.Y))
			}
		case hpgl.SelectPen:
			pen = c.Pen
		case hpgl.Initialize:
			penDown = false
		}
	}
	return out
}

// Pens returns the distinct pens used by segs in first-use order.
func Pens(segs []Segment) []uint8 {
	var seen [256]bool
	var pens []uint8
	for _, s := range segs {
		if !seen[s.Pen] {
			seen[s.Pen] = true
			pens = append(pens, s.Pen)
		}
	}
	return pens
}
