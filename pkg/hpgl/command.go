package hpgl

import (
	"fmt"
	"strings"
)

// Point is a position in plotter units. Points are compared by exact integer equality.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// String returns the point as "x,y", the form it takes inside an instruction.
func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// Command is one parsed plotter instruction. The set of implementations is
// closed: PenUp, PenDown, PlotAbsolute, PlotRelative, SelectPen and Initialize.
type Command interface {
	// Mnemonic returns the two-letter instruction name, e.g. "PU".
	Mnemonic() string
	// String returns the instruction in input grammar, including the trailing ';'.
	String() string

	command()
}

// PenUp lifts the pen, then travels through Points with the pen raised.
type PenUp struct{ Points []Point }

// PenDown lowers the pen, then draws through Points.
type PenDown struct{ Points []Point }

// PlotAbsolute moves to each of Points in absolute coordinates without
// changing the pen state.
type PlotAbsolute struct{ Points []Point }

// PlotRelative moves by each of Points as a delta from the current position.
type PlotRelative struct{ Points []Point }

// SelectPen selects the pen (color) to draw with. Pen 0 means no pen.
type SelectPen struct{ Pen uint8 }

// Initialize resets the plotter to its default state.
type Initialize struct{}

func (PenUp) command()        {}
func (PenDown) command()      {}
func (PlotAbsolute) command() {}
func (PlotRelative) command() {}
func (SelectPen) command()    {}
func (Initialize) command()   {}

func (PenUp) Mnemonic() string        { return "PU" }
func (PenDown) Mnemonic() string      { return "PD" }
func (PlotAbsolute) Mnemonic() string { return "PA" }
func (PlotRelative) Mnemonic() string { return "PR" }
func (SelectPen) Mnemonic() string    { return "SP" }
func (Initialize) Mnemonic() string   { return "IN" }

func (c PenUp) String() string        { return withPoints(c.Mnemonic(), c.Points) }
func (c PenDown) String() string      { return withPoints(c.Mnemonic(), c.Points) }
func (c PlotAbsolute) String() string { return withPoints(c.Mnemonic(), c.Points) }
func (c PlotRelative) String() string { return withPoints(c.Mnemonic(), c.Points) }
func (c SelectPen) String() string    { return fmt.Sprintf("SP%d;", c.Pen) }
func (Initialize) String() string     { return "IN;" }

func withPoints(mnemonic string, points []Point) string {
	var b strings.Builder
	b.WriteString(mnemonic)
	for i, p := range points {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(';')
	return b.String()
}

// Points returns the coordinates carried by c, or nil for commands without any.
func Points(c Command) []Point {
	switch c := c.(type) {
	case PenUp:
		return c.Points
	case PenDown:
		return c.Points
	case PlotAbsolute:
		return c.Points
	case PlotRelative:
		return c.Points
	}
	return nil
}

// Format renders cmds in input grammar, one instruction per line.
func Format(cmds []Command) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
