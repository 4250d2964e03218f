package hpgl

import (
	"errors"
	"fmt"
	"strings"

	perrors "github.com/matzehuels/penpath/pkg/errors"
)

// ErrRelativeCoordinates is returned (wrapped) by [Canonicalize] when the
// input draws in relative coordinates, which the canonical form cannot express.
var ErrRelativeCoordinates = errors.New("relative coordinates are not supported")

// CanonicalCommand is one instruction of the canonical form. Implementations
// are CanonicalPenUp, CanonicalPenDown, CanonicalPlot, CanonicalSelectPen and
// CanonicalInitialize; none of them carries more than one point.
type CanonicalCommand interface {
	// String returns the instruction text including the trailing ';'.
	String() string

	canonical()
}

// CanonicalPenUp lifts the pen.
type CanonicalPenUp struct{}

// CanonicalPenDown lowers the pen.
type CanonicalPenDown struct{}

// CanonicalPlot moves to an absolute position.
type CanonicalPlot struct{ Point Point }

// CanonicalSelectPen selects a pen.
type CanonicalSelectPen struct{ Pen uint8 }

// CanonicalInitialize resets the plotter.
type CanonicalInitialize struct{}

func (CanonicalPenUp) canonical()      {}
func (CanonicalPenDown) canonical()    {}
func (CanonicalPlot) canonical()       {}
func (CanonicalSelectPen) canonical()  {}
func (CanonicalInitialize) canonical() {}

func (CanonicalPenUp) String() string       { return "PU;" }
func (CanonicalPenDown) String() string     { return "PD;" }
func (c CanonicalPlot) String() string      { return fmt.Sprintf("PA%d,%d;", c.Point.X, c.Point.Y) }
func (c CanonicalSelectPen) String() string { return fmt.Sprintf("SP%d;", c.Pen) }
func (CanonicalInitialize) String() string  { return "IN;" }

// Plot is shorthand for CanonicalPlot{Point: Pt(x, y)}.
func Plot(x, y int) CanonicalCommand { return CanonicalPlot{Point: Pt(x, y)} }

// Canonicalize rewrites parsed commands into canonical form.
//
//   - PenUp emits a pen-up followed by a move to its last point only, since
//     the pen travels raised through any intermediate points.
//   - PenDown emits a pen-down followed by one move per point.
//   - PlotAbsolute emits one move per point.
//   - SelectPen and Initialize pass through.
//
// Order is preserved and the output is never shorter than the input. Any
// PlotRelative command makes the whole call fail with an error wrapping
// [ErrRelativeCoordinates]; no partial output is returned. Because of that,
// the coordinate mode is absolute whenever a pen-state command is reached.
func Canonicalize(cmds []Command) ([]CanonicalCommand, error) {
	out := make([]CanonicalCommand, 0, len(cmds))
	for i, c := range cmds {
		switch c := c.(type) {
		case PenUp:
			out = append(out, CanonicalPenUp{})
			if n := len(c.Points); n > 0 {
				out = append(out, CanonicalPlot{Point: c.Points[n-1]})
			}
		case PenDown:
			out = append(out, CanonicalPenDown{})
			for _, p := range c.Points {
				out = append(out, CanonicalPlot{Point: p})
			}
		case PlotAbsolute:
			for _, p := range c.Points {
				out = append(out, CanonicalPlot{Point: p})
			}
		case PlotRelative:
			return nil, unsupported(i, c)
		case SelectPen:
			out = append(out, CanonicalSelectPen{Pen: c.Pen})
		case Initialize:
			out = append(out, CanonicalInitialize{})
		default:
			return nil, perrors.New(perrors.ErrCodeInternal, "unknown command type %T", c)
		}
	}
	return out, nil
}

func unsupported(index int, c Command) error {
	return perrors.Wrap(perrors.ErrCodeUnsupportedInput, ErrRelativeCoordinates,
		"command %d (%s)", index, strings.TrimSuffix(c.String(), ";"))
}

// Render serializes canonical commands as text, one instruction per line.
func Render(cmds []CanonicalCommand) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines is like [Render] but returns each instruction separately, without
// newlines. The serial transport chunks on these boundaries.
func Lines(cmds []CanonicalCommand) []string {
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}

// Decanonicalize lifts canonical commands back into the parsed command model,
// one parsed command per canonical one. Renderers consume parsed commands, so
// this lets them draw an optimized plot directly.
func Decanonicalize(cmds []CanonicalCommand) []Command {
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		switch c := c.(type) {
		case CanonicalPenUp:
			out = append(out, PenUp{})
		case CanonicalPenDown:
			out = append(out, PenDown{})
		case CanonicalPlot:
			out = append(out, PlotAbsolute{Points: []Point{c.Point}})
		case CanonicalSelectPen:
			out = append(out, SelectPen{Pen: c.Pen})
		case CanonicalInitialize:
			out = append(out, Initialize{})
		}
	}
	return out
}
