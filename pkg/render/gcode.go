package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// DefaultGCodeScale converts plotter units to millimetres for the G-code
// plotters this tool was first used with.
const DefaultGCodeScale = 0.076

// GCodeOption configures G-code conversion.
type GCodeOption func(*gcodeRenderer)

type gcodeRenderer struct {
	scaleX, scaleY float64
	dwellMS        int
}

// WithScale sets the same scale on both axes.
func WithScale(s float64) GCodeOption {
	return func(r *gcodeRenderer) { r.scaleX, r.scaleY = s, s }
}

// WithAxisScale sets per-axis scales.
func WithAxisScale(x, y float64) GCodeOption {
	return func(r *gcodeRenderer) { r.scaleX, r.scaleY = x, y }
}

// WithDwell sets the pause after each pen change in milliseconds (default 100).
func WithDwell(ms int) GCodeOption {
	return func(r *gcodeRenderer) { r.dwellMS = ms }
}

// GCode converts cmds into G-code, one command per line.
//
// Pen-up and pen-down switch to absolute mode (G90), toggle the pen with
// M107/M106 and dwell before moving. Absolute and relative plots select G90
// and G91 respectively. Every point becomes a scaled G1 move. Pen selects and
// Initialize have no G-code equivalent and are dropped.
func GCode(cmds []hpgl.Command, opts ...GCodeOption) []byte {
	r := gcodeRenderer{scaleX: DefaultGCodeScale, scaleY: DefaultGCodeScale, dwellMS: 100}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	for _, c := range cmds {
		switch c := c.(type) {
		case hpgl.PenUp:
			r.penChange(&buf, "M107")
			r.moves(&buf, c.Points)
		case hpgl.PenDown:
			r.penChange(&buf, "M106")
			r.moves(&buf, c.Points)
		case hpgl.PlotAbsolute:
			buf.WriteString("G90\n")
			r.moves(&buf, c.Points)
		case hpgl.PlotRelative:
			buf.WriteString("G91\n")
			r.moves(&buf, c.Points)
		}
	}
	return buf.Bytes()
}

func (r gcodeRenderer) penChange(buf *bytes.Buffer, mcode string) {
	fmt.Fprintf(buf, "G90\n%s\nG4 P%d\n", mcode, r.dwellMS)
}

func (r gcodeRenderer) moves(buf *bytes.Buffer, points []hpgl.Point) {
	for _, p := range points {
		fmt.Fprintf(buf, "G1 X%s Y%s\n", num(float64(p.X)*r.scaleX), num(float64(p.Y)*r.scaleY))
	}
}

// num formats v with at most four decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
