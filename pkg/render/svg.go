package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette     Palette
	strokeWidth float64
	sheet       hpgl.Bounds
	html        bool
}

// WithPalette sets the pen colors.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithStrokeWidth sets the line width in plotter units (default 10).
func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }

// WithSheet sets the page extent (default [hpgl.Sheet]).
func WithSheet(b hpgl.Bounds) SVGOption { return func(r *svgRenderer) { r.sheet = b } }

// WithHTML wraps the drawing in a minimal HTML page for viewing in a browser.
func WithHTML() SVGOption { return func(r *svgRenderer) { r.html = true } }

// SVG renders the visible strokes of cmds.
func SVG(cmds []hpgl.Command, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette, strokeWidth: 10, sheet: hpgl.Sheet}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.html {
		buf.WriteString("<html><body>")
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d">`+"\n",
		r.sheet.Min.Y, r.sheet.Min.X, r.sheet.Height(), r.sheet.Width())
	for _, s := range Trace(cmds) {
		fmt.Fprintf(&buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" style="stroke:%s;stroke-width:%g"/>`+"\n",
			s.From.Y, s.From.X, s.To.Y, s.To.X, r.palette.Name(s.Pen), r.strokeWidth)
	}
	buf.WriteString("</svg>")
	if r.html {
		buf.WriteString("</body></html>")
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
