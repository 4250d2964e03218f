package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	palette   Palette
	lineWidth float64
	marginMM  float64
	sheet     hpgl.Bounds
}

// WithPDFPalette sets the pen colors.
func WithPDFPalette(p Palette) PDFOption { return func(r *pdfRenderer) { r.palette = p } }

// WithLineWidth sets the stroke width in millimetres (default 0.3).
func WithLineWidth(mm float64) PDFOption { return func(r *pdfRenderer) { r.lineWidth = mm } }

// WithMargin sets the page margin in millimetres (default 10).
func WithMargin(mm float64) PDFOption { return func(r *pdfRenderer) { r.marginMM = mm } }

// WithPDFSheet sets the plotter extent that is fitted onto the page.
func WithPDFSheet(b hpgl.Bounds) PDFOption { return func(r *pdfRenderer) { r.sheet = b } }

// PDF renders the visible strokes of cmds onto a portrait A4 page, scaled so
// that the sheet fits inside the margins.
func PDF(cmds []hpgl.Command, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{palette: DefaultPalette, lineWidth: 0.3, marginMM: 10, sheet: hpgl.Sheet}
	for _, opt := range opts {
		opt(&r)
	}
	if r.sheet.Empty() || r.sheet.Width() == 0 || r.sheet.Height() == 0 {
		return nil, fmt.Errorf("empty sheet %+v", r.sheet)
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetCreationDate(time.Unix(0, 0).UTC())
	p.SetTitle("penpath preview", true)
	p.AddPage()
	p.SetLineWidth(r.lineWidth)
	p.SetLineCapStyle("round")

	pageW, pageH := p.GetPageSize()
	// transposed: plotter Y across, plotter X down
	scale := min((pageW-2*r.marginMM)/float64(r.sheet.Height()), (pageH-2*r.marginMM)/float64(r.sheet.Width()))
	at := func(pt hpgl.Point) (float64, float64) {
		return r.marginMM + float64(pt.Y-r.sheet.Min.Y)*scale, r.marginMM + float64(pt.X-r.sheet.Min.X)*scale
	}

	pen := -1
	for _, s := range Trace(cmds) {
		if int(s.Pen) != pen {
			c := r.palette.RGBA(s.Pen)
			p.SetDrawColor(int(c.R), int(c.G), int(c.B))
			pen = int(s.Pen)
		}
		x1, y1 := at(s.From)
		x2, y2 := at(s.To)
		p.Line(x1, y1, x2, y2)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
