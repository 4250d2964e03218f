package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette     Palette
	width       int
	strokeWidth float64
	sheet       hpgl.Bounds
}

// WithPNGPalette sets the pen colors.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithWidth sets the image width in pixels (default 765). The height follows
// from the sheet's aspect ratio.
func WithWidth(px int) PNGOption { return func(r *pngRenderer) { r.width = px } }

// WithPNGStrokeWidth sets the stroke width in plotter units (default 10).
func WithPNGStrokeWidth(w float64) PNGOption { return func(r *pngRenderer) { r.strokeWidth = w } }

// WithPNGSheet sets the plotter extent mapped onto the image.
func WithPNGSheet(b hpgl.Bounds) PNGOption { return func(r *pngRenderer) { r.sheet = b } }

// PNG rasterizes the visible strokes of cmds on a white background. Each
// segment is filled as a thin quad, at least one pixel wide.
func PNG(cmds []hpgl.Command, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: DefaultPalette, width: 765, strokeWidth: 10, sheet: hpgl.Sheet}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		return nil, fmt.Errorf("invalid width %d", r.width)
	}
	if r.sheet.Empty() || r.sheet.Width() == 0 || r.sheet.Height() == 0 {
		return nil, fmt.Errorf("empty sheet %+v", r.sheet)
	}

	scale := float64(r.width) / float64(r.sheet.Height())
	height := max(int(math.Round(float64(r.sheet.Width())*scale)), 1)
	img := image.NewRGBA(image.Rect(0, 0, r.width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	half := max(r.strokeWidth*scale, 1) / 2
	at := func(pt hpgl.Point) (float64, float64) {
		return float64(pt.Y-r.sheet.Min.Y) * scale, float64(pt.X-r.sheet.Min.X) * scale
	}

	segs := Trace(cmds)
	for _, pen := range Pens(segs) {
		z := vector.NewRasterizer(r.width, height)
		for _, s := range segs {
			if s.Pen != pen {
				continue
			}
			x1, y1 := at(s.From)
			x2, y2 := at(s.To)
			quad(z, x1, y1, x2, y2, half)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(r.palette.RGBA(pen)), image.Point{})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// quad adds the rectangle of half-width h around the segment (x1,y1)-(x2,y2).
// All quads share one winding so overlaps never cancel.
func quad(z *vector.Rasterizer, x1, y1, x2, y2, h float64) {
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*h, dx/l*h
	z.MoveTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x2+nx), float32(y2+ny))
	z.LineTo(float32(x2-nx), float32(y2-ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.ClosePath()
}
