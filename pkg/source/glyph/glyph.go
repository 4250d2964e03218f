// Package glyph lays out text as pen strokes.
//
// Glyph outlines are loaded with golang.org/x/image/font/sfnt, curves are
// flattened into short line segments, and each contour becomes one pen-down
// polyline. The result is a plain absolute command stream that can be fed
// straight into the optimizer:
//
//	tw := glyph.Default()
//	cmds, err := tw.Text("hello", glyph.Options{X: 1000, Y: 1000, Size: 400, Pen: 1})
package glyph

import (
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/hpgl"
)

const (
	// DefaultSteps is the number of segments a curve is split into.
	DefaultSteps = 8
	// LineHeight is the baseline distance as a multiple of the font size.
	LineHeight = 1.2
)

// Options places a run of text on the sheet.
type Options struct {
	X, Y  int   // baseline origin of the first line
	Size  int   // em size in plotter units
	Pen   uint8 // pen selected before drawing
	Steps int   // curve subdivisions; DefaultSteps if zero
}

// Typewriter draws text in one font. It is safe for concurrent use.
type Typewriter struct {
	font *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// New parses a TrueType or OpenType font.
func New(data []byte) (*Typewriter, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse font")
	}
	return &Typewriter{font: f}, nil
}

var (
	defaultOnce sync.Once
	defaultTW   *Typewriter
)

// Default returns a Typewriter using Go Regular.
func Default() *Typewriter {
	defaultOnce.Do(func() {
		tw, err := New(goregular.TTF)
		if err != nil {
			panic("glyph: embedded font: " + err.Error())
		}
		defaultTW = tw
	})
	return defaultTW
}

// Text draws s starting at (opts.X, opts.Y). Newlines move the baseline
// down by LineHeight*Size. The stream starts with SP and ends with PU.
// Empty or blank text yields no commands.
func (tw *Typewriter) Text(s string, opts Options) ([]hpgl.Command, error) {
	if opts.Size <= 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "font size must be positive, got %d", opts.Size)
	}
	if opts.Steps <= 0 {
		opts.Steps = DefaultSteps
	}

	tw.mu.Lock()
	defer tw.mu.Unlock()

	ppem := fixed.Int26_6(opts.Size * 64)
	var contours [][]hpgl.Point

	for n, line := range strings.Split(s, "\n") {
		origin := pointF{float64(opts.X), float64(opts.Y) - float64(n)*LineHeight*float64(opts.Size)}
		prev := sfnt.GlyphIndex(0)
		for i, r := range line {
			idx, err := tw.font.GlyphIndex(&tw.buf, r)
			if err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "glyph index %q", r)
			}
			if i > 0 {
				if k, err := tw.font.Kern(&tw.buf, prev, idx, ppem, font.HintingNone); err == nil {
					origin.x += float64(k) / 64
				}
			}
			segs, err := tw.font.LoadGlyph(&tw.buf, idx, ppem, nil)
			if err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "load glyph %q", r)
			}
			contours = append(contours, outline(segs, origin, opts.Steps)...)

			adv, err := tw.font.GlyphAdvance(&tw.buf, idx, ppem, font.HintingNone)
			if err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "glyph advance %q", r)
			}
			origin.x += float64(adv) / 64
			prev = idx
		}
	}

	if len(contours) == 0 {
		return nil, nil
	}
	out := []hpgl.Command{hpgl.SelectPen{Pen: opts.Pen}}
	for _, c := range contours {
		out = append(out, hpgl.PenUp{Points: c[:1]}, hpgl.PenDown{Points: c[1:]})
	}
	return append(out, hpgl.PenUp{}), nil
}

// Advance returns the width of the longest line of s at size, in plotter units.
func (tw *Typewriter) Advance(s string, size int) (float64, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	ppem := fixed.Int26_6(size * 64)
	var widest float64
	for _, line := range strings.Split(s, "\n") {
		var w fixed.Int26_6
		for _, r := range line {
			idx, err := tw.font.GlyphIndex(&tw.buf, r)
			if err != nil {
				return 0, perrors.Wrap(perrors.ErrCodeInternal, err, "glyph index %q", r)
			}
			adv, err := tw.font.GlyphAdvance(&tw.buf, idx, ppem, font.HintingNone)
			if err != nil {
				return 0, perrors.Wrap(perrors.ErrCodeInternal, err, "glyph advance %q", r)
			}
			w += adv
		}
		widest = math.Max(widest, float64(w)/64)
	}
	return widest, nil
}
