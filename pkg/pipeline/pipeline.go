// Package pipeline provides the document pipeline for penpath.
//
// This package implements the complete parse → canonicalize → extract →
// optimize → emit → render pipeline used by the CLI and the HTTP server. By
// centralizing this logic, every entry point produces the same output for the
// same document and options.
//
// # Architecture
//
// The pipeline consists of these stages:
//
//  1. Parse: Split the document into typed commands
//  2. Canonicalize: Rewrite into single-point absolute moves (optionally collapsing
//     repeated pen-state commands)
//  3. Extract: Group pen-down polylines by pen
//  4. Optimize: Reorder each pen's shapes to reduce pen-up travel
//  5. Emit: Serialize the plot back into canonical text
//  6. Render: Generate artifacts (svg, gcode, pdf, png, dot, tour)
//
// [Process] runs stages 1-5 without caching. A [Runner] adds caching of the
// optimized text and of rendered artifacts.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"hpgl", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Text)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/penpath/pkg/cache"
	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/optimize"
	"github.com/matzehuels/penpath/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStrokeWidth is the SVG stroke width in plotter units.
	DefaultStrokeWidth = 10.0

	// DefaultPNGWidth is the PNG width in pixels.
	DefaultPNGWidth = 765
)

// Format constants for output formats.
const (
	FormatHPGL  = "hpgl"
	FormatSVG   = "svg"
	FormatGCode = "gcode"
	FormatPDF   = "pdf"
	FormatPNG   = "png"
	FormatDOT   = "dot"
	FormatTour  = "tour"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHPGL:  true,
	FormatSVG:   true,
	FormatGCode: true,
	FormatPDF:   true,
	FormatPNG:   true,
	FormatDOT:   true,
	FormatTour:  true,
}

// FormatNames lists the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ContentType returns the MIME type of an artifact.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatTour:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Optimize options
	Collapse     bool        `json:"collapse,omitempty"`
	SkipOptimize bool        `json:"skip_optimize,omitempty"` // Keep drawing order (default: false = optimize)
	Workers      int         `json:"workers,omitempty"`
	Limit        hpgl.Bounds `json:"limit,omitempty"` // Advisory sheet bounds; zero means hpgl.Sheet
	Refresh      bool        `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`        // G-code units per plotter unit
	StrokeWidth float64  `json:"stroke_width,omitempty"` // SVG stroke width
	Width       int      `json:"width,omitempty"`        // PNG width in pixels
	Palette     []string `json:"palette,omitempty"`      // Colors for pens 1..n

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canonical is the optimized canonical command stream.
	Canonical []hpgl.CanonicalCommand

	// Commands is Canonical lifted into parsed commands for the renderers.
	Commands []hpgl.Command

	// Plot is the optimized plot.
	Plot *optimize.Plot

	// Text is the optimized document, one instruction per line.
	Text string

	// DocHash and PlotHash are content hashes of the input and of Text.
	DocHash  string
	PlotHash string

	// OutOfBounds lists input moves outside Options.Limit. Advisory only.
	OutOfBounds []hpgl.Point

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Commands     int     `json:"commands"`
	Canonical    int     `json:"canonical"`
	Shapes       int     `json:"shapes"`
	Colors       int     `json:"colors"`
	Points       int     `json:"points"`
	TravelBefore float64 `json:"travel_before"`
	TravelAfter  float64 `json:"travel_after"`

	ParseTime    time.Duration `json:"parse_time"`
	ExtractTime  time.Duration `json:"extract_time"`
	OptimizeTime time.Duration `json:"optimize_time"`
	EmitTime     time.Duration `json:"emit_time"`
	RenderTime   time.Duration `json:"render_time"`
}

// Saved returns the fraction of pen-up travel removed by optimization.
func (s Stats) Saved() float64 {
	if s.TravelBefore == 0 {
		return 0
	}
	return 1 - s.TravelAfter/s.TravelBefore
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlotHit   bool // Whether the optimized text came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list and validates it.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out, ValidateFormats(out)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workers < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "workers must not be negative, got %d", o.Workers)
	}
	if o.Scale < 0 || o.StrokeWidth < 0 || o.Width < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "render sizes must not be negative")
	}
	if o.Limit == (hpgl.Bounds{}) {
		o.Limit = hpgl.Sheet
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHPGL}
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultGCodeScale
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.Width == 0 {
		o.Width = DefaultPNGWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, c := range o.Palette {
		if _, err := render.ParseColor(c); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "palette")
		}
	}
	return nil
}

// ShouldOptimize returns whether shapes are reordered.
func (o *Options) ShouldOptimize() bool {
	return !o.SkipOptimize
}

// RenderPalette returns the palette with pen 0 prepended, or the default.
func (o *Options) RenderPalette() render.Palette {
	if len(o.Palette) == 0 {
		return render.DefaultPalette
	}
	return append(render.Palette{""}, o.Palette...)
}

// PlotKeyOpts returns cache key options for the optimized plot.
func (o *Options) PlotKeyOpts() cache.PlotKeyOpts {
	return cache.PlotKeyOpts{
		Collapse: o.Collapse,
		Optimize: o.ShouldOptimize(),
		Limit:    boundsKey(o.Limit),
	}
}

func boundsKey(b hpgl.Bounds) [4]int {
	return [4]int{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatGCode:
		k.Scale = o.Scale
	case FormatSVG:
		k.StrokeWidth = o.StrokeWidth
		k.Palette = strings.Join(o.Palette, ",")
		k.Sheet = boundsKey(o.Limit)
	case FormatPNG:
		k.Scale = float64(o.Width)
		k.Palette = strings.Join(o.Palette, ",")
		k.Sheet = boundsKey(o.Limit)
	case FormatPDF:
		k.Palette = strings.Join(o.Palette, ",")
		k.Sheet = boundsKey(o.Limit)
	case FormatDOT, FormatTour:
		k.Palette = strings.Join(o.Palette, ",")
	}
	return k
}
