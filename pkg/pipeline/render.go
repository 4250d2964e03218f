package pipeline

import (
	"context"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/render"
)

// Render generates the artifacts for opts.Formats from a processed result.
func Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, res, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(ctx context.Context, res *Result, format string, opts Options) ([]byte, error) {
	palette := opts.RenderPalette()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatHPGL:
		data = []byte(res.Text)
	case FormatSVG:
		data = render.SVG(res.Commands,
			render.WithPalette(palette),
			render.WithStrokeWidth(opts.StrokeWidth),
			render.WithSheet(opts.Limit))
	case FormatGCode:
		data = render.GCode(res.Commands, render.WithScale(opts.Scale))
	case FormatPDF:
		data, err = render.PDF(res.Commands,
			render.WithPDFPalette(palette),
			render.WithPDFSheet(opts.Limit))
	case FormatPNG:
		data, err = render.PNG(res.Commands,
			render.WithPNGPalette(palette),
			render.WithWidth(opts.Width),
			render.WithPNGSheet(opts.Limit))
	case FormatDOT:
		data = []byte(render.TourDOT(res.Plot, palette))
	case FormatTour:
		data, err = render.RenderDOT(ctx, render.TourDOT(res.Plot, palette))
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}
