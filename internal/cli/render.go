package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penpath/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	pipelineFlags
	output      string
	formats     string
	scale       float64
	strokeWidth float64
	width       int
	palette     string
}

// renderCommand creates the render command for generating previews.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render previews of the optimized plot",
		Long: `Render optimizes a document and writes one file per requested format next to
the input (or at the --output base path):

  hpgl   optimized document (.opt.hpgl)
  svg    vector preview, one color per pen
  gcode  G-code for pen plotters driven by 3D-printer firmware
  pdf    A4 preview
  png    raster preview
  dot    Graphviz source of the pen-up tour
  tour   SVG drawing of the pen-up tour (.tour.svg)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "base output path (default: input without extension)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "G-code units per plotter unit")
	cmd.Flags().Float64Var(&flags.strokeWidth, "stroke-width", 0, "SVG stroke width in plotter units")
	cmd.Flags().IntVar(&flags.width, "width", 0, "PNG width in pixels")
	cmd.Flags().StringVar(&flags.palette, "palette", "", "colors for pens 1..n, e.g. black,#c00,blue")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, flags *renderFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats, err := pipeline.ParseFormats(flags.formats)
	if err != nil {
		return err
	}
	doc, err := readInput(input)
	if err != nil {
		return err
	}

	opts := flags.options(cmd, c.Config)
	opts.Formats = formats
	opts.Scale = pick(cmd, "scale", flags.scale, c.Config.Render.Scale)
	opts.StrokeWidth = pick(cmd, "stroke-width", flags.strokeWidth, c.Config.Render.StrokeWidth)
	opts.Width = pick(cmd, "width", flags.width, c.Config.Render.Width)
	opts.Palette = c.Config.Render.Palette
	if flags.palette != "" {
		opts.Palette = splitList(flags.palette)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(formats, ", ")+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, doc, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	logger.Debug("rendered", "formats", formats, "plot_cached", res.CacheInfo.PlotHit, "render_cached", res.CacheInfo.RenderHit)

	printSuccess("Rendered %s", input)
	if err := writeArtifacts(basePath(flags.output, input), formats, res.Artifacts); err != nil {
		return err
	}
	printStats(res.Stats, res.CacheInfo.PlotHit && res.CacheInfo.RenderHit)
	return nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
