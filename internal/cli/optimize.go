package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/pipeline"
)

// pipelineFlags are the flags shared by every command that runs the pipeline.
type pipelineFlags struct {
	collapse  bool
	keepOrder bool
	workers   int
	noCache   bool
	refresh   bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.collapse, "collapse", false, "merge runs of consecutive pen-up and pen-down commands")
	cmd.Flags().BoolVar(&f.keepOrder, "keep-order", false, "keep the drawing order (no tour optimization)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "pens optimized in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// options builds pipeline options from flags, falling back to the config.
func (f *pipelineFlags) options(cmd *cobra.Command, cfg *Config) pipeline.Options {
	return pipeline.Options{
		Collapse:     pick(cmd, "collapse", f.collapse, cfg.Optimize.Collapse),
		SkipOptimize: f.keepOrder,
		Workers:      pick(cmd, "workers", f.workers, cfg.Optimize.Workers),
		Refresh:      f.refresh,
	}
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		flags     pipelineFlags
		output    string
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "optimize <file>",
		Short: "Reorder strokes to minimize pen-up travel",
		Long: `Optimize reads an HPGL document, groups its strokes by pen and reorders each
pen's strokes with a nearest-neighbour tour. The result is printed one
instruction per line. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			doc, err := readInput(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			opts := flags.options(cmd, c.Config)
			res, err := runner.ProcessWithCacheInfo(ctx, doc, opts)
			if err != nil {
				return err
			}
			prog.done("Optimized plot",
				"shapes", res.Stats.Shapes,
				"pens", res.Stats.Colors,
				"cached", res.CacheInfo.PlotHit)

			if err := writeOutput(cmd.OutOrStdout(), output, []byte(res.Text)); err != nil {
				return err
			}

			if !toStdout(output) {
				printSuccess("Optimized %s", args[0])
				printFile(output)
				printStats(res.Stats, res.CacheInfo.PlotHit)
			}
			if n := len(res.OutOfBounds); n > 0 {
				printWarning("%d moves fall outside the sheet", n)
			}
			if showStats {
				fmt.Fprintln(ui, statsTable(res.Stats))
			}
			if !toStdout(output) {
				printNextStep("Send it", fmt.Sprintf("%s send %s", appName, output))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print a statistics table")

	return cmd
}

// canonicalizeCommand creates the canonicalize command.
func (c *CLI) canonicalizeCommand() *cobra.Command {
	var (
		output   string
		collapse bool
		relative bool
	)

	cmd := &cobra.Command{
		Use:   "canonicalize <file>",
		Short: "Rewrite a document into single-point absolute moves",
		Long: `Canonicalize rewrites every pen move into its own PA instruction preceded by
PU or PD, without reordering anything. With --relative the canonical form is
converted back into relative moves.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := readInput(args[0])
			if err != nil {
				return err
			}
			cmds, err := hpgl.Parse(string(doc))
			if err != nil {
				return err
			}
			canonical, err := hpgl.Canonicalize(cmds)
			if err != nil {
				return err
			}
			if pick(cmd, "collapse", collapse, c.Config.Optimize.Collapse) {
				canonical = hpgl.CollapseCanonical(canonical)
			}
			for _, p := range hpgl.CheckBounds(canonical, hpgl.Sheet) {
				logger.Warn("move outside sheet", "point", p)
			}
			logger.Debug("canonicalized", "commands", len(cmds), "canonical", len(canonical))

			text := hpgl.Render(canonical)
			if relative {
				text = hpgl.Format(hpgl.Relativize(canonical))
			}
			return writeOutput(cmd.OutOrStdout(), output, []byte(text))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&collapse, "collapse", false, "merge runs of consecutive pen-up and pen-down commands")
	cmd.Flags().BoolVar(&relative, "relative", false, "emit relative moves")

	return cmd
}
