package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/integrations/openstreetmap"
	"github.com/matzehuels/penpath/pkg/source/osm"
)

// osmCommand creates the osm command.
func (c *CLI) osmCommand() *cobra.Command {
	var (
		flags        pipelineFlags
		output       string
		bbox         string
		skipUnstyled bool
		optimize     bool
	)

	cmd := &cobra.Command{
		Use:   "osm [file]",
		Short: "Draw an OpenStreetMap extract",
		Long: `Osm converts the ways of an OpenStreetMap XML extract into a plot that fills
the sheet: buildings with pen 1, parks and playgrounds with pen 2, highways
with pen 3 and everything else with pen 0.

The extract is read from a file, or downloaded for --bbox
(min_lon,min_lat,max_lon,max_lat) from the OpenStreetMap API.`,
		Example: `  penpath osm map.osm -o map.hpgl
  penpath osm --bbox 13.37,52.51,13.38,52.52 --optimize | penpath send -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				m   *osm.Map
				err error
			)
			switch {
			case len(args) == 1 && bbox != "":
				return perrors.New(perrors.ErrCodeInvalidInput, "give either a file or --bbox, not both")
			case len(args) == 1:
				data, err := readInput(args[0])
				if err != nil {
					return err
				}
				if m, err = osm.Parse(bytes.NewReader(data)); err != nil {
					return err
				}
			case bbox != "":
				box, err := openstreetmap.ParseBBox(bbox)
				if err != nil {
					return err
				}
				cache, err := c.newCache(ctx, flags.noCache)
				if err != nil {
					return err
				}
				defer cache.Close()
				client := openstreetmap.NewClient(cache, c.Config.Cache.TTL)

				spinner := newSpinnerWithContext(ctx, "Downloading "+box.String()+"...")
				spinner.Start()
				m, err = client.FetchMap(ctx, box, flags.refresh)
				spinner.Stop()
				if err != nil {
					return err
				}
			default:
				return perrors.New(perrors.ErrCodeInvalidInput, "missing input: give a file or --bbox")
			}

			cmds := m.Commands(osm.Options{SkipUnstyled: skipUnstyled})
			logger.Info("Converted map", "nodes", len(m.Nodes), "ways", len(m.Ways), "commands", len(cmds))

			text := hpgl.Format(cmds)
			if optimize {
				runner, err := c.newRunner(ctx, flags.noCache)
				if err != nil {
					return err
				}
				defer runner.Close()
				if text, err = runner.Optimize(ctx, []byte(text), flags.options(cmd, c.Config)); err != nil {
					return err
				}
			}
			if err = writeOutput(cmd.OutOrStdout(), output, []byte(text)); err != nil {
				return err
			}
			if !toStdout(output) {
				printSuccess("Wrote %d ways", len(m.Ways))
				printFile(output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&bbox, "bbox", "", "download this area: min_lon,min_lat,max_lon,max_lat")
	cmd.Flags().BoolVar(&skipUnstyled, "skip-unstyled", false, "leave out ways drawn with pen 0")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "optimize the result")

	return cmd
}
