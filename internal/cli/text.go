package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/source/glyph"
)

// textCommand creates the text command.
func (c *CLI) textCommand() *cobra.Command {
	var (
		output   string
		pen      uint8
		steps    int
		fontPath string
	)

	cmd := &cobra.Command{
		Use:   "text <x> <y> <size> <message>...",
		Short: "Write text as pen strokes",
		Long: `Text draws the message as glyph outlines starting at baseline x,y, with an em
size of size plotter units. "\n" in the message starts a new line. The font is
Go Regular unless --font names a TrueType or OpenType file.`,
		Example: `  penpath text 500 7000 400 "Hello, plotter"`,
		Args:    cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nums [3]int
			for i := range nums {
				n, err := strconv.Atoi(args[i])
				if err != nil {
					return perrors.New(perrors.ErrCodeInvalidInput, "argument %d must be an integer, got %q", i+1, args[i])
				}
				nums[i] = n
			}
			message := strings.ReplaceAll(strings.Join(args[3:], " "), `\n`, "\n")

			tw := glyph.Default()
			if fontPath != "" {
				data, err := readInput(fontPath)
				if err != nil {
					return err
				}
				if tw, err = glyph.New(data); err != nil {
					return err
				}
			}

			cmds, err := tw.Text(message, glyph.Options{X: nums[0], Y: nums[1], Size: nums[2], Pen: pen, Steps: steps})
			if err != nil {
				return err
			}
			canonical, err := hpgl.Canonicalize(cmds)
			if err != nil {
				return err
			}
			if oob := hpgl.CheckBounds(canonical, hpgl.Sheet); len(oob) > 0 {
				printWarning("%d points fall outside the sheet", len(oob))
			}
			loggerFromContext(cmd.Context()).Debug("typeset", "runes", len([]rune(message)), "commands", len(cmds))
			return writeOutput(cmd.OutOrStdout(), output, []byte(hpgl.Format(cmds)))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Uint8Var(&pen, "pen", 1, "pen to draw with")
	cmd.Flags().IntVar(&steps, "steps", glyph.DefaultSteps, "line segments per curve")
	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType or OpenType font file")

	return cmd
}
