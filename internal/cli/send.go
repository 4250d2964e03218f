package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penpath/pkg/transport"
)

// sendFlags holds the command-line flags for the send command.
type sendFlags struct {
	chunkSize        int
	baudRate         int
	timeout          time.Duration
	handshakeTimeout time.Duration
	optimize         bool
	tui              bool
	dryRun           bool
}

// sendCommand creates the send command.
func (c *CLI) sendCommand() *cobra.Command {
	var flags sendFlags

	cmd := &cobra.Command{
		Use:   "send <file> [device]",
		Short: "Stream a document to a plotter over a serial port",
		Long: `Send initializes the plotter and writes the document in chunks that fit the
device's input buffer. Between chunks it asks for the pen position and waits
for the answer, which the device sends once the buffer has drained.

Without a device argument the single USB serial adapter attached to this
machine is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := c.Config.Serial.Device
			if len(args) == 2 {
				device = args[1]
			}
			return c.runSend(cmd, args[0], device, &flags)
		},
	}

	cmd.Flags().IntVarP(&flags.chunkSize, "chunk-size", "b", transport.DefaultChunkSize, "device buffer size in bytes")
	cmd.Flags().IntVar(&flags.baudRate, "baud", transport.DefaultBaudRate, "baud rate")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", transport.DefaultTimeout, "serial read timeout")
	cmd.Flags().DurationVar(&flags.handshakeTimeout, "handshake-timeout", 0, "give up when the device stays busy this long (default: wait forever)")
	cmd.Flags().BoolVar(&flags.optimize, "optimize", false, "optimize the document before sending")
	cmd.Flags().BoolVar(&flags.tui, "tui", false, "show an interactive progress view")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the chunks instead of sending them")

	return cmd
}

func (c *CLI) runSend(cmd *cobra.Command, input, device string, flags *sendFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := readInput(input)
	if err != nil {
		return err
	}
	text := string(doc)
	if flags.optimize {
		runner, err := c.newRunner(ctx, false)
		if err != nil {
			return err
		}
		defer runner.Close()
		opts := (&pipelineFlags{}).options(cmd, c.Config)
		if text, err = runner.Optimize(ctx, doc, opts); err != nil {
			return err
		}
	}

	chunkSize := pick(cmd, "chunk-size", flags.chunkSize, c.Config.Serial.ChunkSize)
	if flags.dryRun {
		for i, chunk := range transport.Chunk(transport.Lines(text), chunkSize) {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, chunk)
		}
		return nil
	}

	port, err := transport.OpenPort(ctx, transport.PortConfig{
		Device:   device,
		BaudRate: pick(cmd, "baud", flags.baudRate, c.Config.Serial.BaudRate),
		Timeout:  pick(cmd, "timeout", flags.timeout, c.Config.Serial.Timeout),
	})
	if err != nil {
		return err
	}
	defer port.Close()

	sender := &transport.Sender{
		Port:             port,
		ChunkSize:        chunkSize,
		HandshakeTimeout: pick(cmd, "handshake-timeout", flags.handshakeTimeout, c.Config.Serial.HandshakeTimeout),
		Logger:           logger,
	}

	var stats *transport.Stats
	if flags.tui {
		stats, err = runSendTUI(ctx, input, sender, text)
	} else {
		stats, err = sendWithSpinner(ctx, sender, text)
	}
	if err != nil {
		return err
	}

	printSuccess("Sent %s", input)
	printDetail("%d chunks · %d bytes · %s", stats.Chunks, stats.Bytes, stats.Duration.Round(time.Millisecond))
	return nil
}

// sendWithSpinner sends text while a spinner shows chunk progress.
func sendWithSpinner(ctx context.Context, sender *transport.Sender, text string) (*transport.Stats, error) {
	spinner := newSpinnerWithContext(ctx, "Initializing plotter...")
	sender.Progress = func(p transport.Progress) {
		spinner.SetMessage(fmt.Sprintf("Sending chunk %d/%d (%d/%d bytes)...", p.Chunk, p.Chunks, p.Bytes, p.TotalBytes))
	}
	spinner.Start()
	stats, err := sender.Send(ctx, text)
	spinner.Stop()
	return stats, err
}
