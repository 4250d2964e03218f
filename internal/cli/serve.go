package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/jobs"
	"github.com/matzehuels/penpath/pkg/server"
)

// Job stores accepted in [ServerConfig.Store].
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

const defaultDiscoverTimeout = 2 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mdns     bool
		store    string
		noCache  bool
		instance string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the optimizer over HTTP:

  POST /v1/optimize   optimize the request body (?format=, ?collapse=, ?optimize=)
  GET  /v1/jobs       recent jobs
  GET  /v1/jobs/{id}  one job
  GET  /v1/ws         websocket, one document per text frame
  GET  /healthz       liveness

With --mdns the server announces itself as ` + server.ServiceType + ` so that
"penpath discover" finds it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			js, err := c.newJobStore(ctx, pick(cmd, "store", store, c.Config.Server.Store))
			if err != nil {
				return err
			}
			defer js.Close()

			cfg := server.Config{
				Addr:     pick(cmd, "addr", addr, c.Config.Server.Addr),
				MDNS:     mdns || c.Config.Server.MDNS,
				Instance: instance,
			}
			printSuccess("Listening on %s", cfg.Addr)
			if cfg.MDNS {
				printDetail("Advertising %s", server.ServiceType)
			}
			return server.New(runner, js, c.Logger, cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&mdns, "mdns", false, "advertise the server on the local network")
	cmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (default: hostname)")
	cmd.Flags().StringVar(&store, "store", StoreFile, "job store: memory, file or mongo")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// newJobStore opens the named job store.
func (c *CLI) newJobStore(ctx context.Context, kind string) (jobs.Store, error) {
	switch kind {
	case StoreMemory:
		return jobs.NewMemoryStore(), nil
	case StoreFile, "":
		dir, err := jobsDir()
		if err != nil {
			return nil, fmt.Errorf("get jobs dir: %w", err)
		}
		return jobs.NewFileStore(dir)
	case StoreMongo:
		if c.Config.Server.MongoURI == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidConfig, "server.mongo_uri is required for the mongo store")
		}
		return jobs.NewMongoStore(ctx, jobs.MongoOptions{
			URI:      c.Config.Server.MongoURI,
			Database: c.Config.Server.MongoDatabase,
		})
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unknown job store %q", kind)
	}
}

// discoverCommand creates the discover command.
func (c *CLI) discoverCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find penpath servers on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := newSpinnerWithContext(cmd.Context(), "Browsing "+server.ServiceType+"...")
			spinner.Start()
			found, err := server.Discover(timeout)
			spinner.Stop()
			if err != nil {
				return perrors.Wrap(perrors.ErrCodeNetwork, err, "discover")
			}
			if len(found) == 0 {
				printInfo("No servers found")
				return nil
			}
			for _, addr := range found {
				fmt.Fprintln(cmd.OutOrStdout(), addr)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultDiscoverTimeout, "how long to listen for answers")

	return cmd
}
