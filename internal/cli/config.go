package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/penpath/pkg/cache"
	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/pipeline"
	"github.com/matzehuels/penpath/pkg/render"
	"github.com/matzehuels/penpath/pkg/server"
	"github.com/matzehuels/penpath/pkg/transport"
)

// Cache backends accepted in [CacheConfig.Backend].
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the contents of config.toml. Command-line flags override it.
type Config struct {
	Serial   SerialConfig   `toml:"serial"`
	Optimize OptimizeConfig `toml:"optimize"`
	Render   RenderConfig   `toml:"render"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// SerialConfig configures the plotter connection.
type SerialConfig struct {
	Device           string        `toml:"device"`
	BaudRate         int           `toml:"baud_rate"`
	ChunkSize        int           `toml:"chunk_size"`
	Timeout          time.Duration `toml:"timeout"`
	HandshakeTimeout time.Duration `toml:"handshake_timeout"`
}

type OptimizeConfig struct {
	Collapse bool `toml:"collapse"`
	Workers  int  `toml:"workers"`
}

type RenderConfig struct {
	Scale       float64  `toml:"scale"`
	StrokeWidth float64  `toml:"stroke_width"`
	Width       int      `toml:"width"`
	Palette     []string `toml:"palette"`
}

type CacheConfig struct {
	Backend       string        `toml:"backend"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr          string `toml:"addr"`
	MDNS          bool   `toml:"mdns"`
	Store         string `toml:"store"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Serial: SerialConfig{
			BaudRate:  transport.DefaultBaudRate,
			ChunkSize: transport.DefaultChunkSize,
			Timeout:   transport.DefaultTimeout,
		},
		Render: RenderConfig{
			Scale:       render.DefaultGCodeScale,
			StrokeWidth: pipeline.DefaultStrokeWidth,
			Width:       pipeline.DefaultPNGWidth,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     cache.TTLHTTP,
		},
		Server: ServerConfig{
			Addr:  server.DefaultAddr,
			Store: StoreFile,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path means the default
// location, which may be absent; an explicit path must exist. Unknown keys
// are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, perrors.New(perrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks values that are wrong regardless of the command.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone, "":
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	switch c.Server.Store {
	case StoreMemory, StoreFile, StoreMongo, "":
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "server.store must be memory, file or mongo, got %q", c.Server.Store)
	}
	if c.Serial.ChunkSize != 0 {
		if err := perrors.ValidateChunkSize(c.Serial.ChunkSize); err != nil {
			return err
		}
	}
	if c.Serial.BaudRate != 0 {
		if err := perrors.ValidateBaudRate(c.Serial.BaudRate); err != nil {
			return err
		}
	}
	return nil
}

// pick resolves a setting: an explicitly set flag wins, then a non-zero
// config value, then the flag default.
func pick[T comparable](cmd *cobra.Command, flag string, flagValue, configValue T) T {
	var zero T
	if cmd.Flags().Changed(flag) || configValue == zero {
		return flagValue
	}
	return configValue
}

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile
			if path == "" {
				p, err := configPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if _, err := os.Stat(path); err != nil {
				printDetail("File does not exist; defaults are in effect")
			}
			return nil
		},
	})

	return cmd
}
