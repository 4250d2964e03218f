package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/transport"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Serial.ChunkSize != transport.DefaultChunkSize {
		t.Errorf("Serial.ChunkSize = %d, want %d", cfg.Serial.ChunkSize, transport.DefaultChunkSize)
	}
	if cfg.Serial.BaudRate != transport.DefaultBaudRate {
		t.Errorf("Serial.BaudRate = %d, want %d", cfg.Serial.BaudRate, transport.DefaultBaudRate)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[serial]
device = "/dev/ttyUSB3"
chunk_size = 120
timeout = "250ms"

[optimize]
collapse = true

[render]
palette = ["black", "#cc0000"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Serial.Device != "/dev/ttyUSB3" {
		t.Errorf("Serial.Device = %q", cfg.Serial.Device)
	}
	if cfg.Serial.ChunkSize != 120 {
		t.Errorf("Serial.ChunkSize = %d, want 120", cfg.Serial.ChunkSize)
	}
	if cfg.Serial.Timeout != 250*time.Millisecond {
		t.Errorf("Serial.Timeout = %v, want 250ms", cfg.Serial.Timeout)
	}
	if !cfg.Optimize.Collapse {
		t.Error("Optimize.Collapse = false, want true")
	}
	if len(cfg.Render.Palette) != 2 {
		t.Errorf("Render.Palette = %v", cfg.Render.Palette)
	}
	// Unset keys keep their defaults.
	if cfg.Serial.BaudRate != transport.DefaultBaudRate {
		t.Errorf("Serial.BaudRate = %d, want default", cfg.Serial.BaudRate)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    perrors.Code
	}{
		{"unknown key", "[serial]\nspeed = 9600\n", perrors.ErrCodeInvalidConfig},
		{"syntax", "[serial\n", perrors.ErrCodeInvalidConfig},
		{"backend", "[cache]\nbackend = \"memcached\"\n", perrors.ErrCodeInvalidConfig},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", perrors.ErrCodeInvalidConfig},
		{"chunk size", "[serial]\nchunk_size = 2\n", perrors.ErrCodeInvalidConfig},
		{"store", "[server]\nstore = \"s3\"\n", perrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if !perrors.Is(err, tt.code) {
				t.Errorf("LoadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: error = %v, want FILE_NOT_FOUND", err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("default location absent: error = %v", err)
	}
	if cfg.Serial.ChunkSize != transport.DefaultChunkSize {
		t.Error("absent default config should yield defaults")
	}
}

func TestPick(t *testing.T) {
	newCmd := func() (*cobra.Command, *int) {
		var n int
		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().IntVar(&n, "chunk-size", 60, "")
		return cmd, &n
	}

	tests := []struct {
		name   string
		args   []string
		config int
		want   int
	}{
		{"flag default, no config", nil, 0, 60},
		{"config over default", nil, 120, 120},
		{"flag over config", []string{"--chunk-size=30"}, 120, 30},
		{"flag equal to default still wins", []string{"--chunk-size=60"}, 120, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, n := newCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := pick(cmd, "chunk-size", *n, tt.config); got != tt.want {
				t.Errorf("pick() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigShowRoundTrip(t *testing.T) {
	path := writeConfig(t, "[optimize]\nworkers = 3\n")

	var out bytes.Buffer
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}

	var cfg Config
	if _, err := toml.Decode(out.String(), &cfg); err != nil {
		t.Fatalf("config show output does not parse: %v\n%s", err, out.String())
	}
	if cfg.Optimize.Workers != 3 {
		t.Errorf("Optimize.Workers = %d, want 3", cfg.Optimize.Workers)
	}
	if cfg.Serial.ChunkSize != transport.DefaultChunkSize {
		t.Errorf("Serial.ChunkSize = %d, want default", cfg.Serial.ChunkSize)
	}
}
