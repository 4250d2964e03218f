package transport

import (
	"errors"
	"testing"
	"time"

	perrors "github.com/matzehuels/penpath/pkg/errors"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		ports   []string
		want    string
		wantErr perrors.Code
	}{
		{"linux adapter", []string{"/dev/ttyS0", "/dev/ttyUSB0"}, "/dev/ttyUSB0", ""},
		{"mac adapter", []string{"/dev/tty.Bluetooth", "/dev/tty.usbserial-A50285BI"}, "/dev/tty.usbserial-A50285BI", ""},
		{"none", []string{"/dev/ttyS0"}, "", perrors.ErrCodeNotFound},
		{"several", []string{"/dev/ttyUSB0", "/dev/ttyUSB1"}, "", perrors.ErrCodeDevice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detect(func() ([]string, error) { return tt.ports, nil })
			if tt.wantErr != "" {
				if !perrors.Is(err, tt.wantErr) {
					t.Errorf("detect(%q) error = %v, want %s", tt.ports, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("detect(%q) = %q, %v, want %q", tt.ports, got, err, tt.want)
			}
		})
	}
}

func TestDetectListError(t *testing.T) {
	_, err := detect(func() ([]string, error) { return nil, errors.New("boom") })
	if !perrors.Is(err, perrors.ErrCodeDevice) {
		t.Errorf("detect() error = %v, want device error", err)
	}
}

func TestPortConfig(t *testing.T) {
	var cfg PortConfig
	cfg.SetDefaults()
	if cfg.BaudRate != 9600 || cfg.Timeout != time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(defaults) error = %v", err)
	}

	bad := []PortConfig{
		{BaudRate: 1234, Timeout: time.Second},
		{Device: "/dev/../etc/passwd", BaudRate: 9600},
		{BaudRate: 9600, Timeout: -time.Second},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", c)
		}
	}
}
