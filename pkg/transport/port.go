package transport

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/matzehuels/penpath/pkg/cache"
	perrors "github.com/matzehuels/penpath/pkg/errors"
)

// Port defaults.
const (
	DefaultBaudRate = 9600
	DefaultTimeout  = time.Second
)

// devicePrefixes are the names USB serial adapters get on Linux and macOS.
var devicePrefixes = []string{"/dev/ttyUSB", "/dev/tty.usbserial"}

// PortConfig describes how to open a serial device. The line is always
// 8 data bits, no parity, one stop bit, without flow control.
type PortConfig struct {
	// Device is the device path. Empty means [DetectDevice].
	Device string `json:"device" toml:"device"`

	BaudRate int `json:"baud_rate" toml:"baud_rate"`

	// Timeout is the per-read timeout of the port.
	Timeout time.Duration `json:"timeout" toml:"timeout"`
}

// SetDefaults fills zero fields.
func (c *PortConfig) SetDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks the configuration.
func (c PortConfig) Validate() error {
	if c.Device != "" {
		if err := perrors.ValidateDevicePath(c.Device); err != nil {
			return err
		}
	}
	if err := perrors.ValidateBaudRate(c.BaudRate); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "negative timeout %s", c.Timeout)
	}
	return nil
}

// openBackoff rides out a port still held by a previous transfer.
var openBackoff = cache.Backoff{Attempts: 5, Delay: 200 * time.Millisecond}

// OpenPort opens the configured device, detecting it first when no device
// is set. A busy port is retried with backoff.
func OpenPort(ctx context.Context, cfg PortConfig) (serial.Port, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Device == "" {
		dev, err := DetectDevice()
		if err != nil {
			return nil, err
		}
		cfg.Device = dev
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	var port serial.Port
	err := openBackoff.Retry(ctx, func() error {
		p, err := serial.Open(cfg.Device, mode)
		if err != nil {
			var pe *serial.PortError
			if errors.As(err, &pe) && pe.Code() == serial.PortBusy {
				return cache.Retryable(err)
			}
			return err
		}
		port = p
		return nil
	})
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeDevice, err, "open serial port %s", cfg.Device)
	}

	if err := port.SetReadTimeout(cfg.Timeout); err != nil {
		port.Close()
		return nil, perrors.Wrap(perrors.ErrCodeDevice, err, "set read timeout on %s", cfg.Device)
	}
	return port, nil
}

// DetectDevice returns the only USB serial adapter present. Zero or several
// candidates are an error naming what was found.
func DetectDevice() (string, error) {
	return detect(serial.GetPortsList)
}

func detect(list func() ([]string, error)) (string, error) {
	ports, err := list()
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeDevice, err, "list serial ports")
	}

	var found []string
	for _, p := range ports {
		for _, prefix := range devicePrefixes {
			if strings.HasPrefix(p, prefix) {
				found = append(found, p)
				break
			}
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", perrors.New(perrors.ErrCodeNotFound, "no serial device detected; is the USB serial driver installed?")
	default:
		return "", perrors.New(perrors.ErrCodeDevice, "detected multiple serial devices (%s); specify one", strings.Join(found, ", "))
	}
}
