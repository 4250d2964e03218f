package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Limits applied by the validators below.
const (
	// MinChunkSize is the smallest serial chunk budget that still leaves room
	// for an instruction after the resume reserve.
	MinChunkSize = 8

	// MaxChunkSize bounds the chunk budget to what the plotter buffers accept.
	MaxChunkSize = 1 << 16

	maxPathLength = 500
)

// standardBaudRates lists the rates accepted for serial devices.
var standardBaudRates = map[int]bool{
	300: true, 1200: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true,
}

// ValidatePath validates a file path given on the command line or in config.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateDevicePath validates a serial device path such as /dev/ttyUSB0 or COM3.
func ValidateDevicePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "device path cannot contain path traversal sequences (..)")
	}
	return nil
}

// ValidateJobID validates a job identifier before it is used as a storage key.
// Job IDs are UUIDs; anything else is rejected so IDs can never escape a
// storage directory.
func ValidateJobID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "job id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid job id %q", id)
	}
	return nil
}

// ValidateChunkSize checks the serial chunk byte budget.
func ValidateChunkSize(n int) error {
	if n < MinChunkSize || n > MaxChunkSize {
		return New(ErrCodeInvalidConfig, "chunk size %d out of range [%d, %d]", n, MinChunkSize, MaxChunkSize)
	}
	return nil
}

// ValidateBaudRate checks that rate is a standard serial baud rate.
func ValidateBaudRate(rate int) error {
	if !standardBaudRates[rate] {
		return New(ErrCodeInvalidConfig, "unsupported baud rate %d", rate)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
