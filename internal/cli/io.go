package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/pipeline"
)

// stdio is the path that means stdin or stdout.
const stdio = "-"

// readInput reads a document from path, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == stdio {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perrors.New(perrors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout for "" and "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if toStdout(path) {
		_, err := stdout.Write(data)
		return err
	}
	if err := perrors.ValidatePath(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// toStdout reports whether path selects stdout.
func toStdout(path string) bool {
	return path == "" || path == stdio
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdio {
			return "plot"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == ".plt" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// extension returns the file extension for a format. Optimized documents
// get a distinct suffix so they never replace their input.
func extension(format string) string {
	switch format {
	case pipeline.FormatTour:
		return "tour.svg"
	case pipeline.FormatHPGL:
		return "opt.hpgl"
	default:
		return format
	}
}

// writeArtifacts writes each artifact to base.ext and reports the paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) error {
	for _, f := range formats {
		path := base + "." + extension(f)
		if err := writeOutput(nil, path, artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
