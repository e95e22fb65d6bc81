package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pgraphlab/pgraph/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a render format extension (.svg, .pdf, etc.), it strips
// that extension. This is used when generating multiple files
// (e.g., plant.svg, plant.pdf).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes rendered artifacts to files derived from the
// output and input paths, one file per format.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 && output != "" {
		return writeFile(output, artifacts[formats[0]])
	}
	base := basePath(output, input)
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := writeFile(base+"."+format, data); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
