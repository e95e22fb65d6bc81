package io

import (
	"path/filepath"
	"strings"

	"github.com/pgraphlab/pgraph/pkg/errors"
)

// Format reads and writes problem documents in one concrete encoding.
// Implementations must be safe for concurrent use.
type Format interface {
	// Name returns the format identifier used by --format flags.
	Name() string
	// Extensions returns the file extensions the format claims,
	// including the leading dot.
	Extensions() []string
	// Parse decodes a document.
	Parse(data []byte) (*Document, error)
	// Export encodes a document.
	Export(doc *Document) ([]byte, error)
}

// formats lists the supported encodings. Order matters only for help
// output; the first entry is the default for sources without an
// extension.
var formats = []Format{
	JSON,
	TOML,
	XML,
	Text,
}

// Supported encodings.
var (
	JSON Format = jsonFormat{}
	TOML Format = tomlFormat{}
	XML  Format = xmlFormat{}
	Text Format = textFormat{}
)

// Formats returns the names of all supported encodings.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name()
	}
	return names
}

// Lookup returns the format with the given name.
func Lookup(name string) (Format, error) {
	for _, f := range formats {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported,
		"unknown format %q (available: %s)", name, strings.Join(Formats(), ", "))
}

// Detect picks a format from the extension of path. It works on file
// paths and on URLs, ignoring query strings and fragments.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(extOf(path))
	if ext == "" {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"cannot detect format of %q: no file extension; pass a format explicitly", path)
	}
	for _, f := range formats {
		for _, e := range f.Extensions() {
			if e == ext {
				return f, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported,
		"no format handles %s files (available: %s)", ext, strings.Join(Formats(), ", "))
}

// extOf extracts a file extension from a path or URL.
func extOf(source string) string {
	base := source
	if idx := strings.LastIndexAny(base, "/\\"); idx != -1 {
		base = base[idx+1:]
	}
	if idx := strings.IndexAny(base, "?#"); idx != -1 {
		base = base[:idx]
	}
	return filepath.Ext(base)
}
