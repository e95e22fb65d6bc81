package io

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pgraphlab/pgraph/pkg/errors"
	"github.com/pgraphlab/pgraph/pkg/httputil"
)

// LoadOptions adjust where [Load] reads from and how it picks a format.
type LoadOptions struct {
	// Format forces a format by name. Empty means detect from the
	// source's extension, falling back to json for extension-less
	// sources such as stdin.
	Format string
	// Fetcher retrieves http(s) sources. Nil means a fresh uncached one.
	Fetcher *httputil.Fetcher
	// Stdin backs the "-" source. Nil means [os.Stdin].
	Stdin io.Reader
}

// Load reads a problem document from source, which may be a file path,
// "-" for stdin, or an http(s) URL.
func Load(ctx context.Context, source string, opts LoadOptions) (*Document, error) {
	data, err := read(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	f, err := pick(source, opts.Format)
	if err != nil {
		return nil, err
	}
	doc, err := f.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", source)
	}
	return doc, nil
}

func read(ctx context.Context, source string, opts LoadOptions) ([]byte, error) {
	switch {
	case source == "-":
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil

	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		fetcher := opts.Fetcher
		if fetcher == nil {
			fetcher = httputil.NewFetcher(nil)
		}
		return fetcher.Get(ctx, source)

	default:
		data, err := os.ReadFile(source)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", source)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", source)
		}
		return data, nil
	}
}

// pick resolves the format for a source: an explicit name wins, then
// the extension, then json for bare sources like "-".
func pick(source, name string) (Format, error) {
	if name != "" {
		return Lookup(name)
	}
	if source == "-" || extOf(source) == "" {
		return JSON, nil
	}
	return Detect(source)
}

// Save exports doc to path in the format its extension names. Writing
// to "-" exports json to stdout.
func Save(doc *Document, path string) error {
	if path == "-" {
		return Write(os.Stdout, doc, JSON)
	}
	f, err := Detect(path)
	if err != nil {
		return err
	}
	data, err := f.Export(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}

// Write exports doc to w in the given format.
func Write(w io.Writer, doc *Document, f Format) error {
	data, err := f.Export(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", f.Name())
	}
	return nil
}
