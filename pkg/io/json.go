package io

import (
	"bytes"
	"encoding/json"

	"github.com/pgraphlab/pgraph/pkg/errors"
)

// jsonFormat is the native encoding: the [Document] fields marshalled
// as-is. It is the default when a source has no extension.
type jsonFormat struct{}

func (jsonFormat) Name() string         { return "json" }
func (jsonFormat) Extensions() []string { return []string{".json"} }

func (jsonFormat) Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse json")
	}
	return &doc, nil
}

func (jsonFormat) Export(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "export json")
	}
	return append(data, '\n'), nil
}
