// Package textio decodes input files for offset-sensitive processing.
//
// A UTF-8 byte-order mark would silently shift every character offset by
// one, so readers obtained here strip it before any tokenization runs.
package textio

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = unicode.UTF8BOM.NewDecoder()

// NewReader wraps r so that a leading UTF-8 BOM, if present, is removed.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, utf8BOM)
}

// ReadAll reads r fully with BOM stripping applied.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(NewReader(r))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
