package mergepatch

import (
	"bytes"

	"github.com/anand-gl/jsoncanonicalizer"
	"github.com/tidwall/gjson"
)

// Canonical returns the RFC 8785 canonical form of data: sorted keys, no
// insignificant whitespace and normalized numbers.
func Canonical(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}
	if gjson.ParseBytes(data).Type == gjson.JSON {
		return transform(data)
	}
	// The canonicalizer only accepts an object or array at the top level.
	wrapped, err := transform(append(append([]byte{'['}, bytes.TrimSpace(data)...), ']'))
	if err != nil {
		return nil, err
	}
	return wrapped[1 : len(wrapped)-1], nil
}

func transform(data []byte) ([]byte, error) {
	out, err := jsoncanonicalizer.Transform(data)
	if err != nil {
		return nil, ErrInvalidDocument.Err(err)
	}
	return out, nil
}
