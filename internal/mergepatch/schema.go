package mergepatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

const inlineSchemaURL = "inline://schema"

// CompileSchema compiles a JSON schema document. A schema with an $id may
// refer to itself.
func CompileSchema(schema []byte) (*jsonschema.Schema, error) {
	if !gjson.ValidBytes(schema) {
		return nil, ErrInvalidSchema
	}
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == inlineSchemaURL {
			return io.NopCloser(bytes.NewReader(schema)), nil
		}
		return nil, fmt.Errorf("unsupported schema ref: %s", url)
	}
	if err := compiler.AddResource(inlineSchemaURL, bytes.NewReader(schema)); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	compiled, err := compiler.Compile(inlineSchemaURL)
	if err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	return compiled, nil
}

// Validate checks doc against schema. Violations are returned as
// ErrSchemaViolation, located at the first failing instance path.
func Validate(doc, schema []byte) error {
	compiled, err := CompileSchema(schema)
	if err != nil {
		return err
	}
	return ValidateCompiled(doc, compiled)
}

// ValidateCompiled is Validate with a schema compiled by CompileSchema.
func ValidateCompiled(doc []byte, schema *jsonschema.Schema) error {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ErrInvalidDocument.Err(err)
	}
	err := schema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		leaf := ve
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return ErrSchemaViolation.At(loc).Err(err)
	}
	return ErrSchemaViolation.Err(err)
}
