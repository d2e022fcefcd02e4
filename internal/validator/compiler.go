// Package validator provides interfaces and types for JSON Schema validation.
package validator

import (
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Draft represents a JSON Schema draft version.
type Draft string

const (
	// Draft7 represents JSON Schema Draft 7.
	Draft7 Draft = "http://json-schema.org/draft-07/schema#"
	// Draft2019_09 represents JSON Schema Draft 2019-09.
	Draft2019_09 Draft = "https://json-schema.org/draft/2019-09/schema"
	// Draft2020_12 represents JSON Schema Draft 2020-12.
	Draft2020_12 Draft = "https://json-schema.org/draft/2020-12/schema"
)

// A JSONDocument is a valid parsed JSON Document - i.e. the result of json.Unmarshal().
type JSONDocument interface{}

// A JSONSchema is a valid parsed JSON Document representing a JSON Schema.
// Note that a Compiler must compile the JSONSchema before use which will identify any JSON Schema issues.
type JSONSchema JSONDocument

// Validator represents something which can be used to validate a JSON document.
type Validator interface {
	// Validate validates JSON document.
	Validate(v JSONDocument) error
}

// Compiler defines a JSON Schema compiler. A Compiler first must register all the
// JSON Schemas that it will need to compile.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler.
	// An error is produced if the JSONSchema cannot be added.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	// An error is produced if the JSONSchema cannot be compiled.
	Compile(id string) (Validator, error)

	// SupportedSchemaVersions returns a slice of Draft representing the supported schema versions.
	SupportedSchemaVersions() []Draft

	// Clear resets the compiler state, removing all registered schemas.
	Clear()
}

// ParseSchema decodes a JSON Schema document in the form AddSchema expects.
// Numbers are preserved exactly (as json.Number) so that const and enum keywords
// compare correctly.
func ParseSchema(r io.Reader) (JSONSchema, error) {
	return jsonschema.UnmarshalJSON(r)
}

// UnsupportedDraftError is returned when a schema declares a $schema the compiler
// cannot interpret.
type UnsupportedDraftError struct {
	Draft     Draft
	Supported []Draft
}

func (e *UnsupportedDraftError) Error() string {
	return fmt.Sprintf("unsupported JSON Schema draft %q (supported: %v)", e.Draft, e.Supported)
}
