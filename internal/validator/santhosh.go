package validator

import (
	"bytes"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// NewSanthoshCompiler returns a concrete implementation of Compiler.
// Using the santhosh-tekuri/jsonschema/v6 package.
func NewSanthoshCompiler() Compiler {
	return &santhoshCompiler{c: jsonschema.NewCompiler()}
}

// santhoshValidator wraps jsonschema.Schema to implement Validator.
type santhoshValidator struct {
	v *jsonschema.Schema
}

// Validate adapts jsonschema.Schema.Validate to match the Validator interface.
func (sv *santhoshValidator) Validate(doc JSONDocument) error {
	return sv.v.Validate(doc)
}

// santhoshCompiler wraps jsonschema.Compiler to implement Compiler.
type santhoshCompiler struct {
	mu sync.Mutex
	c  *jsonschema.Compiler
}

func (s *santhoshCompiler) AddSchema(id string, schemaData JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.AddResource(id, schemaData)
}

func (s *santhoshCompiler) Compile(id string) (Validator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.c.Compile(id)
	if err != nil {
		return nil, err
	}
	return &santhoshValidator{v: v}, nil
}

func (s *santhoshCompiler) SupportedSchemaVersions() []Draft {
	return []Draft{
		Draft7,
		Draft2019_09,
		Draft2020_12,
	}
}

func (s *santhoshCompiler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = jsonschema.NewCompiler()
}

// CompileDocument compiles the raw JSON Schema document under id. Anything previously
// registered with c is cleared first, so the same document can be compiled again.
// A $schema outside c.SupportedSchemaVersions() is an *UnsupportedDraftError.
func CompileDocument(c Compiler, id string, raw []byte) (Validator, error) {
	doc, err := ParseSchema(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if err = checkDraft(c, doc); err != nil {
		return nil, err
	}

	c.Clear()
	if err = c.AddSchema(id, doc); err != nil {
		return nil, err
	}
	return c.Compile(id)
}

func checkDraft(c Compiler, doc JSONSchema) error {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	declared, ok := obj["$schema"].(string)
	if !ok {
		return nil
	}
	supported := c.SupportedSchemaVersions()
	if slices.Contains(supported, Draft(declared)) {
		return nil
	}
	return &UnsupportedDraftError{Draft: Draft(declared), Supported: supported}
}
