package fixture

import (
	"errors"
	"os"

	"github.com/andyballingall/whisperspace-records/internal/record"
	"github.com/andyballingall/whisperspace-records/internal/validator"
)

// Spec is one fixture run: the document, what the validator said about it and, if
// the verdict was not the expected one, why.
type Spec struct {
	Fixture Fixture
	Result  record.Result // the record validator's result, empty if the document could not be read
	Err     error         // set once the spec has run if it didn't give the expected outcome
}

// NewSpec sets up a new spec for execution.
func NewSpec(f Fixture) Spec {
	return Spec{Fixture: f}
}

// Run validates the fixture document. When schema is non-nil the document is also
// checked against the JSON Schema, and a disagreement between the two fails the spec.
func (s *Spec) Run(schema validator.Validator) error {
	data, err := os.ReadFile(s.Fixture.Path)
	if err != nil {
		s.Err = err
		return s.Err
	}

	doc, err := record.Parse(data)
	if err != nil {
		var pe *record.ParseError
		if errors.As(err, &pe) {
			pe.Path = s.Fixture.Path
		}
		s.Err = err
		return s.Err
	}

	s.Result = record.Validate(doc)

	if schema != nil {
		schemaErr := schema.Validate(doc)
		if s.Result.OK != (schemaErr == nil) {
			s.Err = &SchemaDisagreementError{Path: s.Fixture.Path, RecordAccepted: s.Result.OK, SchemaErr: schemaErr}
			return s.Err
		}
	}

	switch {
	case s.Fixture.Kind == KindValid && !s.Result.OK:
		s.Err = &ValidFixtureRejectedError{Path: s.Fixture.Path, Errors: s.Result.Errors}
	case s.Fixture.Kind == KindInvalid && s.Result.OK:
		s.Err = &InvalidFixtureAcceptedError{Path: s.Fixture.Path}
	}
	return s.Err
}

// ResultLabel returns a human-readable label for the result of the spec.
func (s *Spec) ResultLabel() string {
	var disagreement *SchemaDisagreementError
	switch {
	case s.Err != nil && s.Result.Errors == nil:
		return "unreadable"
	case errors.As(s.Err, &disagreement):
		return "validator and JSON Schema disagree"
	}

	if s.Fixture.Kind == KindValid {
		if s.Err != nil {
			return "rejected, when expected valid"
		}
		return "accepted"
	}
	if s.Err != nil {
		return "accepted, when expected invalid"
	}
	return "rejected, as expected"
}
