package fixture

import (
	"fmt"
	"strings"
)

type NoFixturesError struct {
	Dir string
}

func (e *NoFixturesError) Error() string {
	return fmt.Sprintf("no fixtures (*%s or *%s) found in %s", ValidSuffix, InvalidSuffix, e.Dir)
}

type ValidFixtureRejectedError struct {
	Path   string
	Errors []string
}

func (e *ValidFixtureRejectedError) Error() string {
	return fmt.Sprintf("expected %s to be valid, but got errors: %s", e.Path, strings.Join(e.Errors, "; "))
}

type InvalidFixtureAcceptedError struct {
	Path string
}

func (e *InvalidFixtureAcceptedError) Error() string {
	return fmt.Sprintf("expected %s to be invalid, but it passed", e.Path)
}

// SchemaDisagreementError reports a document on which the record validator and the
// published JSON Schema reach different verdicts.
type SchemaDisagreementError struct {
	Path           string
	RecordAccepted bool
	SchemaErr      error
}

func (e *SchemaDisagreementError) Error() string {
	if e.RecordAccepted {
		return fmt.Sprintf("%s: record validator accepted the document but the JSON Schema rejected it: %v",
			e.Path, e.SchemaErr)
	}
	return fmt.Sprintf("%s: record validator rejected the document but the JSON Schema accepted it", e.Path)
}

func (e *SchemaDisagreementError) Unwrap() error {
	return e.SchemaErr
}

type NotAFixtureError struct {
	Path string
}

func (e *NotAFixtureError) Error() string {
	return fmt.Sprintf("%s is not a fixture: name must end in %s or %s", e.Path, ValidSuffix, InvalidSuffix)
}
