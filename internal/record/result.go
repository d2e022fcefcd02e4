package record

import "strings"

// Result is the outcome of validating one record. OK is true exactly when Errors is empty.
// It marshals to {"ok": bool, "errors": [...]} for API and CLI diagnostics.
type Result struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

func newResult(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{OK: len(errs) == 0, Errors: errs}
}

// Err returns nil for a passing result and an *InvalidRecordError otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &InvalidRecordError{Errors: append([]string(nil), r.Errors...)}
}

// InvalidRecordError carries the messages of a failed validation.
type InvalidRecordError struct {
	Errors []string
}

func (e *InvalidRecordError) Error() string {
	return "invalid character record: " + strings.Join(e.Errors, "; ")
}
