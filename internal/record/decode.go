package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseError reports input that is not a single well-formed JSON document.
type ParseError struct {
	Path string // optional: the file the document was read from
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s is not a valid JSON document: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("not a valid JSON document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a single JSON document into the generic form Validate expects.
// Numbers are kept as json.Number so no precision is lost before validation.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("unexpected data after top-level value")}
	}
	return doc, nil
}

// Decode parses and validates data. The typed record is only built when validation
// passes; a structurally invalid record yields a nil record, the failing Result and
// a nil error. A malformed JSON document yields a *ParseError.
func Decode(data []byte) (*CharacterRecord, Result, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, Result{}, err
	}

	res := Validate(doc)
	if !res.OK {
		return nil, res, nil
	}

	var rec CharacterRecord
	if err = json.Unmarshal(data, &rec); err != nil {
		return nil, res, &ParseError{Err: err}
	}
	return &rec, res, nil
}
