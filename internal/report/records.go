package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/andyballingall/whisperspace-records/internal/record"
)

// RecordResult is the validation outcome for one record file. Err is set when the
// file could not be read or parsed, in which case Result is empty.
type RecordResult struct {
	Path string
	record.Result
	Err error
}

// Valid reports whether the file was read and the record passed validation.
func (r RecordResult) Valid() bool {
	return r.Err == nil && r.OK
}

// RecordReporter writes the results of validating record files.
type RecordReporter interface {
	WriteRecords(w io.Writer, results []RecordResult) error
}

// RecordTextReporter writes one line per record followed by its error messages.
type RecordTextReporter struct {
	UseColour bool
}

func (tr *RecordTextReporter) WriteRecords(w io.Writer, results []RecordResult) error {
	invalid := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			invalid++
			fmt.Fprintf(w, "%s %s: %v\n", colourise(tr.UseColour, colRed, "✗"), r.Path, r.Err)
		case r.OK:
			fmt.Fprintf(w, "%s %s\n", colourise(tr.UseColour, colGreen, "✓"), r.Path)
		default:
			invalid++
			fmt.Fprintf(w, "%s %s\n", colourise(tr.UseColour, colRed, "✗"), r.Path)
			for _, e := range r.Errors {
				fmt.Fprintf(w, "    %s\n", e)
			}
		}
	}

	stats := fmt.Sprintf("%d valid, %d invalid", len(results)-invalid, invalid)
	col := colBoldGreen
	if invalid > 0 {
		col = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n",
		colourise(tr.UseColour, colBoldWhite, "Record summary: "),
		colourise(tr.UseColour, col, stats))
	return nil
}

// RecordJSONReporter writes an array of {path, ok, errors} objects.
type RecordJSONReporter struct{}

type jsonRecord struct {
	Path   string   `json:"path"`
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

func (jr *RecordJSONReporter) WriteRecords(w io.Writer, results []RecordResult) error {
	out := make([]jsonRecord, 0, len(results))
	for _, r := range results {
		rec := jsonRecord{Path: r.Path, OK: r.OK, Errors: r.Errors}
		if r.Err != nil {
			rec.OK = false
			rec.Errors = []string{r.Err.Error()}
		}
		if rec.Errors == nil {
			rec.Errors = []string{}
		}
		out = append(out, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
