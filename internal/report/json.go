package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/andyballingall/whisperspace-records/internal/fixture"
)

// JSONReporter implements fixture.Reporter for JSON output.
type JSONReporter struct{}

type jsonSpec struct {
	Path   string   `json:"path"`
	Kind   string   `json:"kind"`
	Errors []string `json:"errors,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		TotalPassed int `json:"totalPassed"`
		TotalFailed int `json:"totalFailed"`
	} `json:"stats"`
	Passed []jsonSpec `json:"passed"`
	Failed []jsonSpec `json:"failed"`
}

func (jr *JSONReporter) Write(w io.Writer, r *fixture.Report) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Passed:    make([]jsonSpec, 0, len(r.Passed)),
		Failed:    make([]jsonSpec, 0, len(r.Failed)),
	}

	for _, s := range r.Passed {
		out.Passed = append(out.Passed, jsonSpec{
			Path:   s.Fixture.Path,
			Kind:   string(s.Fixture.Kind),
			Errors: s.Result.Errors,
		})
	}

	for _, s := range r.Failed {
		errMsg := ""
		if s.Err != nil {
			errMsg = s.Err.Error()
		}
		out.Failed = append(out.Failed, jsonSpec{
			Path:   s.Fixture.Path,
			Kind:   string(s.Fixture.Kind),
			Errors: s.Result.Errors,
			Error:  errMsg,
		})
	}
	out.Stats.TotalPassed = len(out.Passed)
	out.Stats.TotalFailed = len(out.Failed)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
