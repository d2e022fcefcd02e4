package fixture

import (
	"io"
	"sort"
	"sync"
	"time"
)

// Reporter defines the interface for creating formatted fixture reports.
type Reporter interface {
	Write(w io.Writer, report *Report) error
}

// Report represents the results of a fixture run.
type Report struct {
	mu sync.Mutex

	StartTime time.Time
	EndTime   time.Time
	Passed    []Spec // fixtures judged as expected
	Failed    []Spec // fixtures exposing a problem
}

// NewReport creates a new Report.
func NewReport() *Report {
	return &Report{}
}

// AddPassed adds a passed spec to the report.
func (r *Report) AddPassed(spec *Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Passed = append(r.Passed, *spec)
}

// AddFailed adds a failed spec to the report.
func (r *Report) AddFailed(spec *Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed = append(r.Failed, *spec)
}

// HasFailures reports whether any spec failed.
func (r *Report) HasFailures() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Failed) > 0
}

// Sort orders passed and failed specs by fixture path. Specs are added in completion
// order when running in parallel, so reporters call this for stable output.
func (r *Report) Sort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, specs := range [][]Spec{r.Passed, r.Failed} {
		sort.Slice(specs, func(i, j int) bool {
			return specs[i].Fixture.Path < specs[j].Fixture.Path
		})
	}
}
