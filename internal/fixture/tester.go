package fixture

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andyballingall/whisperspace-records/internal/record"
	"github.com/andyballingall/whisperspace-records/internal/validator"
)

// ErrStopTesting is a sentinel error used to signal that further specs should be stopped and the report shown.
var ErrStopTesting = errors.New("stopping after first error")

// Tester is the type used to manage a run of fixture specs.
type Tester struct {
	schema validator.Validator

	// Test run options
	stopOnFirstError bool
	numWorkers       int
}

// NewTester creates a new tester. If schema is nil, fixtures are only checked
// against the record validator.
func NewTester(schema validator.Validator) *Tester {
	return &Tester{
		schema:           schema,
		stopOnFirstError: true,
		numWorkers:       runtime.GOMAXPROCS(0),
	}
}

// NewSchemaTester compiles the published record JSON Schema with c and returns a
// Tester that cross-checks every fixture against it.
func NewSchemaTester(c validator.Compiler) (*Tester, error) {
	v, err := validator.CompileDocument(c, record.SchemaID, record.JSONSchema())
	if err != nil {
		return nil, err
	}
	return NewTester(v), nil
}

// SetStopOnFirstError controls whether the run should stop on the first failed spec.
// It defaults to true.
func (t *Tester) SetStopOnFirstError(b bool) {
	t.stopOnFirstError = b
}

// SetNumWorkers controls the number of workers used to run specs in parallel.
// It defaults to GOMAXPROCS.
func (t *Tester) SetNumWorkers(n int) {
	t.numWorkers = n
}

// Run discovers the fixtures in dir and runs a spec for each of them in parallel.
// The context can be used to cancel the run early (e.g., on Ctrl+C).
func (t *Tester) Run(ctx context.Context, dir string) (*Report, error) {
	fixtures, err := Discover(ctx, dir)
	if err != nil {
		return nil, err
	}
	return t.RunFixtures(ctx, fixtures)
}

// RunFixtures runs a spec for each of the given fixtures in parallel.
func (t *Tester) RunFixtures(ctx context.Context, fixtures []Fixture) (*Report, error) {
	report := NewReport()
	report.StartTime = time.Now()
	defer func() { report.EndTime = time.Now() }()

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.numWorkers, 1))

	for _, f := range fixtures {
		if runCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ce := runCtx.Err(); ce != nil {
				return ce
			}
			spec := NewSpec(f)
			if spec.Run(t.schema) != nil {
				report.AddFailed(&spec)
				if t.stopOnFirstError {
					// Cancels runCtx so queued specs are skipped
					return ErrStopTesting
				}
				return nil
			}
			report.AddPassed(&spec)
			return nil
		})
	}

	err := g.Wait()

	// If ctx was cancelled by the caller (not by stopOnFirstError), prioritise returning that error.
	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	if err != nil && !errors.Is(err, ErrStopTesting) && !errors.Is(err, context.Canceled) {
		return report, err
	}

	report.Sort()
	return report, nil
}

// RunSingle runs the spec for one fixture file.
func (t *Tester) RunSingle(ctx context.Context, path string) (*Report, error) {
	kind, ok := KindFromPath(path)
	if !ok {
		return nil, &NotAFixtureError{Path: path}
	}
	return t.RunFixtures(ctx, []Fixture{{Path: path, Kind: kind}})
}
