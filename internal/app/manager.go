package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/andyballingall/whisperspace-records/internal/calc"
	"github.com/andyballingall/whisperspace-records/internal/config"
	"github.com/andyballingall/whisperspace-records/internal/fixture"
	"github.com/andyballingall/whisperspace-records/internal/hooks"
	"github.com/andyballingall/whisperspace-records/internal/record"
	"github.com/andyballingall/whisperspace-records/internal/report"
	"github.com/andyballingall/whisperspace-records/internal/roll"
	"github.com/andyballingall/whisperspace-records/internal/server"
)

// Manager defines the business logic behind the wsr commands.
type Manager interface {
	Config() *config.Config
	ValidateRecords(ctx context.Context, paths []string, format string, useColour bool) error
	CheckFixtures(ctx context.Context, dir string, verbose bool, format string, useColour bool,
		continueOnError bool) error
	WatchFixtures(ctx context.Context, dir string, verbose bool, format string, useColour bool,
		continueOnError bool, readyChan chan<- struct{}) error
	WriteSchema(w io.Writer) error
	Serve(ctx context.Context, addr string, ready chan<- net.Addr) error
	Roll(netDice, modifier int, label, target string) hooks.DiceRoll
	CalcAttack(ctx context.Context, req calc.AttackRequest) (*calc.AttackOutcome, error)
	CalcDamage(ctx context.Context, req calc.DamageRequest) (*calc.DamageOutcome, error)
	CalcNotation(ctx context.Context, req calc.SkillNotationRequest) (string, error)
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Config() *config.Config {
	return l.check().Config()
}

func (l *LazyManager) ValidateRecords(ctx context.Context, paths []string, format string, useColour bool) error {
	return l.check().ValidateRecords(ctx, paths, format, useColour)
}

func (l *LazyManager) CheckFixtures(ctx context.Context, dir string, verbose bool, format string,
	useColour bool, continueOnError bool,
) error {
	return l.check().CheckFixtures(ctx, dir, verbose, format, useColour, continueOnError)
}

func (l *LazyManager) WatchFixtures(ctx context.Context, dir string, verbose bool, format string,
	useColour bool, continueOnError bool, readyChan chan<- struct{},
) error {
	return l.check().WatchFixtures(ctx, dir, verbose, format, useColour, continueOnError, readyChan)
}

func (l *LazyManager) WriteSchema(w io.Writer) error {
	return l.check().WriteSchema(w)
}

func (l *LazyManager) Serve(ctx context.Context, addr string, ready chan<- net.Addr) error {
	return l.check().Serve(ctx, addr, ready)
}

func (l *LazyManager) Roll(netDice, modifier int, label, target string) hooks.DiceRoll {
	return l.check().Roll(netDice, modifier, label, target)
}

func (l *LazyManager) CalcAttack(ctx context.Context, req calc.AttackRequest) (*calc.AttackOutcome, error) {
	return l.check().CalcAttack(ctx, req)
}

func (l *LazyManager) CalcDamage(ctx context.Context, req calc.DamageRequest) (*calc.DamageOutcome, error) {
	return l.check().CalcDamage(ctx, req)
}

func (l *LazyManager) CalcNotation(ctx context.Context, req calc.SkillNotationRequest) (string, error) {
	return l.check().CalcNotation(ctx, req)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	cfg            *config.Config
	tester         *fixture.Tester
	newTester      func() (*fixture.Tester, error)
	bus            *hooks.Bus
	calc           *calc.Client
	reporterWriter io.Writer
}

func NewCLIManager(
	l *slog.Logger,
	cfg *config.Config,
	newTester func() (*fixture.Tester, error),
	bus *hooks.Bus,
	c *calc.Client,
	out io.Writer,
) (*CLIManager, error) {
	t, err := newTester()
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	return &CLIManager{
		logger:         l,
		cfg:            cfg,
		tester:         t,
		newTester:      newTester,
		bus:            bus,
		calc:           c,
		reporterWriter: out,
	}, nil
}

func (m *CLIManager) Config() *config.Config {
	return m.cfg
}

// ValidateRecords validates each record file in parallel and reports the results
// in argument order. It returns a *RecordsInvalidError if any file is invalid.
func (m *CLIManager) ValidateRecords(ctx context.Context, paths []string, format string, useColour bool) error {
	m.logger.Debug("validating records", "count", len(paths), "format", format)

	results := make([]report.RecordResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = validateRecordFile(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var reporter report.RecordReporter
	switch format {
	case "json":
		reporter = &report.RecordJSONReporter{}
	default:
		reporter = &report.RecordTextReporter{UseColour: useColour}
	}
	if err := reporter.WriteRecords(m.reporterWriter, results); err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid() {
			invalid++
			m.logger.Debug("record rejected", "path", r.Path, "errors", r.Errors, "error", r.Err)
		}
	}
	if invalid > 0 {
		return &RecordsInvalidError{Invalid: invalid, Total: len(results)}
	}
	return nil
}

func validateRecordFile(path string) report.RecordResult {
	res := report.RecordResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	doc, err := record.Parse(data)
	if err != nil {
		var pe *record.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		res.Err = err
		return res
	}
	res.Result = record.Validate(doc)
	return res
}

func (m *CLIManager) CheckFixtures(ctx context.Context, dir string, verbose bool, format string,
	useColour bool, continueOnError bool,
) error {
	m.logger.Debug("checking fixtures", "dir", dir, "verbose", verbose, "format", format,
		"useColour", useColour, "continueOnError", continueOnError)

	m.tester.SetStopOnFirstError(!continueOnError)
	fr, err := m.tester.Run(ctx, dir)
	if err != nil {
		return err
	}

	if err = fixtureReporter(format, verbose, useColour).Write(m.reporterWriter, fr); err != nil {
		return err
	}
	if fr.HasFailures() {
		return &FixturesFailedError{Failed: len(fr.Failed)}
	}
	return nil
}

// WatchFixtures re-runs a fixture whenever it is written. If you want to know when
// the watcher is ready to start listening to changes, pass a non-nil readyChan.
func (m *CLIManager) WatchFixtures(ctx context.Context, dir string, verbose bool, format string,
	useColour bool, continueOnError bool, readyChan chan<- struct{},
) error {
	m.logger.Debug("watching fixtures", "dir", dir, "verbose", verbose, "format", format,
		"useColour", useColour, "continueOnError", continueOnError)

	if _, err := os.Stat(dir); err != nil {
		return err
	}

	watcher := fixture.NewWatcher(dir, m.logger)
	reporter := fixtureReporter(format, verbose, useColour)

	callback := func(event fixture.WatchEvent) {
		m.logger.Info("Fixture changed:", "path", event.Fixture.Path)

		// A fresh tester per event keeps reports independent
		tester, err := m.newTester()
		if err != nil {
			m.logger.Error("Validation failed", "error", err)
			return
		}
		tester.SetStopOnFirstError(!continueOnError)

		fr, err := tester.RunSingle(ctx, event.Fixture.Path)
		if err != nil {
			m.logger.Error("Validation failed", "error", err)
			return
		}
		if rErr := reporter.Write(m.reporterWriter, fr); rErr != nil {
			m.logger.Error("Failed to write report", "error", rErr)
		}
	}

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			readyChan <- struct{}{}
		}()
	}

	err := watcher.Watch(ctx, callback)
	if errors.Is(err, context.Canceled) {
		m.logger.Info("Interrupted by user")
		return nil
	}
	return err
}

func fixtureReporter(format string, verbose, useColour bool) fixture.Reporter {
	if format == "json" {
		return &report.JSONReporter{}
	}
	return &report.TextReporter{Verbose: verbose, UseColour: useColour}
}

func (m *CLIManager) WriteSchema(w io.Writer) error {
	_, err := w.Write(record.JSONSchema())
	return err
}

func (m *CLIManager) Serve(ctx context.Context, addr string, ready chan<- net.Addr) error {
	if addr == "" {
		addr = m.cfg.ServerAddr
	}
	srv := server.New(addr, server.NewRouter(m.logger), m.logger)
	return srv.ListenAndServe(ctx, ready)
}

// Roll builds the notation for a skill check and publishes it as a dice:roll event.
func (m *CLIManager) Roll(netDice, modifier int, label, target string) hooks.DiceRoll {
	r := roll.NewRoll(netDice, modifier, label, target)
	m.bus.Emit(r)
	return r
}

func (m *CLIManager) CalcAttack(ctx context.Context, req calc.AttackRequest) (*calc.AttackOutcome, error) {
	return m.calc.Attack(ctx, req)
}

func (m *CLIManager) CalcDamage(ctx context.Context, req calc.DamageRequest) (*calc.DamageOutcome, error) {
	return m.calc.Damage(ctx, req)
}

func (m *CLIManager) CalcNotation(ctx context.Context, req calc.SkillNotationRequest) (string, error) {
	return m.calc.SkillNotation(ctx, req)
}

// logHooks records every published hook in the debug log.
func logHooks(bus *hooks.Bus, logger *slog.Logger) {
	for _, name := range []hooks.Name{hooks.DiceRollName, hooks.AttackResolvedName, hooks.DamageAppliedName} {
		bus.On(name, func(e hooks.Event) {
			payload, _ := json.Marshal(e)
			logger.Debug("hook", "name", string(name), "payload", string(payload))
		})
	}
}
