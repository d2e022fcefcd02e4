package app

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/whisperspace-records/internal/calc"
	"github.com/andyballingall/whisperspace-records/internal/config"
	"github.com/andyballingall/whisperspace-records/internal/hooks"
)

const validRecord = `{
  "id": "rec-1",
  "name": "Ines",
  "createdAt": "2025-01-01T00:00:00Z",
  "updatedAt": "2025-01-01T00:00:00Z",
  "version": 1,
  "attributes": {"phys": 1, "ref": 2, "soc": 3, "ment": 4},
  "skills": {"shoot": 2}
}`

const invalidRecord = `{
  "id": "rec-2",
  "name": "Broken",
  "createdAt": "2025-01-01T00:00:00Z",
  "updatedAt": "2025-01-01T00:00:00Z",
  "version": 2,
  "attributes": {"phys": "3", "ref": 2, "soc": 3, "ment": 4},
  "skills": []
}`

type MockManager struct {
	mock.Mock
	cfg *config.Config
}

func newMockManager() *MockManager {
	return &MockManager{cfg: config.Default()}
}

func (m *MockManager) Config() *config.Config {
	return m.cfg
}

func (m *MockManager) ValidateRecords(ctx context.Context, paths []string, format string, useColour bool) error {
	args := m.Called(ctx, paths, format, useColour)
	return args.Error(0)
}

func (m *MockManager) CheckFixtures(ctx context.Context, dir string, verbose bool, format string,
	useColour bool, continueOnError bool,
) error {
	args := m.Called(ctx, dir, verbose, format, useColour, continueOnError)
	return args.Error(0)
}

func (m *MockManager) WatchFixtures(ctx context.Context, dir string, verbose bool, format string,
	useColour bool, continueOnError bool, readyChan chan<- struct{},
) error {
	args := m.Called(ctx, dir, verbose, format, useColour, continueOnError, readyChan)
	return args.Error(0)
}

func (m *MockManager) WriteSchema(w io.Writer) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockManager) Serve(ctx context.Context, addr string, ready chan<- net.Addr) error {
	args := m.Called(ctx, addr, ready)
	return args.Error(0)
}

func (m *MockManager) Roll(netDice, modifier int, label, target string) hooks.DiceRoll {
	args := m.Called(netDice, modifier, label, target)
	r, _ := args.Get(0).(hooks.DiceRoll)
	return r
}

func (m *MockManager) CalcAttack(ctx context.Context, req calc.AttackRequest) (*calc.AttackOutcome, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*calc.AttackOutcome)
	return out, args.Error(1)
}

func (m *MockManager) CalcDamage(ctx context.Context, req calc.DamageRequest) (*calc.DamageOutcome, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*calc.DamageOutcome)
	return out, args.Error(1)
}

func (m *MockManager) CalcNotation(ctx context.Context, req calc.SkillNotationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// writeFile writes content to name inside dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// syncBuffer is a bytes.Buffer safe for use from watcher callbacks.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
