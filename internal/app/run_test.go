package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/whisperspace-records/internal/fs"
)

func TestRun(t *testing.T) {
	t.Parallel()

	newEnv := func(t *testing.T) fs.MapEnvProvider {
		t.Helper()
		return fs.MapEnvProvider{
			"WSR_LOG_FILE":      filepath.Join(t.TempDir(), ".wsr.log"),
			"WSR_CALC_API_BASE": "http://127.0.0.1:1",
		}
	}

	t.Run("run help", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "--help"}, &stdout, io.Discard, newEnv(t))
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "wsr checks Whisperspace character records")
	})

	t.Run("run invalid command", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "invalid-command"}, io.Discard, &stderr, newEnv(t))
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Error: unknown command")
	})

	t.Run("run validate valid record", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "ines.json", validRecord)
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "-c", "validate", path}, &stdout, io.Discard, newEnv(t))
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "✓ "+path)
		assert.Contains(t, stdout.String(), "Record summary: 1 valid, 0 invalid")
	})

	t.Run("run validate invalid record", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		good := writeFile(t, dir, "good.json", validRecord)
		bad := writeFile(t, dir, "bad.json", invalidRecord)
		var stdout, stderr bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "-c", "validate", good, bad}, &stdout, &stderr, newEnv(t))
		require.Error(t, err)

		var invalidErr *RecordsInvalidError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, 1, invalidErr.Invalid)
		assert.Contains(t, stdout.String(), "✗ "+bad)
		assert.Contains(t, stdout.String(), "Record summary: 1 valid, 1 invalid")
		assert.Contains(t, stderr.String(), "Error: 1 of 2 records are invalid")
	})

	t.Run("run validate json output", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "ines.json", validRecord)
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "validate", "-o", "json", path}, &stdout, io.Discard, newEnv(t))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"path":"`+path+`","ok":true,"errors":[]}]`, stdout.String())
	})

	t.Run("run check-fixtures", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "ines.valid.json", validRecord)
		writeFile(t, dir, "broken.invalid.json", invalidRecord)
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "-c", "check-fixtures", dir}, &stdout, io.Discard, newEnv(t))
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Fixture summary: 2 passed, 0 failed")
	})

	t.Run("run check-fixtures failure", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "broken.valid.json", invalidRecord)
		err := Run(context.Background(), []string{"wsr", "check-fixtures", dir}, io.Discard, io.Discard, newEnv(t))
		var failedErr *FixturesFailedError
		require.ErrorAs(t, err, &failedErr)
		assert.Equal(t, 1, failedErr.Failed)
	})

	t.Run("run fixtures dir from environment", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "ines.valid.json", validRecord)
		env := newEnv(t)
		env["WSR_FIXTURES_DIR"] = dir
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "-c", "check-fixtures"}, &stdout, io.Discard, env)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1 passed, 0 failed")
	})

	t.Run("run schema", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "schema"}, &stdout, io.Discard, newEnv(t))
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://json-schema.org/draft/2020-12/schema")
	})

	t.Run("run roll", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "roll", "Shoot", "--net", "1", "--mod", "2"},
			&stdout, io.Discard, newEnv(t))
		require.NoError(t, err)
		assert.Equal(t, "2d12kh1 # Shoot +2\n", stdout.String())
	})

	t.Run("run calc unreachable", func(t *testing.T) {
		t.Parallel()
		err := Run(context.Background(), []string{"wsr", "calc", "notation", "Shoot"}, io.Discard, io.Discard, newEnv(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "call /skill-notation")
	})

	t.Run("run config error", func(t *testing.T) {
		t.Parallel()
		env := newEnv(t)
		env["WSR_CALC_TIMEOUT"] = "soon"
		var stderr bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "schema"}, io.Discard, &stderr, env)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Error: configuration failed")
	})

	t.Run("run setupLogger error", func(t *testing.T) {
		t.Parallel()
		// A directory cannot be opened as a log file
		env := newEnv(t)
		env["WSR_LOG_FILE"] = t.TempDir()
		var stdout, stderr bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "schema"}, &stdout, &stderr, env)
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Warning: logging to file disabled")
		assert.NotEmpty(t, stdout.String())
	})

	t.Run("run with nil env", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"wsr", "--help"}, &stdout, io.Discard, nil)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "wsr checks Whisperspace character records")
	})

	t.Run("run interrupted by user", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "ines.valid.json", validRecord)

		ctx, cancel := context.WithCancel(context.Background())

		stderr := &syncBuffer{}
		done := make(chan error, 1)
		go func() {
			done <- Run(ctx, []string{"wsr", "check-fixtures", dir, "--watch"}, io.Discard, stderr, newEnv(t))
		}()

		// Wait a bit for it to start watching
		time.Sleep(500 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop")
		}
		assert.Contains(t, stderr.String(), "Interrupted by user")
	})
}
