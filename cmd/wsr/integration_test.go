// Package main provides integration tests for the wsr CLI.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/whisperspace-records/internal/app"
)

var binaryPath string

var (
	errBuild  error
	buildOnce sync.Once
)

func ensureBinary() error {
	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "wsr-integration-test-*")
		if err != nil {
			errBuild = fmt.Errorf("failed to create temp dir: %w", err)
			return
		}

		binaryName := "wsr"
		if runtime.GOOS == "windows" {
			binaryName += ".exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
		if bOutput, bErr := cmd.CombinedOutput(); bErr != nil {
			errBuild = fmt.Errorf("failed to build binary: %w\nOutput: %s", bErr, string(bOutput))
		}
	})
	return errBuild
}

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"wsr": func() {
			if err := app.Run(context.Background(), os.Args, os.Stdout, os.Stderr, nil); err != nil {
				os.Exit(1)
			}
		},
	})
}

func TestScripts(t *testing.T) {
	t.Parallel()
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			// Keep the log file inside the script's work directory
			env.Setenv("WSR_LOG_FILE", filepath.Join(env.WorkDir, ".wsr.log"))
			return nil
		},
	})
}

// binaryEnv returns an environment whose log file lives in a temp dir.
func binaryEnv(t *testing.T) []string {
	t.Helper()
	return append(os.Environ(), "WSR_LOG_FILE="+filepath.Join(t.TempDir(), ".wsr.log"))
}

func TestBinary_Help(t *testing.T) {
	t.Parallel()
	if err := ensureBinary(); err != nil {
		t.Fatal(err)
	}
	cmd := exec.CommandContext(context.Background(), binaryPath, "--help")
	cmd.Env = binaryEnv(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "wsr checks Whisperspace character records")
}

func TestBinary_Validate(t *testing.T) {
	t.Parallel()
	if err := ensureBinary(); err != nil {
		t.Fatal(err)
	}

	fixtures, err := filepath.Abs(filepath.Join("..", "..", "fixtures"))
	require.NoError(t, err)

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(fixtures, "character-record.valid.json")
		cmd := exec.CommandContext(context.Background(), binaryPath, "--nocolour", "validate", path)
		cmd.Env = binaryEnv(t)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		runErr := cmd.Run()
		require.NoError(t, runErr, "stderr: %s", stderr.String())
		assert.Contains(t, stdout.String(), "1 valid, 0 invalid")
	})

	t.Run("invalid record", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(fixtures, "character-record.invalid.json")
		cmd := exec.CommandContext(context.Background(), binaryPath, "--nocolour", "validate", path)
		cmd.Env = binaryEnv(t)

		var stdout bytes.Buffer
		cmd.Stdout = &stdout

		runErr := cmd.Run()
		require.Error(t, runErr)
		assert.Contains(t, stdout.String(), "0 valid, 1 invalid")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		cmd := exec.CommandContext(context.Background(), binaryPath, "validate", "/non/existent/path.json")
		cmd.Env = binaryEnv(t)
		assert.Error(t, cmd.Run())
	})

	t.Run("repository fixtures", func(t *testing.T) {
		t.Parallel()
		cmd := exec.CommandContext(context.Background(), binaryPath, "check-fixtures", fixtures)
		cmd.Env = binaryEnv(t)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		runErr := cmd.Run()
		require.NoError(t, runErr, "stderr: %s", stderr.String())
	})
}
