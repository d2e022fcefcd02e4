package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/whisperspace-records/internal/fixture"
	"github.com/andyballingall/whisperspace-records/internal/record"
)

func newTestReport() *fixture.Report {
	startTime := time.Time{}
	r := fixture.NewReport()
	r.StartTime = startTime
	r.EndTime = startTime.Add(time.Second)

	r.AddPassed(&fixture.Spec{
		Fixture: fixture.Fixture{Path: "ok.valid.json", Kind: fixture.KindValid},
		Result:  record.Result{OK: true, Errors: []string{}},
	})
	r.AddFailed(&fixture.Spec{
		Fixture: fixture.Fixture{Path: "bad.valid.json", Kind: fixture.KindValid},
		Result:  record.Result{OK: false, Errors: []string{"version must be 1"}},
		Err:     fmt.Errorf("boom"),
	})
	return r
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("Concise Mode", func(t *testing.T) {
		t.Parallel()
		tr := &TextReporter{Verbose: false}
		var buf bytes.Buffer
		require.NoError(t, tr.Write(&buf, newTestReport()))

		output := buf.String()
		assert.Contains(t, output, "WSR FIXTURE REPORT")
		assert.Contains(t, output, "✗ bad.valid.json (rejected, when expected valid):")
		assert.Contains(t, output, "    boom")
		assert.NotContains(t, output, "ok.valid.json")
		assert.Contains(t, output, "Fixture summary: 1 passed, 1 failed")
	})

	t.Run("Verbose Mode", func(t *testing.T) {
		t.Parallel()
		tr := &TextReporter{Verbose: true}
		var buf bytes.Buffer
		require.NoError(t, tr.Write(&buf, newTestReport()))

		output := buf.String()
		assert.Contains(t, output, "✓ ok.valid.json (accepted)")
		assert.Contains(t, output, "✗ bad.valid.json")
	})

	t.Run("Colour Mode", func(t *testing.T) {
		t.Parallel()
		tr := &TextReporter{Verbose: true, UseColour: true}
		var buf bytes.Buffer
		require.NoError(t, tr.Write(&buf, newTestReport()))

		output := buf.String()
		assert.Contains(t, output, "\033[32m✓\033[0m")
		assert.Contains(t, output, "\033[31m✗\033[0m")
		assert.Contains(t, output, "\033[90mok.valid.json\033[0m")
		assert.Contains(t, output, "\033[1;37mFixture summary: \033[0m")
		assert.Contains(t, output, "\033[1;31m1 passed, 1 failed\033[0m")
	})

	t.Run("Summary No Failures Colour", func(t *testing.T) {
		t.Parallel()
		r := fixture.NewReport()
		r.AddPassed(&fixture.Spec{Fixture: fixture.Fixture{Path: "x.invalid.json", Kind: fixture.KindInvalid}})
		tr := &TextReporter{Verbose: true, UseColour: true}
		var buf bytes.Buffer
		require.NoError(t, tr.Write(&buf, r))

		output := buf.String()
		assert.Contains(t, output, "rejected, as expected")
		assert.Contains(t, output, "\033[1;32m1 passed, 0 failed\033[0m")
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{}).Write(&buf, newTestReport()))

	output := buf.String()
	assert.Contains(t, output, `"duration": "1s"`)
	assert.Contains(t, output, `"totalPassed": 1`)
	assert.Contains(t, output, `"totalFailed": 1`)
	assert.Contains(t, output, `"path": "ok.valid.json"`)
	assert.Contains(t, output, `"path": "bad.valid.json"`)
	assert.Contains(t, output, `"error": "boom"`)
	assert.Contains(t, output, `"version must be 1"`)
}

func TestJSONReporter_EmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{}).Write(&buf, fixture.NewReport()))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []any{}, out["passed"])
	assert.Equal(t, []any{}, out["failed"])
}

func newRecordResults() []RecordResult {
	return []RecordResult{
		{Path: "good.json", Result: record.Result{OK: true, Errors: []string{}}},
		{Path: "bad.json", Result: record.Result{OK: false, Errors: []string{"name must be a string", "version must be 1"}}},
		{Path: "broken.json", Err: fmt.Errorf("unexpected EOF")},
	}
}

func TestRecordResult_Valid(t *testing.T) {
	t.Parallel()

	results := newRecordResults()
	assert.True(t, results[0].Valid())
	assert.False(t, results[1].Valid())
	assert.False(t, results[2].Valid())
}

func TestRecordTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&RecordTextReporter{}).WriteRecords(&buf, newRecordResults()))

		assert.Equal(t, "✓ good.json\n"+
			"✗ bad.json\n"+
			"    name must be a string\n"+
			"    version must be 1\n"+
			"✗ broken.json: unexpected EOF\n"+
			"Record summary: 1 valid, 2 invalid\n", buf.String())
	})

	t.Run("colour", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&RecordTextReporter{UseColour: true}).WriteRecords(&buf, newRecordResults()[:1]))
		assert.Contains(t, buf.String(), "\033[32m✓\033[0m good.json")
		assert.Contains(t, buf.String(), "\033[1;32m1 valid, 0 invalid\033[0m")
	})
}

func TestRecordJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&RecordJSONReporter{}).WriteRecords(&buf, newRecordResults()))

	assert.JSONEq(t, `[
		{"path": "good.json", "ok": true, "errors": []},
		{"path": "bad.json", "ok": false, "errors": ["name must be a string", "version must be 1"]},
		{"path": "broken.json", "ok": false, "errors": ["unexpected EOF"]}
	]`, buf.String())
}
