package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andyballingall/whisperspace-records/internal/fs"
)

func TestOSEnvProvider(t *testing.T) {
	t.Parallel()

	t.Run("Get returns environment variable", func(t *testing.T) {
		t.Parallel()
		provider := fs.NewEnvProvider()

		// PATH should always be set
		assert.NotEmpty(t, provider.Get("PATH"))
	})

	t.Run("Get returns empty for unset variable", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, fs.NewEnvProvider().Get("UNLIKELY_TO_BE_SET_12345"))
	})

	t.Run("Environ includes PATH", func(t *testing.T) {
		t.Parallel()
		provider := fs.NewEnvProvider()
		assert.Equal(t, provider.Get("PATH"), provider.Environ()["PATH"])
	})
}

func TestMapEnvProvider(t *testing.T) {
	t.Parallel()

	t.Run("Get returns configured value", func(t *testing.T) {
		t.Parallel()
		provider := fs.MapEnvProvider{"WSR_LOG_FILE": "/tmp/wsr.log"}

		assert.Equal(t, "/tmp/wsr.log", provider.Get("WSR_LOG_FILE"))
		assert.Empty(t, provider.Get("MISSING_KEY"))
	})

	t.Run("nil map is an empty environment", func(t *testing.T) {
		t.Parallel()
		var provider fs.MapEnvProvider

		assert.Empty(t, provider.Get("ANY_KEY"))
		assert.Empty(t, provider.Environ())
	})

	t.Run("Environ returns a copy", func(t *testing.T) {
		t.Parallel()
		provider := fs.MapEnvProvider{"A": "1"}
		m := provider.Environ()
		m["A"] = "2"
		assert.Equal(t, "1", provider.Get("A"))
	})
}
