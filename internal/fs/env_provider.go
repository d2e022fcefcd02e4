// Package fs isolates access to the process environment so commands can be tested
// without touching real environment variables.
package fs

import (
	"os"

	"github.com/caarlos0/env/v11"
)

// EnvProvider provides environment variable access.
type EnvProvider interface {
	// Get returns the value of the environment variable named by the key.
	Get(key string) string
	// Environ returns every variable as a key/value map.
	Environ() map[string]string
}

// OSEnvProvider reads from the actual process environment.
type OSEnvProvider struct{}

// NewEnvProvider creates a new OSEnvProvider.
func NewEnvProvider() *OSEnvProvider {
	return &OSEnvProvider{}
}

// Get returns the value of the environment variable named by the key.
func (e *OSEnvProvider) Get(key string) string {
	return os.Getenv(key)
}

func (e *OSEnvProvider) Environ() map[string]string {
	return env.ToMap(os.Environ())
}

// MapEnvProvider serves a fixed set of variables. A nil map behaves as an empty environment.
type MapEnvProvider map[string]string

func (m MapEnvProvider) Get(key string) string {
	return m[key]
}

func (m MapEnvProvider) Environ() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
