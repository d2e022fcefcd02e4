package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andyballingall/whisperspace-records/internal/validator"
)

const validDoc = `{
  "id": "rec-1",
  "name": "Ines",
  "createdAt": "2025-01-01T00:00:00Z",
  "updatedAt": "2025-01-01T00:00:00Z",
  "version": 1,
  "attributes": {"phys": 1, "ref": 2, "soc": 3, "ment": 4},
  "skills": {"firearms": 2},
  "inventory": [{"type": "item", "name": "Medkit"}]
}`

const invalidDoc = `{
  "id": "rec-1",
  "name": "Ines",
  "createdAt": "2025-01-01T00:00:00Z",
  "updatedAt": "2025-01-01T00:00:00Z",
  "version": 2,
  "attributes": {"phys": "1", "ref": 2, "soc": 3, "ment": 4},
  "skills": []
}`

// writeFixture writes content to dir/name, creating parent directories.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// schemaFunc stands in for a compiled JSON Schema.
type schemaFunc func(doc validator.JSONDocument) error

func (f schemaFunc) Validate(doc validator.JSONDocument) error {
	return f(doc)
}
