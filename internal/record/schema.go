package record

import (
	_ "embed"
)

// SchemaID is the canonical $id of the published version 1 JSON Schema.
const SchemaID = "https://whisperspace.dev/schemas/character-record.v1.schema.json"

//go:embed schema/character_record_v1.schema.json
var jsonSchema []byte

// JSONSchema returns a copy of the JSON Schema document describing a version 1 record.
// Consumers that cannot link this package validate against it instead.
func JSONSchema() []byte {
	return append([]byte(nil), jsonSchema...)
}
