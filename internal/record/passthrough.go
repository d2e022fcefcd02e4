package record

import (
	"encoding/json"
	"reflect"
	"strings"
)

// unmarshalWithExtra decodes b into v (a pointer to a struct) and stores every
// property that has no matching json tag on the struct in extra. Only keys equal to
// a tag name reach v; encoding/json would otherwise fold "ID" onto "id".
func unmarshalWithExtra(b []byte, v any, extra *map[string]json.RawMessage) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}

	known := make(map[string]json.RawMessage, len(all))
	for _, name := range jsonFieldNames(reflect.TypeOf(v).Elem()) {
		if raw, ok := all[name]; ok {
			known[name] = raw
			delete(all, name)
		}
	}

	typed, err := json.Marshal(known)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(typed, v); err != nil {
		return err
	}

	if len(all) == 0 {
		*extra = nil
		return nil
	}
	*extra = all
	return nil
}

// marshalWithExtra encodes v and merges in extra properties. Typed fields win over
// an extra property of the same name.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var merged map[string]json.RawMessage
	if err = json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = raw
		}
	}

	// encoding/json sorts map keys, so the output is deterministic.
	return json.Marshal(merged)
}

func jsonFieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}
