package record

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrNotAnObject is the single message reported for input that is not a plain object.
const ErrNotAnObject = "record must be an object"

// AllowedProperties lists every top-level property a version 1 record may carry.
var AllowedProperties = []string{
	"id", "name", "background", "motivation", "attributes", "skills", "learningFocus",
	"skillPoints", "stress", "wounds", "weapons", "armour", "inventory", "credits", "feats",
	"indomitable", "notes", "createdAt", "updatedAt", "version",
}

// AttributeKeys are the attributes every record must define.
var AttributeKeys = []string{"phys", "ref", "soc", "ment"}

var (
	stressFields = []string{"current", "cuf", "cufLoss"}
	woundFields  = []string{"light", "moderate", "heavy"}
)

// Validate checks that input, an already-decoded JSON value, has the structure of a
// version 1 character record. Every violation found is reported; the check never
// stops at the first one. Validate has no side effects and is safe for concurrent use.
func Validate(input any) Result {
	rec, ok := asObject(input)
	if !ok {
		return newResult([]string{ErrNotAnObject})
	}

	c := &checker{}
	c.unknownProperties(rec)
	c.identity(rec)
	c.attributes(rec)
	c.skills(rec)
	c.progression(rec)
	c.numericObject(rec, "stress", stressFields)
	c.numericObject(rec, "wounds", woundFields)
	c.weapons(rec)
	c.armour(rec)
	c.inventory(rec)
	c.possessions(rec)
	c.feats(rec)

	return newResult(c.errs)
}

// checker accumulates error messages for a single Validate call.
type checker struct {
	errs []string
}

func (c *checker) addf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

func (c *checker) unknownProperties(rec map[string]any) {
	var unknown []string
	for k := range rec {
		if !slices.Contains(AllowedProperties, k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		c.addf("unknown property: %s", k)
	}
}

func (c *checker) identity(rec map[string]any) {
	if id, ok := rec["id"].(string); !ok || strings.TrimSpace(id) == "" {
		c.addf("id must be a non-empty string")
	}
	c.requiredString(rec, "name", "name")
	c.optionalString(rec, "background", "background")
	c.optionalString(rec, "motivation", "motivation")
	c.optionalString(rec, "notes", "notes")
	c.requiredString(rec, "createdAt", "createdAt")
	c.requiredString(rec, "updatedAt", "updatedAt")

	if n, ok := numberValue(rec["version"]); !ok || n != SchemaVersion {
		c.addf("version must be %d", SchemaVersion)
	}
}

func (c *checker) attributes(rec map[string]any) {
	attrs, ok := asObject(rec["attributes"])
	if !ok {
		c.addf("attributes must be an object")
		return
	}
	for _, k := range AttributeKeys {
		if !isNumber(attrs[k]) {
			c.addf("attributes.%s must be a number", k)
		}
	}
}

func (c *checker) skills(rec map[string]any) {
	skills, ok := asObject(rec["skills"])
	if !ok {
		c.addf("skills must be an object")
		return
	}
	for _, k := range sortedKeys(skills) {
		if k == "" {
			c.addf("skills keys must be non-empty strings")
			continue
		}
		if !isNumber(skills[k]) {
			c.addf("skills.%s must be a number", k)
		}
	}
}

func (c *checker) progression(rec map[string]any) {
	if v, ok := present(rec, "learningFocus"); ok {
		s, isStr := v.(string)
		if !isStr || !slices.Contains(LearningFocuses, LearningFocus(s)) {
			c.addf("learningFocus must be one of: %s", joinValues(LearningFocuses))
		}
	}
	c.optionalNumber(rec, "skillPoints", "skillPoints")
}

// numericObject checks an optional object whose listed fields are optional numbers.
func (c *checker) numericObject(rec map[string]any, key string, fields []string) {
	v, ok := present(rec, key)
	if !ok {
		return
	}
	obj, ok := asObject(v)
	if !ok {
		c.addf("%s must be an object", key)
		return
	}
	for _, f := range fields {
		c.optionalNumber(obj, f, key+"."+f)
	}
}

func (c *checker) weapons(rec map[string]any) {
	c.objectArray(rec, "weapons", func(path string, w map[string]any) {
		c.optionalString(w, "id", path+".id")
		c.optionalString(w, "name", path+".name")
		c.optionalString(w, "skillId", path+".skillId")
		c.optionalNumber(w, "useDC", path+".useDC")
		c.optionalNumber(w, "damage", path+".damage")
	})
}

func (c *checker) armour(rec map[string]any) {
	v, ok := present(rec, "armour")
	if !ok {
		return
	}
	a, ok := asObject(v)
	if !ok {
		c.addf("armour must be an object")
		return
	}
	c.optionalString(a, "name", "armour.name")
	c.optionalNumber(a, "protection", "armour.protection")
}

func (c *checker) inventory(rec map[string]any) {
	c.objectArray(rec, "inventory", func(path string, item map[string]any) {
		t, isStr := item["type"].(string)
		if !isStr || !slices.Contains(ItemTypes, ItemType(t)) {
			c.addf("%s.type must be one of: %s", path, joinValues(ItemTypes))
		}
		c.optionalString(item, "name", path+".name")
	})
}

func (c *checker) possessions(rec map[string]any) {
	c.optionalNumber(rec, "credits", "credits")
	if v, ok := present(rec, "indomitable"); ok {
		if _, isBool := v.(bool); !isBool {
			c.addf("indomitable must be a boolean")
		}
	}
}

func (c *checker) feats(rec map[string]any) {
	c.objectArray(rec, "feats", func(path string, f map[string]any) {
		c.optionalString(f, "name", path+".name")
	})
}

// objectArray checks an optional array property whose elements must all be objects,
// calling each for every element that is.
func (c *checker) objectArray(rec map[string]any, key string, each func(path string, obj map[string]any)) {
	v, ok := present(rec, key)
	if !ok {
		return
	}
	items, ok := v.([]any)
	if !ok {
		c.addf("%s must be an array", key)
		return
	}
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", key, i)
		obj, isObj := asObject(item)
		if !isObj {
			c.addf("%s must be an object", path)
			continue
		}
		each(path, obj)
	}
}

func (c *checker) requiredString(obj map[string]any, key, path string) {
	if _, ok := obj[key].(string); !ok {
		c.addf("%s must be a string", path)
	}
}

func (c *checker) optionalString(obj map[string]any, key, path string) {
	if v, ok := present(obj, key); ok {
		if _, isStr := v.(string); !isStr {
			c.addf("%s must be a string", path)
		}
	}
}

func (c *checker) optionalNumber(obj map[string]any, key, path string) {
	if v, ok := present(obj, key); ok && !isNumber(v) {
		c.addf("%s must be a number", path)
	}
}

// asObject reports whether v is a plain JSON object.
func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// present returns the value for key when it exists and is not null.
func present(obj map[string]any, key string) (any, bool) {
	v, ok := obj[key]
	return v, ok && v != nil
}

func isNumber(v any) bool {
	_, ok := numberValue(v)
	return ok
}

// numberValue accepts the numeric representations produced by encoding/json
// (float64, or json.Number with UseNumber) as well as native Go numbers.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinValues[T ~string](vals []T) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
