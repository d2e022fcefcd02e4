// Package record defines the version 1 character record, its structural validator
// and the JSON Schema published for it.
//
// Two record shapes have existed. Version 1 is canonical: four attributes
// (phys, ref, soc, ment), separate weapons/armour/inventory fields and rejection of
// unknown top-level properties. The earlier six-attribute shape with a typed "gear"
// array is historical and is not accepted by this package.
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// SchemaVersion is the only record version this package understands.
const SchemaVersion = 1

// LearningFocus selects which skill group gains bonus growth.
type LearningFocus string

const (
	LearningFocusCombat    LearningFocus = "combat"
	LearningFocusEducation LearningFocus = "education"
	LearningFocusVehicles  LearningFocus = "vehicles"
)

// LearningFocuses lists the accepted learning focus values.
var LearningFocuses = []LearningFocus{LearningFocusCombat, LearningFocusEducation, LearningFocusVehicles}

// ItemType tags an inventory item variant.
type ItemType string

const (
	ItemTypeItem      ItemType = "item"
	ItemTypeCyberware ItemType = "cyberware"
	ItemTypeNarcotics ItemType = "narcotics"
)

// ItemTypes lists the accepted inventory item types.
var ItemTypes = []ItemType{ItemTypeItem, ItemTypeCyberware, ItemTypeNarcotics}

// Version is a record schema version. Any JSON number with an integral value decodes.
type Version int

func (v *Version) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || f != math.Trunc(f) {
		return fmt.Errorf("invalid record version %s", b)
	}
	*v = Version(f)
	return nil
}

// CharacterRecord is a validated version 1 character sheet.
// Only Decode should be used to build one from untrusted input.
type CharacterRecord struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Background    *string            `json:"background,omitempty"`
	Motivation    *string            `json:"motivation,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
	Version       Version            `json:"version"`
	Attributes    Attributes         `json:"attributes"`
	Skills        map[string]float64 `json:"skills"`
	LearningFocus *LearningFocus     `json:"learningFocus,omitempty"`
	SkillPoints   *float64           `json:"skillPoints,omitempty"`
	Stress        *Stress            `json:"stress,omitempty"`
	Wounds        *Wounds            `json:"wounds,omitempty"`
	Weapons       []Weapon           `json:"weapons,omitempty"`
	Armour        *Armour            `json:"armour,omitempty"`
	Inventory     []InventoryItem    `json:"inventory,omitempty"`
	Credits       *float64           `json:"credits,omitempty"`
	Indomitable   *bool              `json:"indomitable,omitempty"`
	Feats         []Feat             `json:"feats,omitempty"`
}

// The nested types below carry only the fields the validator checks. Any other
// property is kept verbatim in Extra so that decoding and re-encoding a record
// does not drop data this version does not model (keywords, durability, cost, ...).
// Extra values round trip byte for byte. Typed numeric fields are float64, so an
// integer beyond 2^53 in one of them is rounded when the record is encoded again.

// Attributes are the four core character attributes.
type Attributes struct {
	Phys  float64                    `json:"phys"`
	Ref   float64                    `json:"ref"`
	Soc   float64                    `json:"soc"`
	Ment  float64                    `json:"ment"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Stress tracks current stress and the CUF stress-resistance statistic.
type Stress struct {
	Current *float64                   `json:"current,omitempty"`
	CUF     *float64                   `json:"cuf,omitempty"`
	CUFLoss *float64                   `json:"cufLoss,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// Wounds counts wounds by severity.
type Wounds struct {
	Light    *float64                   `json:"light,omitempty"`
	Moderate *float64                   `json:"moderate,omitempty"`
	Heavy    *float64                   `json:"heavy,omitempty"`
	Extra    map[string]json.RawMessage `json:"-"`
}

type Weapon struct {
	ID      *string                    `json:"id,omitempty"`
	Name    *string                    `json:"name,omitempty"`
	SkillID *string                    `json:"skillId,omitempty"`
	UseDC   *float64                   `json:"useDC,omitempty"`
	Damage  *float64                   `json:"damage,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

type Armour struct {
	Name       *string                    `json:"name,omitempty"`
	Protection *float64                   `json:"protection,omitempty"`
	Extra      map[string]json.RawMessage `json:"-"`
}

// InventoryItem is one of the item, cyberware or narcotics variants, selected by Type.
// Variant specific properties (tier, addictionScore, legality, ...) live in Extra.
type InventoryItem struct {
	Type  ItemType                   `json:"type"`
	Name  *string                    `json:"name,omitempty"`
	Extra map[string]json.RawMessage `json:"-"`
}

type Feat struct {
	Name  *string                    `json:"name,omitempty"`
	Extra map[string]json.RawMessage `json:"-"`
}

func (a *Attributes) UnmarshalJSON(b []byte) error {
	type plain Attributes
	return unmarshalWithExtra(b, (*plain)(a), &a.Extra)
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	type plain Attributes
	return marshalWithExtra(plain(a), a.Extra)
}

func (s *Stress) UnmarshalJSON(b []byte) error {
	type plain Stress
	return unmarshalWithExtra(b, (*plain)(s), &s.Extra)
}

func (s Stress) MarshalJSON() ([]byte, error) {
	type plain Stress
	return marshalWithExtra(plain(s), s.Extra)
}

func (w *Wounds) UnmarshalJSON(b []byte) error {
	type plain Wounds
	return unmarshalWithExtra(b, (*plain)(w), &w.Extra)
}

func (w Wounds) MarshalJSON() ([]byte, error) {
	type plain Wounds
	return marshalWithExtra(plain(w), w.Extra)
}

func (w *Weapon) UnmarshalJSON(b []byte) error {
	type plain Weapon
	return unmarshalWithExtra(b, (*plain)(w), &w.Extra)
}

func (w Weapon) MarshalJSON() ([]byte, error) {
	type plain Weapon
	return marshalWithExtra(plain(w), w.Extra)
}

func (a *Armour) UnmarshalJSON(b []byte) error {
	type plain Armour
	return unmarshalWithExtra(b, (*plain)(a), &a.Extra)
}

func (a Armour) MarshalJSON() ([]byte, error) {
	type plain Armour
	return marshalWithExtra(plain(a), a.Extra)
}

func (i *InventoryItem) UnmarshalJSON(b []byte) error {
	type plain InventoryItem
	return unmarshalWithExtra(b, (*plain)(i), &i.Extra)
}

func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type plain InventoryItem
	return marshalWithExtra(plain(i), i.Extra)
}

func (f *Feat) UnmarshalJSON(b []byte) error {
	type plain Feat
	return unmarshalWithExtra(b, (*plain)(f), &f.Extra)
}

func (f Feat) MarshalJSON() ([]byte, error) {
	type plain Feat
	return marshalWithExtra(plain(f), f.Extra)
}
