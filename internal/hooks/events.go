package hooks

// Name identifies a hook.
type Name string

const (
	DiceRollName       Name = "dice:roll"
	AttackResolvedName Name = "attack:resolved"
	DamageAppliedName  Name = "damage:applied"
)

// Event is a hook payload. Each payload type announces exactly one hook name.
type Event interface {
	HookName() Name
}

// DiceRoll asks listeners to roll a dice expression.
type DiceRoll struct {
	DiceNotation string `json:"diceNotation"`
	RollTarget   string `json:"rollTarget,omitempty"`
	ShowResults  *bool  `json:"showResults,omitempty"`
	RollID       string `json:"rollId,omitempty"`
}

func (DiceRoll) HookName() Name { return DiceRollName }

// AttackResolved announces the outcome of an attack calculation.
type AttackResolved struct {
	Total       float64 `json:"total"`
	UseDC       float64 `json:"useDC"`
	Hit         bool    `json:"hit"`
	IsCrit      bool    `json:"isCrit"`
	BaseDamage  float64 `json:"baseDamage"`
	TotalDamage float64 `json:"totalDamage"`
	StressDelta float64 `json:"stressDelta"`
	Label       string  `json:"label,omitempty"`
}

func (AttackResolved) HookName() Name { return AttackResolvedName }

// DamageApplied announces that incoming damage was applied to a character.
type DamageApplied struct {
	IncomingDamage  float64  `json:"incomingDamage"`
	Unmitigated     bool     `json:"unmitigated,omitempty"`
	StressDelta     *float64 `json:"stressDelta,omitempty"`
	ResultingStress *float64 `json:"resultingStress,omitempty"`
}

func (DamageApplied) HookName() Name { return DamageAppliedName }
