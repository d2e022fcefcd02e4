// Package roll builds dice expressions for skill checks.
package roll

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andyballingall/whisperspace-records/internal/hooks"
)

// MaxNetDice bounds the advantage or disadvantage applied to a skill check.
const MaxNetDice = 2

// BuildSkillNotation returns the dice expression for a skill check. A positive
// netDice rolls extra d12s and keeps the highest, a negative one keeps the lowest;
// netDice is clamped to ±MaxNetDice. A non-zero modifier is appended after the label.
//
//	BuildSkillNotation(0, 0, "Shoot")  -> "1d12 # Shoot"
//	BuildSkillNotation(1, 2, "Shoot")  -> "2d12kh1 # Shoot +2"
//	BuildSkillNotation(-5, -1, "Hide") -> "3d12kl1 # Hide -1"
func BuildSkillNotation(netDice, modifier int, label string) string {
	net := min(max(netDice, -MaxNetDice), MaxNetDice)
	count := 1 + abs(net)

	base := "1d12"
	switch {
	case net > 0:
		base = fmt.Sprintf("%dd12kh1", count)
	case net < 0:
		base = fmt.Sprintf("%dd12kl1", count)
	}

	switch {
	case modifier > 0:
		return fmt.Sprintf("%s # %s +%d", base, label, modifier)
	case modifier < 0:
		return fmt.Sprintf("%s # %s %d", base, label, modifier)
	default:
		return fmt.Sprintf("%s # %s", base, label)
	}
}

// NewRoll builds a dice:roll event for a skill check with a fresh roll id.
func NewRoll(netDice, modifier int, label, target string) hooks.DiceRoll {
	return hooks.DiceRoll{
		DiceNotation: BuildSkillNotation(netDice, modifier, label),
		RollTarget:   target,
		RollID:       uuid.NewString(),
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
