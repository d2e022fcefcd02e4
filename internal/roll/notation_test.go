package roll

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/whisperspace-records/internal/hooks"
)

func TestBuildSkillNotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		net      int
		modifier int
		label    string
		want     string
	}{
		{"flat roll", 0, 0, "Shoot", "1d12 # Shoot"},
		{"advantage", 1, 0, "Shoot", "2d12kh1 # Shoot"},
		{"double advantage", 2, 3, "Shoot", "3d12kh1 # Shoot +3"},
		{"advantage clamped", 7, 0, "Shoot", "3d12kh1 # Shoot"},
		{"disadvantage", -1, 0, "Hide", "2d12kl1 # Hide"},
		{"disadvantage clamped", -9, -2, "Hide", "3d12kl1 # Hide -2"},
		{"negative modifier", 0, -1, "Drive", "1d12 # Drive -1"},
		{"positive modifier", 0, 4, "Drive", "1d12 # Drive +4"},
		{"empty label", 0, 0, "", "1d12 # "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildSkillNotation(tt.net, tt.modifier, tt.label))
		})
	}
}

func TestNewRoll(t *testing.T) {
	t.Parallel()

	r := NewRoll(1, 2, "Shoot", "gm")
	assert.Equal(t, "2d12kh1 # Shoot +2", r.DiceNotation)
	assert.Equal(t, "gm", r.RollTarget)
	assert.Equal(t, hooks.DiceRollName, r.HookName())
	_, err := uuid.Parse(r.RollID)
	require.NoError(t, err)

	assert.NotEqual(t, r.RollID, NewRoll(1, 2, "Shoot", "gm").RollID)
}
