package calc

import (
	"context"

	"github.com/andyballingall/whisperspace-records/internal/hooks"
	"github.com/andyballingall/whisperspace-records/internal/record"
)

type AttackRequest struct {
	Total        float64 `json:"total"`
	UseDC        float64 `json:"useDC"`
	WeaponDamage float64 `json:"weaponDamage"`
	Label        string  `json:"label,omitempty"`
}

type AttackOutcome struct {
	Total       float64 `json:"total"`
	UseDC       float64 `json:"useDC"`
	Margin      float64 `json:"margin"`
	Hit         bool    `json:"hit"`
	IsCrit      bool    `json:"isCrit"`
	CritExtra   float64 `json:"critExtra"`
	BaseDamage  float64 `json:"baseDamage"`
	TotalDamage float64 `json:"totalDamage"`
	StressDelta float64 `json:"stressDelta"`
	Message     string  `json:"message"`
}

// Attack resolves an attack roll against a weapon's difficulty.
func (c *Client) Attack(ctx context.Context, req AttackRequest) (*AttackOutcome, error) {
	var out AttackOutcome
	if err := c.postJSON(ctx, "/attack", req, &out); err != nil {
		return nil, err
	}
	c.emit(hooks.AttackResolved{
		Total:       out.Total,
		UseDC:       out.UseDC,
		Hit:         out.Hit,
		IsCrit:      out.IsCrit,
		BaseDamage:  out.BaseDamage,
		TotalDamage: out.TotalDamage,
		StressDelta: out.StressDelta,
		Label:       req.Label,
	})
	return &out, nil
}

// CritExtra returns the bonus damage for a critical hit with the given margin.
func (c *Client) CritExtra(ctx context.Context, margin float64) (float64, error) {
	var out struct {
		CritExtra float64 `json:"critExtra"`
	}
	err := c.postJSON(ctx, "/crit-extra", map[string]float64{"margin": margin}, &out)
	return out.CritExtra, err
}

type DamageRequest struct {
	IncomingDamage float64        `json:"incomingDamage"`
	StressDelta    *float64       `json:"stressDelta,omitempty"`
	Unmitigated    bool           `json:"unmitigated,omitempty"`
	Armour         *record.Armour `json:"armour,omitempty"`
	Wounds         *record.Wounds `json:"wounds,omitempty"`
	Stress         *record.Stress `json:"stress,omitempty"`
}

type DamageOutcome struct {
	Wounds      record.Wounds  `json:"wounds"`
	Armour      *record.Armour `json:"armour,omitempty"`
	Stress      record.Stress  `json:"stress"`
	StressDelta float64        `json:"stressDelta"`
}

// Damage applies incoming damage to a character's armour, wounds and stress.
func (c *Client) Damage(ctx context.Context, req DamageRequest) (*DamageOutcome, error) {
	var out DamageOutcome
	if err := c.postJSON(ctx, "/damage", req, &out); err != nil {
		return nil, err
	}
	delta := out.StressDelta
	c.emit(hooks.DamageApplied{
		IncomingDamage:  req.IncomingDamage,
		Unmitigated:     req.Unmitigated,
		StressDelta:     &delta,
		ResultingStress: out.Stress.Current,
	})
	return &out, nil
}

// InherentSkill ties a skill to the attribute it feeds.
type InherentSkill struct {
	ID        string `json:"id"`
	Attribute string `json:"attribute"`
}

type DeriveAttributesRequest struct {
	Skills         map[string]float64 `json:"skills"`
	InherentSkills []InherentSkill    `json:"inherentSkills"`
}

// DeriveAttributes computes the four attributes from skill ranks.
func (c *Client) DeriveAttributes(ctx context.Context, req DeriveAttributesRequest) (*record.Attributes, error) {
	var out record.Attributes
	if err := c.postJSON(ctx, "/derive-attributes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeriveCUF computes the CUF statistic from skill ranks.
func (c *Client) DeriveCUF(ctx context.Context, skills map[string]float64) (float64, error) {
	var out struct {
		CUF float64 `json:"cuf"`
	}
	err := c.postJSON(ctx, "/derive-cuf", map[string]any{"skills": skills}, &out)
	return out.CUF, err
}

type SkillNotationRequest struct {
	NetDice  int    `json:"netDice"`
	Modifier int    `json:"modifier"`
	Label    string `json:"label"`
}

// SkillNotation asks the API for the dice expression of a skill check.
// roll.BuildSkillNotation computes the same expression locally.
func (c *Client) SkillNotation(ctx context.Context, req SkillNotationRequest) (string, error) {
	var out struct {
		Notation string `json:"notation"`
	}
	err := c.postJSON(ctx, "/skill-notation", req, &out)
	return out.Notation, err
}

// SkillRef names a skill by id.
type SkillRef struct {
	ID string `json:"id"`
}

type SkillModRequest struct {
	LearnedByFocus map[string][]SkillRef `json:"learnedByFocus"`
	SkillID        string                `json:"skillId"`
	Ranks          map[string]float64    `json:"ranks,omitempty"`
	LearningFocus  string                `json:"learningFocus,omitempty"`
	SkillMods      map[string]float64    `json:"skillMods,omitempty"`
}

// SkillMod returns the check modifier for one skill.
func (c *Client) SkillMod(ctx context.Context, req SkillModRequest) (float64, error) {
	var out struct {
		Modifier float64 `json:"modifier"`
	}
	err := c.postJSON(ctx, "/skill-mod", req, &out)
	return out.Modifier, err
}

// StatusDeltas returns the stat adjustments caused by the named statuses.
func (c *Client) StatusDeltas(ctx context.Context, statuses []string) (map[string]float64, error) {
	var out struct {
		Deltas map[string]float64 `json:"deltas"`
	}
	err := c.postJSON(ctx, "/status-deltas", map[string]any{"statuses": nonNil(statuses)}, &out)
	return out.Deltas, err
}

type StatusApplyOutcome struct {
	Derived map[string]any     `json:"derived"`
	Deltas  map[string]float64 `json:"deltas"`
}

// StatusApply applies the named statuses to a set of derived stats.
func (c *Client) StatusApply(ctx context.Context, derived map[string]any, statuses []string) (*StatusApplyOutcome, error) {
	var out StatusApplyOutcome
	body := map[string]any{"derived": derived, "statuses": nonNil(statuses)}
	if err := c.postJSON(ctx, "/status-apply", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AmmoMax returns the magazine size of a weapon.
func (c *Client) AmmoMax(ctx context.Context, w record.Weapon) (float64, error) {
	var out struct {
		AmmoMax float64 `json:"ammoMax"`
	}
	err := c.postJSON(ctx, "/ammo-max", map[string]any{"weapon": w}, &out)
	return out.AmmoMax, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
