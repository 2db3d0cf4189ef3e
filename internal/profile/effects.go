package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EffectKind names an effect type in the ordered effect list.
type EffectKind string

const (
	KindDamage    EffectKind = "damage"
	KindKnockback EffectKind = "knockback"
)

// EffectParams is the typed parameter block of one effect entry. The set of
// implementations is closed to this package.
type EffectParams interface {
	Kind() EffectKind
	validate() error
}

// --- Damage ---

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DamageParams configures the damage effect. Final damage comes from Range
// when set, else Override when set, else the hit context.
type DamageParams struct {
	Range          *IntRange `json:"range,omitempty"`
	Override       *int      `json:"override,omitempty"`
	CritChance     float64   `json:"critChance"`     // percent, [0,100]
	CritMultiplier float64   `json:"critMultiplier"` // >= 1, 0 means 1
}

// DefaultDamageParams returns damage from context with crits off.
func DefaultDamageParams() DamageParams {
	return DamageParams{CritMultiplier: 2}
}

// Kind implements EffectParams.
func (DamageParams) Kind() EffectKind { return KindDamage }

// Multiplier returns the effective crit multiplier.
func (p DamageParams) Multiplier() float64 {
	if p.CritMultiplier == 0 {
		return 1
	}
	return p.CritMultiplier
}

func (p DamageParams) validate() error {
	if p.Range != nil && (p.Range.Min < 0 || p.Range.Max < p.Range.Min) {
		return fmt.Errorf("%w: damage range [%d,%d]", ErrBadParams, p.Range.Min, p.Range.Max)
	}
	if p.Override != nil && *p.Override < 0 {
		return fmt.Errorf("%w: negative damage override", ErrBadParams)
	}
	if p.CritChance < 0 || p.CritChance > 100 {
		return fmt.Errorf("%w: crit chance %.1f outside [0,100]", ErrBadParams, p.CritChance)
	}
	if p.Multiplier() < 1 {
		return fmt.Errorf("%w: crit multiplier %.2f < 1", ErrBadParams, p.CritMultiplier)
	}
	return nil
}

// --- Knockback ---

// KnockbackDirection picks the push axis.
type KnockbackDirection string

const (
	PushAlongShot   KnockbackDirection = "shot"
	PushAlongNormal KnockbackDirection = "normal"
)

// KnockbackParams configures the knockback effect.
type KnockbackParams struct {
	Force          float64            `json:"force"`
	Direction      KnockbackDirection `json:"direction"`
	ScaleByDamage  bool               `json:"scaleByDamage,omitempty"`
	VelocityChange bool               `json:"velocityChange,omitempty"` // ignore body mass

	// Agent knockback: planar displacement over a fixed window.
	AgentDuration   float64 `json:"agentDuration"`   // seconds
	AgentMetersPerN float64 `json:"agentMetersPerN"` // displacement per unit of force
}

// DefaultKnockbackParams returns a light push along the shot.
func DefaultKnockbackParams() KnockbackParams {
	return KnockbackParams{
		Force:           4,
		Direction:       PushAlongShot,
		AgentDuration:   0.2,
		AgentMetersPerN: 0.1,
	}
}

// Kind implements EffectParams.
func (KnockbackParams) Kind() EffectKind { return KindKnockback }

func (p KnockbackParams) validate() error {
	if p.Force < 0 {
		return fmt.Errorf("%w: negative knockback force", ErrBadParams)
	}
	switch p.Direction {
	case PushAlongShot, PushAlongNormal:
	default:
		return fmt.Errorf("%w: knockback direction %q", ErrBadParams, p.Direction)
	}
	if p.AgentDuration < 0 || p.AgentMetersPerN < 0 {
		return fmt.Errorf("%w: negative agent knockback window", ErrBadParams)
	}
	return nil
}

// --- Entries ---

// EffectEntry is one slot of a weapon's ordered effect list. A nil Params
// means the effect's defaults.
type EffectEntry struct {
	Kind   EffectKind
	Params EffectParams
}

// Damage returns a damage entry.
func Damage(p DamageParams) EffectEntry {
	return EffectEntry{Kind: KindDamage, Params: p}
}

// Knockback returns a knockback entry.
func Knockback(p KnockbackParams) EffectEntry {
	return EffectEntry{Kind: KindKnockback, Params: p}
}

// Resolved returns the entry's params, filling defaults when none are set.
func (e EffectEntry) Resolved() (EffectParams, error) {
	if e.Params != nil {
		if e.Params.Kind() != e.Kind {
			return nil, fmt.Errorf("%w: %s entry carries %s params", ErrBadParams, e.Kind, e.Params.Kind())
		}
		return e.Params, nil
	}
	switch e.Kind {
	case KindDamage:
		return DefaultDamageParams(), nil
	case KindKnockback:
		return DefaultKnockbackParams(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, e.Kind)
	}
}

// Validate checks the entry kind and params.
func (e EffectEntry) Validate() error {
	p, err := e.Resolved()
	if err != nil {
		return err
	}
	return p.validate()
}

type entryJSON struct {
	Kind   EffectKind      `json:"kind"`
	Params json.RawMessage `json:"params,omitempty"`
}

// MarshalJSON encodes {"kind":..., "params":{...}}.
func (e EffectEntry) MarshalJSON() ([]byte, error) {
	out := entryJSON{Kind: e.Kind}
	if e.Params != nil {
		raw, err := json.Marshal(e.Params)
		if err != nil {
			return nil, err
		}
		out.Params = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an entry, overlaying params on the kind's defaults.
func (e *EffectEntry) UnmarshalJSON(b []byte) error {
	var in entryJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	e.Kind = in.Kind
	e.Params = nil
	hasParams := len(in.Params) > 0 && !bytes.Equal(in.Params, []byte("null"))

	switch in.Kind {
	case KindDamage:
		if hasParams {
			p := DefaultDamageParams()
			if err := json.Unmarshal(in.Params, &p); err != nil {
				return fmt.Errorf("damage params: %w", err)
			}
			e.Params = p
		}
	case KindKnockback:
		if hasParams {
			p := DefaultKnockbackParams()
			if err := json.Unmarshal(in.Params, &p); err != nil {
				return fmt.Errorf("knockback params: %w", err)
			}
			e.Params = p
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEffect, in.Kind)
	}
	return nil
}
