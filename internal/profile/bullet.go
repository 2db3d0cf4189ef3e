// Package profile holds the read-only weapon authoring data: bullet
// archetypes, per-weapon fire profiles and their ordered effect lists.
// Nothing in here is written during play.
package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/Garsondee/firing-range/internal/collision"
)

// Mode selects how a pellet is delivered.
type Mode int

const (
	Hitscan Mode = iota
	Projectile
)

func (m Mode) String() string {
	switch m {
	case Hitscan:
		return "hitscan"
	case Projectile:
		return "projectile"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "hitscan", "":
		*m = Hitscan
	case "projectile":
		*m = Projectile
	default:
		return fmt.Errorf("%w: %q", ErrBadMode, string(b))
	}
	return nil
}

// Prefab describes the visible body of a projectile.
type Prefab struct {
	Name          string  `json:"name"`
	Radius        float64 `json:"radius"`          // visual size, meters
	TrailPoints   int     `json:"trailPoints"`     // ring buffer capacity
	TrailDuration float64 `json:"trailDuration"`   // seconds a trail point stays visible
	Color         uint32  `json:"color,omitempty"` // 0xRRGGBB
}

// BulletProfile is one projectile archetype.
type BulletProfile struct {
	ID               string                  `json:"id"`
	Mode             Mode                    `json:"mode"`
	BaseDamage       int                     `json:"baseDamage"`
	Falloff          Curve                   `json:"falloff"`
	MaxRange         float64                 `json:"maxRange"`
	PenetrationCount int                     `json:"penetrationCount"`
	RicochetCount    int                     `json:"ricochetCount"`
	HitMask          collision.Mask          `json:"hitMask"`
	CastRadius       float64                 `json:"castRadius"`
	Triggers         collision.TriggerPolicy `json:"triggers"`
	BloomDegrees     float64                 `json:"bloomDegrees"`

	// Projectile only.
	Speed       float64 `json:"speed,omitempty"`
	Gravity     float64 `json:"gravity,omitempty"`
	Prefab      *Prefab `json:"prefab,omitempty"`
	MaxLifetime float64 `json:"maxLifetime,omitempty"` // seconds, 0 = derived

	// DuplicateHitsConsumePenetration charges a budget unit when a pellet
	// crosses another collider of a target it already hit.
	DuplicateHitsConsumePenetration bool `json:"duplicateHitsConsumePenetration,omitempty"`
}

// minLifetime is the floor for a derived projectile lifetime, seconds.
const minLifetime = 1.0

// Lifetime returns how long a projectile may fly before it expires.
func (b *BulletProfile) Lifetime() float64 {
	if b.MaxLifetime > 0 {
		return b.MaxLifetime
	}
	if b.Speed <= 0 {
		return minLifetime
	}
	return math.Max(minLifetime, 2*b.MaxRange/b.Speed)
}

// DamageAt returns baseDamage × falloff(distance/maxRange).
func (b *BulletProfile) DamageAt(distance float64) float64 {
	if b.MaxRange <= 0 {
		return 0
	}
	t := distance / b.MaxRange
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return float64(b.BaseDamage) * b.Falloff.Eval(t)
}

// Mask returns the hit mask, treating zero as every layer.
func (b *BulletProfile) Mask() collision.Mask {
	if b.HitMask == 0 {
		return collision.MaskAll
	}
	return b.HitMask
}

// Validate reports every authoring problem, joined.
func (b *BulletProfile) Validate() error {
	var errs []error
	field := func(name string, err error) {
		errs = append(errs, fmt.Errorf("bullet %q %s: %w", b.ID, name, err))
	}

	if b.Mode != Hitscan && b.Mode != Projectile {
		field("mode", ErrBadMode)
	}
	if b.BaseDamage < 0 {
		field("baseDamage", ErrBadDamage)
	}
	if !(b.MaxRange > 0) || math.IsInf(b.MaxRange, 0) {
		field("maxRange", ErrBadRange)
	}
	if b.PenetrationCount < 0 {
		field("penetrationCount", ErrBadBudget)
	}
	if b.RicochetCount < 0 {
		field("ricochetCount", ErrBadBudget)
	}
	if b.CastRadius < 0 {
		field("castRadius", ErrBadRadius)
	}
	if b.BloomDegrees < 0 || b.BloomDegrees > 89 {
		field("bloomDegrees", ErrBadAngle)
	}
	if err := b.Falloff.Validate(); err != nil {
		field("falloff", err)
	}
	if b.Mode == Projectile {
		if !(b.Speed > 0) {
			field("speed", ErrBadSpeed)
		}
		if b.Gravity < 0 {
			field("gravity", ErrBadGravity)
		}
		if b.Prefab == nil {
			field("prefab", ErrNoPrefab)
		}
	}
	return errors.Join(errs...)
}
