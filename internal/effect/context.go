// Package effect runs a weapon's ordered effect list against one resolved
// impact. Hitscan and projectile delivery both end here, so the same weapon
// produces the same outcome whichever way its pellets travel.
package effect

import (
	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/target"
)

// Shot is the firing intent of one pellet, shared by both delivery modes.
type Shot struct {
	Instigator  collision.NodeID // root of the shooter's hierarchy, excluded from hits
	Shooter     string           // log label
	Origin      geom.Vec3
	Direction   geom.Vec3
	Weapon      *profile.WeaponFireProfile
	Bullet      *profile.BulletProfile
	DamageScale float64 // caller stat multiplier, 0 means 1
}

// Scale returns the effective damage multiplier.
func (s *Shot) Scale() float64 {
	if s.DamageScale <= 0 {
		return 1
	}
	return s.DamageScale
}

// HitContext describes one resolved impact. It is built per unique
// (pellet, target) pair and handed to each effect in order; effects may
// rewrite Damage for the ones after them.
type HitContext struct {
	Instigator       collision.NodeID
	Shooter          string
	WeaponOrigin     geom.Vec3
	FireDirection    geom.Vec3
	DistanceTraveled float64
	Hit              collision.Hit
	Target           target.ID // target.Nil for plain geometry
	Damage           float64
	Scale            float64 // caller stat multiplier, 0 means 1
	RicochetsLeft    int

	Bullet *profile.BulletProfile
	Weapon *profile.WeaponFireProfile
}

// NewHitContext builds the context for a hit at the given travel distance.
// Damage starts at baseDamage × falloff(distance/maxRange) × the shot's
// stat scale.
func NewHitContext(shot *Shot, dir geom.Vec3, hit collision.Hit, id target.ID, distance float64, ricochetsLeft int) *HitContext {
	ctx := &HitContext{
		Instigator:       shot.Instigator,
		Shooter:          shot.Shooter,
		WeaponOrigin:     shot.Origin,
		FireDirection:    dir,
		DistanceTraveled: distance,
		Hit:              hit,
		Target:           id,
		Scale:            shot.Scale(),
		RicochetsLeft:    ricochetsLeft,
		Bullet:           shot.Bullet,
		Weapon:           shot.Weapon,
	}
	if shot.Bullet != nil {
		ctx.Damage = shot.Bullet.DamageAt(distance) * shot.Scale()
	}
	return ctx
}

func (c *HitContext) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// ConsumeRicochet spends one ricochet from the budget. It reports false once
// the budget is exhausted.
func (c *HitContext) ConsumeRicochet() bool {
	if c.RicochetsLeft <= 0 {
		return false
	}
	c.RicochetsLeft--
	return true
}
