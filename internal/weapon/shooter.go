// Package weapon turns trigger pulls into pellets. A Shooter owns the
// equipped fire profile and its compiled effect pipeline, enforces the fire
// cadence and hands each pellet to the hitscan resolver or the projectile
// manager.
package weapon

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/hitscan"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/projectile"
)

// Trigger is one pull: where the muzzle is and where it points. Aims, when
// set, gives each pellet its own base direction (pellet i uses
// Aims[i%len(Aims)]); otherwise every pellet starts from Aim.
type Trigger struct {
	Origin geom.Vec3
	Aim    geom.Vec3
	Aims   []geom.Vec3
}

// Volley is what one pull produced.
type Volley struct {
	Weapon      string
	Pellets     []hitscan.Result
	Projectiles []*projectile.Controller
}

// Stats are caller-side multipliers. Profiles stay untouched; 0 means 1.
type Stats struct {
	DamageScale   float64
	FireRateScale float64
}

func (s Stats) fireRate() float64 {
	if s.FireRateScale <= 0 {
		return 1
	}
	return s.FireRateScale
}

// Shooter fires one equipped weapon.
type Shooter struct {
	Label      string
	Instigator collision.NodeID
	Stats      Stats

	hitscan     *hitscan.Resolver
	projectiles *projectile.Manager
	env         *effect.Env
	rng         *rand.Rand

	weapon   *profile.WeaponFireProfile
	pipe     effect.Pipeline
	invalid  error
	cooldown float64
	pulls    int
}

// New returns a shooter with nothing equipped. Pellet spread and bloom are
// drawn from a private source seeded with seed.
func New(label string, instigator collision.NodeID, hs *hitscan.Resolver, pm *projectile.Manager, env *effect.Env, seed int64) *Shooter {
	return &Shooter{
		Label:       label,
		Instigator:  instigator,
		hitscan:     hs,
		projectiles: pm,
		env:         env,
		rng:         rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// Equip swaps the weapon wholesale and recompiles its pipeline. An invalid
// profile stays equipped but every pull on it is dropped; the returned error
// says why.
func (s *Shooter) Equip(w *profile.WeaponFireProfile) error {
	s.weapon = w
	s.pipe = nil
	s.invalid = nil
	s.cooldown = 0
	if w == nil {
		return nil
	}

	err := w.Validate()
	if err == nil {
		s.pipe, err = effect.Build(w.Effects)
	}
	if err != nil {
		s.invalid = err
		slog.Warn("weapon profile rejected", "shooter", s.Label, "weapon", w.ID, "error", err)
		s.env.Log.Add(s.Label, combatlog.CatConfig, "invalid", fmt.Sprintf("%s: %v", w.ID, err), 0)
		return err
	}
	s.env.Log.Add(s.Label, combatlog.CatFire, "equip", w.ID, 0)
	return nil
}

// Weapon returns the equipped profile, or nil.
func (s *Shooter) Weapon() *profile.WeaponFireProfile { return s.weapon }

// Pulls counts trigger pulls that produced pellets.
func (s *Shooter) Pulls() int { return s.pulls }

// Cooldown returns the seconds until the next pull is allowed.
func (s *Shooter) Cooldown() float64 { return s.cooldown }

// Ready reports whether a pull would fire now.
func (s *Shooter) Ready() bool {
	return s.weapon != nil && s.invalid == nil && s.cooldown <= 0
}

// Update counts the cooldown down.
func (s *Shooter) Update(dt float64) {
	if dt <= 0 || s.cooldown <= 0 {
		return
	}
	s.cooldown -= dt
	if s.cooldown < 0 {
		s.cooldown = 0
	}
}

// TryFire pulls the trigger. It reports false when nothing was fired:
// no weapon, still cooling down, a misconfigured profile or a zero aim.
func (s *Shooter) TryFire(t Trigger) (Volley, bool) {
	w := s.weapon
	if w == nil || s.cooldown > 0 {
		return Volley{}, false
	}
	if s.invalid != nil {
		s.env.Log.Add(s.Label, combatlog.CatConfig, "drop", w.ID+": invalid profile", 0)
		return Volley{}, false
	}
	aim, ok := t.Aim.Normalized()
	if !ok && len(t.Aims) == 0 {
		s.env.Log.AddVerbose(s.Label, combatlog.CatFire, "degenerate", "zero aim direction", 0)
		return Volley{}, false
	}

	s.cooldown = w.Cooldown() / s.Stats.fireRate()
	s.pulls++

	sp := fx.OrNop(s.env.FX)
	if !ok {
		aim = t.Aims[0]
	}
	sp.SpawnMuzzleFlash(t.Origin, aim)
	sp.PlayFireSound(t.Origin, s.audio(w.Audio))

	v := Volley{Weapon: w.ID}
	for i := 0; i < w.Pellets; i++ {
		base := aim
		if len(t.Aims) > 0 {
			base = t.Aims[i%len(t.Aims)]
		}
		if w.Pellets > 1 {
			base = geom.SampleCone(base, w.ExtraPelletSpread, s.rng)
		}
		shot := &effect.Shot{
			Instigator:  s.Instigator,
			Shooter:     s.Label,
			Origin:      t.Origin,
			Direction:   base,
			Weapon:      w,
			Bullet:      w.Bullet,
			DamageScale: s.Stats.DamageScale,
		}
		switch w.Bullet.Mode {
		case profile.Projectile:
			v.Projectiles = append(v.Projectiles, s.projectiles.Spawn(shot, s.pipe, s.rng))
		default:
			v.Pellets = append(v.Pellets, s.hitscan.Resolve(shot, s.pipe, s.rng))
		}
	}

	s.env.Log.Add(s.Label, combatlog.CatFire, "pull",
		fmt.Sprintf("%s x%d %s", w.ID, w.Pellets, w.Bullet.Mode), float64(w.Pellets))
	return v, true
}

// audio applies per-pull pitch jitter.
func (s *Shooter) audio(a profile.AudioParams) profile.AudioParams {
	if a.Pitch <= 0 {
		a.Pitch = 1
	}
	if a.PitchJitter > 0 {
		a.Pitch *= 1 + a.PitchJitter*(2*s.rng.Float64()-1)
	}
	return a
}
