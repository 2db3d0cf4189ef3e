package effect

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/profile"
)

// Damage applies integer damage to the hit target's sink.
type Damage struct {
	Params profile.DamageParams
}

// Kind implements Effect.
func (d *Damage) Kind() profile.EffectKind { return profile.KindDamage }

// Apply implements Effect. Without a resolvable sink it does nothing.
func (d *Damage) Apply(env *Env, ctx *HitContext) {
	if env.Targets == nil {
		return
	}
	sink, id, ok := env.Targets.Sink(ctx.Hit)
	if !ok {
		env.Log.AddVerbose(ctx.Shooter, combatlog.CatEffect, "damage_skip", "no sink", 0)
		return
	}

	amount := d.base(env, ctx)
	intensity := fx.Normal
	if d.Params.CritChance > 0 && env.rng().Float64()*100 < d.Params.CritChance {
		intensity = fx.Crit
		amount = int(math.Round(float64(amount) * d.Params.Multiplier()))
	}
	if amount < 0 {
		amount = 0
	}

	env.spawner().SpawnDamageText(ctx.Hit.Point, strconv.Itoa(amount), intensity)
	sink.ApplyDamage(amount)
	ctx.Damage = float64(amount)

	env.Log.Add(ctx.Shooter, combatlog.CatEffect, "damage",
		fmt.Sprintf("%s %d (%s) @ %.1fm", id.Short(), amount, intensity, ctx.DistanceTraveled), float64(amount))
}

// base picks the pre-crit amount: random range, then override, then context.
// Range and override amounts take the shot's stat scale; the context amount
// already carries it.
func (d *Damage) base(env *Env, ctx *HitContext) int {
	if r := d.Params.Range; r != nil {
		n := r.Min
		if span := r.Max - r.Min; span > 0 {
			n += env.rng().Intn(span + 1)
		}
		return int(math.Round(float64(n) * ctx.scale()))
	}
	if d.Params.Override != nil {
		return int(math.Round(float64(*d.Params.Override) * ctx.scale()))
	}
	return int(math.Round(ctx.Damage))
}
