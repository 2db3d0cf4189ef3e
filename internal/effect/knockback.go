package effect

import (
	"fmt"

	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/target"
)

// Knockback pushes the hit target: an impulse on a dynamic body, or a short
// displacement task for a navigation agent.
type Knockback struct {
	Params profile.KnockbackParams
}

// Kind implements Effect.
func (k *Knockback) Kind() profile.EffectKind { return profile.KindKnockback }

// Apply implements Effect. Without a dynamic body or agent it does nothing.
func (k *Knockback) Apply(env *Env, ctx *HitContext) {
	if env.Targets == nil {
		return
	}
	dir, ok := k.direction(ctx)
	if !ok {
		return
	}

	force := k.Params.Force
	if k.Params.ScaleByDamage {
		force *= ctx.Damage
	}
	if id, found := env.Targets.Resolve(ctx.Hit); found {
		force *= env.Targets.Resistance(id)
	}
	if force <= 0 {
		return
	}

	if body, ok := env.Targets.Body(ctx.Hit); ok && !body.Kinematic() {
		mode := target.Impulse
		if k.Params.VelocityChange {
			mode = target.VelocityChange
		}
		body.AddImpulse(dir.Scale(force), mode)
		env.Log.Add(ctx.Shooter, combatlog.CatEffect, "knockback",
			fmt.Sprintf("%s %.2f", mode, force), force)
		return
	}

	agent, id, ok := env.Targets.Agent(ctx.Hit)
	if !ok || env.Tasks == nil {
		env.Log.AddVerbose(ctx.Shooter, combatlog.CatEffect, "knockback_skip", "no body or agent", 0)
		return
	}
	flat, ok := dir.Flat().Normalized()
	if !ok {
		return
	}
	dist := force * k.Params.AgentMetersPerN
	env.Tasks.Start(id, agent, flat.Scale(dist), k.Params.AgentDuration)
	env.Log.Add(ctx.Shooter, combatlog.CatEffect, "knockback",
		fmt.Sprintf("agent %s %.2fm over %.2fs", id.Short(), dist, k.Params.AgentDuration), dist)
}

// direction returns the push axis. Normal mode pushes into the surface.
func (k *Knockback) direction(ctx *HitContext) (geom.Vec3, bool) {
	if k.Params.Direction == profile.PushAlongNormal {
		if n, ok := ctx.Hit.Normal.Neg().Normalized(); ok {
			return n, true
		}
	}
	return ctx.FireDirection.Normalized()
}
