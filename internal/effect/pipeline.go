package effect

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/target"
)

// Rand is the slice of *rand.Rand effects draw from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Env carries the collaborators effects need. Only Targets is required.
type Env struct {
	Targets *target.Registry
	FX      fx.Spawner
	Log     *combatlog.Log
	Rand    Rand
	Tasks   *Tasks
}

// NewEnv wires an environment with a seeded random source and a fresh
// agent-knockback scheduler.
func NewEnv(reg *target.Registry, spawner fx.Spawner, log *combatlog.Log, seed int64) *Env {
	return &Env{
		Targets: reg,
		FX:      fx.OrNop(spawner),
		Log:     log,
		Rand:    rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		Tasks:   NewTasks(reg),
	}
}

func (e *Env) spawner() fx.Spawner {
	return fx.OrNop(e.FX)
}

func (e *Env) rng() Rand {
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(1)) // #nosec G404 -- game only
	}
	return e.Rand
}

// Effect is one unit of on-hit behavior.
type Effect interface {
	Kind() profile.EffectKind
	Apply(env *Env, ctx *HitContext)
}

// Pipeline is a compiled, ordered effect list.
type Pipeline []Effect

// Build compiles a profile's effect entries. Entries without params get the
// kind's defaults.
func Build(entries []profile.EffectEntry) (Pipeline, error) {
	p := make(Pipeline, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("effects[%d]: %w", i, err)
		}
		params, err := e.Resolved()
		if err != nil {
			return nil, fmt.Errorf("effects[%d]: %w", i, err)
		}
		switch pp := params.(type) {
		case profile.DamageParams:
			p = append(p, &Damage{Params: pp})
		case profile.KnockbackParams:
			p = append(p, &Knockback{Params: pp})
		default:
			return nil, fmt.Errorf("effects[%d]: %w: %T", i, profile.ErrUnknownEffect, params)
		}
	}
	return p, nil
}

// Apply runs every effect in order against the same context. Effects are
// individually responsible for being no-ops when their target is missing.
func (p Pipeline) Apply(env *Env, ctx *HitContext) {
	if env == nil || ctx == nil {
		return
	}
	for _, e := range p {
		e.Apply(env, ctx)
	}
}

// Kinds lists the pipeline's effect kinds in order.
func (p Pipeline) Kinds() []profile.EffectKind {
	out := make([]profile.EffectKind, len(p))
	for i, e := range p {
		out[i] = e.Kind()
	}
	return out
}
