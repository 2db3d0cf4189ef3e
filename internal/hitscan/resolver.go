// Package hitscan resolves pellets instantly by walking casts along the aim
// line, through as many stops as the bullet's penetration budget allows.
package hitscan

import (
	"fmt"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/target"
)

const (
	advanceEpsilon = 0.01 // meters stepped past every stop
	tracerLifetime = 0.12 // seconds
)

// Stop is one collider the pellet halted on.
type Stop struct {
	Hit       collision.Hit
	Target    target.ID // target.Nil for geometry
	Distance  float64   // path length from the muzzle
	Duplicate bool      // same target already resolved by this pellet
	Guard     bool      // found by the start-inside check
}

// Result summarizes one pellet. Callers may ignore it.
type Result struct {
	Direction geom.Vec3 // aim after bloom
	Stops     []Stop
	End       geom.Vec3 // where the last tracer ended
	Segments  int       // tracers spawned
}

// Resolved counts stops that ran the effect pipeline.
func (r Result) Resolved() int {
	n := 0
	for _, s := range r.Stops {
		if !s.Duplicate {
			n++
		}
	}
	return n
}

// Resolver runs pellets against a collision backend.
type Resolver struct {
	Backend collision.Backend
	Env     *effect.Env
}

// New returns a resolver.
func New(backend collision.Backend, env *effect.Env) *Resolver {
	return &Resolver{Backend: backend, Env: env}
}

// Resolve fires one pellet. The bloom sample is drawn from rng; each call
// keeps its own set of already-hit targets.
func (r *Resolver) Resolve(shot *effect.Shot, pipe effect.Pipeline, rng geom.Float64er) Result {
	log := r.Env.Log
	if shot.Bullet == nil {
		log.Add(shot.Shooter, combatlog.CatConfig, "drop", "hitscan pellet without bullet profile", 0)
		return Result{}
	}
	dir, ok := shot.Direction.Normalized()
	if !ok {
		log.AddVerbose(shot.Shooter, combatlog.CatHitscan, "degenerate", "zero aim direction", 0)
		return Result{End: shot.Origin}
	}
	dir = geom.SampleCone(dir, shot.Bullet.BloomDegrees, rng)

	p := &pellet{
		r:         r,
		shot:      shot,
		pipe:      pipe,
		fx:        fx.OrNop(r.Env.FX),
		dir:       dir,
		origin:    shot.Origin,
		remaining: shot.Bullet.MaxRange,
		budget:    shot.Bullet.PenetrationCount,
		ricochets: shot.Bullet.RicochetCount,
		seen:      make(map[target.ID]bool),
		seenGeo:   make(map[collision.ColliderID]bool),
	}
	p.res.Direction = dir
	p.res.End = shot.Origin

	p.guard()
	p.walk()
	return p.res
}

// pellet is the per-pellet walk state.
type pellet struct {
	r    *Resolver
	shot *effect.Shot
	pipe effect.Pipeline
	fx   fx.Spawner
	dir  geom.Vec3

	origin    geom.Vec3
	remaining float64
	budget    int
	ricochets int

	seen    map[target.ID]bool
	seenGeo map[collision.ColliderID]bool
	res     Result
}

func (p *pellet) traveled() float64 {
	return p.shot.Bullet.MaxRange - p.remaining
}

// guard resolves colliders the muzzle already sits inside, which a forward
// cast would never report.
func (p *pellet) guard() {
	b := p.shot.Bullet
	for _, hit := range collision.Embedded(p.r.Backend, p.origin, p.dir, b.CastRadius, b.Mask(), b.Triggers, p.shot.Instigator) {
		if p.budget < 0 {
			return
		}
		p.stop(hit, true)
	}
}

// walk casts forward from origin until range or budget runs out.
func (p *pellet) walk() {
	b := p.shot.Bullet
	be := p.r.Backend

	for p.remaining > 0 && p.budget >= 0 {
		hits := collision.Cast(be, p.origin, p.dir, b.CastRadius, p.remaining, b.Mask(), b.Triggers)
		hit, ok := collision.FirstNotUnder(be, hits, p.shot.Instigator)
		if !ok {
			end := p.origin.Add(p.dir.Scale(p.remaining))
			p.tracer(end)
			p.r.Env.Log.AddVerbose(p.shot.Shooter, combatlog.CatHitscan, "clear",
				fmt.Sprintf("%.1fm to range end", p.remaining), p.remaining)
			p.remaining = 0
			return
		}

		// Follow the pellet line; equals hit.Point for plain rays.
		p.tracer(p.origin.Add(p.dir.Scale(hit.Distance)))
		p.stop(hit, false)

		step := hit.Distance + advanceEpsilon
		p.origin = p.origin.Add(p.dir.Scale(step))
		p.remaining -= step
	}
}

func (p *pellet) tracer(end geom.Vec3) {
	p.fx.SpawnTracer(p.origin, end, tracerLifetime)
	p.res.End = end
	p.res.Segments++
}

// stop handles one halting collider: dedup, effects, impact and budget.
func (p *pellet) stop(hit collision.Hit, guard bool) {
	env := p.r.Env
	log := env.Log
	dist := p.traveled() + hit.Distance

	var (
		id       target.ID
		isTarget bool
	)
	if env.Targets != nil {
		id, isTarget = env.Targets.Resolve(hit)
	}

	var dup bool
	if isTarget {
		dup = p.seen[id]
	} else {
		dup = p.seenGeo[hit.Collider]
	}
	stop := Stop{Hit: hit, Target: id, Distance: dist, Duplicate: dup, Guard: guard}
	p.res.Stops = append(p.res.Stops, stop)

	if dup {
		log.AddVerbose(p.shot.Shooter, combatlog.CatHitscan, "duplicate", describe(hit, id, isTarget), dist)
		if p.shot.Bullet.DuplicateHitsConsumePenetration {
			p.budget--
		}
		return
	}
	if isTarget {
		p.seen[id] = true
	} else {
		p.seenGeo[hit.Collider] = true
	}

	ctx := effect.NewHitContext(p.shot, p.dir, hit, id, dist, p.ricochets)
	p.pipe.Apply(env, ctx)
	p.ricochets = ctx.RicochetsLeft
	p.fx.SpawnImpact(hit.Point, hit.Normal)

	key := "hit"
	if guard {
		key = "guard_hit"
	}
	log.Add(p.shot.Shooter, combatlog.CatHitscan, key, describe(hit, id, isTarget), dist)
	p.budget--
}

func describe(hit collision.Hit, id target.ID, isTarget bool) string {
	if isTarget {
		return "target " + id.Short()
	}
	if hit.Tag != "" {
		return "geometry " + hit.Tag
	}
	return fmt.Sprintf("geometry #%d", hit.Collider)
}
