// Package projectile simulates flying pellets. Each controller integrates
// its body once per tick, sweeps the step it is about to take and, on the
// first impact, runs the weapon's effect pipeline exactly once before its
// trail fades out.
package projectile

import (
	"fmt"
	"math"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/target"
)

// State is the controller lifecycle.
type State uint8

const (
	Flying State = iota
	Impacted
	FadingTrail
	Terminated
)

func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Impacted:
		return "impacted"
	case FadingTrail:
		return "fading"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Controller is one projectile-mode pellet in flight.
type Controller struct {
	id      int
	backend collision.Backend
	env     *effect.Env
	fx      fx.Spawner
	shot    *effect.Shot
	pipe    effect.Pipeline

	state       State
	hasImpacted bool
	pos         geom.Vec3
	vel         geom.Vec3
	facing      geom.Vec3
	traveled    float64 // path length flown, curved by gravity
	elapsed     float64
	fade        float64 // seconds left in FadingTrail
	ricochets   int
	trail       *Trail
}

// New spawns a projectile for shot. Bloom is drawn from rng. A shot without
// a bullet, prefab, speed or aim is a configuration error: the controller
// comes back already Terminated and never touches the pipeline.
func New(backend collision.Backend, env *effect.Env, shot *effect.Shot, pipe effect.Pipeline, rng geom.Float64er) *Controller {
	c := &Controller{
		backend: backend,
		env:     env,
		fx:      fx.OrNop(env.FX),
		shot:    shot,
		pipe:    pipe,
		pos:     shot.Origin,
		trail:   newTrail(0, 0),
	}

	b := shot.Bullet
	var reason string
	switch {
	case b == nil:
		reason = "projectile without bullet profile"
	case b.Prefab == nil:
		reason = fmt.Sprintf("bullet %q has no prefab", b.ID)
	case b.Speed <= 0:
		reason = fmt.Sprintf("bullet %q has no speed", b.ID)
	}
	if reason != "" {
		env.Log.Add(shot.Shooter, combatlog.CatConfig, "disabled", reason, 0)
		c.state = Terminated
		return c
	}

	dir, ok := shot.Direction.Normalized()
	if !ok {
		env.Log.AddVerbose(shot.Shooter, combatlog.CatProjectile, "degenerate", "zero aim direction", 0)
		c.state = Terminated
		return c
	}
	dir = geom.SampleCone(dir, b.BloomDegrees, rng)

	c.facing = dir
	c.vel = dir.Scale(b.Speed)
	c.ricochets = b.RicochetCount
	c.trail = newTrail(b.Prefab.TrailPoints, b.Prefab.TrailDuration)
	c.trail.Push(c.pos)
	env.Log.AddVerbose(shot.Shooter, combatlog.CatProjectile, "spawn",
		fmt.Sprintf("%s at %.1f m/s", b.ID, b.Speed), b.Speed)
	return c
}

func (c *Controller) ID() int             { return c.id }
func (c *Controller) State() State        { return c.state }
func (c *Controller) Position() geom.Vec3 { return c.pos }
func (c *Controller) Velocity() geom.Vec3 { return c.vel }
func (c *Controller) Facing() geom.Vec3   { return c.facing }
func (c *Controller) Traveled() float64   { return c.traveled }
func (c *Controller) Elapsed() float64    { return c.elapsed }
func (c *Controller) HasImpacted() bool   { return c.hasImpacted }
func (c *Controller) Trail() *Trail       { return c.trail }
func (c *Controller) Shot() *effect.Shot  { return c.shot }
func (c *Controller) RicochetsLeft() int  { return c.ricochets }
func (c *Controller) Done() bool          { return c.state == Terminated }

// Visible reports whether the body should be drawn and collided with.
// Only the trail outlives the impact.
func (c *Controller) Visible() bool { return c.state == Flying }

// Orientation returns the body's yaw and pitch along its velocity.
func (c *Controller) Orientation() (yaw, pitch float64) {
	yaw, pitch, _ = geom.LookRotation(c.facing)
	return yaw, pitch
}

// Update advances one tick.
func (c *Controller) Update(dt float64) {
	c.commit(c.plan(dt), dt)
}

// step is the outcome of the read-only part of a tick.
type step struct {
	vel    geom.Vec3
	dir    geom.Vec3
	length float64
	hit    collision.Hit
	found  bool
}

// plan integrates gravity and runs this tick's collision queries without
// changing the controller, so plans for many controllers can run at once.
func (c *Controller) plan(dt float64) step {
	if c.state != Flying || dt <= 0 {
		return step{}
	}
	b := c.shot.Bullet
	vel := c.vel
	if b.Gravity > 0 {
		vel = vel.Add(geom.Down.Scale(b.Gravity * dt))
	}
	s := step{vel: vel, dir: c.facing}
	dir, ok := vel.Normalized()
	if !ok {
		return s
	}
	s.dir = dir

	if emb := collision.Embedded(c.backend, c.pos, dir, b.CastRadius, b.Mask(), b.Triggers, c.shot.Instigator); len(emb) > 0 {
		s.hit, s.found = emb[0], true
		return s
	}

	s.length = math.Min(vel.Len()*dt, b.MaxRange-c.traveled)
	if s.length <= 0 {
		s.length = 0
		return s
	}
	hits := collision.Cast(c.backend, c.pos, dir, b.CastRadius, s.length, b.Mask(), b.Triggers)
	s.hit, s.found = collision.FirstNotUnder(c.backend, hits, c.shot.Instigator)
	return s
}

// commit applies a plan.
func (c *Controller) commit(s step, dt float64) {
	if dt <= 0 {
		return
	}
	switch c.state {
	case Flying:
		b := c.shot.Bullet
		c.elapsed += dt
		c.trail.Age(dt)
		c.vel = s.vel
		c.facing = s.dir

		if s.found {
			c.pos = c.pos.Add(s.dir.Scale(s.hit.Distance))
			c.traveled += s.hit.Distance
			c.trail.Push(c.pos)
			c.Impact(s.hit)
			return
		}
		c.pos = c.pos.Add(s.dir.Scale(s.length))
		c.traveled += s.length
		c.trail.Push(c.pos)

		if c.traveled >= b.MaxRange || c.elapsed >= b.Lifetime() {
			c.expire()
		}
	case Impacted, FadingTrail:
		c.trail.Age(dt)
		c.fade -= dt
		if c.fade <= 0 {
			c.state = Terminated
		}
	}
}

// Impact resolves hit through the effect pipeline. Only a Flying controller
// can impact, and only once; it reports whether this call was the one.
func (c *Controller) Impact(hit collision.Hit) bool {
	if c.hasImpacted || c.state != Flying {
		return false
	}
	c.hasImpacted = true
	c.state = Impacted

	env := c.env
	var (
		id       target.ID
		isTarget bool
	)
	if env.Targets != nil {
		id, isTarget = env.Targets.Resolve(hit)
	}
	ctx := effect.NewHitContext(c.shot, c.facing, hit, id, c.traveled, c.ricochets)
	c.pipe.Apply(env, ctx)
	c.ricochets = ctx.RicochetsLeft
	c.fx.SpawnImpact(hit.Point, hit.Normal)

	what := fmt.Sprintf("geometry #%d", hit.Collider)
	if isTarget {
		what = "target " + id.Short()
	}
	env.Log.Add(c.shot.Shooter, combatlog.CatProjectile, "impact",
		fmt.Sprintf("%s after %.1fm", what, c.traveled), c.traveled)
	c.beginFade()
	return true
}

// expire ends flight without effects.
func (c *Controller) expire() {
	c.env.Log.AddVerbose(c.shot.Shooter, combatlog.CatProjectile, "expire",
		fmt.Sprintf("%.1fm in %.2fs", c.traveled, c.elapsed), c.traveled)
	c.beginFade()
}

func (c *Controller) beginFade() {
	c.state = FadingTrail
	c.fade = c.trail.Remaining()
}
