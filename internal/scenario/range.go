// Package scenario builds headless firing ranges: world geometry, targets
// with health, bodies and navigation agents, and armed shooters, all ticked
// at a fixed rate with every event going to one combat log.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/hitscan"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/projectile"
	"github.com/Garsondee/firing-range/internal/target"
	"github.com/Garsondee/firing-range/internal/weapon"
)

// DefaultDT is the fixed tick length, seconds.
const DefaultDT = 1.0 / 60

// ErrUnknownWeapon is reported for a gunner whose weapon is not in the library.
var ErrUnknownWeapon = errors.New("unknown weapon id")

// Kind labels a dummy's capabilities.
type Kind int

const (
	KindStatic Kind = iota // health only
	KindCrate              // health + dynamic body
	KindWalker             // health + navigation agent
	KindRig                // health, several hitbox proxies
	KindTagged             // health, resolved by tag
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindCrate:
		return "crate"
	case KindWalker:
		return "walker"
	case KindRig:
		return "rig"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Dummy is one target on the range.
type Dummy struct {
	Name   string
	Kind   Kind
	ID     target.ID
	Node   collision.NodeID
	Half   geom.Vec3
	Health *target.Health
	Body   *target.RigidBody
	Agent  *target.NavAgent

	start   geom.Vec3
	last    geom.Vec3 // position the colliders were last synced to
	proxies []collision.ColliderID
}

// Position returns where the dummy currently stands.
func (d *Dummy) Position() geom.Vec3 {
	switch {
	case d.Body != nil:
		return d.Body.Pos
	case d.Agent != nil:
		return d.Agent.Pos
	default:
		return d.last
	}
}

// Displacement is how far the dummy has been pushed from its spawn point.
func (d *Dummy) Displacement() float64 { return d.Position().Dist(d.start) }

// Gunner is a weapon holder standing on the range.
type Gunner struct {
	*weapon.Shooter
	Node   collision.NodeID
	Muzzle geom.Vec3
	Aim    geom.Vec3
	Auto   bool // pull the trigger every tick it is ready
}

// Trigger builds the pull for the gunner's current aim.
func (g *Gunner) Trigger() weapon.Trigger {
	return weapon.Trigger{Origin: g.Muzzle, Aim: g.Aim}
}

// Wall is static geometry.
type Wall struct {
	Name     string
	Collider collision.ColliderID
	Center   geom.Vec3
	Half     geom.Vec3
	Trigger  bool
}

// Range is a headless firing range.
type Range struct {
	World       *collision.World
	Targets     *target.Registry
	FX          *fx.Recorder
	Log         *combatlog.Log
	Env         *effect.Env
	Hitscan     *hitscan.Resolver
	Projectiles *projectile.Manager
	Library     *profile.Library
	DT          float64

	Dummies []*Dummy
	Gunners []*Gunner
	Walls   []*Wall

	rng      *rand.Rand
	seed     int64
	parallel bool
	tick     int
	nextBody collision.BodyID
	errs     []error
}

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra          optionKind = iota // seed, verbose, library, tick length
	optGeometry                         // walls and trigger volumes
	optTarget                           // dummies
	optGunner                           // shooters, after targets so aims can use them
	optGunnerSettings                   // per-gunner tweaks
)

// Option is a builder function applied to a Range during construction.
type Option struct {
	kind optionKind
	fn   func(*Range)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(r *Range) {
		r.seed = seed
	}}
}

// WithVerbose enables per-segment logging.
func WithVerbose(v bool) Option {
	return Option{optInfra, func(r *Range) {
		r.Log = combatlog.New(v)
	}}
}

// WithLibrary replaces the built-in weapon library.
func WithLibrary(lib *profile.Library) Option {
	return Option{optInfra, func(r *Range) {
		r.Library = lib
	}}
}

// WithTickRate sets the fixed tick length in seconds.
func WithTickRate(dt float64) Option {
	return Option{optInfra, func(r *Range) {
		if dt > 0 {
			r.DT = dt
		}
	}}
}

// WithParallelProjectiles enables the concurrent projectile sweep.
func WithParallelProjectiles(on bool) Option {
	return Option{optInfra, func(r *Range) {
		r.parallel = on
	}}
}

// WithWall adds solid geometry.
func WithWall(name string, center, half geom.Vec3) Option {
	return Option{optGeometry, func(r *Range) {
		r.addWall(name, center, half, false)
	}}
}

// WithTriggerVolume adds a trigger collider; only bullets that include
// triggers see it.
func WithTriggerVolume(name string, center, half geom.Vec3) Option {
	return Option{optGeometry, func(r *Range) {
		r.addWall(name, center, half, true)
	}}
}

// WithDummy adds a static target standing on the floor at (x, z).
func WithDummy(name string, x, z float64, hp int) Option {
	return Option{optTarget, func(r *Range) {
		r.addDummy(name, KindStatic, geom.V(x, 0.9, z), geom.V(0.3, 0.9, 0.2), hp, collision.NoBody)
	}}
}

// WithCrate adds a dynamic box of the given mass.
func WithCrate(name string, x, z, mass float64, hp int) Option {
	return Option{optTarget, func(r *Range) {
		r.nextBody++
		d := r.addDummy(name, KindCrate, geom.V(x, 0.5, z), geom.V(0.5, 0.5, 0.5), hp, r.nextBody)
		d.Body = &target.RigidBody{Pos: d.start, Mass: mass, Drag: 4}
		r.Targets.BindBody(r.nextBody, d.Body)
		r.attach(d)
	}}
}

// WithWalker adds a navigation-driven target.
func WithWalker(name string, x, z float64, hp int) Option {
	return Option{optTarget, func(r *Range) {
		d := r.addDummy(name, KindWalker, geom.V(x, 0.9, z), geom.V(0.3, 0.9, 0.3), hp, collision.NoBody)
		d.Agent = &target.NavAgent{Pos: d.start}
		r.attach(d)
	}}
}

// WithRig adds a target built from several hitboxes that resolve through
// proxy bindings instead of the node hierarchy.
func WithRig(name string, x, z float64, parts, hp int) Option {
	return Option{optTarget, func(r *Range) {
		r.addRig(name, geom.V(x, 0, z), parts, hp)
	}}
}

// WithTagged adds a target found only through its collider tag.
func WithTagged(name, tag string, x, z float64, hp int) Option {
	return Option{optTarget, func(r *Range) {
		r.addTagged(name, tag, geom.V(x, 0.9, z), hp)
	}}
}

// WithGunner adds a shooter at (x, z) aiming along aim with the named
// weapon from the library.
func WithGunner(label string, x, z float64, aim geom.Vec3, weaponID string) Option {
	return Option{optGunner, func(r *Range) {
		r.addGunner(label, geom.V(x, 0, z), aim, weaponID)
	}}
}

// WithAimAt points the named gunner at a dummy.
func WithAimAt(label, dummy string) Option {
	return Option{optGunnerSettings, func(r *Range) {
		r.AimAt(label, dummy)
	}}
}

// WithStats sets a gunner's stat multipliers.
func WithStats(label string, stats weapon.Stats) Option {
	return Option{optGunnerSettings, func(r *Range) {
		if g := r.Gunner(label); g != nil {
			g.Stats = stats
		}
	}}
}

// WithAutoFire makes the named gunner hold the trigger.
func WithAutoFire(label string) Option {
	return Option{optGunnerSettings, func(r *Range) {
		if g := r.Gunner(label); g != nil {
			g.Auto = true
		}
	}}
}

// New constructs a Range from the given options in ordered passes:
//  1. Infrastructure (seed, verbose, library, tick length)
//  2. Geometry
//  3. Targets
//  4. Gunners, then gunner settings
func New(opts ...Option) *Range {
	r := &Range{
		Log:     combatlog.New(false),
		Library: profile.DefaultLibrary(),
		DT:      DefaultDT,
		seed:    1,
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(r)
		}
	}
	r.rng = rand.New(rand.NewSource(r.seed)) // #nosec G404 -- game only
	r.World = collision.NewWorld()
	r.Targets = target.NewRegistry(r.World)
	r.FX = fx.NewRecorder()
	r.Env = effect.NewEnv(r.Targets, r.FX, r.Log, r.rng.Int63())
	r.Hitscan = hitscan.New(r.World, r.Env)
	r.Projectiles = projectile.NewManager(r.World, r.Env)
	r.Projectiles.Parallel = r.parallel

	for pass := optGeometry; pass <= optGunnerSettings; pass++ {
		for _, o := range opts {
			if o.kind == pass {
				o.fn(r)
			}
		}
	}
	return r
}

func (r *Range) addWall(name string, center, half geom.Vec3, trigger bool) {
	n := r.World.AddNode(collision.NoNode, name)
	c := r.World.AddCollider(collision.ColliderDef{
		Node:    n,
		Shape:   collision.ShapeBox,
		Center:  center,
		Half:    half,
		Layer:   collision.LayerWorld,
		Trigger: trigger,
		Tag:     name,
	})
	r.Walls = append(r.Walls, &Wall{Name: name, Collider: c, Center: center, Half: half, Trigger: trigger})
}

func (r *Range) addDummy(name string, kind Kind, center, half geom.Vec3, hp int, body collision.BodyID) *Dummy {
	n := r.World.AddNode(collision.NoNode, name)
	r.World.AddCollider(collision.ColliderDef{
		Node:   n,
		Shape:  collision.ShapeBox,
		Center: center,
		Half:   half,
		Layer:  collision.LayerTarget,
		Body:   body,
	})
	h := target.NewHealth(hp)
	d := &Dummy{Name: name, Kind: kind, Node: n, Half: half, Health: h, start: center, last: center}
	d.ID = r.Targets.Add(target.Target{Name: name, Root: n, Sink: h})
	r.Targets.BindNode(n, d.ID)
	h.OnDeath = func() {
		r.Log.Add("--", combatlog.CatEffect, "kill", name, 0)
	}
	r.Dummies = append(r.Dummies, d)
	return d
}

// attach hands the dummy's body or agent to its registry entry.
func (r *Range) attach(d *Dummy) {
	t, ok := r.Targets.Get(d.ID)
	if !ok {
		return
	}
	if d.Body != nil {
		t.Body = d.Body
	}
	if d.Agent != nil {
		t.Agent = d.Agent
	}
}

func (r *Range) addRig(name string, base geom.Vec3, parts, hp int) {
	if parts < 1 {
		parts = 1
	}
	h := target.NewHealth(hp)
	id := r.Targets.Add(target.Target{Name: name, Sink: h})
	d := &Dummy{Name: name, Kind: KindRig, ID: id, Half: geom.V(0.35, 0.9, 0.1), Health: h, start: base, last: base}
	for i := 0; i < parts; i++ {
		n := r.World.AddNode(collision.NoNode, fmt.Sprintf("%s_hitbox%d", name, i))
		// Hitboxes are layered front to back, plate over torso over back.
		center := base.Add(geom.V(0, 0.9, 0.3*float64(i)))
		c := r.World.AddBox(n, center, d.Half, collision.LayerHitbox, "")
		r.Targets.BindProxy(c, id)
		d.proxies = append(d.proxies, c)
	}
	h.OnDeath = func() {
		r.Log.Add("--", combatlog.CatEffect, "kill", name, 0)
	}
	r.Dummies = append(r.Dummies, d)
}

func (r *Range) addTagged(name, tag string, center geom.Vec3, hp int) {
	n := r.World.AddNode(collision.NoNode, name)
	half := geom.V(0.3, 0.9, 0.2)
	r.World.AddBox(n, center, half, collision.LayerTarget, tag)
	h := target.NewHealth(hp)
	id := r.Targets.Add(target.Target{Name: name, Sink: h})
	r.Targets.BindTag(tag, id)
	h.OnDeath = func() {
		r.Log.Add("--", combatlog.CatEffect, "kill", name, 0)
	}
	r.Dummies = append(r.Dummies, &Dummy{Name: name, Kind: KindTagged, ID: id, Node: n, Half: half, Health: h, start: center, last: center})
}

func (r *Range) addGunner(label string, feet, aim geom.Vec3, weaponID string) {
	n := r.World.AddNode(collision.NoNode, label)
	r.World.AddBox(n, feet.Add(geom.V(0, 0.9, 0)), geom.V(0.3, 0.9, 0.3), collision.LayerPlayer, "player")
	s := weapon.New(label, n, r.Hitscan, r.Projectiles, r.Env, r.rng.Int63())
	g := &Gunner{Shooter: s, Node: n, Muzzle: feet.Add(geom.V(0, 1.5, 0)), Aim: aim}
	if w, ok := r.Library.Weapon(weaponID); ok {
		if err := s.Equip(w); err != nil {
			r.errs = append(r.errs, err)
		}
	} else {
		r.errs = append(r.errs, fmt.Errorf("gunner %s: %w %q", label, ErrUnknownWeapon, weaponID))
		r.Log.Add(label, combatlog.CatConfig, "unknown_weapon", weaponID, 0)
	}
	r.Gunners = append(r.Gunners, g)
}

// Errs returns configuration problems met while building the range.
func (r *Range) Errs() []error { return r.errs }

// Dummy returns the named target, or nil.
func (r *Range) Dummy(name string) *Dummy {
	for _, d := range r.Dummies {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Gunner returns the labelled shooter, or nil.
func (r *Range) Gunner(label string) *Gunner {
	for _, g := range r.Gunners {
		if g.Label == label {
			return g
		}
	}
	return nil
}

// AimAt points the gunner's muzzle at a dummy's center.
func (r *Range) AimAt(label, dummy string) bool {
	g, d := r.Gunner(label), r.Dummy(dummy)
	if g == nil || d == nil {
		return false
	}
	center := d.Position()
	if d.Kind == KindRig {
		center = center.Add(geom.V(0, 0.9, 0))
	}
	g.Aim = center.Sub(g.Muzzle)
	return true
}

// Fire pulls the named gunner's trigger once.
func (r *Range) Fire(label string) (weapon.Volley, bool) {
	g := r.Gunner(label)
	if g == nil {
		return weapon.Volley{}, false
	}
	r.Log.SetTick(r.tick)
	return g.TryFire(g.Trigger())
}

// Remove takes a dummy off the range: its colliders stop colliding, any
// knockback in flight is cancelled and its identity stops resolving.
func (r *Range) Remove(name string) bool {
	d := r.Dummy(name)
	if d == nil {
		return false
	}
	if d.Node != collision.NoNode {
		r.World.DisableNode(d.Node)
	}
	for _, c := range d.proxies {
		r.World.SetEnabled(c, false)
	}
	r.Env.Tasks.Cancel(d.ID)
	r.Targets.Remove(d.ID)
	return true
}

// CurrentTick returns the current tick.
func (r *Range) CurrentTick() int { return r.tick }

// Elapsed returns simulated seconds.
func (r *Range) Elapsed() float64 { return float64(r.tick) * r.DT }

// Step advances one tick: auto-fire, projectiles, knockback tasks, bodies,
// then visuals.
func (r *Range) Step(ctx context.Context) error {
	r.tick++
	r.Log.SetTick(r.tick)
	dt := r.DT

	for _, g := range r.Gunners {
		g.Update(dt)
		if g.Auto && g.Ready() {
			g.TryFire(g.Trigger())
		}
	}
	if err := r.Projectiles.Update(ctx, dt); err != nil {
		return fmt.Errorf("tick %d: %w", r.tick, err)
	}
	r.Env.Tasks.Update(dt)

	for _, d := range r.Dummies {
		if d.Body != nil {
			d.Body.Step(dt)
		}
		r.sync(d)
	}
	r.FX.Update(dt)
	return nil
}

// sync moves a dummy's colliders to follow its body or agent.
func (r *Range) sync(d *Dummy) {
	if d.Node == collision.NoNode {
		return
	}
	pos := d.Position()
	if delta := pos.Sub(d.last); delta != geom.Zero {
		r.World.MoveNode(d.Node, delta)
		d.last = pos
	}
}

// RunTicks advances the range n ticks.
func (r *Range) RunTicks(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := r.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil advances up to maxTicks, stopping early once predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (r *Range) RunUntil(ctx context.Context, predicate func(*Range) bool, maxTicks int) (int, error) {
	for i := 0; i < maxTicks; i++ {
		if err := r.Step(ctx); err != nil {
			return -1, err
		}
		if predicate(r) {
			return r.tick, nil
		}
	}
	return -1, nil
}

// Snapshot captures a lightweight state summary.
type Snapshot struct {
	Tick        int
	Dummies     []DummySnapshot
	Projectiles int
	Tracers     int
}

// DummySnapshot is a lightweight copy of a dummy's state at a tick.
type DummySnapshot struct {
	Name  string
	Kind  Kind
	HP    int
	MaxHP int
	Hits  int
	Pos   geom.Vec3
	Moved float64
}

// Snapshot returns the current state of every dummy.
func (r *Range) Snapshot() Snapshot {
	snap := Snapshot{Tick: r.tick, Projectiles: r.Projectiles.Len(), Tracers: len(r.FX.Tracers)}
	for _, d := range r.Dummies {
		snap.Dummies = append(snap.Dummies, DummySnapshot{
			Name:  d.Name,
			Kind:  d.Kind,
			HP:    d.Health.HP,
			MaxHP: d.Health.MaxHP,
			Hits:  d.Health.Hits,
			Pos:   d.Position(),
			Moved: d.Displacement(),
		})
	}
	return snap
}
