package projectile

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/target"
)

// --- Helpers ---

type rig struct {
	w   *collision.World
	reg *target.Registry
	rec *fx.Recorder
	log *combatlog.Log
	env *effect.Env
}

func newRig() *rig {
	w := collision.NewWorld()
	reg := target.NewRegistry(w)
	rec := fx.NewRecorder()
	log := combatlog.New(true)
	return &rig{w: w, reg: reg, rec: rec, log: log, env: effect.NewEnv(reg, rec, log, 1)}
}

func (r *rig) dummy(center, half geom.Vec3) *target.Health {
	n := r.w.AddNode(collision.NoNode, "dummy")
	r.w.AddBox(n, center, half, collision.LayerTarget, "")
	h := target.NewHealth(1000)
	id := r.reg.Add(target.Target{Name: "dummy", Root: n, Sink: h})
	r.reg.BindNode(n, id)
	return h
}

func shell(speed, gravity float64) *profile.BulletProfile {
	return &profile.BulletProfile{
		ID:         "shell",
		Mode:       profile.Projectile,
		BaseDamage: 10,
		Falloff:    profile.Constant(1),
		MaxRange:   100,
		Speed:      speed,
		Gravity:    gravity,
		Prefab:     &profile.Prefab{Name: "shell", TrailPoints: 8, TrailDuration: 0.2},
	}
}

func shot(b *profile.BulletProfile, origin geom.Vec3) *effect.Shot {
	return &effect.Shot{Shooter: "P1", Origin: origin, Direction: geom.Forward, Bullet: b}
}

// counter is an effect that only counts invocations.
type counter struct{ n int }

func (c *counter) Kind() profile.EffectKind                      { return profile.KindDamage }
func (c *counter) Apply(env *effect.Env, ctx *effect.HitContext) { c.n++ }

func damageOnly(t *testing.T) effect.Pipeline {
	t.Helper()
	p, err := effect.Build([]profile.EffectEntry{{Kind: profile.KindDamage}})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// --- Tests ---

func TestProjectile_GravityDrop(t *testing.T) {
	r := newRig()
	const (
		g  = 9.81
		v  = 20.0
		dt = 1.0 / 120
	)
	c := New(r.w, r.env, shot(shell(v, g), geom.Zero), nil, nil)

	ticks := 120
	for i := 0; i < ticks; i++ {
		c.Update(dt)
	}
	tt := float64(ticks) * dt
	want := 0.5 * g * tt * tt
	drop := -c.Position().Y
	if math.Abs(drop-want) > g*tt*dt {
		t.Fatalf("drop after %.2fs = %.3f, want %.3f", tt, drop, want)
	}
	if math.Abs(c.Position().Z-v*tt) > 1e-6 {
		t.Fatalf("horizontal travel should stay at v·t, got %.6f", c.Position().Z)
	}
	if c.Velocity().Y >= 0 {
		t.Fatal("gravity should pull velocity toward world-down")
	}
	if c.State() != Flying {
		t.Fatalf("should still be flying, got %s", c.State())
	}
}

func TestProjectile_NoGravityFliesStraight(t *testing.T) {
	r := newRig()
	c := New(r.w, r.env, shot(shell(10, 0), geom.Zero), nil, nil)
	for i := 0; i < 10; i++ {
		c.Update(0.1)
	}
	if c.Position().Y != 0 || c.Position().X != 0 {
		t.Fatalf("no gravity means no drop, got %+v", c.Position())
	}
}

func TestProjectile_SweepPreventsTunneling(t *testing.T) {
	r := newRig()
	h := r.dummy(geom.V(0, 0, 10), geom.V(0.5, 0.5, 0.05))

	// 400 m/s at 30 Hz covers 13m per tick, far more than the slab is thick.
	c := New(r.w, r.env, shot(shell(400, 0), geom.Zero), damageOnly(t), nil)
	c.Update(1.0 / 30)
	if h.Hits != 1 {
		t.Fatalf("fast projectile must hit the thin slab once, got %d", h.Hits)
	}
	if c.State() != FadingTrail || c.Visible() {
		t.Fatalf("impact should hide the body and start the fade, state %s", c.State())
	}
	if math.Abs(c.Position().Z-9.95) > 1e-9 {
		t.Fatalf("body should stop on the front face, got %.4f", c.Position().Z)
	}
	if r.rec.Totals().Impacts != 1 {
		t.Fatal("impact fx should spawn once")
	}
}

func TestProjectile_ImpactIsIdempotent(t *testing.T) {
	r := newRig()
	r.dummy(geom.V(0, 0, 3), geom.V(1, 1, 0.5))
	cnt := &counter{}
	c := New(r.w, r.env, shot(shell(50, 0), geom.Zero), effect.Pipeline{cnt}, nil)

	c.Update(0.1)
	if cnt.n != 1 || !c.HasImpacted() {
		t.Fatalf("first contact should run the pipeline once, got %d", cnt.n)
	}
	hit := collision.Hit{Point: c.Position(), Normal: geom.Forward.Neg()}
	if c.Impact(hit) {
		t.Fatal("a redundant impact must report false")
	}
	c.Update(0.05)
	c.Update(0.05)
	if cnt.n != 1 {
		t.Fatalf("pipeline ran %d times, want 1", cnt.n)
	}
}

func TestProjectile_StartInsideResolvesImmediately(t *testing.T) {
	r := newRig()
	h := r.dummy(geom.V(0, 0, 0), geom.V(1, 1, 1))
	c := New(r.w, r.env, shot(shell(10, 0), geom.Zero), damageOnly(t), nil)
	c.Update(0.01)
	if h.Hits != 1 {
		t.Fatalf("projectile spawned inside a target should hit it, got %d", h.Hits)
	}
	if c.Traveled() != 0 {
		t.Fatalf("embedded impact consumes no range, traveled %.3f", c.Traveled())
	}
}

func TestProjectile_IgnoresOwnHierarchy(t *testing.T) {
	r := newRig()
	shooter := r.w.AddNode(collision.NoNode, "shooter")
	r.w.AddBox(shooter, geom.Zero, geom.V(0.5, 1, 0.5), collision.LayerPlayer, "player")

	s := shot(shell(10, 0), geom.Zero)
	s.Instigator = shooter
	c := New(r.w, r.env, s, nil, nil)
	c.Update(0.1)
	if c.HasImpacted() || c.State() != Flying {
		t.Fatalf("own body must not stop the projectile, state %s", c.State())
	}
}

func TestProjectile_FalloffUsesPathLength(t *testing.T) {
	r := newRig()
	h := r.dummy(geom.V(0, 0, 50.5), geom.V(1, 1, 0.5))
	b := shell(1000, 0)
	b.BaseDamage = 100
	b.Falloff = profile.Linear(1, 0.5)
	c := New(r.w, r.env, shot(b, geom.Zero), damageOnly(t), nil)
	c.Update(0.1)
	if h.TotalTaken != 75 {
		t.Fatalf("impact at 50m of 100m should deal 75, got %d", h.TotalTaken)
	}
}

func TestProjectile_RangeExpiryHasNoEffects(t *testing.T) {
	r := newRig()
	b := shell(100, 0)
	b.MaxRange = 10
	cnt := &counter{}
	c := New(r.w, r.env, shot(b, geom.Zero), effect.Pipeline{cnt}, nil)

	c.Update(0.05)
	if c.State() != Flying {
		t.Fatal("should still fly after 5m of 10m")
	}
	c.Update(0.05)
	if c.State() != FadingTrail {
		t.Fatalf("range exhausted should start the fade, got %s", c.State())
	}
	if cnt.n != 0 || c.HasImpacted() {
		t.Fatal("expiry must not run effects")
	}
	if r.log.Count(combatlog.CatProjectile, "expire") != 1 {
		t.Fatal("expiry should be logged")
	}
}

func TestProjectile_NoImpactAfterExpiry(t *testing.T) {
	r := newRig()
	b := shell(100, 0)
	b.MaxRange = 5
	cnt := &counter{}
	c := New(r.w, r.env, shot(b, geom.Zero), effect.Pipeline{cnt}, nil)

	c.Update(0.05)
	if c.State() != FadingTrail {
		t.Fatalf("expected fade after range ran out, got %s", c.State())
	}
	hit := collision.Hit{Point: c.Position(), Normal: geom.Forward.Neg()}
	if c.Impact(hit) {
		t.Fatal("an expired projectile must not impact")
	}
	if cnt.n != 0 || c.HasImpacted() || c.State() != FadingTrail {
		t.Fatalf("expired projectile ran effects: n=%d state=%s", cnt.n, c.State())
	}
}

func TestProjectile_RangeClipsLastStep(t *testing.T) {
	r := newRig()
	h := r.dummy(geom.V(0, 0, 12), geom.V(1, 1, 0.5))
	b := shell(100, 0)
	b.MaxRange = 10
	c := New(r.w, r.env, shot(b, geom.Zero), damageOnly(t), nil)
	c.Update(0.5)
	if h.Hits != 0 {
		t.Fatal("a target past max range must not be hit")
	}
	if c.Traveled() != 10 {
		t.Fatalf("step should be clipped to the range, traveled %.3f", c.Traveled())
	}
}

func TestProjectile_LifetimeExpiry(t *testing.T) {
	r := newRig()
	b := shell(1, 0)
	b.MaxLifetime = 0.1
	c := New(r.w, r.env, shot(b, geom.Zero), nil, nil)
	c.Update(0.05)
	c.Update(0.05)
	if c.State() != FadingTrail {
		t.Fatalf("lifetime cap should end flight, got %s", c.State())
	}
}

func TestProjectile_TrailFadesThenTerminates(t *testing.T) {
	r := newRig()
	r.dummy(geom.V(0, 0, 2), geom.V(1, 1, 0.5))
	c := New(r.w, r.env, shot(shell(50, 0), geom.Zero), nil, nil)
	c.Update(0.1)
	if c.State() != FadingTrail {
		t.Fatalf("expected fading, got %s", c.State())
	}
	if len(c.Trail().Points()) == 0 {
		t.Fatal("trail should keep drawing after impact")
	}
	c.Update(0.15)
	if c.State() != FadingTrail {
		t.Fatal("trail duration is 0.2s; should still be fading")
	}
	c.Update(0.1)
	if !c.Done() {
		t.Fatalf("expected terminated, got %s", c.State())
	}
	if len(c.Trail().Points()) != 0 {
		t.Fatal("every trail point should have faded")
	}
}

func TestProjectile_ZeroDeltaDoesNothing(t *testing.T) {
	r := newRig()
	c := New(r.w, r.env, shot(shell(10, 9.81), geom.Zero), nil, nil)
	c.Update(0)
	if c.Position() != geom.Zero || c.Elapsed() != 0 {
		t.Fatal("dt=0 must not move the body")
	}
}

func TestProjectile_ConfigErrorsDisable(t *testing.T) {
	r := newRig()
	noPrefab := shell(10, 0)
	noPrefab.Prefab = nil
	noSpeed := shell(0, 0)

	cases := map[string]*profile.BulletProfile{
		"nil bullet": nil,
		"no prefab":  noPrefab,
		"no speed":   noSpeed,
	}
	for name, b := range cases {
		cnt := &counter{}
		c := New(r.w, r.env, shot(b, geom.Zero), effect.Pipeline{cnt}, nil)
		if !c.Done() {
			t.Fatalf("%s: controller should be disabled at spawn", name)
		}
		c.Update(0.1)
		if cnt.n != 0 || c.Position() != geom.Zero {
			t.Fatalf("%s: disabled controller must stay inert", name)
		}
	}
	if got := r.log.Count(combatlog.CatConfig, "disabled"); got != len(cases) {
		t.Fatalf("each disabled spawn should be logged, got %d", got)
	}
}

func TestTrail_RingKeepsNewest(t *testing.T) {
	tr := newTrail(3, 1)
	for i := 0; i < 5; i++ {
		tr.Push(geom.V(0, 0, float64(i)))
	}
	pts := tr.Points()
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	for i, want := range []float64{2, 3, 4} {
		if pts[i].Pos.Z != want {
			t.Fatalf("point %d: z=%.0f, want %.0f", i, pts[i].Pos.Z, want)
		}
	}
	tr.Age(0.6)
	tr.Push(geom.V(0, 0, 5))
	if got := tr.Remaining(); got != 1 {
		t.Fatalf("newest point should have the full duration left, got %.2f", got)
	}
	tr.Age(0.5)
	if got := len(tr.Points()); got != 1 {
		t.Fatalf("only the newest point should remain visible, got %d", got)
	}
}

func TestManager_ParallelSweep(t *testing.T) {
	r := newRig()
	const n = 40
	var hp []*target.Health
	for i := 0; i < n; i++ {
		x := float64(i) * 3
		hp = append(hp, r.dummy(geom.V(x, 0, 10), geom.V(0.5, 0.5, 0.5)))
	}

	m := NewManager(r.w, r.env)
	m.Parallel = true
	m.Workers = 4
	pipe := damageOnly(t)
	for i := 0; i < n; i++ {
		b := shell(100, 0)
		b.Prefab.TrailDuration = 0
		m.Spawn(shot(b, geom.V(float64(i)*3, 0, 0)), pipe, nil)
	}
	if m.Len() != n {
		t.Fatalf("expected %d live projectiles, got %d", n, m.Len())
	}

	for tick := 0; tick < 4; tick++ {
		if err := m.Update(context.Background(), 0.05); err != nil {
			t.Fatal(err)
		}
	}
	for i, h := range hp {
		if h.Hits != 1 {
			t.Fatalf("target %d took %d hits, want 1", i, h.Hits)
		}
	}
	if m.Len() != 0 {
		t.Fatalf("all projectiles should have terminated, %d left", m.Len())
	}
}

func TestManager_CancelledContext(t *testing.T) {
	r := newRig()
	m := NewManager(r.w, r.env)
	m.Parallel = true
	for i := 0; i < parallelThreshold; i++ {
		m.Spawn(shot(shell(10, 0), geom.V(float64(i), 0, 0)), nil, nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Update(ctx, 0.1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.Flying() != parallelThreshold {
		t.Fatal("a cancelled tick must not commit any step")
	}
}

func TestManager_DropsMisconfigured(t *testing.T) {
	r := newRig()
	m := NewManager(r.w, r.env)
	c := m.Spawn(shot(nil, geom.Zero), nil, nil)
	if !c.Done() || m.Len() != 0 {
		t.Fatal("a disabled projectile should not be tracked")
	}
}
