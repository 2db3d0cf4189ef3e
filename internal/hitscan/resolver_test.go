package hitscan

import (
	"math"
	"math/rand"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/fx"
	fxmocks "github.com/Garsondee/firing-range/internal/fx/mocks"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/target"
)

// --- Scene helpers ---

type scene struct {
	w       *collision.World
	reg     *target.Registry
	rec     *fx.Recorder
	log     *combatlog.Log
	env     *effect.Env
	res     *Resolver
	shooter collision.NodeID
}

func newScene() *scene {
	w := collision.NewWorld()
	reg := target.NewRegistry(w)
	rec := fx.NewRecorder()
	log := combatlog.New(true)
	env := effect.NewEnv(reg, rec, log, 1)
	shooter := w.AddNode(collision.NoNode, "shooter")
	w.AddBox(shooter, geom.V(0, 0, 0), geom.V(0.3, 0.9, 0.3), collision.LayerPlayer, "player")
	return &scene{w: w, reg: reg, rec: rec, log: log, env: env, res: New(w, env), shooter: shooter}
}

// dummy adds a target whose colliders are thin slabs at the given z values.
func (s *scene) dummy(name string, zs ...float64) (*target.Health, target.ID) {
	root := s.w.AddNode(collision.NoNode, name)
	for _, z := range zs {
		part := s.w.AddNode(root, name+"_part")
		s.w.AddBox(part, geom.V(0, 0, z), geom.V(0.5, 0.5, 0.05), collision.LayerTarget, "")
	}
	h := target.NewHealth(1000)
	id := s.reg.Add(target.Target{Name: name, Root: root, Sink: h})
	s.reg.BindNode(root, id)
	return h, id
}

func (s *scene) wall(z float64) collision.ColliderID {
	n := s.w.AddNode(collision.NoNode, "wall")
	return s.w.AddBox(n, geom.V(0, 0, z), geom.V(2, 2, 0.1), collision.LayerWorld, "wall")
}

func bullet(pen int) *profile.BulletProfile {
	return &profile.BulletProfile{
		ID:               "test",
		BaseDamage:       10,
		Falloff:          profile.Constant(1),
		MaxRange:         100,
		PenetrationCount: pen,
	}
}

func damageOnly(t *testing.T) effect.Pipeline {
	t.Helper()
	p, err := effect.Build([]profile.EffectEntry{{Kind: profile.KindDamage}})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func (s *scene) fire(t *testing.T, b *profile.BulletProfile, origin geom.Vec3) Result {
	t.Helper()
	shot := &effect.Shot{
		Instigator: s.shooter,
		Shooter:    "P1",
		Origin:     origin,
		Direction:  geom.Forward,
		Bullet:     b,
		Weapon:     &profile.WeaponFireProfile{ID: "test", Pellets: 1, FireRate: 1, Bullet: b},
	}
	return s.res.Resolve(shot, damageOnly(t), nil)
}

// --- Tests ---

func TestHitscan_AtMostOncePerTarget(t *testing.T) {
	s := newScene()
	h, _ := s.dummy("ogre", 10, 10.5, 11, 11.5)

	res := s.fire(t, bullet(5), geom.V(0, 0, 0.5))
	if h.Hits != 1 {
		t.Fatalf("four colliders of one target should take one damage call, got %d", h.Hits)
	}
	if res.Resolved() != 1 || len(res.Stops) != 4 {
		t.Fatalf("expected 1 resolved stop of 4, got %d of %d", res.Resolved(), len(res.Stops))
	}
}

func TestHitscan_PenetrationBudget(t *testing.T) {
	const k = 1
	s := newScene()
	a, _ := s.dummy("a", 10)
	b, _ := s.dummy("b", 20)
	c, _ := s.dummy("c", 30)

	s.fire(t, bullet(k), geom.V(0, 0, 0.5))
	if a.Hits != 1 || b.Hits != 1 {
		t.Fatalf("first k+1 targets should be hit, got a=%d b=%d", a.Hits, b.Hits)
	}
	if c.Hits != 0 {
		t.Fatal("the (k+2)-th target must be untouched")
	}
}

func TestHitscan_DuplicatesFreeByDefault(t *testing.T) {
	s := newScene()
	ogre, _ := s.dummy("ogre", 10, 11)
	imp, _ := s.dummy("imp", 20)

	s.fire(t, bullet(1), geom.V(0, 0, 0.5))
	if ogre.Hits != 1 || imp.Hits != 1 {
		t.Fatalf("duplicate collider must not eat the budget: ogre=%d imp=%d", ogre.Hits, imp.Hits)
	}
}

func TestHitscan_DuplicatesConsumeWhenConfigured(t *testing.T) {
	s := newScene()
	ogre, _ := s.dummy("ogre", 10, 11)
	imp, _ := s.dummy("imp", 20)

	b := bullet(1)
	b.DuplicateHitsConsumePenetration = true
	s.fire(t, b, geom.V(0, 0, 0.5))
	if ogre.Hits != 1 {
		t.Fatalf("ogre should still be hit once, got %d", ogre.Hits)
	}
	if imp.Hits != 0 {
		t.Fatal("with per-surface budgeting the duplicate crossing spends the last unit")
	}
}

func TestHitscan_GeometryStopsPellet(t *testing.T) {
	s := newScene()
	s.wall(5)
	h, _ := s.dummy("behind", 10)

	res := s.fire(t, bullet(0), geom.V(0, 0, 0.5))
	if h.Hits != 0 {
		t.Fatal("a wall should spend the only budget unit")
	}
	if len(res.Stops) != 1 || res.Stops[0].Target != target.Nil {
		t.Fatalf("expected a single geometry stop, got %+v", res.Stops)
	}
	if s.log.Count(combatlog.CatHitscan, "hit") != 1 {
		t.Fatal("geometry stop should still be logged as a hit")
	}
}

func TestHitscan_Falloff(t *testing.T) {
	cases := []struct {
		face float64
		want int
	}{
		{50, 75},
		{100, 50},
	}
	for _, tc := range cases {
		s := newScene()
		h, _ := s.dummy("d", tc.face+0.05)
		b := bullet(0)
		b.BaseDamage = 100
		b.Falloff = profile.Linear(1, 0.5)
		s.fire(t, b, geom.Zero)
		if h.TotalTaken != tc.want {
			t.Fatalf("face at %.0fm: took %d, want %d", tc.face, h.TotalTaken, tc.want)
		}
	}
}

func TestHitscan_StartInsideCollider(t *testing.T) {
	s := newScene()
	root := s.w.AddNode(collision.NoNode, "crate_dummy")
	s.w.AddBox(root, geom.V(0, 0, 1), geom.V(1, 1, 1), collision.LayerTarget, "")
	h := target.NewHealth(100)
	id := s.reg.Add(target.Target{Sink: h})
	s.reg.BindNode(root, id)

	res := s.fire(t, bullet(3), geom.V(0, 0, 1))
	if h.Hits != 1 {
		t.Fatalf("embedded muzzle should register exactly one hit, got %d", h.Hits)
	}
	if len(res.Stops) == 0 || !res.Stops[0].Guard {
		t.Fatal("first stop should come from the start-inside check")
	}
	if res.Stops[0].Hit.Normal != geom.Forward.Neg() {
		t.Fatalf("synthesized hit should face the shooter, got %+v", res.Stops[0].Hit.Normal)
	}
}

func TestHitscan_StartInsideBackCastFindsSurface(t *testing.T) {
	s := newScene()
	// Muzzle is 5mm inside the front face.
	h, _ := s.dummy("thin", 10)
	res := s.fire(t, bullet(0), geom.V(0, 0, 9.955))
	if h.Hits != 1 {
		t.Fatalf("expected one hit, got %d", h.Hits)
	}
	if got := res.Stops[0].Hit.Point.Z; math.Abs(got-9.95) > 1e-9 {
		t.Fatalf("back-cast should find the real front face at 9.95, got %.4f", got)
	}
}

func TestHitscan_IgnoresOwnHierarchy(t *testing.T) {
	s := newScene()
	h, _ := s.dummy("d", 10)
	// Fire from inside the shooter's own body.
	s.fire(t, bullet(0), geom.Zero)
	if h.Hits != 1 {
		t.Fatal("own collider must neither stop nor spend budget")
	}
	if s.log.Count(combatlog.CatHitscan, "guard_hit") != 0 {
		t.Fatal("self overlap must not produce a guard hit")
	}
}

func TestHitscan_OtherInstigatorCanHitShooter(t *testing.T) {
	s := newScene()
	h := target.NewHealth(100)
	id := s.reg.Add(target.Target{Sink: h})
	s.reg.BindNode(s.shooter, id)

	enemy := s.w.AddNode(collision.NoNode, "enemy")
	shot := &effect.Shot{
		Instigator: enemy,
		Origin:     geom.V(0, 0, -10),
		Direction:  geom.Forward,
		Bullet:     bullet(0),
	}
	s.res.Resolve(shot, damageOnly(t), nil)
	if h.Hits != 1 {
		t.Fatal("another instigator's pellet should hit the shooter")
	}
}

func TestHitscan_TracersClippedToTravel(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := fxmocks.NewMockSpawner(ctrl)

	s := newScene()
	s.env.FX = spawner
	s.wall(20)

	origin := geom.V(0, 0, 0.5)
	near := func(a, b geom.Vec3) bool { return a.Dist(b) < 1e-9 }
	gomock.InOrder(
		spawner.EXPECT().SpawnTracer(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(start, end geom.Vec3, lifetime float64) {
				if !near(start, origin) || !near(end, geom.V(0, 0, 19.9)) {
					t.Errorf("tracer should run from the muzzle to the wall face, got %+v → %+v", start, end)
				}
				if lifetime != tracerLifetime {
					t.Errorf("unexpected tracer lifetime %.3f", lifetime)
				}
			}),
		spawner.EXPECT().SpawnImpact(gomock.Any(), geom.V(0, 0, -1)).
			Do(func(point, normal geom.Vec3) {
				if !near(point, geom.V(0, 0, 19.9)) {
					t.Errorf("impact should sit on the wall face, got %+v", point)
				}
			}),
	)
	res := s.fire(t, bullet(0), origin)
	if res.Segments != 1 {
		t.Fatalf("expected one tracer, got %d", res.Segments)
	}
}

func TestHitscan_MissDrawsFullRange(t *testing.T) {
	s := newScene()
	res := s.fire(t, bullet(0), geom.V(0, 0, 0.5))
	if len(res.Stops) != 0 || res.Segments != 1 {
		t.Fatalf("expected a clean miss, got %+v", res)
	}
	if math.Abs(res.End.Z-100.5) > 1e-9 {
		t.Fatalf("tracer should reach max range, ended at %+v", res.End)
	}
}

func TestHitscan_OneTracerPerSegment(t *testing.T) {
	s := newScene()
	s.dummy("a", 10)
	s.dummy("b", 20)
	res := s.fire(t, bullet(5), geom.V(0, 0, 0.5))
	// a, b, then open air to range end.
	if res.Segments != 3 || len(s.rec.Tracers) != 3 {
		t.Fatalf("expected 3 tracer segments, got %d", res.Segments)
	}
}

func TestHitscan_ZeroDirection(t *testing.T) {
	s := newScene()
	h, _ := s.dummy("d", 10)
	shot := &effect.Shot{Instigator: s.shooter, Origin: geom.V(0, 0, 0.5), Bullet: bullet(0)}
	res := s.res.Resolve(shot, damageOnly(t), nil)
	if h.Hits != 0 || res.Segments != 0 {
		t.Fatal("zero aim should resolve nothing")
	}
}

func TestHitscan_MissingBulletDropped(t *testing.T) {
	s := newScene()
	shot := &effect.Shot{Instigator: s.shooter, Direction: geom.Forward}
	s.res.Resolve(shot, damageOnly(t), nil)
	if !s.log.HasEntry(combatlog.CatConfig, "drop", "") {
		t.Fatal("missing bullet should be logged as a dropped shot")
	}
}

func TestHitscan_BloomStaysInCone(t *testing.T) {
	s := newScene()
	b := bullet(0)
	b.BloomDegrees = 10
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test
	shot := &effect.Shot{Instigator: s.shooter, Origin: geom.V(0, 0, 0.5), Direction: geom.Forward, Bullet: b}
	for i := 0; i < 500; i++ {
		res := s.res.Resolve(shot, nil, rng)
		if dev := geom.Rad2Deg(geom.AngleBetween(geom.Forward, res.Direction)); dev > 10+1e-4 {
			t.Fatalf("pellet %d deviated %.3f°", i, dev)
		}
	}
}

func TestHitscan_SphereCastClipsNearMiss(t *testing.T) {
	s := newScene()
	root := s.w.AddNode(collision.NoNode, "side")
	s.w.AddBox(root, geom.V(1, 0, 8), geom.V(0.4, 0.4, 0.4), collision.LayerTarget, "")
	h := target.NewHealth(100)
	id := s.reg.Add(target.Target{Sink: h})
	s.reg.BindNode(root, id)

	b := bullet(0)
	s.fire(t, b, geom.V(0, 0, 0.5))
	if h.Hits != 0 {
		t.Fatal("a ray should pass beside the box")
	}
	b.CastRadius = 0.75
	s.fire(t, b, geom.V(0, 0, 0.5))
	if h.Hits != 1 {
		t.Fatal("a fat sphere-cast should clip the box")
	}
}
