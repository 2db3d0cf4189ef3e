package render

import (
	"math"
	"testing"

	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/geom"
)

func TestCamera_RoundTrip(t *testing.T) {
	cam := NewCamera(800, 600, 20)
	for _, p := range []geom.Vec3{geom.V(0, 0, 0), geom.V(-5, 0, 12), geom.V(7.5, 0, -1)} {
		x, y := cam.ToScreen(p)
		back := cam.ToWorld(int(math.Round(float64(x))), int(math.Round(float64(y))), 0)
		if back.Dist(p) > 0.05 {
			t.Fatalf("%v -> (%.1f,%.1f) -> %v", p, x, y, back)
		}
	}
}

func TestCamera_DownRangeIsUp(t *testing.T) {
	cam := NewCamera(800, 600, 20)
	_, near := cam.ToScreen(geom.V(0, 0, 1))
	_, far := cam.ToScreen(geom.V(0, 0, 10))
	if far >= near {
		t.Fatalf("farther targets should sit higher on screen: near y=%.0f far y=%.0f", near, far)
	}
	_, yLow := cam.ToScreen(geom.V(0, 0, 5))
	_, yHigh := cam.ToScreen(geom.V(0, 3, 5))
	if yLow != yHigh {
		t.Fatal("height must not move a point on a top-down view")
	}
}

func TestTracerSpan(t *testing.T) {
	head, tail := tracerSpan(0)
	if head != 0 || tail != 0 {
		t.Fatalf("spawn: head=%.2f tail=%.2f", head, tail)
	}
	head, tail = tracerSpan(0.25)
	if head != 0.5 || math.Abs(tail-0.4) > 1e-12 {
		t.Fatalf("quarter: head=%.2f tail=%.2f", head, tail)
	}
	head, _ = tracerSpan(0.9)
	if head != 1 {
		t.Fatalf("head should clamp at the end point, got %.2f", head)
	}
}

func TestRGB(t *testing.T) {
	c := rgb(0x9acd32, 128)
	if c.R != 0x9a || c.G != 0xcd || c.B != 0x32 || c.A != 128 {
		t.Fatalf("unpacked %+v", c)
	}
}

func TestHPColor(t *testing.T) {
	if hpColor(1).G <= hpColor(1).R {
		t.Fatal("full health should read green")
	}
	if hpColor(0.1).R <= hpColor(0.1).G {
		t.Fatal("low health should read red")
	}
}

func TestShotPanel_SyncAndRing(t *testing.T) {
	log := combatlog.New(false)
	sp := NewShotPanel()
	for i := 0; i < 10; i++ {
		log.SetTick(i)
		log.Add("P1", combatlog.CatFire, "pull", "rifle", 0)
	}
	sp.Sync(log)
	sp.Sync(log)
	if got := len(sp.Recent()); got != 10 {
		t.Fatalf("syncing twice must not duplicate lines, got %d", got)
	}

	for i := 10; i < 100; i++ {
		log.SetTick(i)
		log.Add("P1", combatlog.CatFire, "pull", "rifle", 0)
	}
	sp.Sync(log)
	recent := sp.Recent()
	if len(recent) != panelMaxEntries {
		t.Fatalf("ring should cap at %d, got %d", panelMaxEntries, len(recent))
	}
	if recent[0].Tick != 100-panelMaxEntries || recent[len(recent)-1].Tick != 99 {
		t.Fatalf("ring should keep the newest lines oldest-first: %d..%d", recent[0].Tick, recent[len(recent)-1].Tick)
	}
}
