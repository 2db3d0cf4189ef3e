package collision

import (
	"math"
	"testing"

	"github.com/Garsondee/firing-range/internal/geom"
)

func lane() (*World, NodeID, NodeID) {
	w := NewWorld()
	shooter := w.AddNode(NoNode, "shooter")
	gun := w.AddNode(shooter, "gun")
	w.AddBox(gun, geom.V(0, 0, 0.2), geom.V(0.1, 0.1, 0.3), LayerPlayer, "player")
	wall := w.AddNode(NoNode, "wall")
	w.AddBox(wall, geom.V(0, 0, 10), geom.V(2, 2, 0.25), LayerWorld, "wall")
	return w, shooter, gun
}

func TestRaycast_SortedAscending(t *testing.T) {
	w := NewWorld()
	n := w.AddNode(NoNode, "row")
	far := w.AddBox(n, geom.V(0, 0, 20), geom.V(1, 1, 1), LayerTarget, "")
	near := w.AddBox(n, geom.V(0, 0, 5), geom.V(1, 1, 1), LayerTarget, "")
	mid := w.AddSphere(n, geom.V(0, 0, 12), 1, LayerTarget, "")

	hits := w.Raycast(geom.Zero, geom.Forward, 100, MaskAll, IgnoreTriggers)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	want := []ColliderID{near, mid, far}
	for i, h := range hits {
		if h.Collider != want[i] {
			t.Fatalf("hit %d: collider %d, want %d", i, h.Collider, want[i])
		}
	}
}

func TestRaycast_RespectsMaxDistance(t *testing.T) {
	w, _, _ := lane()
	if hits := w.Raycast(geom.V(0, 0, 1), geom.Forward, 5, LayerWorld, IgnoreTriggers); len(hits) != 0 {
		t.Fatalf("wall at 9.75 should be out of a 5m cast, got %d hits", len(hits))
	}
	if hits := w.Raycast(geom.V(0, 0, 1), geom.Forward, 9, LayerWorld, IgnoreTriggers); len(hits) != 1 {
		t.Fatalf("wall at 8.75 should be inside a 9m cast, got %d hits", len(hits))
	}
}

func TestRaycast_StartInsideNotReported(t *testing.T) {
	w, _, _ := lane()
	hits := w.Raycast(geom.V(0, 0, 10), geom.Forward, 50, MaskAll, IgnoreTriggers)
	if len(hits) != 0 {
		t.Fatalf("a ray starting inside the wall must not report it, got %d hits", len(hits))
	}
}

func TestRaycast_MaskAndTriggers(t *testing.T) {
	w := NewWorld()
	n := w.AddNode(NoNode, "zone")
	w.AddCollider(ColliderDef{Node: n, Shape: ShapeBox, Center: geom.V(0, 0, 5), Half: geom.V(1, 1, 1), Layer: LayerTarget, Trigger: true})

	if hits := w.Raycast(geom.Zero, geom.Forward, 20, MaskAll, IgnoreTriggers); len(hits) != 0 {
		t.Fatal("trigger should be skipped under IgnoreTriggers")
	}
	if hits := w.Raycast(geom.Zero, geom.Forward, 20, MaskAll, IncludeTriggers); len(hits) != 1 {
		t.Fatal("trigger should be reported under IncludeTriggers")
	}
	if hits := w.Raycast(geom.Zero, geom.Forward, 20, LayerWorld, IncludeTriggers); len(hits) != 0 {
		t.Fatal("layer outside the mask should be skipped")
	}
}

func TestRaycast_ZeroDirection(t *testing.T) {
	w, _, _ := lane()
	if hits := w.Raycast(geom.Zero, geom.Zero, 50, MaskAll, IgnoreTriggers); hits != nil {
		t.Fatal("zero direction should produce no hits")
	}
}

func TestSphereCast_WiderThanRay(t *testing.T) {
	w := NewWorld()
	n := w.AddNode(NoNode, "post")
	w.AddBox(n, geom.V(1.2, 0, 10), geom.V(0.5, 0.5, 0.5), LayerWorld, "")

	if hits := w.Raycast(geom.Zero, geom.Forward, 50, MaskAll, IgnoreTriggers); len(hits) != 0 {
		t.Fatal("thin ray should pass beside the post")
	}
	hits := w.SphereCast(geom.Zero, geom.Forward, 1, 50, MaskAll, IgnoreTriggers)
	if len(hits) != 1 {
		t.Fatalf("1m sphere should clip the post, got %d hits", len(hits))
	}
	if math.Abs(hits[0].Distance-8.5) > 1e-9 {
		t.Fatalf("expected sweep distance 8.5, got %.4f", hits[0].Distance)
	}
	if math.Abs(hits[0].Point.Z-9.5) > 1e-9 {
		t.Fatalf("contact point should sit on the post face, got %+v", hits[0].Point)
	}
}

func TestOverlap_FindsEmbeddedCollider(t *testing.T) {
	w, _, _ := lane()
	ids := w.Overlap(geom.V(0, 0, 10), 0.01, MaskAll, IgnoreTriggers)
	if len(ids) != 1 {
		t.Fatalf("expected the wall, got %v", ids)
	}
	info, ok := w.Describe(ids[0])
	if !ok || info.Tag != "wall" {
		t.Fatalf("unexpected collider info %+v", info)
	}
}

func TestIsDescendant(t *testing.T) {
	w, shooter, gun := lane()
	if !IsDescendant(w, gun, shooter) {
		t.Fatal("gun should be under shooter")
	}
	if !IsDescendant(w, shooter, shooter) {
		t.Fatal("a node counts as its own descendant")
	}
	if IsDescendant(w, shooter, gun) {
		t.Fatal("parent is not under child")
	}
	if IsDescendant(w, gun, NoNode) {
		t.Fatal("NoNode root matches nothing")
	}
}

func TestFirstNotUnder_SkipsOwnHierarchy(t *testing.T) {
	w, shooter, _ := lane()
	hits := w.Raycast(geom.V(0, 0, -1), geom.Forward, 50, MaskAll, IgnoreTriggers)
	if len(hits) != 2 {
		t.Fatalf("expected gun and wall, got %d", len(hits))
	}
	h, ok := FirstNotUnder(w, hits, shooter)
	if !ok || h.Tag != "wall" {
		t.Fatalf("expected wall after skipping own gun, got %+v", h)
	}
}

func TestDisableNode(t *testing.T) {
	w, _, _ := lane()
	wall := NodeID(3)
	if w.NodeName(wall) != "wall" {
		t.Fatalf("node layout changed: %q", w.NodeName(wall))
	}
	w.DisableNode(wall)
	if hits := w.Raycast(geom.V(0, 0, 1), geom.Forward, 50, MaskAll, IgnoreTriggers); len(hits) != 0 {
		t.Fatal("disabled colliders must not be hit")
	}
}

func TestEmbedded(t *testing.T) {
	w, shooter, _ := lane()

	if hits := Embedded(w, geom.V(0, 0, 0.2), geom.Forward, 0, MaskAll, IgnoreTriggers, shooter); len(hits) != 0 {
		t.Fatalf("own gun must be skipped, got %+v", hits)
	}

	hits := Embedded(w, geom.V(0, 0, 9.76), geom.Forward, 0, MaskAll, IgnoreTriggers, shooter)
	if len(hits) != 1 {
		t.Fatalf("expected the wall, got %d hits", len(hits))
	}
	if math.Abs(hits[0].Point.Z-9.75) > 1e-9 || hits[0].Distance != 0 {
		t.Fatalf("back-cast should land on the front face with zero distance, got %+v", hits[0])
	}

	deep := Embedded(w, geom.V(0, 0, 10), geom.Forward, 0, MaskAll, IgnoreTriggers, shooter)
	if len(deep) != 1 || deep[0].Point != geom.V(0, 0, 10) || deep[0].Normal != geom.Forward.Neg() {
		t.Fatalf("deep overlap should synthesize a hit at the origin, got %+v", deep)
	}
}
