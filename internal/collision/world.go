package collision

import (
	"sort"

	"github.com/Garsondee/firing-range/internal/geom"
)

// ShapeKind selects the primitive a collider uses.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

// ColliderDef is the authoring description of a collider.
type ColliderDef struct {
	Node    NodeID
	Shape   ShapeKind
	Center  geom.Vec3
	Half    geom.Vec3 // box half extents
	Radius  float64   // sphere radius
	Layer   Mask
	Trigger bool
	Body    BodyID
	Tag     string
}

type collider struct {
	ColliderDef
	enabled bool
}

type node struct {
	parent NodeID
	name   string
}

// World is a brute-force reference backend. Queries only read state, so any
// number of goroutines may cast at once as long as nobody mutates the world
// during that window.
type World struct {
	nodes     map[NodeID]node
	nextNode  NodeID
	colliders []collider // index = ColliderID-1
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{nodes: make(map[NodeID]node)}
}

// AddNode creates a transform under parent (NoNode for a root).
func (w *World) AddNode(parent NodeID, name string) NodeID {
	w.nextNode++
	w.nodes[w.nextNode] = node{parent: parent, name: name}
	return w.nextNode
}

// NodeName returns the debug name given to n.
func (w *World) NodeName(n NodeID) string {
	return w.nodes[n].name
}

// Parent implements Hierarchy.
func (w *World) Parent(n NodeID) (NodeID, bool) {
	nd, ok := w.nodes[n]
	if !ok || nd.parent == NoNode {
		return NoNode, false
	}
	return nd.parent, true
}

// AddCollider registers a collider and returns its identity.
func (w *World) AddCollider(def ColliderDef) ColliderID {
	if def.Layer == 0 {
		def.Layer = LayerDefault
	}
	w.colliders = append(w.colliders, collider{ColliderDef: def, enabled: true})
	return ColliderID(len(w.colliders))
}

// AddBox is shorthand for a solid box collider.
func (w *World) AddBox(n NodeID, center, half geom.Vec3, layer Mask, tag string) ColliderID {
	return w.AddCollider(ColliderDef{Node: n, Shape: ShapeBox, Center: center, Half: half, Layer: layer, Tag: tag})
}

// AddSphere is shorthand for a solid sphere collider.
func (w *World) AddSphere(n NodeID, center geom.Vec3, radius float64, layer Mask, tag string) ColliderID {
	return w.AddCollider(ColliderDef{Node: n, Shape: ShapeSphere, Center: center, Radius: radius, Layer: layer, Tag: tag})
}

func (w *World) get(c ColliderID) *collider {
	i := int(c) - 1
	if i < 0 || i >= len(w.colliders) {
		return nil
	}
	return &w.colliders[i]
}

// SetEnabled turns a collider on or off.
func (w *World) SetEnabled(c ColliderID, on bool) {
	if col := w.get(c); col != nil {
		col.enabled = on
	}
}

// DisableNode turns off every collider attached to n or its descendants.
func (w *World) DisableNode(n NodeID) {
	for i := range w.colliders {
		if IsDescendant(w, w.colliders[i].Node, n) {
			w.colliders[i].enabled = false
		}
	}
}

// MoveNode translates every collider under n by delta.
func (w *World) MoveNode(n NodeID, delta geom.Vec3) {
	for i := range w.colliders {
		if IsDescendant(w, w.colliders[i].Node, n) {
			w.colliders[i].Center = w.colliders[i].Center.Add(delta)
		}
	}
}

// Describe implements Backend.
func (w *World) Describe(c ColliderID) (Info, bool) {
	col := w.get(c)
	if col == nil {
		return Info{}, false
	}
	return Info{Node: col.Node, Body: col.Body, Tag: col.Tag, Layer: col.Layer, Trigger: col.Trigger}, true
}

// Bounds returns the AABB of a collider, for drawing.
func (w *World) Bounds(c ColliderID) (geom.AABB, bool) {
	col := w.get(c)
	if col == nil {
		return geom.AABB{}, false
	}
	if col.Shape == ShapeSphere {
		r := col.Radius
		return geom.BoxAt(col.Center, geom.V(r, r, r)), true
	}
	return geom.BoxAt(col.Center, col.Half), true
}

// Colliders returns every enabled collider identity in creation order.
func (w *World) Colliders() []ColliderID {
	out := make([]ColliderID, 0, len(w.colliders))
	for i := range w.colliders {
		if w.colliders[i].enabled {
			out = append(out, ColliderID(i+1))
		}
	}
	return out
}

func (w *World) passes(col *collider, mask Mask, triggers TriggerPolicy) bool {
	if !col.enabled || !mask.Has(col.Layer) {
		return false
	}
	if col.Trigger && triggers == IgnoreTriggers {
		return false
	}
	return true
}

// Raycast implements Backend.
func (w *World) Raycast(origin, dir geom.Vec3, maxDist float64, mask Mask, triggers TriggerPolicy) []Hit {
	return w.sweep(origin, dir, 0, maxDist, mask, triggers)
}

// SphereCast implements Backend. Boxes are inflated by the radius on every
// face, so corners are treated as square rather than rounded.
func (w *World) SphereCast(origin, dir geom.Vec3, radius, maxDist float64, mask Mask, triggers TriggerPolicy) []Hit {
	return w.sweep(origin, dir, radius, maxDist, mask, triggers)
}

func (w *World) sweep(origin, dir geom.Vec3, radius, maxDist float64, mask Mask, triggers TriggerPolicy) []Hit {
	d, ok := dir.Normalized()
	if !ok || maxDist <= 0 || !origin.IsFinite() {
		return nil
	}
	var hits []Hit
	for i := range w.colliders {
		col := &w.colliders[i]
		if !w.passes(col, mask, triggers) {
			continue
		}

		var (
			t      float64
			normal geom.Vec3
			inside bool
			hit    bool
		)
		switch col.Shape {
		case ShapeSphere:
			t, normal, inside, hit = geom.RaySphere(origin, d, geom.Sphere{Center: col.Center, Radius: col.Radius + radius})
		default:
			t, normal, inside, hit = geom.RayAABB(origin, d, geom.BoxAt(col.Center, col.Half).Expand(radius))
		}
		if !hit || inside || t > maxDist {
			continue
		}

		// Contact point on the collider surface, not the swept sphere center.
		point := origin.Add(d.Scale(t)).Sub(normal.Scale(radius))
		hits = append(hits, Hit{
			Point:    point,
			Normal:   normal,
			Distance: t,
			Collider: ColliderID(i + 1),
			Node:     col.Node,
			Body:     col.Body,
			Tag:      col.Tag,
		})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Collider < hits[b].Collider
	})
	return hits
}

// Overlap implements Backend.
func (w *World) Overlap(point geom.Vec3, radius float64, mask Mask, triggers TriggerPolicy) []ColliderID {
	probe := geom.Sphere{Center: point, Radius: radius}
	var out []ColliderID
	for i := range w.colliders {
		col := &w.colliders[i]
		if !w.passes(col, mask, triggers) {
			continue
		}
		var touching bool
		switch col.Shape {
		case ShapeSphere:
			touching = geom.SphereOverlapsSphere(probe, geom.Sphere{Center: col.Center, Radius: col.Radius})
		default:
			touching = geom.SphereOverlapsAABB(probe, geom.BoxAt(col.Center, col.Half))
		}
		if touching {
			out = append(out, ColliderID(i+1))
		}
	}
	return out
}
