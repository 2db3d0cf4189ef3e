// Package collision defines the query surface the combat layer casts against,
// plus World, an in-memory reference backend built from boxes and spheres.
package collision

import (
	"fmt"

	"github.com/Garsondee/firing-range/internal/geom"
)

// NodeID identifies a transform in the scene hierarchy. NoNode is the zero value.
type NodeID int

// ColliderID identifies one collider. NoCollider is the zero value.
type ColliderID int

// BodyID identifies a physics body attached to a collider. NoBody is the zero value.
type BodyID int

const (
	NoNode     NodeID     = 0
	NoCollider ColliderID = 0
	NoBody     BodyID     = 0
)

// Mask is a bit set of collision layers.
type Mask uint32

// Layer bits used by the reference scenes.
const (
	LayerDefault Mask = 1 << iota
	LayerWorld
	LayerTarget
	LayerHitbox
	LayerPlayer
	LayerProjectile

	MaskAll Mask = ^Mask(0)
)

// Has reports whether any bit of layer is set in m.
func (m Mask) Has(layer Mask) bool {
	return m&layer != 0
}

// TriggerPolicy selects whether trigger volumes take part in a query.
type TriggerPolicy int

const (
	IgnoreTriggers TriggerPolicy = iota
	IncludeTriggers
)

func (p TriggerPolicy) String() string {
	if p == IncludeTriggers {
		return "include"
	}
	return "ignore"
}

// MarshalText encodes the policy as "ignore" or "include".
func (p TriggerPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts "ignore", "include" or the empty string.
func (p *TriggerPolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "ignore":
		*p = IgnoreTriggers
	case "include":
		*p = IncludeTriggers
	default:
		return fmt.Errorf("unknown trigger policy %q", string(b))
	}
	return nil
}

// Hit is one entry of a cast result.
type Hit struct {
	Point    geom.Vec3
	Normal   geom.Vec3
	Distance float64
	Collider ColliderID
	Node     NodeID // transform the collider is attached to
	Body     BodyID // attached physics body, NoBody if none
	Tag      string
}

// Info describes a collider without a cast.
type Info struct {
	Node    NodeID
	Body    BodyID
	Tag     string
	Layer   Mask
	Trigger bool
}

// Hierarchy answers parent-chain questions about scene nodes.
type Hierarchy interface {
	// Parent returns n's parent; ok is false for roots and unknown nodes.
	Parent(n NodeID) (parent NodeID, ok bool)
}

// Backend is the collision query service. Cast results are sorted ascending
// by distance. A cast whose origin starts inside a collider does not report
// that collider.
type Backend interface {
	Hierarchy
	Raycast(origin, dir geom.Vec3, maxDist float64, mask Mask, triggers TriggerPolicy) []Hit
	SphereCast(origin, dir geom.Vec3, radius, maxDist float64, mask Mask, triggers TriggerPolicy) []Hit
	Overlap(point geom.Vec3, radius float64, mask Mask, triggers TriggerPolicy) []ColliderID
	Describe(c ColliderID) (Info, bool)
}

// maxHierarchyDepth bounds parent walks so a malformed cycle cannot hang a query.
const maxHierarchyDepth = 256

// IsDescendant reports whether n is root or sits below root in h.
func IsDescendant(h Hierarchy, n, root NodeID) bool {
	if root == NoNode || n == NoNode {
		return false
	}
	for i := 0; i < maxHierarchyDepth; i++ {
		if n == root {
			return true
		}
		p, ok := h.Parent(n)
		if !ok {
			return false
		}
		n = p
	}
	return false
}

// Cast dispatches to Raycast or SphereCast depending on radius.
func Cast(b Backend, origin, dir geom.Vec3, radius, maxDist float64, mask Mask, triggers TriggerPolicy) []Hit {
	if radius > 0 {
		return b.SphereCast(origin, dir, radius, maxDist, mask, triggers)
	}
	return b.Raycast(origin, dir, maxDist, mask, triggers)
}

// FirstNotUnder returns the nearest hit whose node is not inside the root
// subtree. hits must be sorted ascending.
func FirstNotUnder(h Hierarchy, hits []Hit, root NodeID) (Hit, bool) {
	for _, hit := range hits {
		if root != NoNode && IsDescendant(h, hit.Node, root) {
			continue
		}
		return hit, true
	}
	return Hit{}, false
}

// ProbeEpsilon is the overlap radius used for start-inside checks on rays.
const ProbeEpsilon = 0.01

// Embedded returns one hit for every collider outside root's subtree that
// already overlaps origin. Each is found by backing up along -dir by the
// probe diameter and casting forward; when the back-cast cannot reach the
// surface the hit is synthesized at origin facing the shooter. Distances are
// zero: embedded hits consume no range.
func Embedded(b Backend, origin, dir geom.Vec3, radius float64, mask Mask, triggers TriggerPolicy, root NodeID) []Hit {
	probe := radius
	if probe <= 0 {
		probe = ProbeEpsilon
	}
	var out []Hit
	for _, c := range b.Overlap(origin, probe, mask, triggers) {
		info, ok := b.Describe(c)
		if !ok || IsDescendant(b, info.Node, root) {
			continue
		}

		back := origin.Sub(dir.Scale(2 * probe))
		hit, found := Hit{}, false
		for _, h := range Cast(b, back, dir, radius, 2*probe, mask, triggers) {
			if h.Collider == c {
				hit, found = h, true
				break
			}
		}
		if !found {
			hit = Hit{
				Point:    origin,
				Normal:   dir.Neg(),
				Collider: c,
				Node:     info.Node,
				Body:     info.Body,
				Tag:      info.Tag,
			}
		}
		hit.Distance = 0
		out = append(out, hit)
	}
	return out
}
