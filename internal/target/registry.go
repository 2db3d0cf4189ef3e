package target

import (
	"github.com/Garsondee/firing-range/internal/collision"
)

// maxParentWalk bounds the parent-chain lookup.
const maxParentWalk = 256

// Registry resolves collision hits to targets. Lookup order is the node
// parent chain, then hitbox proxies keyed by collider, then tags.
// Removing a target drops all of its bindings so later lookups miss.
type Registry struct {
	h       collision.Hierarchy
	targets map[ID]*Target
	order   []ID

	nodes   map[collision.NodeID]ID
	proxies map[collision.ColliderID]ID
	tags    map[string]ID
	bodies  map[collision.BodyID]Body
}

// NewRegistry builds an empty registry that walks parent chains through h.
func NewRegistry(h collision.Hierarchy) *Registry {
	return &Registry{
		h:       h,
		targets: make(map[ID]*Target),
		nodes:   make(map[collision.NodeID]ID),
		proxies: make(map[collision.ColliderID]ID),
		tags:    make(map[string]ID),
		bodies:  make(map[collision.BodyID]Body),
	}
}

// Add registers t, assigning an ID when it has none, and returns the ID.
func (r *Registry) Add(t Target) ID {
	if t.ID == Nil {
		t.ID = NewID()
	}
	tc := t
	if _, exists := r.targets[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.targets[t.ID] = &tc
	return t.ID
}

// Remove forgets a target and every binding that points at it.
func (r *Registry) Remove(id ID) {
	t, ok := r.targets[id]
	if !ok {
		return
	}
	delete(r.targets, id)
	if t.Body != nil {
		for b, body := range r.bodies {
			if body == t.Body {
				delete(r.bodies, b)
			}
		}
	}
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for n, owner := range r.nodes {
		if owner == id {
			delete(r.nodes, n)
		}
	}
	for c, owner := range r.proxies {
		if owner == id {
			delete(r.proxies, c)
		}
	}
	for tag, owner := range r.tags {
		if owner == id {
			delete(r.tags, tag)
		}
	}
}

// Get returns the target with the given ID.
func (r *Registry) Get(id ID) (*Target, bool) {
	t, ok := r.targets[id]
	return t, ok
}

// All returns live targets in insertion order.
func (r *Registry) All() []*Target {
	out := make([]*Target, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.targets[id])
	}
	return out
}

// Len returns the number of live targets.
func (r *Registry) Len() int { return len(r.targets) }

// BindNode makes n and everything below it resolve to id.
func (r *Registry) BindNode(n collision.NodeID, id ID) {
	r.nodes[n] = id
}

// BindProxy routes a hitbox collider to id.
func (r *Registry) BindProxy(c collision.ColliderID, id ID) {
	r.proxies[c] = id
}

// BindTag makes any collider carrying tag resolve to id.
func (r *Registry) BindTag(tag string, id ID) {
	if tag == "" {
		return
	}
	r.tags[tag] = id
}

// BindBody attaches a physics body to a collision body identity.
func (r *Registry) BindBody(b collision.BodyID, body Body) {
	if b == collision.NoBody {
		return
	}
	r.bodies[b] = body
}

// Resolve returns the target a hit belongs to.
func (r *Registry) Resolve(hit collision.Hit) (ID, bool) {
	n := hit.Node
	for i := 0; i < maxParentWalk && n != collision.NoNode; i++ {
		if id, ok := r.nodes[n]; ok {
			if _, alive := r.targets[id]; alive {
				return id, true
			}
		}
		p, ok := r.h.Parent(n)
		if !ok {
			break
		}
		n = p
	}
	if id, ok := r.proxies[hit.Collider]; ok {
		if _, alive := r.targets[id]; alive {
			return id, true
		}
	}
	if hit.Tag != "" {
		if id, ok := r.tags[hit.Tag]; ok {
			if _, alive := r.targets[id]; alive {
				return id, true
			}
		}
	}
	return Nil, false
}

// Sink returns the damage sink for a hit.
func (r *Registry) Sink(hit collision.Hit) (DamageSink, ID, bool) {
	id, ok := r.Resolve(hit)
	if !ok {
		return nil, Nil, false
	}
	t := r.targets[id]
	if t.Sink == nil {
		return nil, id, false
	}
	return t.Sink, id, true
}

// Body returns the physics body for a hit: the collider's attached body
// first, then the resolved target's body.
func (r *Registry) Body(hit collision.Hit) (Body, bool) {
	if b, ok := r.bodies[hit.Body]; ok && b != nil {
		return b, true
	}
	id, ok := r.Resolve(hit)
	if !ok {
		return nil, false
	}
	if b := r.targets[id].Body; b != nil {
		return b, true
	}
	return nil, false
}

// Agent returns the navigation agent for a hit.
func (r *Registry) Agent(hit collision.Hit) (Agent, ID, bool) {
	id, ok := r.Resolve(hit)
	if !ok {
		return nil, Nil, false
	}
	a, ok := r.AgentOf(id)
	return a, id, ok
}

// AgentOf returns the agent of a live target.
func (r *Registry) AgentOf(id ID) (Agent, bool) {
	t, ok := r.targets[id]
	if !ok || t.Agent == nil {
		return nil, false
	}
	return t.Agent, true
}

// Resistance returns the knockback multiplier for a target, 1.0 by default.
func (r *Registry) Resistance(id ID) float64 {
	t, ok := r.targets[id]
	if !ok {
		return 1
	}
	for _, c := range []any{t.Sink, t.Body, t.Agent} {
		if kr, ok := c.(KnockbackResistor); ok {
			return kr.KnockbackResistance()
		}
	}
	return 1
}
