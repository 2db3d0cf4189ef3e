package target

import "github.com/Garsondee/firing-range/internal/geom"

// --- Health ---

// Health is the reference damage sink.
type Health struct {
	HP         int
	MaxHP      int
	Resist     float64 // knockback multiplier, 0 means 1.0
	Hits       int     // ApplyDamage calls received
	TotalTaken int
	OnDeath    func()
}

// NewHealth returns a full-health sink.
func NewHealth(max int) *Health {
	return &Health{HP: max, MaxHP: max}
}

// ApplyDamage implements DamageSink. Negative amounts are ignored.
func (h *Health) ApplyDamage(amount int) {
	h.Hits++
	if amount <= 0 {
		return
	}
	wasAlive := h.HP > 0
	h.TotalTaken += amount
	h.HP -= amount
	if h.HP < 0 {
		h.HP = 0
	}
	if wasAlive && h.HP == 0 && h.OnDeath != nil {
		h.OnDeath()
	}
}

// Dead reports whether HP reached zero.
func (h *Health) Dead() bool { return h.HP <= 0 }

// Fraction returns HP as a 0..1 ratio.
func (h *Health) Fraction() float64 {
	if h.MaxHP <= 0 {
		return 0
	}
	return float64(h.HP) / float64(h.MaxHP)
}

// KnockbackResistance implements KnockbackResistor.
func (h *Health) KnockbackResistance() float64 {
	if h.Resist == 0 {
		return 1
	}
	return h.Resist
}

// --- RigidBody ---

// RigidBody is a point-mass physics body.
type RigidBody struct {
	Pos         geom.Vec3
	Vel         geom.Vec3
	Mass        float64
	IsKinematic bool
	Drag        float64 // per-second linear damping
	Impulses    int
}

// Kinematic implements Body.
func (b *RigidBody) Kinematic() bool { return b.IsKinematic }

// AddImpulse implements Body.
func (b *RigidBody) AddImpulse(v geom.Vec3, mode ForceMode) {
	if !v.IsFinite() || b.IsKinematic {
		return
	}
	b.Impulses++
	if mode == VelocityChange || b.Mass <= 0 {
		b.Vel = b.Vel.Add(v)
		return
	}
	b.Vel = b.Vel.Add(v.Scale(1 / b.Mass))
}

// Step integrates position and damps velocity. Returns the displacement.
func (b *RigidBody) Step(dt float64) geom.Vec3 {
	if dt <= 0 || b.IsKinematic {
		return geom.Zero
	}
	delta := b.Vel.Scale(dt)
	b.Pos = b.Pos.Add(delta)
	if b.Drag > 0 {
		k := 1 - b.Drag*dt
		if k < 0 {
			k = 0
		}
		b.Vel = b.Vel.Scale(k)
	}
	return delta
}

// --- NavAgent ---

// NavAgent is the reference navigation agent.
type NavAgent struct {
	Pos      geom.Vec3
	Disabled bool
	Toggles  int
}

// Disable implements Agent.
func (a *NavAgent) Disable() {
	if !a.Disabled {
		a.Toggles++
	}
	a.Disabled = true
}

// Enable implements Agent.
func (a *NavAgent) Enable() {
	if a.Disabled {
		a.Toggles++
	}
	a.Disabled = false
}

// Position implements Agent.
func (a *NavAgent) Position() geom.Vec3 { return a.Pos }

// SetPosition implements Agent.
func (a *NavAgent) SetPosition(p geom.Vec3) {
	if p.IsFinite() {
		a.Pos = p
	}
}
