// Package target maps collision results to the living things that can be
// hurt or pushed. The collision layer only knows nodes, colliders and tags;
// Registry turns those into a stable target identity plus its capabilities.
package target

//go:generate go tool mockgen -destination=./mocks/target_mock.go -package=mocks . DamageSink,Body,Agent

import (
	"github.com/google/uuid"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/geom"
)

// ID is a stable target identity. It survives collider changes and is what
// per-pellet deduplication keys on.
type ID uuid.UUID

// Nil is the zero ID.
var Nil ID

// NewID returns a fresh random identity.
func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first eight hex digits, for logs.
func (id ID) Short() string {
	return id.String()[:8]
}

// DamageSink receives integer damage.
type DamageSink interface {
	ApplyDamage(amount int)
}

// ForceMode selects how AddImpulse interprets its vector.
type ForceMode int

const (
	// Impulse divides by mass.
	Impulse ForceMode = iota
	// VelocityChange ignores mass.
	VelocityChange
)

func (m ForceMode) String() string {
	if m == VelocityChange {
		return "velocity_change"
	}
	return "impulse"
}

// Body is a physics body that can be pushed.
type Body interface {
	Kinematic() bool
	AddImpulse(v geom.Vec3, mode ForceMode)
}

// Agent is a navigation-driven mover. While disabled its position may be
// written directly.
type Agent interface {
	Disable()
	Enable()
	Position() geom.Vec3
	SetPosition(p geom.Vec3)
}

// KnockbackResistor lets a target scale incoming knockback. Targets that do
// not implement it use 1.0.
type KnockbackResistor interface {
	KnockbackResistance() float64
}

// Target bundles the capabilities of one living thing. Any field may be nil.
type Target struct {
	ID    ID
	Name  string
	Root  collision.NodeID // scene node the target is rooted at, informational
	Sink  DamageSink
	Body  Body
	Agent Agent
}
