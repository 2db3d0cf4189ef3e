// Package fx is the fire-and-forget visual and audio spawn surface. The
// combat code never reads anything back from a Spawner.
package fx

//go:generate go tool mockgen -destination=./mocks/spawner_mock.go -package=mocks . Spawner

import (
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
)

// Intensity tags floating damage text.
type Intensity int

const (
	Normal Intensity = iota
	Crit
)

func (i Intensity) String() string {
	if i == Crit {
		return "crit"
	}
	return "normal"
}

// Spawner receives visual and audio events.
type Spawner interface {
	SpawnTracer(start, end geom.Vec3, lifetime float64)
	SpawnImpact(point, normal geom.Vec3)
	SpawnDamageText(point geom.Vec3, text string, intensity Intensity)
	SpawnMuzzleFlash(origin, dir geom.Vec3)
	PlayFireSound(origin geom.Vec3, audio profile.AudioParams)
}

// Nop discards everything.
type Nop struct{}

func (Nop) SpawnTracer(geom.Vec3, geom.Vec3, float64)    {}
func (Nop) SpawnImpact(geom.Vec3, geom.Vec3)             {}
func (Nop) SpawnDamageText(geom.Vec3, string, Intensity) {}
func (Nop) SpawnMuzzleFlash(geom.Vec3, geom.Vec3)        {}
func (Nop) PlayFireSound(geom.Vec3, profile.AudioParams) {}

// OrNop returns s, or Nop when s is nil.
func OrNop(s Spawner) Spawner {
	if s == nil {
		return Nop{}
	}
	return s
}
