package geom

import "math"

// Float64er is the slice of *rand.Rand the samplers need.
type Float64er interface {
	Float64() float64
}

// maxConeDegrees keeps tan() away from its pole.
const maxConeDegrees = 89.0

// SampleCone perturbs dir by a random angle inside a cone of the given
// half-angle (degrees). A point is drawn uniformly in the unit disk, scaled
// by tan(halfAngle) and offset on the plane one unit ahead of the muzzle, so
// every result lies within the cone and the density is not pushed toward the
// rim. A zero dir or a non-positive angle returns dir unchanged.
func SampleCone(dir Vec3, halfAngleDeg float64, rng Float64er) Vec3 {
	n, ok := dir.Normalized()
	if !ok {
		return dir
	}
	if halfAngleDeg <= 0 || rng == nil {
		return n
	}
	if halfAngleDeg > maxConeDegrees {
		halfAngleDeg = maxConeDegrees
	}

	r := math.Sqrt(rng.Float64()) * math.Tan(Deg2Rad(halfAngleDeg))
	theta := 2 * math.Pi * rng.Float64()

	right, up := Basis(n)
	offset := right.Scale(r * math.Cos(theta)).Add(up.Scale(r * math.Sin(theta)))
	out, ok := n.Add(offset).Normalized()
	if !ok {
		return n
	}
	return out
}

// LookRotation returns the yaw (around Y) and pitch of a direction, in
// radians. Used to orient bodies and sprites along a velocity.
func LookRotation(dir Vec3) (yaw, pitch float64, ok bool) {
	n, ok := dir.Normalized()
	if !ok {
		return 0, 0, false
	}
	yaw = math.Atan2(n.X, n.Z)
	pitch = math.Asin(clamp(n.Y, -1, 1))
	return yaw, pitch, true
}
