package geom

import "math"

// Vec3 is a 3D vector in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Axis constants.
var (
	Zero    = Vec3{}
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Right   = Vec3{1, 0, 0}
	Forward = Vec3{0, 0, 1}
)

// V is shorthand for a Vec3 literal.
func V(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Neg() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

func (a Vec3) Len() float64 {
	return math.Sqrt(a.LenSq())
}

// Normalized returns the unit vector along a. ok is false when a is zero
// length or not finite; the returned vector is then Zero, never NaN.
func (a Vec3) Normalized() (Vec3, bool) {
	if !a.IsFinite() {
		return Zero, false
	}
	l := a.Len()
	if l < 1e-12 {
		return Zero, false
	}
	inv := 1.0 / l
	return Vec3{a.X * inv, a.Y * inv, a.Z * inv}, true
}

// Flat drops the vertical component (planar XZ projection).
func (a Vec3) Flat() Vec3 {
	return Vec3{a.X, 0, a.Z}
}

// Lerp interpolates from a to b by t in [0,1].
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Dist returns the distance between two points.
func (a Vec3) Dist(b Vec3) float64 {
	return a.Sub(b).Len()
}

// IsFinite reports whether every component is a real number.
func (a Vec3) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

// AngleBetween returns the angle in radians between two directions.
// Zero-length inputs yield 0.
func AngleBetween(a, b Vec3) float64 {
	na, ok1 := a.Normalized()
	nb, ok2 := b.Normalized()
	if !ok1 || !ok2 {
		return 0
	}
	return math.Acos(clamp(na.Dot(nb), -1, 1))
}

// Basis returns two unit vectors perpendicular to dir and to each other.
// dir must be normalized.
func Basis(dir Vec3) (right, up Vec3) {
	ref := Up
	if math.Abs(dir.Dot(Up)) > 0.999 {
		ref = Forward
	}
	right, _ = ref.Cross(dir).Normalized()
	up = dir.Cross(right)
	return right, up
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
