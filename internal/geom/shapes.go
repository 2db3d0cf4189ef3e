package geom

import "math"

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max Vec3
}

// BoxAt builds an AABB from a center and half extents.
func BoxAt(center, half Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box midpoint.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Expand grows the box by r on every side.
func (b AABB) Expand(r float64) AABB {
	d := Vec3{r, r, r}
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ClosestPoint returns the point of b nearest to p.
func (b AABB) ClosestPoint(p Vec3) Vec3 {
	return Vec3{
		clamp(p.X, b.Min.X, b.Max.X),
		clamp(p.Y, b.Min.Y, b.Max.Y),
		clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// Sphere is a ball.
type Sphere struct {
	Center Vec3
	Radius float64
}

// SphereOverlapsAABB reports whether a ball touches a box.
func SphereOverlapsAABB(s Sphere, b AABB) bool {
	return b.ClosestPoint(s.Center).Sub(s.Center).LenSq() <= s.Radius*s.Radius
}

// SphereOverlapsSphere reports whether two balls touch.
func SphereOverlapsSphere(a, b Sphere) bool {
	r := a.Radius + b.Radius
	return a.Center.Sub(b.Center).LenSq() <= r*r
}

// RayAABB returns the distance t along dir at which a ray from origin enters
// the box, plus the entry face normal. inside is true when the origin is
// already within the box; t is then 0 and the normal is -dir.
// dir must be normalized. ok is false when the ray misses.
func RayAABB(origin, dir Vec3, b AABB) (t float64, normal Vec3, inside, ok bool) {
	if b.Contains(origin) {
		return 0, dir.Neg(), true, true
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	var enterAxis int
	var enterSign float64

	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < 1e-12 {
			// Parallel to this slab: must already be between the planes.
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, Zero, false, false
			}
			continue
		}
		inv := 1.0 / d[axis]
		t1 := (lo[axis] - o[axis]) * inv
		t2 := (hi[axis] - o[axis]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tMin {
			tMin = t1
			enterAxis = axis
			enterSign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, Zero, false, false
		}
	}
	if tMin < 0 {
		return 0, Zero, false, false
	}

	switch enterAxis {
	case 0:
		normal = Vec3{enterSign, 0, 0}
	case 1:
		normal = Vec3{0, enterSign, 0}
	default:
		normal = Vec3{0, 0, enterSign}
	}
	return tMin, normal, false, true
}

// RaySphere returns the entry distance of a ray into a ball and the surface
// normal there. inside is true when the origin starts within the ball.
func RaySphere(origin, dir Vec3, s Sphere) (t float64, normal Vec3, inside, ok bool) {
	oc := origin.Sub(s.Center)
	c := oc.LenSq() - s.Radius*s.Radius
	if c <= 0 {
		return 0, dir.Neg(), true, true
	}
	b := oc.Dot(dir)
	if b > 0 {
		return 0, Zero, false, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, Zero, false, false
	}
	t = -b - math.Sqrt(disc)
	if t < 0 {
		return 0, Zero, false, false
	}
	p := origin.Add(dir.Scale(t))
	normal, ok = p.Sub(s.Center).Normalized()
	if !ok {
		normal = dir.Neg()
	}
	return t, normal, false, true
}
