package projectile

import "github.com/Garsondee/firing-range/internal/geom"

// defaultTrailPoints is the ring size when the prefab leaves it unset.
const defaultTrailPoints = 16

// TrailPoint is one position snapshot.
type TrailPoint struct {
	Pos geom.Vec3
	Age float64 // seconds since it was recorded
}

// Trail is a fixed-size ring of recent positions. Points older than
// Duration are no longer drawn.
type Trail struct {
	Duration float64

	points []TrailPoint
	head   int // next write index
	n      int // valid entries
}

func newTrail(capacity int, duration float64) *Trail {
	if capacity <= 0 {
		capacity = defaultTrailPoints
	}
	return &Trail{Duration: duration, points: make([]TrailPoint, capacity)}
}

// Push records p, overwriting the oldest point when full.
func (t *Trail) Push(p geom.Vec3) {
	t.points[t.head] = TrailPoint{Pos: p}
	t.head = (t.head + 1) % len(t.points)
	if t.n < len(t.points) {
		t.n++
	}
}

// Age advances every point by dt.
func (t *Trail) Age(dt float64) {
	for i := 0; i < t.n; i++ {
		t.points[t.index(i)].Age += dt
	}
}

// Points returns the visible points, oldest first.
func (t *Trail) Points() []TrailPoint {
	out := make([]TrailPoint, 0, t.n)
	for i := 0; i < t.n; i++ {
		p := t.points[t.index(i)]
		if p.Age < t.Duration {
			out = append(out, p)
		}
	}
	return out
}

// Remaining returns how long until the youngest point fades.
func (t *Trail) Remaining() float64 {
	best := 0.0
	for i := 0; i < t.n; i++ {
		if left := t.Duration - t.points[t.index(i)].Age; left > best {
			best = left
		}
	}
	return best
}

// index maps the i-th oldest entry to its slot.
func (t *Trail) index(i int) int {
	start := (t.head - t.n + len(t.points)) % len(t.points)
	return (start + i) % len(t.points)
}
