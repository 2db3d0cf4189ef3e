package profile

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Keyframe is one control point of a Curve.
type Keyframe struct {
	T float64 `json:"t"`
	V float64 `json:"v"`
}

// Curve is a piecewise-linear function over normalized distance. Keys are
// kept sorted by T; evaluation clamps t to the first and last keys.
type Curve struct {
	Keys []Keyframe
}

// Constant returns a flat curve over [0,1].
func Constant(v float64) Curve {
	return Curve{Keys: []Keyframe{{0, v}, {1, v}}}
}

// Linear returns a straight line from v0 at 0 to v1 at 1.
func Linear(v0, v1 float64) Curve {
	return Curve{Keys: []Keyframe{{0, v0}, {1, v1}}}
}

// NewCurve sorts keys by T and returns the curve.
func NewCurve(keys ...Keyframe) Curve {
	ks := append([]Keyframe(nil), keys...)
	sort.Slice(ks, func(i, j int) bool { return ks[i].T < ks[j].T })
	return Curve{Keys: ks}
}

// Eval samples the curve at t. An empty curve evaluates to 1.
func (c Curve) Eval(t float64) float64 {
	n := len(c.Keys)
	if n == 0 {
		return 1
	}
	if t <= c.Keys[0].T {
		return c.Keys[0].V
	}
	if t >= c.Keys[n-1].T {
		return c.Keys[n-1].V
	}
	// First key strictly past t; keys are few so linear scan is fine.
	i := 1
	for i < n && c.Keys[i].T < t {
		i++
	}
	a, b := c.Keys[i-1], c.Keys[i]
	span := b.T - a.T
	if span <= 0 {
		return b.V
	}
	u := (t - a.T) / span
	return a.V + (b.V-a.V)*u
}

// Validate checks the curve covers [0,1], has strictly increasing T and
// moves in one direction only.
func (c Curve) Validate() error {
	n := len(c.Keys)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 keys, have %d", ErrBadCurve, n)
	}
	if c.Keys[0].T > 0 || c.Keys[n-1].T < 1 {
		return fmt.Errorf("%w: keys span [%.2f,%.2f], must cover [0,1]", ErrBadCurve, c.Keys[0].T, c.Keys[n-1].T)
	}
	rising, falling := false, false
	for i := 1; i < n; i++ {
		if c.Keys[i].T <= c.Keys[i-1].T {
			return fmt.Errorf("%w: key %d is not after key %d", ErrBadCurve, i, i-1)
		}
		switch d := c.Keys[i].V - c.Keys[i-1].V; {
		case d > 0:
			rising = true
		case d < 0:
			falling = true
		}
		if c.Keys[i].V < 0 {
			return fmt.Errorf("%w: negative multiplier at key %d", ErrBadCurve, i)
		}
	}
	if c.Keys[0].V < 0 {
		return fmt.Errorf("%w: negative multiplier at key 0", ErrBadCurve)
	}
	if rising && falling {
		return fmt.Errorf("%w: not monotonic", ErrBadCurve)
	}
	return nil
}

// MarshalJSON encodes the curve as a bare key array.
func (c Curve) MarshalJSON() ([]byte, error) {
	if c.Keys == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Keys)
}

// UnmarshalJSON decodes a key array and sorts it.
func (c *Curve) UnmarshalJSON(b []byte) error {
	var keys []Keyframe
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	*c = NewCurve(keys...)
	return nil
}
