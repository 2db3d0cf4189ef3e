// Package render draws a firing range top-down with ebiten: X runs across
// the screen and Z runs up it, so shots travel toward the top edge.
package render

import (
	"image/color"

	"github.com/Garsondee/firing-range/internal/geom"
)

// Camera maps the world's XZ plane to screen pixels.
type Camera struct {
	Center        geom.Vec3 // world point at the middle of the view
	Scale         float64   // pixels per meter
	Width, Height int       // view size in pixels
}

// NewCamera frames a range whose gunners stand near the origin, looking
// down +Z with the firing line close to the bottom of the view.
func NewCamera(width, height int, scale float64) Camera {
	if scale <= 0 {
		scale = 20
	}
	depth := float64(height) / scale
	return Camera{
		Center: geom.V(0, 0, depth/2-2),
		Scale:  scale,
		Width:  width,
		Height: height,
	}
}

// ToScreen projects p onto the view. Height is dropped.
func (c Camera) ToScreen(p geom.Vec3) (x, y float32) {
	sx := float64(c.Width)/2 + (p.X-c.Center.X)*c.Scale
	sy := float64(c.Height)/2 - (p.Z-c.Center.Z)*c.Scale
	return float32(sx), float32(sy)
}

// ToWorld inverts ToScreen on the horizontal plane at height y.
func (c Camera) ToWorld(sx, sy int, y float64) geom.Vec3 {
	x := (float64(sx)-float64(c.Width)/2)/c.Scale + c.Center.X
	z := (float64(c.Height)/2-float64(sy))/c.Scale + c.Center.Z
	return geom.V(x, y, z)
}

// Meters converts a world length to pixels.
func (c Camera) Meters(m float64) float32 { return float32(m * c.Scale) }

// rgb unpacks a 0xRRGGBB prefab color.
func rgb(c uint32, a uint8) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: a}
}

// hpColor shades a health bar from green through amber to red.
func hpColor(frac float64) color.RGBA {
	frac = geom.Clamp01(frac)
	switch {
	case frac > 0.6:
		return color.RGBA{R: 80, G: 200, B: 90, A: 255}
	case frac > 0.3:
		return color.RGBA{R: 220, G: 170, B: 50, A: 255}
	default:
		return color.RGBA{R: 210, G: 60, B: 50, A: 255}
	}
}

// tracerSpan returns the visible head and tail fractions of a tracer at
// progress p. The head races ahead and the tail follows close behind.
func tracerSpan(p float64) (head, tail float64) {
	head = geom.Clamp01(p * 2)
	tail = head - 0.1
	if tail < 0 {
		tail = 0
	}
	return head, tail
}
