package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/firing-range/internal/fx"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/projectile"
	"github.com/Garsondee/firing-range/internal/scenario"
)

var face = text.NewGoXFace(basicfont.Face7x13)

var (
	colGround  = color.RGBA{R: 24, G: 28, B: 24, A: 255}
	colGrid    = color.RGBA{R: 34, G: 40, B: 34, A: 255}
	colWall    = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	colTrigger = color.RGBA{R: 120, G: 140, B: 160, A: 70}
	colDummy   = color.RGBA{R: 170, G: 140, B: 100, A: 255}
	colDead    = color.RGBA{R: 70, G: 60, B: 50, A: 255}
	colGunner  = color.RGBA{R: 70, G: 110, B: 210, A: 255}
)

// Range draws everything on r in back-to-front order.
func Range(screen *ebiten.Image, r *scenario.Range, cam Camera) {
	Ground(screen, cam)
	for _, w := range r.Walls {
		Wall(screen, w, cam)
	}
	for _, d := range r.Dummies {
		Dummy(screen, d, cam)
	}
	for _, g := range r.Gunners {
		Gunner(screen, g, cam)
	}
	for _, c := range r.Projectiles.Live() {
		Projectile(screen, c, cam)
	}
	Effects(screen, r.FX, cam)
}

// Ground fills the view and rules a five-meter grid.
func Ground(screen *ebiten.Image, cam Camera) {
	screen.Fill(colGround)
	step := cam.Meters(5)
	if step < 4 {
		return
	}
	w, h := float32(cam.Width), float32(cam.Height)
	ox, oy := cam.ToScreen(geom.Zero)
	for x := float32(math.Mod(float64(ox), float64(step))); x < w; x += step {
		vector.StrokeLine(screen, x, 0, x, h, 1, colGrid, false)
	}
	for y := float32(math.Mod(float64(oy), float64(step))); y < h; y += step {
		vector.StrokeLine(screen, 0, y, w, y, 1, colGrid, false)
	}
}

func box(screen *ebiten.Image, center, half geom.Vec3, cam Camera, col color.Color) {
	x, y := cam.ToScreen(center.Sub(geom.V(half.X, 0, -half.Z)))
	vector.FillRect(screen, x, y, cam.Meters(2*half.X), cam.Meters(2*half.Z), col, false)
}

// Wall draws solid geometry, or a translucent trigger volume.
func Wall(screen *ebiten.Image, w *scenario.Wall, cam Camera) {
	if w.Trigger {
		box(screen, w.Center, w.Half, cam, colTrigger)
		return
	}
	box(screen, w.Center, w.Half, cam, colWall)
}

// Dummy draws a target with its health bar above it.
func Dummy(screen *ebiten.Image, d *scenario.Dummy, cam Camera) {
	col := colDummy
	if d.Health.Dead() {
		col = colDead
	}
	box(screen, d.Position(), d.Half, cam, col)

	x, y := cam.ToScreen(d.Position().Add(geom.V(-d.Half.X, 0, d.Half.Z)))
	bw := cam.Meters(2 * d.Half.X)
	if bw < 12 {
		bw = 12
	}
	vector.FillRect(screen, x, y-6, bw, 3, color.RGBA{R: 20, G: 20, B: 20, A: 200}, false)
	vector.FillRect(screen, x, y-6, bw*float32(d.Health.Fraction()), 3, hpColor(d.Health.Fraction()), false)
	label(screen, d.Name, x, y-20, color.RGBA{R: 200, G: 200, B: 190, A: 200})
}

// Gunner draws the shooter and a short aim line.
func Gunner(screen *ebiten.Image, g *scenario.Gunner, cam Camera) {
	x, y := cam.ToScreen(g.Muzzle)
	vector.FillCircle(screen, x, y, cam.Meters(0.3)+2, colGunner, false)
	if aim, ok := g.Aim.Flat().Normalized(); ok {
		ex, ey := cam.ToScreen(g.Muzzle.Add(aim.Scale(1.5)))
		vector.StrokeLine(screen, x, y, ex, ey, 1.5, color.RGBA{R: 160, G: 190, B: 255, A: 200}, false)
	}
	if w := g.Weapon(); w != nil {
		label(screen, fmt.Sprintf("%s [%s]", g.Label, w.Name), x+8, y+4, color.RGBA{R: 160, G: 190, B: 255, A: 220})
	}
}

// Projectile draws the body while flying and the trail until it fades.
func Projectile(screen *ebiten.Image, c *projectile.Controller, cam Camera) {
	prefab := c.Shot().Bullet.Prefab
	hue := uint32(0xffd27f)
	radius := 0.1
	if prefab != nil {
		if prefab.Color != 0 {
			hue = prefab.Color
		}
		if prefab.Radius > 0 {
			radius = prefab.Radius
		}
	}

	if tr := c.Trail(); tr != nil {
		pts := tr.Points()
		for i := 1; i < len(pts); i++ {
			fade := 1 - geom.Clamp01(pts[i].Age/tr.Duration)
			x0, y0 := cam.ToScreen(pts[i-1].Pos)
			x1, y1 := cam.ToScreen(pts[i].Pos)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, rgb(hue, uint8(180*fade)), false)
		}
	}
	if !c.Visible() {
		return
	}
	x, y := cam.ToScreen(c.Position())
	r := cam.Meters(radius)
	if r < 2 {
		r = 2
	}
	// Shadow grows with height so arcs read from above.
	vector.FillCircle(screen, x, y, r+float32(math.Max(0, c.Position().Y))*0.8, color.RGBA{A: 60}, false)
	vector.FillCircle(screen, x, y, r, rgb(hue, 255), false)
}

// Effects draws the recorder's live visuals.
func Effects(screen *ebiten.Image, rec *fx.Recorder, cam Camera) {
	for _, t := range rec.Tracers {
		Tracer(screen, t, cam)
	}
	for _, im := range rec.Impacts {
		p := im.Progress()
		x, y := cam.ToScreen(im.Point)
		vector.FillCircle(screen, x, y, float32(2+4*p), color.RGBA{R: 255, G: 230, B: 170, A: uint8(200 * (1 - p))}, false)
	}
	for _, f := range rec.Flashes {
		Flash(screen, f, cam)
	}
	for _, d := range rec.Texts {
		DamageText(screen, d, cam)
	}
}

// Tracer renders a pellet segment as a thin line with a hot tip at the head
// and a dim tail fading behind it.
func Tracer(screen *ebiten.Image, t *fx.Tracer, cam Camera) {
	p := t.Progress()
	if p >= 1 {
		return
	}
	head, tail := tracerSpan(p)
	fade := float32(1 - p*p)

	const nSeg = 4
	for i := 0; i < nSeg; i++ {
		t0 := tail + (head-tail)*float64(i)/nSeg
		t1 := tail + (head-tail)*float64(i+1)/nSeg
		x0, y0 := cam.ToScreen(t.Start.Lerp(t.End, t0))
		x1, y1 := cam.ToScreen(t.Start.Lerp(t.End, t1))
		a := uint8(210 * float32(i+1) / nSeg * fade)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, color.RGBA{R: 255, G: 210, B: 100, A: a}, false)
	}
	hx, hy := cam.ToScreen(t.Start.Lerp(t.End, head))
	vector.FillCircle(screen, hx, hy, 1.2, color.RGBA{R: 255, G: 255, B: 230, A: uint8(220 * fade)}, false)
}

// Flash renders a muzzle burst: glow, core and a short streak along the shot.
func Flash(screen *ebiten.Image, f *fx.MuzzleFlash, cam Camera) {
	p := f.Progress()
	alpha := 255 * (1 - p)
	x, y := cam.ToScreen(f.Origin)

	vector.FillCircle(screen, x, y, float32(8*(1-p*0.6)), color.RGBA{R: 255, G: 180, B: 40, A: uint8(alpha * 0.3)}, false)
	vector.FillCircle(screen, x, y, float32(3.5*(1-p*0.5)), color.RGBA{R: 255, G: 255, B: 220, A: uint8(alpha)}, false)
	if dir, ok := f.Dir.Flat().Normalized(); ok {
		ex, ey := cam.ToScreen(f.Origin.Add(dir.Scale(0.6 * (1 - p*0.7))))
		vector.StrokeLine(screen, x, y, ex, ey, 1.5, color.RGBA{R: 255, G: 240, B: 160, A: uint8(alpha * 0.7)}, false)
	}
}

// DamageText floats a damage number up the screen; crits are larger and red.
func DamageText(screen *ebiten.Image, d *fx.DamageText, cam Camera) {
	p := d.Progress()
	x, y := cam.ToScreen(d.Point)
	y -= float32(p * 24)
	col := color.RGBA{R: 255, G: 255, B: 255, A: uint8(255 * (1 - p))}
	scale := 1.0
	if d.Intensity == fx.Crit {
		col = color.RGBA{R: 255, G: 80, B: 60, A: uint8(255 * (1 - p))}
		scale = 1.5
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, d.Text, face, op)
}

func label(screen *ebiten.Image, s string, x, y float32, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, face, op)
}
