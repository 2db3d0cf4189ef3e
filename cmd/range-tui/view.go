package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/scenario"
)

// grid maps the XZ plane onto terminal cells. Row 0 is the far end of the
// range; the firing line sits near the bottom.
type grid struct {
	cols, rows int
	minX       float64 // world X at column 0
	maxZ       float64 // world Z at row 0
	cellW      float64 // meters per column
	cellD      float64 // meters per row
}

func newGrid(cols, rows int, width float64) grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cellW := width / float64(cols)
	// Terminal cells are about twice as tall as wide.
	cellD := cellW * 2
	return grid{
		cols:  cols,
		rows:  rows,
		minX:  -width / 2,
		maxZ:  float64(rows)*cellD - 2,
		cellW: cellW,
		cellD: cellD,
	}
}

func (g grid) cell(p geom.Vec3) (col, row int, ok bool) {
	col = int(math.Floor((p.X - g.minX) / g.cellW))
	row = int(math.Floor((g.maxZ - p.Z) / g.cellD))
	return col, row, col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// along returns the cells a segment crosses, start to end, without repeats.
func (g grid) along(a, b geom.Vec3) [][2]int {
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X)/g.cellW, math.Abs(b.Z-a.Z)/g.cellD))) + 1
	var out [][2]int
	last := [2]int{-1, -1}
	for i := 0; i <= steps; i++ {
		c, r, ok := g.cell(a.Lerp(b, float64(i)/float64(steps)))
		if !ok || (c == last[0] && r == last[1]) {
			continue
		}
		last = [2]int{c, r}
		out = append(out, last)
	}
	return out
}

// cellsOf returns every cell an axis-aligned footprint covers.
func (g grid) cellsOf(center, half geom.Vec3) [][2]int {
	c0, r0, _ := g.cell(geom.V(center.X-half.X, 0, center.Z+half.Z))
	c1, r1, _ := g.cell(geom.V(center.X+half.X, 0, center.Z-half.Z))
	var out [][2]int
	for r := max(r0, 0); r <= min(r1, g.rows-1); r++ {
		for c := max(c0, 0); c <= min(c1, g.cols-1); c++ {
			out = append(out, [2]int{c, r})
		}
	}
	return out
}

// hitboxes returns the footprint cells of every enabled collider.
func (g grid) hitboxes(w *collision.World) [][2]int {
	var out [][2]int
	for _, c := range w.Colliders() {
		b, ok := w.Bounds(c)
		if !ok {
			continue
		}
		out = append(out, g.cellsOf(b.Center(), b.Max.Sub(b.Min).Scale(0.5))...)
	}
	return out
}

// dummyGlyph picks the letter and color for a dummy by kind and health.
func dummyGlyph(d scenario.DummySnapshot) (rune, tcell.Color) {
	var ch rune
	switch d.Kind {
	case scenario.KindCrate:
		ch = 'C'
	case scenario.KindWalker:
		ch = 'W'
	case scenario.KindRig:
		ch = 'O'
	case scenario.KindTagged:
		ch = 'T'
	default:
		ch = 'D'
	}
	if d.HP <= 0 {
		return 'x', tcell.ColorGray
	}
	frac := float64(d.HP) / float64(max(d.MaxHP, 1))
	switch {
	case frac > 0.6:
		return ch, tcell.ColorGreen
	case frac > 0.3:
		return ch, tcell.ColorYellow
	default:
		return ch, tcell.ColorRed
	}
}
