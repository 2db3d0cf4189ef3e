package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/scenario"
)

func TestGrid_FiringLineNearBottom(t *testing.T) {
	g := newGrid(60, 20, 30)
	c, r, ok := g.cell(geom.Zero)
	if !ok || c != 30 || r != 18 {
		t.Fatalf("origin mapped to (%d,%d) ok=%v", c, r, ok)
	}
	if _, _, ok := g.cell(geom.V(0, 0, 40)); ok {
		t.Fatal("points past the far edge should be off grid")
	}
	if _, _, ok := g.cell(geom.V(-20, 0, 5)); ok {
		t.Fatal("points left of the view should be off grid")
	}
}

func TestGrid_AlongDedupes(t *testing.T) {
	g := newGrid(60, 20, 30)
	cells := g.along(geom.Zero, geom.V(0, 0, 10))
	if len(cells) != 11 {
		t.Fatalf("expected 11 cells, got %d: %v", len(cells), cells)
	}
	seen := map[[2]int]bool{}
	for _, c := range cells {
		if seen[c] {
			t.Fatalf("repeated cell %v", c)
		}
		seen[c] = true
		if c[0] != 30 {
			t.Fatalf("straight shot drifted to column %d", c[0])
		}
	}
	if cells[0][1] != 18 || cells[len(cells)-1][1] != 8 {
		t.Fatalf("expected rows 18 down to 8, got %v", cells)
	}
}

func TestGrid_CellsOfClipsToView(t *testing.T) {
	g := newGrid(60, 20, 30)
	cells := g.cellsOf(geom.V(0, 0, 10), geom.V(1, 0, 0.4))
	if len(cells) == 0 {
		t.Fatal("footprint should cover cells")
	}
	for _, c := range cells {
		if c[0] < 26 || c[0] > 32 || c[1] < 7 || c[1] > 8 {
			t.Fatalf("cell %v outside footprint", c)
		}
	}
	wide := g.cellsOf(geom.V(0, 0, 10), geom.V(100, 0, 0.4))
	for _, c := range wide {
		if c[0] < 0 || c[0] >= g.cols {
			t.Fatalf("cell %v not clipped", c)
		}
	}
}

func TestGrid_HitboxesSkipDisabled(t *testing.T) {
	g := newGrid(60, 20, 30)
	w := collision.NewWorld()
	n := w.AddNode(collision.NoNode, "wall")
	w.AddBox(n, geom.V(0, 1, 10), geom.V(1, 1, 0.4), collision.LayerWorld, "")
	off := w.AddSphere(n, geom.V(5, 1, 5), 0.5, collision.LayerTarget, "")
	w.SetEnabled(off, false)

	cells := g.hitboxes(w)
	want := g.cellsOf(geom.V(0, 1, 10), geom.V(1, 1, 0.4))
	if len(cells) != len(want) {
		t.Fatalf("expected only the wall footprint (%d cells), got %d", len(want), len(cells))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d: got %v want %v", i, cells[i], want[i])
		}
	}
}

func TestDummyGlyph(t *testing.T) {
	cases := []struct {
		snap scenario.DummySnapshot
		ch   rune
		col  tcell.Color
	}{
		{scenario.DummySnapshot{Kind: scenario.KindCrate, HP: 100, MaxHP: 100}, 'C', tcell.ColorGreen},
		{scenario.DummySnapshot{Kind: scenario.KindWalker, HP: 50, MaxHP: 100}, 'W', tcell.ColorYellow},
		{scenario.DummySnapshot{Kind: scenario.KindRig, HP: 10, MaxHP: 100}, 'O', tcell.ColorRed},
		{scenario.DummySnapshot{Kind: scenario.KindStatic, HP: 0, MaxHP: 100}, 'x', tcell.ColorGray},
	}
	for _, tc := range cases {
		ch, col := dummyGlyph(tc.snap)
		if ch != tc.ch || col != tc.col {
			t.Errorf("%v hp=%d: got %q/%v want %q/%v", tc.snap.Kind, tc.snap.HP, ch, col, tc.ch, tc.col)
		}
	}
}
