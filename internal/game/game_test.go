package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
)

type countingSound struct {
	cues []string
}

func (c *countingSound) Play(a profile.AudioParams) { c.cues = append(c.cues, a.Cue) }

func TestNew_UnknownScenario(t *testing.T) {
	if _, err := New(Config{Script: "nope"}); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestGame_FireAtCursor(t *testing.T) {
	snd := &countingSound{}
	g, err := New(Config{Seed: 3, Sound: snd})
	if err != nil {
		t.Fatal(err)
	}
	if g.player == nil || g.player.Weapon() == nil {
		t.Fatal("player should start armed")
	}

	// Cursor straight down range from the player.
	x, y := g.cam.ToScreen(g.player.Muzzle.Add(geom.V(0, 0, 10)))
	g.mouseX, g.mouseY = int(x), int(y)
	g.firing = true
	if err := g.simTick(); err != nil {
		t.Fatal(err)
	}

	if g.player.Pulls() != 1 {
		t.Fatalf("holding the button should pull once, got %d", g.player.Pulls())
	}
	if aim, ok := g.player.Aim.Normalized(); !ok || aim.Dot(geom.Forward) < 0.99 {
		t.Fatalf("aim should follow the cursor, got %v", g.player.Aim)
	}
	if len(snd.cues) != 1 || snd.cues[0] != "rifle" {
		t.Fatalf("one rifle cue expected, got %v", snd.cues)
	}
	if len(g.panel.Recent()) == 0 {
		t.Fatal("shot panel should pick up the pull")
	}
}

func TestGame_EquipAndReset(t *testing.T) {
	g, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	g.equip(1)
	if g.player.Weapon().ID != g.weapons[1].ID {
		t.Fatalf("equip(1) should arm %s", g.weapons[1].ID)
	}
	g.equip(99)
	if g.current != 1 {
		t.Fatal("out-of-range slot must be ignored")
	}

	g.firing = true
	for i := 0; i < 30; i++ {
		if err := g.simTick(); err != nil {
			t.Fatal(err)
		}
	}
	g.reset()
	if g.field.CurrentTick() != 0 || g.player.Pulls() != 0 {
		t.Fatal("reset should rebuild a fresh range")
	}
	if g.player.Weapon().ID != g.weapons[1].ID {
		t.Fatal("reset should keep the selected weapon")
	}
}

func TestGame_HUDListsWeapons(t *testing.T) {
	g, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	hud := g.hudText()
	for _, w := range g.weapons {
		if !strings.Contains(hud, w.Name) {
			t.Errorf("hud missing %s", w.Name)
		}
	}
	if !strings.Contains(hud, ">1 ") {
		t.Fatal("first weapon should be marked as selected")
	}
}
