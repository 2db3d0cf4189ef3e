// Package game is the interactive firing range: a top-down ebiten view of a
// scenario where the player aims with the mouse and fires with the button.
package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/render"
	"github.com/Garsondee/firing-range/internal/scenario"
)

const (
	fieldWidth  = 1280
	fieldHeight = 800
	pixelsPerM  = 24
	playerLabel = "P1"
)

// Sound plays fire cues. A nil Sound keeps the range silent.
type Sound interface {
	Play(a profile.AudioParams)
}

// Config selects what the sandbox loads.
type Config struct {
	Script  string // scenario name, "gallery" by default
	Library *profile.Library
	Seed    int64
	Sound   Sound
}

type Game struct {
	width  int
	height int

	cfg     Config
	script  scenario.Script
	field   *scenario.Range
	player  *scenario.Gunner
	weapons []*profile.WeaponFireProfile
	current int

	cam   render.Camera
	panel *render.ShotPanel

	simSpeed  float64
	tickAccum float64
	paused    bool
	showHUD   bool
	prevKeys  map[ebiten.Key]bool
	mouseX    int
	mouseY    int
	firing    bool
}

// New builds the sandbox. An unknown script name is an error.
func New(cfg Config) (*Game, error) {
	if cfg.Script == "" {
		cfg.Script = "gallery"
	}
	if cfg.Library == nil {
		cfg.Library = profile.DefaultLibrary()
	}
	s, ok := scenario.Lookup(cfg.Script)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", cfg.Script)
	}
	g := &Game{
		width:    fieldWidth + render.PanelWidth,
		height:   fieldHeight,
		cfg:      cfg,
		script:   s,
		cam:      render.NewCamera(fieldWidth, fieldHeight, pixelsPerM),
		simSpeed: 1,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
	}
	for _, w := range cfg.Library.Weapons {
		if w.Bullet != nil {
			g.weapons = append(g.weapons, w)
		}
	}
	g.reset()
	return g, nil
}

// reset rebuilds the range and arms the player with the selected weapon.
func (g *Game) reset() {
	g.field = g.script.Build(
		scenario.WithSeed(g.cfg.Seed),
		scenario.WithLibrary(g.cfg.Library),
		scenario.WithTickRate(1/float64(ebiten.DefaultTPS)),
	)
	for _, err := range g.field.Errs() {
		slog.Warn("scenario setup", "script", g.script.Name, "err", err)
	}
	g.panel = render.NewShotPanel()
	g.player = g.field.Gunner(playerLabel)
	if g.player == nil && len(g.field.Gunners) > 0 {
		g.player = g.field.Gunners[0]
	}
	g.equip(g.current)
}

func (g *Game) equip(i int) {
	if g.player == nil || i < 0 || i >= len(g.weapons) {
		return
	}
	g.current = i
	if err := g.player.Equip(g.weapons[i]); err != nil {
		slog.Warn("equip failed", "weapon", g.weapons[i].ID, "err", err)
	}
}

func (g *Game) Update() error {
	g.handleInput()

	if g.paused {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if err := g.simTick(); err != nil {
			return err
		}
	}
	return nil
}

// simTick runs one range tick, then drains fire cues and new log lines.
func (g *Game) simTick() error {
	if g.player != nil {
		g.player.Aim = g.aimAt(g.mouseX, g.mouseY)
		if g.firing && g.player.Ready() {
			g.field.Fire(g.player.Label)
		}
	}
	if err := g.field.Step(context.Background()); err != nil {
		return err
	}
	for _, s := range g.field.FX.DrainSounds() {
		if g.cfg.Sound != nil {
			g.cfg.Sound.Play(s.Audio)
		}
	}
	g.panel.Sync(g.field.Log)
	return nil
}

// aimAt turns a cursor position into an aim vector from the player's muzzle,
// level with the muzzle.
func (g *Game) aimAt(mx, my int) geom.Vec3 {
	if g.player == nil {
		return geom.Zero
	}
	p := g.cam.ToWorld(mx, my, g.player.Muzzle.Y)
	return p.Sub(g.player.Muzzle)
}

func (g *Game) pressed(k ebiten.Key, cur map[ebiten.Key]bool) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// 1-9 select a weapon from the library.
	weaponKeys := []ebiten.Key{
		ebiten.Key1, ebiten.Key2, ebiten.Key3,
		ebiten.Key4, ebiten.Key5, ebiten.Key6,
		ebiten.Key7, ebiten.Key8, ebiten.Key9,
	}
	for i, k := range weaponKeys {
		if g.pressed(k, currentKeys) {
			g.equip(i)
		}
	}

	if g.pressed(ebiten.KeyP, currentKeys) {
		g.paused = !g.paused
	}
	if g.pressed(ebiten.KeyR, currentKeys) {
		g.reset()
	}
	if g.pressed(ebiten.KeyH, currentKeys) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(ebiten.KeyEqual, currentKeys) && g.simSpeed < 4 {
		g.simSpeed *= 2
	}
	if g.pressed(ebiten.KeyMinus, currentKeys) && g.simSpeed > 0.125 {
		g.simSpeed /= 2
	}

	g.mouseX, g.mouseY = ebiten.CursorPosition()
	g.firing = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && g.mouseX < fieldWidth
	g.prevKeys = currentKeys
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.Range(screen, g.field, g.cam)
	g.panel.Draw(screen, fieldWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.hudText(), 8, 8)
}

// hudText is the key legend and current weapon readout.
func (g *Game) hudText() string {
	s := fmt.Sprintf("scenario %s  tick %d  speed x%.2f", g.script.Name, g.field.CurrentTick(), g.simSpeed)
	if g.paused {
		s += "  [PAUSED]"
	}
	s += "\n"
	for i, w := range g.weapons {
		mark := " "
		if i == g.current {
			mark = ">"
		}
		s += fmt.Sprintf("%s%d %s\n", mark, i+1, w.Name)
	}
	if g.player != nil {
		s += fmt.Sprintf("pulls %d  cooldown %.2fs\n", g.player.Pulls(), g.player.Cooldown())
	}
	s += fmt.Sprintf("hits %d  damage %.0f\n",
		g.field.Log.Count(combatlog.CatHitscan, "hit")+g.field.Log.Count(combatlog.CatProjectile, "impact"),
		g.field.Log.Sum(combatlog.CatEffect, "damage"))
	s += "LMB fire  1-9 weapon  P pause  R reset  +/- speed  H hud"
	return s
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
