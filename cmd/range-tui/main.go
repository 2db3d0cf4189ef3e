package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/firing-range/internal/audio"
	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/scenario"
)

const (
	logLines = 6
	turnStep = 2.0 // degrees per arrow press
)

type app struct {
	screen tcell.Screen
	script scenario.Script
	seed   int64
	lib    *profile.Library
	width  float64 // meters across the view
	sound  bool

	field   *scenario.Range
	player  *scenario.Gunner
	weapons []*profile.WeaponFireProfile
	current int
	yaw     float64 // degrees, 0 = straight down range
	paused  bool
	boxes   bool // collider overlay
}

func main() {
	var script string
	var seed int64
	var width float64
	var sound bool

	flag.StringVar(&script, "scenario", "gallery", "scenario name")
	flag.Int64Var(&seed, "seed", 1, "RNG seed")
	flag.Float64Var(&width, "width", 30, "meters across the view")
	flag.BoolVar(&sound, "sound", false, "play fire cues through the system speaker")
	flag.Parse()

	s, ok := scenario.Lookup(script)
	if !ok {
		fmt.Printf("error: unknown scenario %q\n", script)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	a := &app{screen: screen, script: s, seed: seed, lib: profile.DefaultLibrary(), width: width}
	if sound {
		rate := audio.DefaultSampleRate
		if err := speaker.Init(rate, rate.N(time.Second/10)); err == nil {
			a.sound = true
		}
	}
	a.weapons = append(a.weapons, a.lib.Weapons...)
	a.reset()
	a.run()
}

func (a *app) reset() {
	a.field = a.script.Build(scenario.WithSeed(a.seed), scenario.WithLibrary(a.lib))
	a.player = a.field.Gunner("P1")
	if a.player == nil && len(a.field.Gunners) > 0 {
		a.player = a.field.Gunners[0]
	}
	if a.player != nil && a.player.Weapon() != nil {
		for i, w := range a.weapons {
			if w.ID == a.player.Weapon().ID {
				a.current = i
			}
		}
	}
	a.yaw = 0
}

func (a *app) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !a.paused {
				if err := a.field.Step(context.Background()); err != nil {
					return
				}
			}
			a.playSounds()
			a.draw()
		}
	}
}

func (a *app) aim() geom.Vec3 {
	r := geom.Deg2Rad(a.yaw)
	return geom.V(math.Sin(r), 0, math.Cos(r))
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.yaw -= turnStep
		case tcell.KeyRight:
			a.yaw += turnStep
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == 'q':
				return false
			case r == ' ':
				if a.player != nil {
					a.player.Aim = a.aim()
					a.field.Fire(a.player.Label)
				}
			case r == 'p':
				a.paused = !a.paused
			case r == 'h':
				a.boxes = !a.boxes
			case r == 'r':
				a.reset()
			case r >= '1' && r <= '9':
				i := int(r - '1')
				if a.player != nil && i < len(a.weapons) {
					a.current = i
					_ = a.player.Equip(a.weapons[i])
				}
			}
		}
		if a.player != nil {
			a.player.Aim = a.aim()
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) playSounds() {
	for _, s := range a.field.FX.DrainSounds() {
		if a.sound {
			speaker.Play(audio.Stream(s.Audio, audio.DefaultSampleRate))
		}
	}
}

func (a *app) put(c, r int, ch rune, st tcell.Style) {
	a.screen.SetContent(c, r, ch, nil, st)
}

func (a *app) text(c, r int, s string, st tcell.Style) {
	for _, ch := range s {
		a.put(c, r, ch, st)
		c++
	}
}

func (a *app) draw() {
	a.screen.Clear()
	cols, rows := a.screen.Size()
	fieldRows := rows - logLines - 2
	if fieldRows < 4 {
		a.screen.Show()
		return
	}
	g := newGrid(cols, fieldRows, a.width)
	base := tcell.StyleDefault

	for _, w := range a.field.Walls {
		ch, st := '#', base.Foreground(tcell.ColorSilver)
		if w.Trigger {
			ch, st = '░', base.Foreground(tcell.ColorSteelBlue)
		}
		for _, c := range g.cellsOf(w.Center, w.Half) {
			a.put(c[0], c[1], ch, st)
		}
	}
	if a.boxes {
		for _, c := range g.hitboxes(a.field.World) {
			a.put(c[0], c[1], ':', base.Foreground(tcell.ColorDarkCyan))
		}
	}
	for i, d := range a.field.Snapshot().Dummies {
		ch, col := dummyGlyph(d)
		for _, c := range g.cellsOf(d.Pos, a.field.Dummies[i].Half) {
			a.put(c[0], c[1], ch, base.Foreground(col))
		}
	}
	for _, t := range a.field.FX.Tracers {
		for _, c := range g.along(t.Start, t.End) {
			a.put(c[0], c[1], '·', base.Foreground(tcell.ColorOrange))
		}
	}
	for _, p := range a.field.Projectiles.Live() {
		if tr := p.Trail(); tr != nil {
			for _, pt := range tr.Points() {
				if c, r, ok := g.cell(pt.Pos); ok {
					a.put(c, r, '.', base.Foreground(tcell.ColorOliveDrab))
				}
			}
		}
		if c, r, ok := g.cell(p.Position()); ok && p.Visible() {
			a.put(c, r, 'o', base.Foreground(tcell.ColorYellowGreen).Bold(true))
		}
	}
	for _, im := range a.field.FX.Impacts {
		if c, r, ok := g.cell(im.Point); ok {
			a.put(c, r, '*', base.Foreground(tcell.ColorLightYellow))
		}
	}
	for _, gn := range a.field.Gunners {
		if c, r, ok := g.cell(gn.Muzzle); ok {
			a.put(c, r, '@', base.Foreground(tcell.ColorDodgerBlue).Bold(true))
		}
	}
	for _, f := range a.field.FX.Flashes {
		if c, r, ok := g.cell(f.Origin.Add(f.Dir.Flat().Scale(g.cellD))); ok {
			a.put(c, r, '+', base.Foreground(tcell.ColorYellow))
		}
	}

	status := fmt.Sprintf(" %s  tick %d  yaw %+.0f°", a.script.Name, a.field.CurrentTick(), a.yaw)
	if a.player != nil && a.player.Weapon() != nil {
		status += fmt.Sprintf("  [%d] %s  pulls %d", a.current+1, a.player.Weapon().Name, a.player.Pulls())
	}
	if a.paused {
		status += "  PAUSED"
	}
	a.text(0, fieldRows, status, base.Reverse(true))
	a.text(0, fieldRows+1, " space fire  ←/→ aim  1-9 weapon  h hitboxes  p pause  r reset  q quit", base.Foreground(tcell.ColorGray))

	entries := a.field.Log.Entries()
	if len(entries) > logLines {
		entries = entries[len(entries)-logLines:]
	}
	for i, e := range entries {
		st := base
		if e.Category == combatlog.CatEffect {
			st = base.Foreground(tcell.ColorIndianRed)
		}
		a.text(0, fieldRows+2+i, e.String(), st)
	}
	a.screen.Show()
}
