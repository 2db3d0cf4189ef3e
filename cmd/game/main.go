package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/firing-range/internal/game"
	"github.com/Garsondee/firing-range/internal/profile"
)

func main() {
	var script string
	var profiles string
	var seed int64
	var mute bool
	var volume float64

	flag.StringVar(&script, "scenario", "gallery", "scenario name")
	flag.StringVar(&profiles, "profiles", "", "weapon library JSON (built-in set when empty)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.BoolVar(&mute, "mute", false, "disable fire sounds")
	flag.Float64Var(&volume, "volume", 0.5, "master volume 0..1")
	flag.Parse()

	cfg := game.Config{Script: script, Seed: seed}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if profiles != "" {
		lib, err := profile.LoadLibrary(profiles)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Library = lib
	}
	if !mute {
		cfg.Sound = game.NewSpeaker(volume)
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Firing Range")
	ebiten.SetWindowSize(1620, 800)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
