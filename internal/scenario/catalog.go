package scenario

import (
	"sort"

	"github.com/Garsondee/firing-range/internal/geom"
)

// Script is a named, reproducible range layout.
type Script struct {
	Name    string
	Summary string
	Ticks   int // suggested run length
	Options []Option
}

// Build constructs the range. Extra options are applied after the script's
// own, so a later WithSeed wins.
func (s Script) Build(extra ...Option) *Range {
	opts := make([]Option, 0, len(s.Options)+len(extra))
	opts = append(opts, s.Options...)
	opts = append(opts, extra...)
	return New(opts...)
}

var catalog = []Script{
	{
		Name:    "rifle-line",
		Summary: "rifle on auto into a dummy screening a second one",
		Ticks:   60,
		Options: []Option{
			WithDummy("near", 0, 10, 1000),
			WithDummy("far", 0, 20, 1000),
			WithGunner("R1", 0, 0, geom.Forward, "rifle"),
			WithAutoFire("R1"),
		},
	},
	{
		Name:    "shotgun-spread",
		Summary: "one shotgun blast into three close dummies",
		Ticks:   30,
		Options: []Option{
			WithDummy("left", -0.7, 6, 200),
			WithDummy("center", 0, 6, 200),
			WithDummy("right", 0.7, 6, 200),
			WithGunner("S1", 0, 0, geom.Forward, "shotgun"),
			WithAutoFire("S1"),
		},
	},
	{
		Name:    "sniper-penetration",
		Summary: "sabot through a column of three dummies",
		Ticks:   90,
		Options: []Option{
			WithDummy("first", 0, 10, 500),
			WithDummy("second", 0, 15, 500),
			WithDummy("third", 0, 20, 500),
			WithGunner("K1", 0, 0, geom.Forward, "sniper"),
			WithAutoFire("K1"),
		},
	},
	{
		Name:    "flamer-triggers",
		Summary: "smoke blocks the flamer but not the rifle",
		Ticks:   60,
		Options: []Option{
			WithTriggerVolume("smoke", geom.V(0, 1, 4), geom.V(4, 1, 0.5)),
			WithTagged("tank", "fuel_tank", -2, 8, 1000),
			WithDummy("target", 2, 8, 1000),
			WithGunner("F1", -2, 0, geom.Forward, "flamer"),
			WithGunner("R1", 2, 0, geom.Forward, "rifle"),
			WithAutoFire("F1"),
			WithAutoFire("R1"),
		},
	},
	{
		Name:    "launcher-arc",
		Summary: "grenade lobbed onto a crate",
		Ticks:   120,
		Options: []Option{
			WithCrate("crate", 0, 15, 20, 500),
			WithGunner("G1", 0, 0, geom.V(0, 0.07, 1), "launcher"),
			WithAutoFire("G1"),
		},
	},
	{
		Name:    "ogre-rig",
		Summary: "one target with layered hitboxes takes one hit per pellet",
		Ticks:   90,
		Options: []Option{
			WithRig("ogre", 0, 12, 3, 1000),
			WithDummy("backstop", 0, 16, 500),
			WithGunner("K1", 0, 0, geom.Forward, "sniper"),
			WithAutoFire("K1"),
		},
	},
	{
		Name:    "knockback-walker",
		Summary: "rifle fire shoving a navigation agent down range",
		Ticks:   60,
		Options: []Option{
			WithWalker("walker", 0, 8, 5000),
			WithGunner("R1", 0, 0, geom.Forward, "rifle"),
			WithAutoFire("R1"),
		},
	},
	{
		Name:    "gallery",
		Summary: "mixed targets for the interactive views",
		Ticks:   600,
		Options: []Option{
			WithWall("backstop", geom.V(0, 2, 30), geom.V(12, 2, 0.5)),
			WithTriggerVolume("smoke", geom.V(-6, 1, 10), geom.V(2, 1, 0.5)),
			WithDummy("dummy_a", -4, 14, 200),
			WithDummy("dummy_b", 0, 18, 200),
			WithCrate("crate", 5, 12, 20, 300),
			WithWalker("walker", 2, 22, 400),
			WithRig("ogre", -8, 20, 3, 600),
			WithTagged("barrel", "fuel_tank", 8, 20, 80),
			WithGunner("P1", 0, 0, geom.Forward, "rifle"),
		},
	},
}

// Catalog returns every built-in script.
func Catalog() []Script {
	out := make([]Script, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a script by name.
func Lookup(name string) (Script, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Script{}, false
}

// Names returns the script names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, s := range catalog {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
