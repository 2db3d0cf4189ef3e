package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Garsondee/firing-range/internal/collision"
)

// Library holds every bullet and weapon profile loaded for a session.
// Weapons keep their file order; bullets are shared by pointer.
type Library struct {
	Bullets map[string]*BulletProfile
	Weapons []*WeaponFireProfile
}

type libraryFile struct {
	Bullets []*BulletProfile     `json:"bullets"`
	Weapons []*WeaponFireProfile `json:"weapons"`
}

// LoadLibrary reads a profile library from a JSON file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile library: %w", err)
	}
	lib, err := ParseLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// ParseLibrary decodes a library and links weapons to their bullets. A weapon
// that names an unknown bullet is kept with a nil Bullet so Validate and the
// firing path both see the configuration error.
func ParseLibrary(data []byte) (*Library, error) {
	var f libraryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile library: %w", err)
	}

	lib := &Library{Bullets: make(map[string]*BulletProfile, len(f.Bullets))}
	for _, b := range f.Bullets {
		if b == nil {
			continue
		}
		if _, dup := lib.Bullets[b.ID]; dup {
			return nil, fmt.Errorf("duplicate bullet id %q", b.ID)
		}
		lib.Bullets[b.ID] = b
	}
	seen := make(map[string]bool, len(f.Weapons))
	for _, w := range f.Weapons {
		if w == nil {
			continue
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("duplicate weapon id %q", w.ID)
		}
		seen[w.ID] = true
		w.Bullet = lib.Bullets[w.BulletID]
		lib.Weapons = append(lib.Weapons, w)
	}
	return lib, nil
}

// Marshal encodes the library in the file layout ParseLibrary reads.
func (l *Library) Marshal() ([]byte, error) {
	f := libraryFile{Weapons: l.Weapons}
	for _, id := range l.bulletIDs() {
		f.Bullets = append(f.Bullets, l.Bullets[id])
	}
	for _, w := range l.Weapons {
		if w.Bullet != nil {
			w.BulletID = w.Bullet.ID
		}
	}
	return json.MarshalIndent(f, "", "  ")
}

// bulletIDs returns bullet IDs in weapon reference order, then the rest.
func (l *Library) bulletIDs() []string {
	var ids []string
	seen := map[string]bool{}
	for _, w := range l.Weapons {
		if w.Bullet != nil && !seen[w.Bullet.ID] {
			seen[w.Bullet.ID] = true
			ids = append(ids, w.Bullet.ID)
		}
	}
	for id := range l.Bullets {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Weapon returns the weapon with the given ID.
func (l *Library) Weapon(id string) (*WeaponFireProfile, bool) {
	for _, w := range l.Weapons {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// Validate checks every weapon and every unreferenced bullet.
func (l *Library) Validate() error {
	var errs []error
	used := map[*BulletProfile]bool{}
	for _, w := range l.Weapons {
		if w.Bullet == nil && w.BulletID != "" {
			errs = append(errs, fmt.Errorf("weapon %q bullet %q: %w", w.ID, w.BulletID, ErrUnknownBullet))
		}
		if err := w.Validate(); err != nil {
			errs = append(errs, err)
		}
		used[w.Bullet] = true
	}
	for _, id := range l.bulletIDs() {
		b := l.Bullets[id]
		if used[b] {
			continue
		}
		if err := b.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// --- Built-in profiles ---

var (
	rifleRound = &BulletProfile{
		ID:           "rifle_round",
		Mode:         Hitscan,
		BaseDamage:   34,
		Falloff:      NewCurve(Keyframe{0, 1}, Keyframe{0.5, 1}, Keyframe{1, 0.6}),
		MaxRange:     120,
		HitMask:      collision.MaskAll &^ collision.LayerProjectile,
		BloomDegrees: 1.5,
	}
	buckshot = &BulletProfile{
		ID:           "buckshot",
		Mode:         Hitscan,
		BaseDamage:   12,
		Falloff:      Linear(1, 0.2),
		MaxRange:     40,
		HitMask:      collision.MaskAll &^ collision.LayerProjectile,
		BloomDegrees: 1,
	}
	sabot = &BulletProfile{
		ID:               "sabot",
		Mode:             Hitscan,
		BaseDamage:       90,
		Falloff:          Constant(1),
		MaxRange:         300,
		PenetrationCount: 2,
		RicochetCount:    1,
		HitMask:          collision.MaskAll &^ collision.LayerProjectile,
	}
	flame = &BulletProfile{
		ID:           "flame",
		Mode:         Hitscan,
		BaseDamage:   6,
		Falloff:      Linear(1, 0.3),
		MaxRange:     12,
		CastRadius:   0.6,
		Triggers:     collision.IncludeTriggers,
		HitMask:      collision.MaskAll &^ collision.LayerProjectile,
		BloomDegrees: 4,
	}
	grenade = &BulletProfile{
		ID:         "grenade",
		Mode:       Projectile,
		BaseDamage: 60,
		Falloff:    Constant(1),
		MaxRange:   80,
		CastRadius: 0.1,
		HitMask:    collision.MaskAll &^ collision.LayerProjectile,
		Speed:      25,
		Gravity:    9.81,
		Prefab: &Prefab{
			Name:          "grenade",
			Radius:        0.1,
			TrailPoints:   24,
			TrailDuration: 0.6,
			Color:         0x9acd32,
		},
	}
)

func ptr[T any](v T) *T { return &v }

// DefaultLibrary returns the built-in weapon set. Each call returns fresh
// copies so callers may edit them.
func DefaultLibrary() *Library {
	bullets := []*BulletProfile{rifleRound, buckshot, sabot, flame, grenade}
	lib := &Library{Bullets: make(map[string]*BulletProfile, len(bullets))}
	for _, b := range bullets {
		bc := *b
		if b.Prefab != nil {
			pc := *b.Prefab
			bc.Prefab = &pc
		}
		bc.Falloff = NewCurve(b.Falloff.Keys...)
		lib.Bullets[bc.ID] = &bc
	}

	add := func(w *WeaponFireProfile) {
		w.Bullet = lib.Bullets[w.BulletID]
		lib.Weapons = append(lib.Weapons, w)
	}
	add(&WeaponFireProfile{
		ID: "rifle", Name: "Rifle", FireRate: 8, Pellets: 1, BulletID: "rifle_round",
		Effects: []EffectEntry{
			Damage(DamageParams{CritChance: 10, CritMultiplier: 2}),
			Knockback(KnockbackParams{Force: 2, Direction: PushAlongShot, AgentDuration: 0.15, AgentMetersPerN: 0.1}),
		},
		Audio: AudioParams{Cue: "rifle", Volume: 0.6, Pitch: 1, PitchJitter: 0.05},
	})
	add(&WeaponFireProfile{
		ID: "shotgun", Name: "Shotgun", FireRate: 1.2, Pellets: 8, ExtraPelletSpread: 6, BulletID: "buckshot",
		Effects: []EffectEntry{
			Damage(DefaultDamageParams()),
			Knockback(KnockbackParams{Force: 1.5, Direction: PushAlongShot, ScaleByDamage: true, AgentDuration: 0.2, AgentMetersPerN: 0.01}),
		},
		Audio: AudioParams{Cue: "shotgun", Volume: 0.9, Pitch: 0.8, PitchJitter: 0.08},
	})
	add(&WeaponFireProfile{
		ID: "sniper", Name: "Sniper", FireRate: 0.8, Pellets: 1, BulletID: "sabot",
		Effects: []EffectEntry{
			Damage(DamageParams{Range: &IntRange{Min: 80, Max: 100}, CritChance: 25, CritMultiplier: 1.5}),
			Knockback(KnockbackParams{Force: 8, Direction: PushAlongNormal, AgentDuration: 0.25, AgentMetersPerN: 0.08}),
		},
		Audio: AudioParams{Cue: "sniper", Volume: 1, Pitch: 0.7, PitchJitter: 0.02},
	})
	add(&WeaponFireProfile{
		ID: "flamer", Name: "Flamer", FireRate: 20, Pellets: 1, BulletID: "flame",
		Effects: []EffectEntry{
			{Kind: KindDamage},
		},
		Audio: AudioParams{Cue: "flame", Volume: 0.4, Pitch: 1.4, PitchJitter: 0.2},
	})
	add(&WeaponFireProfile{
		ID: "launcher", Name: "Grenade Launcher", FireRate: 1, Pellets: 1, BulletID: "grenade",
		Effects: []EffectEntry{
			Damage(DamageParams{Override: ptr(60), CritMultiplier: 1}),
			Knockback(KnockbackParams{Force: 12, Direction: PushAlongNormal, AgentDuration: 0.3, AgentMetersPerN: 0.05}),
		},
		Audio: AudioParams{Cue: "launcher", Volume: 0.8, Pitch: 0.6, PitchJitter: 0.05},
	})
	return lib
}
