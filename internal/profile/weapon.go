package profile

import (
	"errors"
	"fmt"
)

// AudioParams describes the gunshot cue of one trigger pull.
type AudioParams struct {
	Cue         string  `json:"cue"`
	Volume      float64 `json:"volume"`      // 0..1
	Pitch       float64 `json:"pitch"`       // playback rate, 1 = authored
	PitchJitter float64 `json:"pitchJitter"` // +- fraction applied per pull
}

// WeaponFireProfile is what differentiates one weapon from another: cadence,
// pellet pattern, the bullet it shoots and the ordered effect list.
type WeaponFireProfile struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	FireRate          float64        `json:"fireRate"` // shots per second
	Pellets           int            `json:"pellets"`
	ExtraPelletSpread float64        `json:"extraPelletSpread"` // degrees
	BulletID          string         `json:"bullet"`
	Bullet            *BulletProfile `json:"-"`
	Effects           []EffectEntry  `json:"effects"`
	Audio             AudioParams    `json:"audio"`
}

// Cooldown returns the seconds between trigger pulls.
func (w *WeaponFireProfile) Cooldown() float64 {
	if w.FireRate <= 0 {
		return 0
	}
	return 1 / w.FireRate
}

// Validate reports every authoring problem, including the bullet's.
func (w *WeaponFireProfile) Validate() error {
	var errs []error
	field := func(name string, err error) {
		errs = append(errs, fmt.Errorf("weapon %q %s: %w", w.ID, name, err))
	}

	if !(w.FireRate > 0) {
		field("fireRate", ErrBadFireRate)
	}
	if w.Pellets < 1 {
		field("pellets", ErrBadPellets)
	}
	if w.ExtraPelletSpread < 0 || w.ExtraPelletSpread > 89 {
		field("extraPelletSpread", ErrBadAngle)
	}
	for i, e := range w.Effects {
		if err := e.Validate(); err != nil {
			field(fmt.Sprintf("effects[%d]", i), err)
		}
	}
	if w.Bullet == nil {
		field("bullet", ErrNoBullet)
	} else if err := w.Bullet.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
