package fx

import (
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/profile"
)

const (
	impactLifetime = 0.5  // seconds
	textLifetime   = 1.0  // seconds
	flashLifetime  = 0.08 // seconds
	textRise       = 0.8  // meters per second of upward drift
)

// Tracer is a short-lived visual of one pellet segment.
type Tracer struct {
	Start, End geom.Vec3
	Lifetime   float64
	Age        float64
}

// Progress returns 0 at spawn and 1 at expiry.
func (t *Tracer) Progress() float64 {
	if t.Lifetime <= 0 {
		return 1
	}
	return geom.Clamp01(t.Age / t.Lifetime)
}

// Impact is a surface hit marker.
type Impact struct {
	Point, Normal geom.Vec3
	Age           float64
}

// Progress returns 0 at spawn and 1 at expiry.
func (i *Impact) Progress() float64 { return geom.Clamp01(i.Age / impactLifetime) }

// DamageText is a floating damage number.
type DamageText struct {
	Point     geom.Vec3
	Text      string
	Intensity Intensity
	Age       float64
}

// Position returns the drifted draw position.
func (d *DamageText) Position() geom.Vec3 {
	return d.Point.Add(geom.Up.Scale(d.Age * textRise))
}

// Progress returns 0 at spawn and 1 at expiry.
func (d *DamageText) Progress() float64 { return geom.Clamp01(d.Age / textLifetime) }

// MuzzleFlash is a brief burst at the muzzle.
type MuzzleFlash struct {
	Origin, Dir geom.Vec3
	Age         float64
}

// Progress returns 0 at spawn and 1 at expiry.
func (f *MuzzleFlash) Progress() float64 { return geom.Clamp01(f.Age / flashLifetime) }

// Sound is a queued fire cue waiting for an audio backend.
type Sound struct {
	Origin geom.Vec3
	Audio  profile.AudioParams
}

// Totals counts every event ever spawned.
type Totals struct {
	Tracers, Impacts, Texts, Crits, Flashes, Sounds int
}

// Recorder is a Spawner that keeps live visuals around so a renderer can
// draw them, ages them each tick and drops the expired ones.
type Recorder struct {
	Tracers []*Tracer
	Impacts []*Impact
	Texts   []*DamageText
	Flashes []*MuzzleFlash

	sounds []Sound
	totals Totals
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SpawnTracer implements Spawner.
func (r *Recorder) SpawnTracer(start, end geom.Vec3, lifetime float64) {
	r.totals.Tracers++
	r.Tracers = append(r.Tracers, &Tracer{Start: start, End: end, Lifetime: lifetime})
}

// SpawnImpact implements Spawner.
func (r *Recorder) SpawnImpact(point, normal geom.Vec3) {
	r.totals.Impacts++
	r.Impacts = append(r.Impacts, &Impact{Point: point, Normal: normal})
}

// SpawnDamageText implements Spawner.
func (r *Recorder) SpawnDamageText(point geom.Vec3, text string, intensity Intensity) {
	r.totals.Texts++
	if intensity == Crit {
		r.totals.Crits++
	}
	r.Texts = append(r.Texts, &DamageText{Point: point, Text: text, Intensity: intensity})
}

// SpawnMuzzleFlash implements Spawner.
func (r *Recorder) SpawnMuzzleFlash(origin, dir geom.Vec3) {
	r.totals.Flashes++
	r.Flashes = append(r.Flashes, &MuzzleFlash{Origin: origin, Dir: dir})
}

// PlayFireSound implements Spawner.
func (r *Recorder) PlayFireSound(origin geom.Vec3, audio profile.AudioParams) {
	r.totals.Sounds++
	r.sounds = append(r.sounds, Sound{Origin: origin, Audio: audio})
}

// DrainSounds returns and clears the queued fire cues.
func (r *Recorder) DrainSounds() []Sound {
	out := r.sounds
	r.sounds = nil
	return out
}

// Totals returns lifetime spawn counts.
func (r *Recorder) Totals() Totals { return r.totals }

// Update ages and prunes every live visual.
func (r *Recorder) Update(dt float64) {
	if dt <= 0 {
		return
	}
	kept := r.Tracers[:0]
	for _, t := range r.Tracers {
		t.Age += dt
		if t.Age < t.Lifetime {
			kept = append(kept, t)
		}
	}
	r.Tracers = kept

	keptI := r.Impacts[:0]
	for _, i := range r.Impacts {
		i.Age += dt
		if i.Age < impactLifetime {
			keptI = append(keptI, i)
		}
	}
	r.Impacts = keptI

	keptT := r.Texts[:0]
	for _, d := range r.Texts {
		d.Age += dt
		if d.Age < textLifetime {
			keptT = append(keptT, d)
		}
	}
	r.Texts = keptT

	keptF := r.Flashes[:0]
	for _, f := range r.Flashes {
		f.Age += dt
		if f.Age < flashLifetime {
			keptF = append(keptF, f)
		}
	}
	r.Flashes = keptF
}
