package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/firing-range/internal/profile"
)

// DefaultSampleRate matches the sandbox's audio context.
const DefaultSampleRate = beep.SampleRate(44100)

// recipe is one gunshot: a noise crack over a pitched body.
type recipe struct {
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	body     float64 // Hz
	sweep    float64 // body glide multiplier
	wave     WaveType
	noise    float64 // crack share of the mix, 0..1
}

var recipes = map[string]recipe{
	"rifle":    {duration: 140 * time.Millisecond, attack: 2 * time.Millisecond, release: 120 * time.Millisecond, body: 180, sweep: 0.4, wave: WaveSaw, noise: 0.7},
	"shotgun":  {duration: 260 * time.Millisecond, attack: 3 * time.Millisecond, release: 230 * time.Millisecond, body: 90, sweep: 0.5, wave: WaveSquare, noise: 0.8},
	"sniper":   {duration: 320 * time.Millisecond, attack: 1 * time.Millisecond, release: 300 * time.Millisecond, body: 120, sweep: 0.3, wave: WaveSaw, noise: 0.6},
	"flame":    {duration: 90 * time.Millisecond, attack: 15 * time.Millisecond, release: 60 * time.Millisecond, body: 60, sweep: 1, wave: WaveSine, noise: 0.9},
	"launcher": {duration: 220 * time.Millisecond, attack: 5 * time.Millisecond, release: 180 * time.Millisecond, body: 70, sweep: 0.6, wave: WaveSine, noise: 0.4},
	"pistol":   {duration: 110 * time.Millisecond, attack: 2 * time.Millisecond, release: 90 * time.Millisecond, body: 240, sweep: 0.5, wave: WaveSquare, noise: 0.6},
}

// maxCue caps a rendered buffer.
const maxCue = 2 * time.Second

// fallbackCue is used for cue names with no recipe.
const fallbackCue = "rifle"

// Known reports whether cue has its own recipe.
func Known(cue string) bool {
	_, ok := recipes[cue]
	return ok
}

// Stream builds the streamer for one pull. Pitch resamples the cue (2 plays
// it an octave up and twice as short); volume is a linear gain.
func Stream(a profile.AudioParams, rate beep.SampleRate) beep.Streamer {
	r, ok := recipes[a.Cue]
	if !ok {
		r = recipes[fallbackCue]
	}

	crack := NewEnvelope(NewOscillator(1, 1, r.duration, WaveNoise, rate), r.duration, r.attack, r.release/2, rate)
	body := NewEnvelope(NewOscillator(r.body, r.sweep, r.duration, r.wave, rate), r.duration, r.attack, r.release, rate)
	var s beep.Streamer = beep.Mix(newVolume(crack, r.noise), newVolume(body, 1-r.noise))

	if a.Pitch > 0 && a.Pitch != 1 {
		s = beep.ResampleRatio(3, a.Pitch, s)
	}
	return newVolume(s, a.Volume)
}

// Render drains Stream into interleaved signed 16-bit little-endian stereo
// PCM, the layout raw-byte players expect.
func Render(a profile.AudioParams, rate beep.SampleRate) ([]byte, error) {
	s := Stream(a, rate)
	buf := make([][2]float64, 512)
	limit := rate.N(maxCue)
	var out []byte
	for len(out) < limit*4 {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = appendSample(out, buf[i][0])
			out = appendSample(out, buf[i][1])
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render cue %q: %w", a.Cue, err)
	}
	return out, nil
}

func appendSample(b []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	return binary.LittleEndian.AppendUint16(b, uint16(int16(math.Round(v*math.MaxInt16))))
}

// Bank caches rendered cues. Pitch and volume are quantized so jittered
// pulls share a handful of buffers.
type Bank struct {
	Rate  beep.SampleRate
	cache map[bankKey][]byte
}

type bankKey struct {
	cue    string
	pitch  int
	volume int
}

// NewBank returns an empty cache rendering at rate.
func NewBank(rate beep.SampleRate) *Bank {
	return &Bank{Rate: rate, cache: make(map[bankKey][]byte)}
}

// PCM returns the rendered bytes for a.
func (b *Bank) PCM(a profile.AudioParams) ([]byte, error) {
	k := bankKey{cue: a.Cue, pitch: int(math.Round(a.Pitch * 40)), volume: int(math.Round(a.Volume * 20))}
	if pcm, ok := b.cache[k]; ok {
		return pcm, nil
	}
	q := a
	q.Pitch = float64(k.pitch) / 40
	q.Volume = float64(k.volume) / 20
	pcm, err := Render(q, b.Rate)
	if err != nil {
		return nil, err
	}
	b.cache[k] = pcm
	return pcm, nil
}

// Len returns the number of cached buffers.
func (b *Bank) Len() int { return len(b.cache) }
