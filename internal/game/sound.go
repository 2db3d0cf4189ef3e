package game

import (
	"log/slog"

	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/firing-range/internal/audio"
	"github.com/Garsondee/firing-range/internal/profile"
)

// maxVoices caps overlapping cues so a flamer on full auto stays audible.
const maxVoices = 12

// Speaker plays synthesized cues through ebiten's audio context.
type Speaker struct {
	ctx    *ebitenaudio.Context
	bank   *audio.Bank
	voices []*ebitenaudio.Player
	Volume float64 // master gain, 0..1
}

// NewSpeaker opens (or reuses) the process audio context.
func NewSpeaker(volume float64) *Speaker {
	ctx := ebitenaudio.CurrentContext()
	if ctx == nil {
		ctx = ebitenaudio.NewContext(int(audio.DefaultSampleRate))
	}
	return &Speaker{ctx: ctx, bank: audio.NewBank(audio.DefaultSampleRate), Volume: volume}
}

// Play implements Sound.
func (s *Speaker) Play(a profile.AudioParams) {
	pcm, err := s.bank.PCM(a)
	if err != nil {
		slog.Warn("render cue", "cue", a.Cue, "err", err)
		return
	}

	kept := s.voices[:0]
	for _, v := range s.voices {
		if v.IsPlaying() {
			kept = append(kept, v)
			continue
		}
		_ = v.Close()
	}
	s.voices = kept
	if len(s.voices) >= maxVoices {
		return
	}

	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(s.Volume)
	p.Play()
	s.voices = append(s.voices, p)
}
