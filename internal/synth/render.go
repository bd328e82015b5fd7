package synth

import (
	"math/rand/v2"

	"jinglesmith/internal/audio"
)

const (
	// FadeDuration is the linear fade-to-silence ending exactly at the
	// session's total duration.
	FadeDuration = 1.5

	masterGain = 0.8
)

// RenderSession renders a complete jingle to interleaved stereo int16 PCM.
// Every note and drum hit is placed at its absolute sample offset in one
// pass; nothing is scheduled during playback. Pitched material runs through
// the reverb wet/dry split, drums connect straight to the mix, and the last
// 1.5 seconds ramp linearly to silence. A degenerate tempo produces silence
// of the full duration rather than an error.
func RenderSession(p Profile, tempo int, totalDur float64, rng *rand.Rand) []int16 {
	total := int(totalDur * audio.SampleRate)
	if total <= 0 {
		return nil
	}

	arr := Arrange(tempo, p, totalDur, rng)

	pitched := make([]float64, total)
	drums := make([]float64, total)

	for _, ev := range arr.Notes {
		RenderNote(pitched, ev)
	}
	for _, hit := range arr.Drums {
		switch hit.Kind {
		case Kick:
			RenderKick(drums, hit.Time)
		case Snare:
			RenderSnare(drums, hit.Time, rng)
		case HatClosed:
			RenderHat(drums, hit.Time, false, rng)
		case HatOpen:
			RenderHat(drums, hit.Time, true, rng)
		}
	}

	rev := NewReverb(reverbDuration, reverbDecay, rng)
	wetL, wetR := rev.Apply(pitched)
	dry := 1 - p.Reverb
	wet := p.Reverb

	fadeStart := totalDur - FadeDuration
	fadeSamples := int(FadeDuration * audio.SampleRate)

	out := make([]int16, total*audio.Channels)
	for i := 0; i < total; i++ {
		gain := masterGain
		if t := float64(i)/audio.SampleRate - fadeStart; t > 0 && fadeSamples > 0 {
			gain *= 1 - t/FadeDuration
			if gain < 0 {
				gain = 0
			}
		}

		base := dry*pitched[i] + drums[i]
		out[i*2] = audio.SampleToInt16((base + wet*wetL[i]) * gain)
		out[i*2+1] = audio.SampleToInt16((base + wet*wetR[i]) * gain)
	}
	return out
}
