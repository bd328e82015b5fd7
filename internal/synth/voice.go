package synth

import (
	"math"

	"jinglesmith/internal/audio"
)

// Note envelope and filter-sweep constants: each note opens bright and
// closes dark, like a plucked string losing energy.
const (
	attackTime   = 0.020 // linear ramp to peak
	releaseTime  = 0.050 // linear ramp back to silence, ending at note end
	sweepStartHz = 3000.0
	sweepEndHz   = 800.0
)

func oscSample(w Waveform, phase float64) float64 {
	switch w {
	case Sine:
		return math.Sin(2 * math.Pi * phase)
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*phase - 1
	case Triangle:
		return 2*math.Abs(2*phase-1) - 1
	}
	return 0
}

// detuned applies a detune in cents to a base frequency.
func detuned(freq, cents float64) float64 {
	if cents == 0 {
		return freq
	}
	return freq * math.Pow(2, cents/1200)
}

// RenderNote renders one pitched note into the bus at its absolute sample
// offset. The caller guarantees positive frequency and duration. Writes past
// the end of the bus are dropped; the fade window silences that tail anyway.
func RenderNote(bus []float64, ev NoteEvent) {
	start := int(ev.Start * audio.SampleRate)
	n := int(ev.Duration * audio.SampleRate)
	if n <= 0 || start >= len(bus) {
		return
	}

	freq := detuned(ev.Freq, ev.Detune)
	phaseInc := freq / audio.SampleRate
	attack := int(attackTime * audio.SampleRate)
	release := int(releaseTime * audio.SampleRate)
	holdEnd := n - release
	if holdEnd < attack {
		holdEnd = attack
	}

	var phase float64
	var lp onePoleLP

	for i := 0; i < n; i++ {
		idx := start + i
		if idx >= len(bus) {
			break
		}

		// Exponential cutoff sweep over the note's duration.
		t := float64(i) / float64(n)
		cutoff := sweepStartHz * math.Pow(sweepEndHz/sweepStartHz, t)

		sample := lp.process(oscSample(ev.Wave, phase), cutoff)

		// Attack / hold / release amplitude envelope.
		env := ev.Gain
		if i < attack && attack > 0 {
			env *= float64(i) / float64(attack)
		} else if i >= holdEnd {
			env *= float64(n-i) / float64(n-holdEnd)
		}

		bus[idx] += sample * env

		phase += phaseInc
		if phase >= 1 {
			phase -= 1
		}
	}
}
