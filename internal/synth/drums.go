package synth

import (
	"math"
	"math/rand/v2"

	"jinglesmith/internal/audio"
)

// Exponential decays target this floor instead of zero, the usual trick to
// keep the ratio-based ramp defined.
const decayFloor = 0.001

// expDecay returns the amplitude at time t for a level decaying
// exponentially from v0 to the floor over dur seconds.
func expDecay(v0, t, dur float64) float64 {
	if t >= dur {
		return 0
	}
	return v0 * math.Pow(decayFloor/v0, t/dur)
}

// RenderKick renders a kick drum at the given offset: a sine swept
// exponentially from 150Hz to 40Hz over 150ms, decaying from 0.9 over
// 300ms, gone by 350ms.
func RenderKick(bus []float64, at float64) {
	start := int(at * audio.SampleRate)
	n := int(0.350 * audio.SampleRate)
	sweep := 0.150
	var phase float64

	for i := 0; i < n; i++ {
		idx := start + i
		if idx < 0 || idx >= len(bus) {
			continue
		}
		t := float64(i) / audio.SampleRate

		freq := 40.0
		if t < sweep {
			freq = 150 * math.Pow(40.0/150.0, t/sweep)
		}

		bus[idx] += math.Sin(2*math.Pi*phase) * expDecay(0.9, t, 0.300)
		phase += freq / audio.SampleRate
		if phase >= 1 {
			phase -= 1
		}
	}
}

// RenderSnare renders a snare at the given offset: 120ms of white noise
// through a 3kHz bandpass, decaying from 0.4 over the full burst. The noise
// is freshly drawn per trigger; caching would save nothing at this cadence.
func RenderSnare(bus []float64, at float64, rng *rand.Rand) {
	start := int(at * audio.SampleRate)
	n := int(0.120 * audio.SampleRate)
	bp := newBandpass(3000, 0.5)

	for i := 0; i < n; i++ {
		idx := start + i
		if idx < 0 || idx >= len(bus) {
			continue
		}
		t := float64(i) / audio.SampleRate
		noise := bp.process(rng.Float64()*2 - 1)
		bus[idx] += noise * expDecay(0.4, t, 0.120)
	}
}

// RenderHat renders a hi-hat at the given offset: white noise through a
// 7kHz highpass, 50ms closed or 300ms open, decaying from 0.15, with a
// 10ms margin after the decay completes.
func RenderHat(bus []float64, at float64, open bool, rng *rand.Rand) {
	decayDur := 0.050
	if open {
		decayDur = 0.300
	}
	start := int(at * audio.SampleRate)
	n := int((decayDur + 0.010) * audio.SampleRate)
	hp := newHighpass(7000, 0.707)

	for i := 0; i < n; i++ {
		idx := start + i
		if idx < 0 || idx >= len(bus) {
			continue
		}
		t := float64(i) / audio.SampleRate
		noise := hp.process(rng.Float64()*2 - 1)
		bus[idx] += noise * expDecay(0.15, t, decayDur)
	}
}
