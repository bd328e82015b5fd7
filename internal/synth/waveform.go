package synth

import (
	"math"
	"math/rand/v2"
)

// WaveformPreview returns n amplitude fractions in [0.08, 1.0] approximating
// beat-driven loudness at the given tempo. Purely visual: it is a fixed
// trigonometric shape plus jitter, never derived from the rendered audio.
func WaveformPreview(bpm, n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		pulse := math.Abs(math.Sin(float64(i) * math.Pi * float64(bpm) / 240))
		v := 0.15 + 0.72*pulse + 0.18*rng.Float64()
		if v > 1 {
			v = 1
		}
		if v < 0.08 {
			v = 0.08
		}
		out[i] = v
	}
	return out
}
