package synth

import (
	"math"
	"math/rand/v2"

	"jinglesmith/internal/audio"
)

// Reverb session defaults.
const (
	reverbDuration = 2.5
	reverbDecay    = 3.5
	reverbTaps     = 256
)

// Reverb is the shared wet bus for pitched material. It holds a synthetic
// stereo impulse response (decaying noise, not a recorded space) and applies
// it by sparse-tap convolution so the render stays cheap.
type Reverb struct {
	left, right []float64
	stride      int
	norm        float64
}

// BuildImpulse synthesizes one channel of impulse response: uniform noise
// shaped by (1 - i/length)^decay.
func BuildImpulse(durationSec, decay float64, rng *rand.Rand) []float64 {
	n := int(durationSec * audio.SampleRate)
	ir := make([]float64, n)
	for i := range ir {
		ir[i] = (rng.Float64()*2 - 1) * math.Pow(1-float64(i)/float64(n), decay)
	}
	return ir
}

// NewReverb builds the session reverb bus.
func NewReverb(durationSec, decay float64, rng *rand.Rand) *Reverb {
	r := &Reverb{
		left:  BuildImpulse(durationSec, decay, rng),
		right: BuildImpulse(durationSec, decay, rng),
	}
	r.stride = len(r.left) / reverbTaps
	if r.stride < 1 {
		r.stride = 1
	}

	// Normalize tap gain so the wet bus cannot swamp the dry signal.
	var sum float64
	for d := 0; d < len(r.left); d += r.stride {
		sum += math.Abs(r.left[d])
	}
	if sum > 0 {
		r.norm = 1.2 / sum
	}
	return r
}

// Apply convolves the dry bus with the sparse tap set of each channel,
// returning the left and right wet signals at the same length as dry.
func (r *Reverb) Apply(dry []float64) (wetL, wetR []float64) {
	wetL = make([]float64, len(dry))
	wetR = make([]float64, len(dry))
	for d := 0; d < len(r.left); d += r.stride {
		gl := r.left[d] * r.norm
		gr := r.right[d] * r.norm
		for i := d; i < len(dry); i++ {
			wetL[i] += dry[i-d] * gl
			wetR[i] += dry[i-d] * gr
		}
	}
	return wetL, wetR
}
