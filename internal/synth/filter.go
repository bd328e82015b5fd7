package synth

import (
	"math"

	"jinglesmith/internal/audio"
)

// biquad is a direct-form-I two-pole filter (RBJ cookbook coefficients).
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newBandpass(freq, q float64) *biquad {
	w0 := 2 * math.Pi * freq / audio.SampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	a0 := 1 + alpha
	return &biquad{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func newHighpass(freq, q float64) *biquad {
	w0 := 2 * math.Pi * freq / audio.SampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	a0 := 1 + alpha
	return &biquad{
		b0: (1 + cosw) / 2 / a0,
		b1: -(1 + cosw) / a0,
		b2: (1 + cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// onePoleLP is a one-pole lowpass whose cutoff can move every sample,
// which is what the per-note brightness sweep needs.
type onePoleLP struct {
	y float64
}

func (f *onePoleLP) process(x, cutoff float64) float64 {
	a := 1 - math.Exp(-2*math.Pi*cutoff/audio.SampleRate)
	f.y += a * (x - f.y)
	return f.y
}
