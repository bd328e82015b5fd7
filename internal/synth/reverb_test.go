package synth

import (
	"math"
	"testing"

	"jinglesmith/internal/audio"
)

func TestBuildImpulseShape(t *testing.T) {
	ir := BuildImpulse(2.5, 3.5, testRand())
	want := int(2.5 * audio.SampleRate)
	if len(ir) != want {
		t.Fatalf("impulse length = %d, want %d", len(ir), want)
	}

	n := float64(len(ir))
	for i, v := range ir {
		bound := math.Pow(1-float64(i)/n, 3.5)
		if math.Abs(v) > bound+1e-12 {
			t.Fatalf("ir[%d] = %v exceeds decay bound %v", i, v, bound)
		}
	}

	if last := ir[len(ir)-1]; math.Abs(last) > 1e-9 {
		t.Errorf("impulse tail = %v, want ~0", last)
	}
}

func TestReverbApply(t *testing.T) {
	r := NewReverb(0.5, 3.5, testRand())

	dry := make([]float64, audio.SampleRate/10)
	wetL, wetR := r.Apply(dry)
	if len(wetL) != len(dry) || len(wetR) != len(dry) {
		t.Fatalf("wet lengths %d/%d, want %d", len(wetL), len(wetR), len(dry))
	}
	for i := range wetL {
		if wetL[i] != 0 || wetR[i] != 0 {
			t.Fatal("silence in should be silence out")
		}
	}

	// An impulse should leave a decaying tail on both channels.
	dry[0] = 1
	wetL, wetR = r.Apply(dry)
	var energyL, energyR float64
	for i := range wetL {
		energyL += wetL[i] * wetL[i]
		energyR += wetR[i] * wetR[i]
	}
	if energyL == 0 || energyR == 0 {
		t.Error("impulse produced no reverb tail")
	}
}
