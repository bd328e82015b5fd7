package synth

import (
	"testing"

	"jinglesmith/internal/audio"
)

func busEnergy(bus []float64, from, to float64) float64 {
	start := int(from * audio.SampleRate)
	end := int(to * audio.SampleRate)
	var e float64
	for _, v := range bus[start:end] {
		e += v * v
	}
	return e
}

func TestKickWindow(t *testing.T) {
	bus := make([]float64, audio.SampleRate)
	RenderKick(bus, 0.1)

	if e := busEnergy(bus, 0, 0.1); e != 0 {
		t.Errorf("energy before trigger = %v, want 0", e)
	}
	if e := busEnergy(bus, 0.1, 0.45); e == 0 {
		t.Error("kick produced no energy in its window")
	}
	if e := busEnergy(bus, 0.5, 1.0); e != 0 {
		t.Errorf("energy after kick window = %v, want 0", e)
	}
}

func TestSnareWindow(t *testing.T) {
	bus := make([]float64, audio.SampleRate)
	RenderSnare(bus, 0.2, testRand())

	if e := busEnergy(bus, 0, 0.2); e != 0 {
		t.Error("snare wrote before its trigger")
	}
	if e := busEnergy(bus, 0.2, 0.32); e == 0 {
		t.Error("snare produced no energy")
	}
	if e := busEnergy(bus, 0.35, 1.0); e != 0 {
		t.Error("snare rang past 120ms")
	}
}

func TestHatOpenOutlastsClosed(t *testing.T) {
	closed := make([]float64, audio.SampleRate)
	open := make([]float64, audio.SampleRate)
	RenderHat(closed, 0, false, testRand())
	RenderHat(open, 0, true, testRand())

	// The closed hat is done by 60ms; the open hat still rings there.
	if e := busEnergy(closed, 0.07, 1.0); e != 0 {
		t.Error("closed hat rang past its window")
	}
	if e := busEnergy(open, 0.07, 0.3); e == 0 {
		t.Error("open hat died as fast as a closed one")
	}
}

func TestDrumsStayBounded(t *testing.T) {
	bus := make([]float64, audio.SampleRate)
	RenderKick(bus, 0.1)
	RenderSnare(bus, 0.1, testRand())
	RenderHat(bus, 0.1, true, testRand())

	for i, v := range bus {
		if v > 2 || v < -2 {
			t.Fatalf("sample %d = %v, runaway drum gain", i, v)
		}
	}
}
