package synth

import "testing"

func TestWaveformPreviewBounds(t *testing.T) {
	for _, bpm := range []int{60, 120, 180, 200} {
		values := WaveformPreview(bpm, 64, testRand())
		if len(values) != 64 {
			t.Fatalf("bpm %d: got %d values, want 64", bpm, len(values))
		}
		for i, v := range values {
			if v < 0.08 || v > 1.0 {
				t.Errorf("bpm %d: value[%d] = %v outside [0.08, 1.0]", bpm, i, v)
			}
		}
	}
}

func TestWaveformPreviewCount(t *testing.T) {
	if got := WaveformPreview(120, 1, testRand()); len(got) != 1 {
		t.Errorf("n=1 returned %d values", len(got))
	}
	if got := WaveformPreview(120, 0, testRand()); got != nil {
		t.Errorf("n=0 returned %d values, want none", len(got))
	}
}

func TestWaveformPreviewVaries(t *testing.T) {
	values := WaveformPreview(120, 64, testRand())
	first := values[0]
	flat := true
	for _, v := range values[1:] {
		if v != first {
			flat = false
			break
		}
	}
	if flat {
		t.Error("preview is flat; expected beat-driven variation")
	}
}
