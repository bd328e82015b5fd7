package synth

import (
	"testing"

	"jinglesmith/internal/audio"
)

// --- RenderSession ---

func TestRenderSessionLength(t *testing.T) {
	pcm := RenderSession(DefaultProfile(), 120, 2, testRand())
	want := 2 * audio.SampleRate * audio.Channels
	if len(pcm) != want {
		t.Errorf("rendered %d samples, want %d", len(pcm), want)
	}
}

func TestRenderSessionProducesSound(t *testing.T) {
	pcm := RenderSession(DefaultProfile(), 120, 2, testRand())
	peak := int16(0)
	for _, s := range pcm {
		if s > peak {
			peak = s
		}
	}
	if peak < 500 {
		t.Errorf("peak amplitude %d, expected audible signal", peak)
	}
}

func TestRenderSessionSilentWhenNoBars(t *testing.T) {
	// 30 BPM: one bar is 8s, so a 1s session arranges nothing but still
	// renders full-duration silence rather than failing.
	pcm := RenderSession(DefaultProfile(), 30, 1, testRand())
	if len(pcm) != audio.SampleRate*audio.Channels {
		t.Fatalf("silent render length = %d, want %d", len(pcm), audio.SampleRate*audio.Channels)
	}
	for i, s := range pcm {
		if s != 0 {
			t.Fatalf("sample %d = %d, want silence", i, s)
		}
	}
}

func TestRenderSessionFadesOut(t *testing.T) {
	pcm := RenderSession(DefaultProfile(), 120, 4, testRand())
	// The linear fade ends exactly at the session end; the last few ms must
	// be essentially silent.
	tail := pcm[len(pcm)-200:]
	for i, s := range tail {
		if s > 300 || s < -300 {
			t.Errorf("tail sample %d = %d, fade did not reach silence", i, s)
		}
	}
}

func TestRenderSessionZeroDuration(t *testing.T) {
	if pcm := RenderSession(DefaultProfile(), 120, 0, testRand()); pcm != nil {
		t.Errorf("zero duration rendered %d samples, want none", len(pcm))
	}
}
