package player

import (
	"context"
	"sync"
	"testing"
	"time"
)

func drain(c *Controller) {
	go func() {
		for range c.Frames() {
		}
	}()
}

// --- Stop while idle ---

func TestStopWhenIdle(t *testing.T) {
	c := NewController()
	c.Stop()
	c.Stop() // idempotent: twice ends in the same state as once
	if c.Playing() {
		t.Error("controller playing after Stop from idle")
	}
	if _, _, ok := c.Progress(); ok {
		t.Error("Progress reported a session while idle")
	}
}

// --- Natural completion ---

func TestPlayRunsToCompletion(t *testing.T) {
	c := NewController()
	drain(c)

	start := time.Now()
	err := c.Play(context.Background(), Params{BPM: 120, Style: "pop", Duration: 0.2})
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if c.Playing() {
		t.Error("still playing after Play returned")
	}
	// Session runs duration plus the fade grace before resolving.
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("Play resolved after %v, want >= duration + grace", elapsed)
	}
}

// --- Progress reporting ---

func TestProgressCallback(t *testing.T) {
	c := NewController()
	drain(c)

	var mu sync.Mutex
	var ticks [][2]float64
	err := c.Play(context.Background(), Params{
		BPM: 120, Style: "pop", Duration: 0.3,
		OnProgress: func(elapsed, total float64) {
			mu.Lock()
			ticks = append(ticks, [2]float64{elapsed, total})
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) == 0 {
		t.Fatal("no progress ticks delivered")
	}
	for i, tick := range ticks {
		if tick[1] != 0.3 {
			t.Errorf("tick %d total = %v, want 0.3", i, tick[1])
		}
		if tick[0] < 0 || tick[0] > tick[1] {
			t.Errorf("tick %d elapsed %v outside [0, total]", i, tick[0])
		}
	}
	if last := ticks[len(ticks)-1]; last[0] != last[1] {
		t.Errorf("final tick elapsed = %v, want total %v", last[0], last[1])
	}
}

func TestProgressPoll(t *testing.T) {
	c := NewController()
	drain(c)

	go c.Play(context.Background(), Params{BPM: 120, Style: "pop", Duration: 1})
	waitPlaying(t, c, true)

	time.Sleep(150 * time.Millisecond)
	elapsed, total, ok := c.Progress()
	if !ok {
		t.Fatal("Progress not ok during playback")
	}
	if total != 1 {
		t.Errorf("total = %v, want 1", total)
	}
	if elapsed <= 0 || elapsed > total {
		t.Errorf("elapsed = %v, want within (0, %v]", elapsed, total)
	}
	c.Stop()
}

// --- Stop during playback ---

func TestStopTearsDownImmediately(t *testing.T) {
	c := NewController()
	drain(c)

	done := make(chan error, 1)
	go func() { done <- c.Play(context.Background(), Params{BPM: 120, Style: "pop", Duration: 2}) }()
	waitPlaying(t, c, true)

	c.Stop()
	if c.Playing() {
		t.Error("still playing after Stop")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("stopped Play returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Play did not return after Stop")
	}
	c.Stop() // reentrant-safe after teardown
}

// --- Supersession ---

func TestSecondPlaySupersedesFirst(t *testing.T) {
	c := NewController()
	drain(c)

	first := make(chan error, 1)
	go func() { first <- c.Play(context.Background(), Params{BPM: 120, Style: "pop", Duration: 2}) }()
	waitPlaying(t, c, true)

	// Second play must tear the first down, never run two at once.
	if err := c.Play(context.Background(), Params{BPM: 90, Style: "jazz", Duration: 0.2}); err != nil {
		t.Fatalf("second Play: %v", err)
	}

	select {
	case err := <-first:
		if err != nil {
			t.Errorf("superseded Play returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("first Play never resolved after supersession")
	}
	if c.Playing() {
		t.Error("controller still playing after both sessions ended")
	}
}

func waitPlaying(t *testing.T, c *Controller, want bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Playing() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("controller never reached playing=%v", want)
}
