package player

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"jinglesmith/internal/audio"
	"jinglesmith/internal/synth"
)

const (
	// DefaultDuration is the session length when the caller does not ask
	// for one.
	DefaultDuration = 12.0

	// gracePeriod is how long a session lingers after its nominal end so
	// the fade tail can finish before teardown.
	gracePeriod = 200 * time.Millisecond

	// progressEvery is the progress cadence in frames (5 * 20ms = 100ms).
	progressEvery = 5
)

// Params describes one play request.
type Params struct {
	BPM      int
	Style    string
	Tone     string
	Duration float64 // seconds; 0 means DefaultDuration

	// OnProgress, if set, receives (elapsed, total) roughly every 100ms
	// until elapsed reaches total. Never called after Stop.
	OnProgress func(elapsed, total float64)
}

// session is one playback lifecycle. The controller owns the only
// reference; everything else compares identity before touching it.
type session struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	elapsed float64
	total   float64
}

func (s *session) setElapsed(v float64) {
	s.mu.Lock()
	s.elapsed = v
	s.mu.Unlock()
}

func (s *session) progress() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed, s.total
}

// Controller is the single-slot session manager: it renders a jingle up
// front, then streams its frames at real-time rate into the frame channel.
// At most one session is live at a time; a new Play forcibly supersedes the
// old session, and Stop is idempotent from any state.
type Controller struct {
	frames chan []int16

	mu     sync.Mutex
	active *session

	// newRand is swappable so tests can pin the arrangement.
	newRand func() *rand.Rand
}

// NewController creates an idle controller.
func NewController() *Controller {
	return &Controller{
		frames: make(chan []int16, 100),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// Frames returns the channel of outgoing PCM frames (20ms each), meant to
// feed the broadcaster for the process lifetime.
func (c *Controller) Frames() <-chan []int16 {
	return c.frames
}

// Playing reports whether a session is currently live.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Progress returns the live session's elapsed and total seconds, or ok=false
// when idle.
func (c *Controller) Progress() (elapsed, total float64, ok bool) {
	c.mu.Lock()
	s := c.active
	c.mu.Unlock()
	if s == nil {
		return 0, 0, false
	}
	elapsed, total = s.progress()
	return elapsed, total, true
}

// Play renders and streams one jingle, blocking until the session ends:
// naturally (total duration plus the fade grace), by Stop, or by
// supersession. A second Play while one is live tears the first down before
// starting; two sessions never emit sound at once.
func (c *Controller) Play(ctx context.Context, p Params) error {
	if p.Duration <= 0 {
		p.Duration = DefaultDuration
	}

	profile := synth.ResolveProfile(p.Style, p.Tone)
	pcm := synth.RenderSession(profile, p.BPM, p.Duration, c.newRand())
	frames := audio.Frames(pcm)

	sctx, cancel := context.WithCancel(ctx)
	s := &session{
		id:     uuid.New(),
		ctx:    sctx,
		cancel: cancel,
		done:   make(chan struct{}),
		total:  p.Duration,
	}

	// Acquire the single session slot, superseding any live session.
	for {
		c.mu.Lock()
		old := c.active
		if old == nil {
			c.active = s
			c.mu.Unlock()
			break
		}
		c.mu.Unlock()
		old.cancel()
		<-old.done
	}

	log.Printf("Session %s: playing %q at %d BPM for %.1fs", s.id, profile.Name, p.BPM, p.Duration)
	err := c.stream(s, frames, p.OnProgress)
	c.release(s)
	close(s.done)
	return err
}

// stream pushes frames at real-time rate and reports progress. The audio
// clock here is the frame ticker; nothing is scheduled per beat.
func (c *Controller) stream(s *session, frames [][]int16, onProgress func(elapsed, total float64)) error {
	ticker := time.NewTicker(audio.FrameDuration)
	defer ticker.Stop()

	for i, frame := range frames {
		select {
		case <-s.ctx.Done():
			return nil
		case <-ticker.C:
		}

		select {
		case c.frames <- frame:
		case <-s.ctx.Done():
			return nil
		}

		elapsed := float64(i+1) * audio.FrameDuration.Seconds()
		if elapsed > s.total {
			elapsed = s.total
		}
		s.setElapsed(elapsed)

		if onProgress != nil && (i%progressEvery == 0 || i == len(frames)-1) {
			// Re-check cancellation so a stopped session never calls back.
			select {
			case <-s.ctx.Done():
				return nil
			default:
				onProgress(elapsed, s.total)
			}
		}
	}
	s.setElapsed(s.total)

	// Let the fade tail clear before the session counts as complete.
	select {
	case <-s.ctx.Done():
	case <-time.After(gracePeriod):
	}
	return nil
}

// release clears the slot only if this session still owns it. A stale
// completion from a superseded session must not tear down its successor.
func (c *Controller) release(s *session) {
	s.cancel()
	c.mu.Lock()
	if c.active != nil && c.active.id == s.id {
		c.active = nil
	}
	c.mu.Unlock()
	log.Printf("Session %s: done", s.id)
}

// Stop tears down the live session, silencing everything still scheduled.
// Safe to call when idle, safe to call twice, and safe against a racing
// natural completion: only one teardown ever runs.
func (c *Controller) Stop() {
	c.mu.Lock()
	s := c.active
	c.active = nil
	c.mu.Unlock()
	if s == nil {
		return
	}
	s.cancel()
	<-s.done
}
