package stream

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"jinglesmith/internal/audio"
)

// Monitor plays the broadcast on the local sound card, subscribing to the
// broadcaster like any network listener. Optional: a headless deployment
// runs without it.
type Monitor struct {
	broadcaster *Broadcaster
	listener    *Listener
	pending     []int16
}

// StartMonitor opens the output device and begins playing broadcast frames.
// Device initialization failure is returned to the caller; nothing is left
// subscribed on error.
func StartMonitor(b *Broadcaster) (*Monitor, error) {
	sr := beep.SampleRate(audio.SampleRate)
	if err := speaker.Init(sr, sr.N(40*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	m := &Monitor{
		broadcaster: b,
		listener:    b.Subscribe(),
	}
	speaker.Play(beep.StreamerFunc(m.stream))
	log.Println("Speaker monitor started")
	return m, nil
}

// stream feeds the speaker. When no broadcast frame is pending it emits
// silence rather than stalling the device.
func (m *Monitor) stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if len(m.pending) < audio.Channels {
			select {
			case frame, ok := <-m.listener.C:
				if !ok {
					return i, false
				}
				m.pending = frame
			default:
				samples[i][0] = 0
				samples[i][1] = 0
				continue
			}
		}
		samples[i][0] = audio.Int16ToFloat(m.pending[0])
		samples[i][1] = audio.Int16ToFloat(m.pending[1])
		m.pending = m.pending[audio.Channels:]
	}
	return len(samples), true
}

// Close detaches the monitor from the broadcast.
func (m *Monitor) Close() {
	m.broadcaster.Unsubscribe(m.listener)
}
