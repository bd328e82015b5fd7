package synth

import "math/rand/v2"

// NoteEvent is one pitched note placed on the session timeline.
type NoteEvent struct {
	Start    float64 // seconds from session start
	Freq     float64 // Hz
	Duration float64 // seconds
	Wave     Waveform
	Gain     float64 // peak amplitude fraction in (0,1]
	Detune   float64 // cents, 0 if none
}

// DrumKind identifies a percussion trigger.
type DrumKind int

const (
	Kick DrumKind = iota
	Snare
	HatClosed
	HatOpen
)

// DrumHit is one percussion trigger on the session timeline.
type DrumHit struct {
	Kind DrumKind
	Time float64 // seconds from session start
}

// Arrangement is everything one session plays.
type Arrangement struct {
	Notes []NoteEvent
	Drums []DrumHit
}

// Mix levels per track. The pad sits well under the melody so the triad
// reads as texture, not chords.
const (
	melodyGain = 0.22
	bassGain   = 0.28
	padGain    = 0.07
)

// bassPattern indexes the scale as root/third/root/fifth, wrapped modulo
// scale length, played one octave down.
var bassPattern = [4]int{0, 2, 0, 3}

// Arrange lays out melody, bass, pad and drums over a 4/4 bar grid derived
// from the tempo. Trailing time that does not fill a whole bar is dropped,
// so the jingle can run slightly short of totalDur before the fade window.
// A tempo too slow to fit one bar yields an empty arrangement, not an error.
func Arrange(tempo int, p Profile, totalDur float64, rng *rand.Rand) Arrangement {
	var arr Arrangement
	if tempo <= 0 || totalDur <= 0 || len(p.Scale) == 0 {
		return arr
	}

	beatDur := 60.0 / float64(tempo)
	barDur := beatDur * 4
	barCount := int(totalDur / barDur)

	for bar := 0; bar < barCount; bar++ {
		barStart := float64(bar) * barDur
		barEnd := barStart + barDur

		// Pad: one triad per bar, root plus 1.25x and 1.5x ratios, each
		// slightly detuned so the voices beat against each other.
		root := p.Scale[0]
		for _, ratio := range []float64{1.0, 1.25, 1.5} {
			arr.Notes = append(arr.Notes, NoteEvent{
				Start:    barStart,
				Freq:     root * ratio,
				Duration: beatDur * 3.8,
				Wave:     Sine,
				Gain:     padGain,
				Detune:   rng.Float64()*6 - 3,
			})
		}

		for beat := 0; beat < 4; beat++ {
			t := barStart + float64(beat)*beatDur

			// Melody: 70% chance per beat, random scale degree, 30% chance
			// of a doubled note capped at the bar line.
			if rng.Float64() < 0.7 {
				dur := beatDur
				if rng.Float64() < 0.3 {
					dur *= 2
					if t+dur > barEnd {
						dur = barEnd - t
					}
				}
				arr.Notes = append(arr.Notes, NoteEvent{
					Start:    t,
					Freq:     p.Scale[rng.IntN(len(p.Scale))],
					Duration: dur,
					Wave:     p.LeadWave,
					Gain:     melodyGain,
				})
			}

			// Bass: every beat, an octave below the pattern degree.
			arr.Notes = append(arr.Notes, NoteEvent{
				Start:    t,
				Freq:     p.Scale[bassPattern[beat]%len(p.Scale)] / 2,
				Duration: beatDur * 0.85,
				Wave:     p.BassWave,
				Gain:     bassGain,
			})

			// Drums: kick on 1 and 3, snare on 2 and 4.
			if beat%2 == 0 {
				arr.Drums = append(arr.Drums, DrumHit{Kind: Kick, Time: t})
			} else {
				arr.Drums = append(arr.Drums, DrumHit{Kind: Snare, Time: t})
			}
		}

		// Hi-hats: eighth-note subdivisions, last one of the bar open.
		for i := 0; i < 8; i++ {
			kind := HatClosed
			if i == 7 {
				kind = HatOpen
			}
			arr.Drums = append(arr.Drums, DrumHit{
				Kind: kind,
				Time: barStart + float64(i)*beatDur/2,
			})
		}
	}

	return arr
}
