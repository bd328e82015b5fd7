package synth

import "strings"

// Waveform selects the oscillator shape for a pitched voice.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Saw
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Saw:
		return "saw"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// Profile is the resolved musical character for a style/tone combination:
// the only pitches a session may use, the lead and bass oscillator shapes,
// and how much of the pitched mix goes through the reverb bus.
type Profile struct {
	Name     string
	Scale    []float64 // Hz, the session's allowed pitch choices
	LeadWave Waveform
	BassWave Waveform
	Reverb   float64 // wet fraction in [0,1]
}

// profileGroups is an ordered priority list: the first group whose keywords
// match the style/tone text wins. The last entry has no keywords and acts as
// the fallback for anything unrecognized.
var profileGroups = []struct {
	keywords []string
	profile  Profile
}{
	{
		keywords: []string{"dark", "crime", "serious", "mystery", "noir"},
		profile: Profile{
			Name:     "dark",
			Scale:    []float64{220.00, 261.63, 293.66, 329.63, 392.00, 440.00}, // A minor lean
			LeadWave: Saw,
			BassWave: Square,
			Reverb:   0.6,
		},
	},
	{
		keywords: []string{"jazz", "lo-fi", "lofi", "chill", "smooth"},
		profile: Profile{
			Name:     "jazz",
			Scale:    []float64{261.63, 329.63, 392.00, 493.88, 587.33}, // Cmaj7 lean
			LeadWave: Triangle,
			BassWave: Sine,
			Reverb:   0.7,
		},
	},
	{
		keywords: []string{"energetic", "upbeat", "pop", "fun", "comedy"},
		profile: Profile{
			Name:     "energetic",
			Scale:    []float64{261.63, 293.66, 329.63, 392.00, 440.00, 523.25}, // wide C major
			LeadWave: Square,
			BassWave: Saw,
			Reverb:   0.2,
		},
	},
	{
		keywords: []string{"techno", "electronic", "cyber", "synth", "tech"},
		profile: Profile{
			Name:     "techno",
			Scale:    []float64{220.00, 233.08, 277.18, 329.63, 349.23, 415.30}, // phrygian lean
			LeadWave: Saw,
			BassWave: Saw,
			Reverb:   0.4,
		},
	},
	{
		// default: neutral/professional
		profile: Profile{
			Name:     "neutral",
			Scale:    []float64{261.63, 293.66, 329.63, 392.00, 440.00}, // C major pentatonic
			LeadWave: Triangle,
			BassWave: Sine,
			Reverb:   0.3,
		},
	},
}

// ResolveProfile maps free-text style and tone labels to a Profile.
// Matching is case-insensitive substring search over both labels joined;
// unrecognized input falls through to the neutral profile. Total function.
func ResolveProfile(style, tone string) Profile {
	text := strings.ToLower(style + " " + tone)
	for _, g := range profileGroups {
		for _, kw := range g.keywords {
			if strings.Contains(text, kw) {
				return g.profile
			}
		}
		if len(g.keywords) == 0 {
			return g.profile
		}
	}
	return profileGroups[len(profileGroups)-1].profile
}

// DefaultProfile returns the neutral fallback profile.
func DefaultProfile() Profile {
	return profileGroups[len(profileGroups)-1].profile
}
