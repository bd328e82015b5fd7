package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// BPM bounds enforced at this boundary; the synthesizer downstream does not
// re-validate tempo.
const (
	MinBPM = 60
	MaxBPM = 180
)

// Description is the structured jingle brief the LLM produces for a podcast.
type Description struct {
	BPM           int    `json:"bpm"`
	MusicalStyle  string `json:"musical_style"`
	Tone          string `json:"tone"`
	VoiceoverLine string `json:"voiceover_line"`
	Description   string `json:"description"`
}

// generator abstracts the LLM call so tests can substitute a canned one.
type generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Describer turns podcast metadata into a jingle Description via the LLM,
// with a deterministic fallback when the LLM is missing or misbehaves.
type Describer struct {
	llm generator
}

// NewDescriber creates a describer backed by an Ollama client. Pass nil to
// always use the static fallback.
func NewDescriber(llm generator) *Describer {
	return &Describer{llm: llm}
}

const describeSystemPrompt = `You are a jingle producer for podcasts.

Given a podcast name, theme, and desired tone, design a short intro jingle.

Respond with ONLY a JSON object, no prose, no markdown fences, with exactly
these fields:
{
  "bpm": <integer 60-180>,
  "musical_style": "<2-5 word style, e.g. 'dark industrial techno'>",
  "tone": "<one word matching the requested tone>",
  "voiceover_line": "<one spoken line under 12 words introducing the show>",
  "description": "<one sentence describing the jingle's sound>"
}

/no_think`

// Describe asks the LLM for a jingle brief. On any failure it returns the
// fallback brief and no error: description generation is best-effort.
func (d *Describer) Describe(ctx context.Context, podcastName, theme, tone string) Description {
	if d.llm == nil {
		return Fallback(theme, tone)
	}

	prompt := fmt.Sprintf("Podcast: %s\nTheme: %s\nTone: %s", podcastName, theme, tone)
	raw, err := d.llm.Generate(ctx, describeSystemPrompt, prompt)
	if err != nil {
		log.Printf("LLM describe failed: %v", err)
		return Fallback(theme, tone)
	}

	desc, err := Parse(raw)
	if err != nil {
		log.Printf("LLM returned unusable description: %v", err)
		return Fallback(theme, tone)
	}
	return desc
}

// Parse decodes the LLM response into a Description, stripping common
// artifacts and clamping the tempo.
func Parse(raw string) (Description, error) {
	cleaned := cleanResponse(raw)

	var desc Description
	if err := json.Unmarshal([]byte(cleaned), &desc); err != nil {
		return Description{}, fmt.Errorf("parse description: %w", err)
	}
	if desc.MusicalStyle == "" {
		return Description{}, fmt.Errorf("description missing musical_style")
	}
	desc.BPM = ClampBPM(desc.BPM)
	return desc, nil
}

// ClampBPM forces a tempo into the sane audible range.
func ClampBPM(bpm int) int {
	if bpm < MinBPM {
		return MinBPM
	}
	if bpm > MaxBPM {
		return MaxBPM
	}
	return bpm
}

// Fallback returns a usable brief when the LLM cannot.
func Fallback(theme, tone string) Description {
	if tone == "" {
		tone = "professional"
	}
	style := strings.TrimSpace(theme + " " + tone)
	return Description{
		BPM:           110,
		MusicalStyle:  style,
		Tone:          tone,
		VoiceoverLine: "Welcome to the show.",
		Description:   "A clean, upbeat intro jingle with a steady pulse.",
	}
}

// cleanResponse strips thinking tags, markdown fences, and anything outside
// the outermost JSON object.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "</think>"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("</think>"):])
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
