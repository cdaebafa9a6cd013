package session

import "strings"

// Mood drives the mirror's face rendering and TTS tone.
type Mood string

const (
	MoodNeutral Mood = "neutral"
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodExcited Mood = "excited"
)

// ParseMood normalizes a remote-declared mood string. Anything outside the
// five recognized labels collapses to neutral so arbitrary model output never
// leaks into session state.
func ParseMood(raw string) Mood {
	switch Mood(strings.ToLower(strings.TrimSpace(raw))) {
	case MoodHappy:
		return MoodHappy
	case MoodSad:
		return MoodSad
	case MoodAngry:
		return MoodAngry
	case MoodExcited:
		return MoodExcited
	case MoodNeutral:
		return MoodNeutral
	default:
		return MoodNeutral
	}
}
