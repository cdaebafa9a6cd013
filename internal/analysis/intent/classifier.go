package intent

import "strings"

// Intent is the classified purpose of an utterance.
type Intent string

const (
	Weather      Intent = "weather"
	News         Intent = "news"
	Conversation Intent = "conversation"
)

// Keyword buckets are matched as plain substrings, not word boundaries, so
// "newsletter" counts as news. Weather is tested first; an utterance hitting
// both buckets resolves to weather.
var weatherKeywords = []string{"weather", "forecast", "clima"}

var newsKeywords = []string{"news", "headline"}

// Classify maps a raw utterance to exactly one intent. It is pure and
// case-insensitive; callers guard against empty input.
func Classify(utterance string) Intent {
	normalized := strings.ToLower(utterance)

	for _, word := range weatherKeywords {
		if strings.Contains(normalized, word) {
			return Weather
		}
	}

	for _, word := range newsKeywords {
		if strings.Contains(normalized, word) {
			return News
		}
	}

	return Conversation
}
