package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Speaker renders assistant text as audio on the mirror. Speak is
// fire-and-forget: implementations must not block the dispatch cycle and no
// result is observed.
type Speaker interface {
	Speak(text, voiceID string)
}

// NoopSpeaker discards synthesis requests. Used when no TTS endpoint is
// configured.
type NoopSpeaker struct{}

// Speak does nothing.
func (NoopSpeaker) Speak(string, string) {}

// HTTPSpeaker forwards synthesis jobs to the mirror's TTS endpoint.
type HTTPSpeaker struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPSpeaker builds a speaker posting to the given synthesis endpoint.
func NewHTTPSpeaker(endpoint string, timeout time.Duration) *HTTPSpeaker {
	return &HTTPSpeaker{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Speak posts the utterance asynchronously. Failures are logged and dropped;
// speech output never affects session state.
func (s *HTTPSpeaker) Speak(text, voiceID string) {
	if text == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(map[string]string{
			"text":    text,
			"voiceId": voiceID,
		})
		if err != nil {
			log.Printf("[speech] encode synthesis request: %v", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.httpClient.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
		if err != nil {
			log.Printf("[speech] build synthesis request: %v", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			log.Printf("[speech] synthesis request failed: %v", err)
			return
		}
		resp.Body.Close()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			log.Printf("[speech] synthesis endpoint returned status %d", resp.StatusCode)
		}
	}()
}
