package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/model/session"
)

// Reply is a conversational answer with its validated mood.
type Reply struct {
	Text string
	Mood session.Mood
}

// Client is a stateless wrapper around the chat capability endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a conversation client against the given capability base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send posts the prompt with its conversation context and returns the reply.
// The remote mood string is coerced into a recognized label here, at the
// boundary, so the rest of the system only ever sees valid moods.
func (c *Client) Send(ctx context.Context, prompt, chatContext string) (Reply, error) {
	payload, err := json.Marshal(map[string]string{
		"prompt":  prompt,
		"context": chatContext,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Reply{}, fmt.Errorf("chat service returned status %d", resp.StatusCode)
	}

	var body struct {
		Text string `json:"text"`
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Reply{}, fmt.Errorf("decode chat response: %w", err)
	}

	return Reply{Text: body.Text, Mood: session.ParseMood(body.Mood)}, nil
}
