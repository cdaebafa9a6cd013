package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a stateless wrapper around the news capability endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a news client against the given capability base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Headlines fetches the current headline list. An empty or missing array is
// not an error; the caller decides how to present it.
func (c *Client) Headlines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/news", nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("news service returned status %d", resp.StatusCode)
	}

	var body struct {
		Headlines []string `json:"headlines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	return body.Headlines, nil
}
