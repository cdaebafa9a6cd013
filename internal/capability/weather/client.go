package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoData signals a successful response that carried no weather object.
var ErrNoData = errors.New("weather data missing from response")

// Report is the normalized weather result with display defaults applied.
type Report struct {
	Location  string
	TempC     string
	Condition string
}

// Client is a stateless wrapper around the weather capability endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a weather client against the given capability base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type payload struct {
	Weather *struct {
		Location  *string      `json:"location"`
		City      *string      `json:"city"`
		TempC     *json.Number `json:"tempC"`
		Temp      *json.Number `json:"temp"`
		Condition *string      `json:"condition"`
	} `json:"weather"`
}

// Current fetches the current conditions. Fields absent from the payload are
// replaced with display defaults; a response without a weather object at all
// returns ErrNoData.
func (c *Client) Current(ctx context.Context) (Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather", nil)
	if err != nil {
		return Report{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Report{}, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Report{}, fmt.Errorf("decode weather response: %w", err)
	}
	if body.Weather == nil {
		return Report{}, ErrNoData
	}

	report := Report{Location: "Your area", TempC: "?", Condition: "Unknown"}
	switch {
	case body.Weather.Location != nil:
		report.Location = *body.Weather.Location
	case body.Weather.City != nil:
		report.Location = *body.Weather.City
	}
	switch {
	case body.Weather.TempC != nil:
		report.TempC = body.Weather.TempC.String()
	case body.Weather.Temp != nil:
		report.TempC = body.Weather.Temp.String()
	}
	if body.Weather.Condition != nil {
		report.Condition = *body.Weather.Condition
	}

	return report, nil
}
