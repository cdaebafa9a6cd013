package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/config"
)

// Data is the weather payload served to the mirror.
type Data struct {
	Location  string  `json:"location"`
	TempC     int     `json:"tempC"`
	Condition string  `json:"condition"`
	Humidity  int     `json:"humidity"`
	WindSpeed float64 `json:"windSpeed"`
}

// Service fetches current conditions from OpenWeatherMap for the configured
// city.
type Service struct {
	cfg        config.WeatherConfig
	httpClient *http.Client
}

// NewService creates the weather upstream service.
func NewService(cfg config.WeatherConfig, timeout time.Duration) *Service {
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type owmPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch returns the current conditions in metric units.
func (s *Service) Fetch(ctx context.Context) (*Data, error) {
	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		s.cfg.BaseURL, url.QueryEscape(s.cfg.City), url.QueryEscape(s.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather upstream returned status %d", resp.StatusCode)
	}

	var payload owmPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather payload: %w", err)
	}
	if len(payload.Weather) == 0 {
		return nil, fmt.Errorf("weather payload missing conditions")
	}

	return &Data{
		Location:  payload.Name,
		TempC:     int(math.Round(payload.Main.Temp)),
		Condition: payload.Weather[0].Description,
		Humidity:  payload.Main.Humidity,
		WindSpeed: payload.Wind.Speed,
	}, nil
}
