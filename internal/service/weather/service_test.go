package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/config"
	"github.com/dmoreira/alfredo/backend/internal/service/weather"
)

func TestFetchParsesAndRounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("expected metric units, got %q", got)
		}
		w.Write([]byte(`{"name":"Porto","main":{"temp":19.6,"humidity":70},` +
			`"weather":[{"description":"clear sky"}],"wind":{"speed":3.4}}`))
	}))
	defer server.Close()

	svc := weather.NewService(config.WeatherConfig{
		APIKey:  "key",
		City:    "Porto",
		BaseURL: server.URL,
	}, 2*time.Second)

	data, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch err: %v", err)
	}
	if data.Location != "Porto" || data.TempC != 20 || data.Condition != "clear sky" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if data.Humidity != 70 || data.WindSpeed != 3.4 {
		t.Fatalf("unexpected extras: %+v", data)
	}
}

func TestFetchMissingConditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Porto","main":{"temp":19.6},"weather":[]}`))
	}))
	defer server.Close()

	svc := weather.NewService(config.WeatherConfig{APIKey: "key", City: "Porto", BaseURL: server.URL}, 2*time.Second)
	if _, err := svc.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for payload without conditions")
	}
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := weather.NewService(config.WeatherConfig{APIKey: "bad", City: "Porto", BaseURL: server.URL}, 2*time.Second)
	if _, err := svc.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
