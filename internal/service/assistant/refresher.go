package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/capability/weather"
)

// Background display texts. These never enter the message log; the weather
// bar is display-only state.
const (
	displayNoData      = "Weather unavailable"
	displayUnreachable = "Weather service unavailable"
)

// Refresher keeps the mirror's weather bar current, independent of any
// dispatch cycle.
type Refresher struct {
	client   WeatherClient
	interval time.Duration

	mu   sync.RWMutex
	text string
}

// NewRefresher builds a refresher polling the weather capability at the
// given interval.
func NewRefresher(client WeatherClient, interval time.Duration) *Refresher {
	return &Refresher{client: client, interval: interval}
}

// Run refreshes immediately, then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Current returns the latest display text. Empty until the first refresh
// completes.
func (r *Refresher) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.text
}

func (r *Refresher) refresh(ctx context.Context) {
	report, err := r.client.Current(ctx)

	var text string
	switch {
	case errors.Is(err, weather.ErrNoData):
		text = displayNoData
	case err != nil:
		log.Printf("[refresher] weather fetch failed: %v", err)
		text = displayUnreachable
	default:
		text = fmt.Sprintf("%s: %s°C, %s", report.Location, report.TempC, report.Condition)
	}

	r.mu.Lock()
	r.text = text
	r.mu.Unlock()
}
