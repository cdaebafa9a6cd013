package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/config"
)

// NewsAPI substitutes this title for withdrawn articles.
const removedTitle = "[Removed]"

// Service aggregates headlines from NewsAPI across the configured queries
// and categories.
type Service struct {
	cfg        config.NewsConfig
	httpClient *http.Client
}

// NewService creates the news upstream service.
func NewService(cfg config.NewsConfig, timeout time.Duration) *Service {
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type newsapiPayload struct {
	Status   string `json:"status"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Headlines collects up to MaxHeadlines unique titles. Individual query
// failures are skipped; the result is best-effort and may be empty.
func (s *Service) Headlines(ctx context.Context) []string {
	var collected []string

	for _, query := range s.cfg.Queries {
		endpoint := fmt.Sprintf("%s/everything?q=%s&language=en&sortBy=publishedAt&apiKey=%s",
			s.cfg.BaseURL, url.QueryEscape(query), url.QueryEscape(s.cfg.APIKey))
		collected = append(collected, s.fetchTitles(ctx, endpoint)...)
		if len(collected) >= s.cfg.MaxHeadlines {
			break
		}
	}

	if len(collected) < s.cfg.MaxHeadlines {
		for _, category := range s.cfg.Categories {
			endpoint := fmt.Sprintf("%s/top-headlines?category=%s&language=en&apiKey=%s",
				s.cfg.BaseURL, url.QueryEscape(category), url.QueryEscape(s.cfg.APIKey))
			collected = append(collected, s.fetchTitles(ctx, endpoint)...)
			if len(collected) >= s.cfg.MaxHeadlines {
				break
			}
		}
	}

	return dedupe(collected, s.cfg.MaxHeadlines)
}

func (s *Service) fetchTitles(ctx context.Context, endpoint string) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[news] query failed, skipping: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[news] query returned status %d, skipping", resp.StatusCode)
		return nil
	}

	var payload newsapiPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[news] decode failed, skipping: %v", err)
		return nil
	}
	if payload.Status != "ok" {
		return nil
	}

	titles := make([]string, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		if article.Title == "" || article.Title == removedTitle {
			continue
		}
		titles = append(titles, article.Title)
	}
	return titles
}

func dedupe(titles []string, limit int) []string {
	seen := make(map[string]struct{}, len(titles))
	unique := make([]string, 0, limit)
	for _, title := range titles {
		if _, ok := seen[title]; ok {
			continue
		}
		if len(unique) >= limit {
			break
		}
		seen[title] = struct{}{}
		unique = append(unique, title)
	}
	return unique
}
