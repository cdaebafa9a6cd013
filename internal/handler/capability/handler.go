package capability

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	session "github.com/dmoreira/alfredo/backend/internal/model/session"
	"github.com/dmoreira/alfredo/backend/internal/service/weather"
	"github.com/dmoreira/alfredo/backend/pkg/utils"
)

// WeatherService fetches current conditions from the upstream provider.
type WeatherService interface {
	Fetch(ctx context.Context) (*weather.Data, error)
}

// NewsService aggregates headlines from the upstream provider.
type NewsService interface {
	Headlines(ctx context.Context) []string
}

// AIService generates conversational replies and their moods.
type AIService interface {
	GenerateReply(ctx context.Context, query, chatContext string) (string, error)
	ClassifyMood(ctx context.Context, reply string) session.Mood
}

// Handler exposes the weather, news and chat capability endpoints consumed
// by the assistant's capability clients (and by the mirror UI directly).
type Handler struct {
	weatherSvc WeatherService
	newsSvc    NewsService
	aiSvc      AIService
}

// New creates a capability handler. Any service may be nil when its upstream
// is not configured.
func New(weatherSvc WeatherService, newsSvc NewsService, aiSvc AIService) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		newsSvc:    newsSvc,
		aiSvc:      aiSvc,
	}
}

// RegisterRoutes registers the capability routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/weather", h.handleWeather)
	r.Get("/news", h.handleNews)
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleWeather(w http.ResponseWriter, r *http.Request) {
	if h.weatherSvc == nil {
		utils.RespondError(w, http.StatusInternalServerError, "Weather data not available")
		return
	}

	data, err := h.weatherSvc.Fetch(r.Context())
	if err != nil {
		log.Printf("[capability] weather fetch failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch weather")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]*weather.Data{"weather": data})
}

// handleNews always answers 200 with a headline array; an unavailable or
// failing upstream shows up as an empty list, never as an error.
func (h *Handler) handleNews(w http.ResponseWriter, r *http.Request) {
	headlines := []string{}
	if h.newsSvc != nil {
		if fetched := h.newsSvc.Headlines(r.Context()); fetched != nil {
			headlines = fetched
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string][]string{"headlines": headlines})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if h.aiSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "chat model unavailable")
		return
	}

	var payload struct {
		Prompt  string `json:"prompt"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.aiSvc.GenerateReply(r.Context(), payload.Prompt, payload.Context)
	if err != nil {
		log.Printf("[capability] reply generation failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate reply")
		return
	}

	mood := h.aiSvc.ClassifyMood(r.Context(), reply)

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"text": reply,
		"mood": string(mood),
	})
}
