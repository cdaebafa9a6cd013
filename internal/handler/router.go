package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	assistantHandler "github.com/dmoreira/alfredo/backend/internal/handler/assistant"
	capabilityHandler "github.com/dmoreira/alfredo/backend/internal/handler/capability"
	voiceHandler "github.com/dmoreira/alfredo/backend/internal/handler/voice"
	middlewarePkg "github.com/dmoreira/alfredo/backend/internal/middleware"
	voiceModel "github.com/dmoreira/alfredo/backend/internal/model/voice"
	assistantService "github.com/dmoreira/alfredo/backend/internal/service/assistant"
)

// NewRouter wires HTTP routes to core services. The capability services may
// be nil when their upstream providers are not configured; the refresher may
// be nil when the background weather bar is disabled.
func NewRouter(
	dispatcher *assistantService.Dispatcher,
	refresher *assistantService.Refresher,
	voices voiceModel.Store,
	weatherSvc capabilityHandler.WeatherService,
	newsSvc capabilityHandler.NewsService,
	aiSvc capabilityHandler.AIService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		capabilityHandler.New(weatherSvc, newsSvc, aiSvc).RegisterRoutes(api)
		voiceHandler.New(voices).RegisterRoutes(api)
		assistantHandler.New(dispatcher, refresher, voices).RegisterRoutes(api)
	})

	return r
}
