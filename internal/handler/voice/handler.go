package voice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmoreira/alfredo/backend/internal/model/voice"
	"github.com/dmoreira/alfredo/backend/pkg/utils"
)

// Handler serves the TTS voice catalogue.
type Handler struct {
	voices voice.Store
}

// New creates a voice handler.
func New(voices voice.Store) *Handler {
	return &Handler{voices: voices}
}

// RegisterRoutes registers voice routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voices", h.handleListVoices)
}

func (h *Handler) handleListVoices(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.voices.List())
}
