package assistant

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	model "github.com/dmoreira/alfredo/backend/internal/model/session"
	"github.com/dmoreira/alfredo/backend/internal/model/voice"
	"github.com/dmoreira/alfredo/backend/internal/service/assistant"
	"github.com/dmoreira/alfredo/backend/internal/service/session"
	"github.com/dmoreira/alfredo/backend/pkg/utils"
)

// Handler exposes the dispatcher and session state over HTTP.
type Handler struct {
	dispatcher *assistant.Dispatcher
	refresher  *assistant.Refresher
	voices     voice.Store
}

// New creates the assistant handler. The refresher may be nil when the
// weather bar is disabled.
func New(dispatcher *assistant.Dispatcher, refresher *assistant.Refresher, voices voice.Store) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		refresher:  refresher,
		voices:     voices,
	}
}

// RegisterRoutes registers assistant routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assistant", func(ar chi.Router) {
		ar.Post("/message", h.handleMessage)
		ar.Get("/session", h.handleSession)
		ar.Put("/voice", h.handleSelectVoice)
		ar.Get("/stream", h.handleStream)

		ws := newWebSocketHandler(h.dispatcher)
		ar.Get("/ws", ws.handleWebSocket)
	})
}

type sessionView struct {
	Messages []model.Message `json:"messages"`
	Mood     model.Mood      `json:"mood"`
	Weather  string          `json:"weather,omitempty"`
}

func (h *Handler) sessionView() sessionView {
	snapshot := h.dispatcher.Store().Snapshot()
	view := sessionView{Messages: snapshot.Messages, Mood: snapshot.Mood}
	if h.refresher != nil {
		view.Weather = h.refresher.Current()
	}
	return view
}

// handleMessage runs one dispatch cycle for a typed or transcribed
// utterance and answers with the settled session state. Blank text is
// accepted and leaves the session untouched.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.dispatcher.HandleInput(r.Context(), payload.Text)

	utils.RespondJSON(w, http.StatusOK, h.sessionView())
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.sessionView())
}

func (h *Handler) handleSelectVoice(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		VoiceID string `json:"voiceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.VoiceID == "" {
		utils.RespondError(w, http.StatusBadRequest, "voiceId is required")
		return
	}
	if _, ok := h.voices.FindByID(payload.VoiceID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "voice not found")
		return
	}

	h.dispatcher.SelectVoice(payload.VoiceID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"voiceId": payload.VoiceID})
}

// handleStream pushes session events over SSE with a periodic heartbeat so
// the mirror can keep its chat panel and mood face current without polling.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	ctx := r.Context()
	id, events := h.dispatcher.Store().Subscribe()
	defer h.dispatcher.Store().Unsubscribe(id)

	log.Printf("[sse] opening session stream subscriber=%s", id)

	ticker := time.NewTicker(8 * time.Second)
	defer ticker.Stop()

	utils.SendSSEChunk(w, flusher, map[string]any{
		"event":   "status",
		"message": "stream established",
	})

	for {
		select {
		case <-ctx.Done():
			log.Printf("[sse] closing session stream subscriber=%s", id)
			return
		case event, open := <-events:
			if !open {
				return
			}
			h.sendEvent(w, flusher, event)
		case t := <-ticker.C:
			utils.SendSSEChunk(w, flusher, map[string]any{
				"event": "heartbeat",
				"time":  t.UTC().Format(time.RFC3339),
			})
		}
	}
}

func (h *Handler) sendEvent(w http.ResponseWriter, flusher http.Flusher, event session.Event) {
	utils.SendSSEEvent(w, flusher, "session", event)
}
