package assistant

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmoreira/alfredo/backend/internal/service/assistant"
	"github.com/dmoreira/alfredo/backend/internal/service/session"
)

// webSocketHandler feeds finalized utterances from the transcription source
// into the dispatcher and mirrors session events back over the same
// connection.
type webSocketHandler struct {
	dispatcher *assistant.Dispatcher
	upgrader   websocket.Upgrader
}

func newWebSocketHandler(dispatcher *assistant.Dispatcher) *webSocketHandler {
	return &webSocketHandler{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *webSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(msg outgoingMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	store := h.dispatcher.Store()
	id, events := store.Subscribe()
	defer store.Unsubscribe(id)

	done := make(chan struct{})
	go h.forwardEvents(events, send, done)

	ctx := r.Context()
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed: %v", err)
			}
			break
		}

		if msg.Type != "utterance" || !msg.IsFinal {
			continue
		}

		// One dispatch cycle per finalized utterance; the reply reaches the
		// client through the event feed.
		h.dispatcher.HandleInput(ctx, msg.Text)
	}

	close(done)
}

func (h *webSocketHandler) forwardEvents(events <-chan session.Event, send func(outgoingMessage) error, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, open := <-events:
			if !open {
				return
			}
			msg := outgoingMessage{
				Type:      "session_event",
				Data:      event,
				Timestamp: time.Now().UnixMilli(),
			}
			if err := send(msg); err != nil {
				log.Printf("[ws] write failed: %v", err)
				return
			}
		}
	}
}
