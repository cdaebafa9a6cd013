package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dmoreira/alfredo/backend/internal/capability/conversation"
	"github.com/dmoreira/alfredo/backend/internal/capability/weather"
	assistantHandler "github.com/dmoreira/alfredo/backend/internal/handler/assistant"
	model "github.com/dmoreira/alfredo/backend/internal/model/session"
	voiceModel "github.com/dmoreira/alfredo/backend/internal/model/voice"
	"github.com/dmoreira/alfredo/backend/internal/service/assistant"
	"github.com/dmoreira/alfredo/backend/internal/service/session"
)

type stubWeather struct {
	report weather.Report
	err    error
}

func (s *stubWeather) Current(ctx context.Context) (weather.Report, error) {
	return s.report, s.err
}

type stubNews struct {
	headlines []string
	err       error
}

func (s *stubNews) Headlines(ctx context.Context) ([]string, error) {
	return s.headlines, s.err
}

type stubChat struct {
	reply conversation.Reply
	err   error
}

func (s *stubChat) Send(ctx context.Context, prompt, chatContext string) (conversation.Reply, error) {
	return s.reply, s.err
}

func newTestServer(t *testing.T) (http.Handler, *assistant.Dispatcher) {
	t.Helper()

	store := session.NewStore()
	dispatcher := assistant.NewDispatcher(
		store,
		&stubWeather{report: weather.Report{Location: "Porto", TempC: "18", Condition: "Clear"}},
		&stubNews{headlines: []string{"alpha", "beta"}},
		&stubChat{reply: conversation.Reply{Text: "hello back", Mood: model.MoodHappy}},
		nil,
	)

	voices := voiceModel.NewMemoryStore(voiceModel.Seed())

	r := chi.NewRouter()
	assistantHandler.New(dispatcher, nil, voices).RegisterRoutes(r)
	return r, dispatcher
}

type sessionViewPayload struct {
	Messages []model.Message `json:"messages"`
	Mood     model.Mood      `json:"mood"`
}

func postMessage(t *testing.T, router http.Handler, text string) (*httptest.ResponseRecorder, sessionViewPayload) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/assistant/message", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var view sessionViewPayload
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, view
}

func TestMessageEndpointRunsWeatherCycle(t *testing.T) {
	router, _ := newTestServer(t)

	rec, view := postMessage(t, router, "how is the weather today?")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(view.Messages) != 2 {
		t.Fatalf("expected user and assistant messages, got %d", len(view.Messages))
	}
	if view.Messages[0].Sender != model.SenderUser {
		t.Fatalf("expected first message from user, got %q", view.Messages[0].Sender)
	}
	reply := view.Messages[1]
	if reply.Sender != model.SenderAssistant {
		t.Fatalf("expected assistant reply, got %q", reply.Sender)
	}
	if reply.Text != "Current weather in Porto: 18°C, Clear" {
		t.Fatalf("unexpected reply text: %q", reply.Text)
	}
	if view.Mood != model.MoodHappy {
		t.Fatalf("expected happy mood, got %q", view.Mood)
	}
}

func TestMessageEndpointBlankTextIsNoOp(t *testing.T) {
	router, _ := newTestServer(t)

	rec, view := postMessage(t, router, "   ")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(view.Messages) != 0 {
		t.Fatalf("expected untouched session, got %d messages", len(view.Messages))
	}
	if view.Mood != model.MoodNeutral {
		t.Fatalf("expected neutral mood, got %q", view.Mood)
	}
}

func TestMessageEndpointInvalidBody(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/assistant/message", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionEndpointReturnsHistory(t *testing.T) {
	router, _ := newTestServer(t)

	if rec, _ := postMessage(t, router, "tell me something"); rec.Code != http.StatusOK {
		t.Fatalf("seed message failed with %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/assistant/session", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view sessionViewPayload
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(view.Messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(view.Messages))
	}
	if view.Messages[1].Text != "hello back" {
		t.Fatalf("unexpected assistant reply: %q", view.Messages[1].Text)
	}
}

func TestSelectVoiceEndpoint(t *testing.T) {
	router, dispatcher := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/assistant/voice", strings.NewReader(`{"voiceId":"pt-pt-standard"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := dispatcher.Voice(); got != "pt-pt-standard" {
		t.Fatalf("expected selected voice recorded, got %q", got)
	}
}

func TestSelectVoiceEndpointRejectsUnknownVoice(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/assistant/voice", strings.NewReader(`{"voiceId":"nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSelectVoiceEndpointRequiresVoiceID(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/assistant/voice", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStreamEndpointSendsStatusChunk(t *testing.T) {
	router, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/assistant/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("expected event stream content type, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "stream established") {
		t.Fatalf("expected status chunk in body, got %q", rec.Body.String())
	}
}

func TestMessageEndpointAbsorbsCapabilityFailure(t *testing.T) {
	store := session.NewStore()
	dispatcher := assistant.NewDispatcher(
		store,
		&stubWeather{err: errors.New("boom")},
		&stubNews{},
		&stubChat{},
		nil,
	)
	voices := voiceModel.NewMemoryStore(voiceModel.Seed())

	r := chi.NewRouter()
	assistantHandler.New(dispatcher, nil, voices).RegisterRoutes(r)

	rec, view := postMessage(t, r, "weather please")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(view.Messages) != 2 {
		t.Fatalf("expected fallback reply settled, got %d messages", len(view.Messages))
	}
	if view.Messages[1].Text != "Weather service temporarily unavailable." {
		t.Fatalf("unexpected fallback text: %q", view.Messages[1].Text)
	}
	if view.Mood != model.MoodSad {
		t.Fatalf("expected sad mood, got %q", view.Mood)
	}
}
