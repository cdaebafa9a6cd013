package conversation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/capability/conversation"
	session "github.com/dmoreira/alfredo/backend/internal/model/session"
)

func TestSendForwardsPromptAndContext(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"text":"Hello Daniel","mood":"happy"}`))
	}))
	defer server.Close()

	client := conversation.NewClient(server.URL, 2*time.Second)
	reply, err := client.Send(context.Background(), "hi", "User: hi")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	if got["prompt"] != "hi" || got["context"] != "User: hi" {
		t.Fatalf("unexpected request payload: %v", got)
	}
	if reply.Text != "Hello Daniel" || reply.Mood != session.MoodHappy {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestSendCoercesUnknownMood(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"ok","mood":"ecstatic"}`))
	}))
	defer server.Close()

	client := conversation.NewClient(server.URL, 2*time.Second)
	reply, err := client.Send(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if reply.Mood != session.MoodNeutral {
		t.Fatalf("expected coerced neutral mood, got %s", reply.Mood)
	}
}

func TestSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := conversation.NewClient(server.URL, 2*time.Second)
	if _, err := client.Send(context.Background(), "hi", ""); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
