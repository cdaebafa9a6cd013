package session_test

import (
	"testing"

	model "github.com/dmoreira/alfredo/backend/internal/model/session"
	"github.com/dmoreira/alfredo/backend/internal/service/session"
)

func TestBuildContextFormatsRolesInOrder(t *testing.T) {
	store := session.NewStore()
	store.Append("hi", model.SenderUser)
	store.Append("hello", model.SenderAssistant)

	got := session.BuildContext(store.Snapshot())
	want := "User: hi - Assistant: hello"
	if got != want {
		t.Fatalf("BuildContext = %q, want %q", got, want)
	}
}

func TestBuildContextEmptyLog(t *testing.T) {
	if got := session.BuildContext(session.NewStore().Snapshot()); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestBuildContextIsDeterministic(t *testing.T) {
	store := session.NewStore()
	store.Append("what's up", model.SenderUser)
	store.Append("not much", model.SenderAssistant)
	store.Append("ok", model.SenderUser)

	snapshot := store.Snapshot()
	first := session.BuildContext(snapshot)
	second := session.BuildContext(snapshot)
	if first != second {
		t.Fatalf("context changed between calls: %q vs %q", first, second)
	}
}
