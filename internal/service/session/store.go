package session

import (
	"sync"
	"time"

	"github.com/dmoreira/alfredo/backend/internal/model/session"
	"github.com/google/uuid"
)

// Snapshot is a read-only copy of the session state for context building
// and rendering.
type Snapshot struct {
	Messages []session.Message `json:"messages"`
	Mood     session.Mood      `json:"mood"`
}

// Event is published to subscribers whenever the log or mood changes.
type Event struct {
	Message session.Message `json:"message"`
	Mood    session.Mood    `json:"mood"`
}

// Store holds the single in-memory session: an append-only message log and
// the current mood. All mutation happens under one mutex so a settle (reply
// append + mood set) is indivisible with respect to snapshots.
type Store struct {
	mu          sync.RWMutex
	messages    []session.Message
	mood        session.Mood
	subscribers map[string]chan Event
}

// NewStore bootstraps an empty session with a neutral mood.
func NewStore() *Store {
	return &Store{
		messages:    make([]session.Message, 0, 16),
		mood:        session.MoodNeutral,
		subscribers: make(map[string]chan Event),
	}
}

// Append adds a message to the end of the log. Text is stored as given;
// callers guard against blank input.
func (s *Store) Append(text string, sender session.Sender) session.Message {
	message := newMessage(text, sender)

	s.mu.Lock()
	s.messages = append(s.messages, message)
	mood := s.mood
	s.publishLocked(Event{Message: message, Mood: mood})
	s.mu.Unlock()

	return message
}

// Settle appends the assistant reply and replaces the mood in one step, so
// no reader observes a reply without its mood or vice versa.
func (s *Store) Settle(text string, mood session.Mood) session.Message {
	message := newMessage(text, session.SenderAssistant)

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mood = mood
	s.publishLocked(Event{Message: message, Mood: mood})
	s.mu.Unlock()

	return message
}

// SetMood replaces the current mood unconditionally.
func (s *Store) SetMood(mood session.Mood) {
	s.mu.Lock()
	s.mood = mood
	s.mu.Unlock()
}

// Snapshot returns a copy of the ordered log and current mood.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]session.Message, len(s.messages))
	copy(copied, s.messages)
	return Snapshot{Messages: copied, Mood: s.mood}
}

// Subscribe registers a listener for session events. The returned id must be
// passed to Unsubscribe when the listener goes away.
func (s *Store) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 16)

	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(id string) {
	s.mu.Lock()
	ch, ok := s.subscribers[id]
	if ok {
		delete(s.subscribers, id)
	}
	s.mu.Unlock()

	if ok {
		close(ch)
	}
}

// publishLocked fans an event out to subscribers. Slow listeners drop events
// rather than stall a dispatch cycle.
func (s *Store) publishLocked(event Event) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func newMessage(text string, sender session.Sender) session.Message {
	return session.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now().UTC(),
	}
}
