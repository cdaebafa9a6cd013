package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dmoreira/alfredo/backend/internal/analysis/intent"
	"github.com/dmoreira/alfredo/backend/internal/capability/conversation"
	"github.com/dmoreira/alfredo/backend/internal/capability/weather"
	session "github.com/dmoreira/alfredo/backend/internal/model/session"
	sessionservice "github.com/dmoreira/alfredo/backend/internal/service/session"
	"github.com/dmoreira/alfredo/backend/internal/service/speech"
)

// Fixed fallback texts spoken when a capability path fails.
const (
	weatherFallback    = "Weather service temporarily unavailable."
	weatherUnavailable = "Weather unavailable"
	newsFallback       = "News service temporarily unavailable."
	newsEmpty          = "No recent news headlines available."
	newsIntro          = "Here are the latest news headlines:"
	chatFallback       = "Chat service temporarily unavailable."
)

// Only the first few headlines are read aloud.
const maxSpokenHeadlines = 3

// WeatherClient fetches current conditions from the weather capability.
type WeatherClient interface {
	Current(ctx context.Context) (weather.Report, error)
}

// NewsClient fetches headlines from the news capability.
type NewsClient interface {
	Headlines(ctx context.Context) ([]string, error)
}

// ConversationClient produces a free-form reply with a mood.
type ConversationClient interface {
	Send(ctx context.Context, prompt, chatContext string) (conversation.Reply, error)
}

// Dispatcher owns the session state and runs one dispatch cycle per
// finalized utterance: classify, invoke the matching capability, settle the
// session, speak the reply. Failures are absorbed here; callers never see
// them.
type Dispatcher struct {
	store   *sessionservice.Store
	weather WeatherClient
	news    NewsClient
	chat    ConversationClient
	speaker speech.Speaker

	mu sync.Mutex // serializes dispatch cycles

	voiceMu sync.RWMutex
	voiceID string
}

// NewDispatcher wires the dispatcher to its session store, capability
// clients and speech output.
func NewDispatcher(store *sessionservice.Store, weatherClient WeatherClient, newsClient NewsClient, chatClient ConversationClient, speaker speech.Speaker) *Dispatcher {
	if speaker == nil {
		speaker = speech.NoopSpeaker{}
	}
	return &Dispatcher{
		store:   store,
		weather: weatherClient,
		news:    newsClient,
		chat:    chatClient,
		speaker: speaker,
	}
}

// Store exposes the session store for read-side consumers (rendering,
// event feeds).
func (d *Dispatcher) Store() *sessionservice.Store {
	return d.store
}

// SelectVoice records the TTS voice used for subsequent replies.
func (d *Dispatcher) SelectVoice(voiceID string) {
	d.voiceMu.Lock()
	d.voiceID = voiceID
	d.voiceMu.Unlock()
}

// Voice returns the currently selected TTS voice.
func (d *Dispatcher) Voice() string {
	d.voiceMu.RLock()
	defer d.voiceMu.RUnlock()
	return d.voiceID
}

// HandleInput runs one dispatch cycle for a finalized utterance. Blank input
// is a no-op. Every non-blank cycle appends the raw user message, then
// settles exactly one assistant reply and one mood, whether the capability
// call succeeded or not.
func (d *Dispatcher) HandleInput(ctx context.Context, utterance string) {
	if strings.TrimSpace(utterance) == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.store.Append(utterance, session.SenderUser)

	var text string
	var mood session.Mood
	switch intent.Classify(utterance) {
	case intent.Weather:
		text, mood = d.weatherReply(ctx)
	case intent.News:
		text, mood = d.newsReply(ctx)
	default:
		text, mood = d.chatReply(ctx, utterance)
	}

	d.store.Settle(text, mood)
	d.speaker.Speak(text, d.Voice())
}

func (d *Dispatcher) weatherReply(ctx context.Context) (string, session.Mood) {
	report, err := d.weather.Current(ctx)
	if errors.Is(err, weather.ErrNoData) {
		// The capability answered but had nothing to show. Not a service
		// failure, so the mood stays on the success path.
		return weatherUnavailable, session.MoodHappy
	}
	if err != nil {
		log.Printf("[dispatch] weather capability failed: %v", err)
		return weatherFallback, session.MoodSad
	}

	text := fmt.Sprintf("Current weather in %s: %s°C, %s", report.Location, report.TempC, report.Condition)
	return text, session.MoodHappy
}

func (d *Dispatcher) newsReply(ctx context.Context) (string, session.Mood) {
	headlines, err := d.news.Headlines(ctx)
	if err != nil {
		log.Printf("[dispatch] news capability failed: %v", err)
		return newsFallback, session.MoodSad
	}
	if len(headlines) == 0 {
		return newsEmpty, session.MoodSad
	}

	var builder strings.Builder
	builder.WriteString(newsIntro)
	for i, headline := range headlines {
		if i >= maxSpokenHeadlines {
			break
		}
		fmt.Fprintf(&builder, " %d. %s.", i+1, headline)
	}
	return builder.String(), session.MoodExcited
}

func (d *Dispatcher) chatReply(ctx context.Context, utterance string) (string, session.Mood) {
	// Context is built from the snapshot that already includes the
	// just-appended user message.
	chatContext := sessionservice.BuildContext(d.store.Snapshot())

	reply, err := d.chat.Send(ctx, utterance, chatContext)
	if err != nil {
		log.Printf("[dispatch] conversation capability failed: %v", err)
		return chatFallback, session.MoodSad
	}

	return reply.Text, reply.Mood
}
