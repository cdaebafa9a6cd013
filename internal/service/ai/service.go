package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/dmoreira/alfredo/backend/internal/config"
	session "github.com/dmoreira/alfredo/backend/internal/model/session"
)

// Service backs the conversation capability with the Ark chat model: one
// chain generates Alfredo's reply, a second classifies the reply's mood.
type Service struct {
	replyChain compose.Runnable[map[string]any, *schema.Message]
	moodChain  compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service from Ark configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	replyTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(assistantSystemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	replyChain := compose.NewChain[map[string]any, *schema.Message]()
	replyChain.AppendChatTemplate(replyTemplate)
	replyChain.AppendChatModel(chatModel)

	reply, err := replyChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply chain: %w", err)
	}

	moodTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(moodSystemPrompt),
		schema.UserMessage("{reply}"),
	)

	moodChain := compose.NewChain[map[string]any, *schema.Message]()
	moodChain.AppendChatTemplate(moodTemplate)
	moodChain.AppendChatModel(chatModel)

	mood, err := moodChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mood chain: %w", err)
	}

	return &Service{replyChain: reply, moodChain: mood}, nil
}

// GenerateReply answers the prompt as Alfredo, replaying the flattened
// conversation context as model history.
func (s *Service) GenerateReply(ctx context.Context, query, chatContext string) (string, error) {
	input := map[string]any{
		"history": parseContext(chatContext),
		"query":   query,
	}

	response, err := s.replyChain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run reply chain: %w", err)
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return response.Content, nil
}

// ClassifyMood labels the reply with one of the five recognized moods.
// Classification is best-effort: any failure or unrecognized label falls
// back to neutral.
func (s *Service) ClassifyMood(ctx context.Context, reply string) session.Mood {
	response, err := s.moodChain.Invoke(ctx, map[string]any{"reply": reply})
	if err != nil {
		log.Printf("[ai] mood classification failed, defaulting to neutral: %v", err)
		return session.MoodNeutral
	}

	return session.ParseMood(response.Content)
}

// parseContext rebuilds role messages from the " - "-joined context string
// produced by the session context builder.
func parseContext(chatContext string) []*schema.Message {
	if strings.TrimSpace(chatContext) == "" {
		return nil
	}

	entries := strings.Split(chatContext, " - ")
	history := make([]*schema.Message, 0, len(entries))
	for _, entry := range entries {
		switch {
		case strings.HasPrefix(entry, "User: "):
			history = append(history, schema.UserMessage(strings.TrimPrefix(entry, "User: ")))
		case strings.HasPrefix(entry, "Assistant: "):
			history = append(history, schema.AssistantMessage(strings.TrimPrefix(entry, "Assistant: "), nil))
		}
	}

	return history
}
