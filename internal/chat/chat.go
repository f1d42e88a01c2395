// Package chat runs the persona chat flow: a lightweight conversational
// coach with per-conversation history but no access to account data.
package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shettydevesh/zenvestAi-backend/internal/llm"
	"github.com/shettydevesh/zenvestAi-backend/internal/prompt"
)

// DefaultPersona names the built-in coach persona.
const DefaultPersona = "sharan"

// historyLimit caps how many prior turns are replayed to the model.
const historyLimit = 20

// Response is the persona-chat endpoint's reply body.
type Response struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
	Model          string `json:"model"`
}

// Service answers persona-chat messages, threading conversation history
// through the model on every turn.
type Service struct {
	store     *ConversationStore
	generator llm.Generator
	log       zerolog.Logger
}

// NewService creates a persona chat service.
func NewService(store *ConversationStore, generator llm.Generator, log zerolog.Logger) *Service {
	return &Service{store: store, generator: generator, log: log}
}

// Send appends the user's message to the conversation, asks the model with
// prior history, and records the reply. An empty conversationID starts a
// new conversation.
func (s *Service) Send(ctx context.Context, userID, conversationID, message string) (*Response, error) {
	if message == "" {
		return nil, fmt.Errorf("Send: message is required")
	}

	if conversationID == "" {
		conv, err := s.store.Create(ctx, userID, DefaultPersona)
		if err != nil {
			return nil, fmt.Errorf("Send: creating conversation: %w", err)
		}
		conversationID = conv.ID
	}

	conv, err := s.store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("Send: %w", err)
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("Send: conversation %s does not belong to user", conversationID)
	}

	history := historyMessages(conv)

	reply, err := s.generator.Generate(ctx, prompt.PersonaPrompt(), history, message)
	if err != nil {
		return nil, fmt.Errorf("Send: model call: %w", err)
	}

	if err := s.store.Append(ctx, conversationID, Message{Role: "user", Content: message}); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("Recording user message failed")
	}
	if err := s.store.Append(ctx, conversationID, Message{Role: "model", Content: reply, Model: llm.DefaultModelName}); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("Recording model reply failed")
	}

	return &Response{
		ConversationID: conversationID,
		Reply:          reply,
		Model:          llm.DefaultModelName,
	}, nil
}

// historyMessages converts the most recent stored turns to model history.
func historyMessages(conv *Conversation) []llm.Message {
	msgs := conv.Messages
	if len(msgs) > historyLimit {
		msgs = msgs[len(msgs)-historyLimit:]
	}
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, llm.Message{Role: m.Role, Text: m.Content})
	}
	return out
}
