package service

import (
	"context"
	"time"

	"consultcoach/internal/config"
	"consultcoach/internal/metrics"
	"consultcoach/internal/model"

	"github.com/rs/zerolog"
)

// RefusalMessage is returned verbatim when a question has no support in the transcript.
const RefusalMessage = "That isn't in the transcript."

const operationChat = "chat"

// ChatService answers coaching questions grounded in one transcript
type ChatService struct {
	completer Completer
	gate      RelevanceGate
	persona   config.Persona
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewChatService creates a chat service; a nil gate uses the default keyword gate.
func NewChatService(completer Completer, gate RelevanceGate, persona config.Persona, m *metrics.Metrics, logger zerolog.Logger) *ChatService {
	if gate == nil {
		gate = NewKeywordGate(nil)
	}
	return &ChatService{
		completer: completer,
		gate:      gate,
		persona:   persona,
		metrics:   m,
		logger:    logger.With().Str("component", "chat").Logger(),
	}
}

// Answer returns the coach reply for question. Gate refusals return
// RefusalMessage without a completion call; completion failures return
// *ChatServiceError. history is never modified.
func (s *ChatService) Answer(ctx context.Context, transcript string, history []model.ChatTurn, question, modelID string) (string, error) {
	if !s.gate.Allows(transcript, question) {
		s.metrics.RecordChatRefusal()
		s.logger.Debug().Str("question", question).Msg("refused by relevance gate")
		return RefusalMessage, nil
	}

	prompt := buildChatPrompt(s.persona, transcript, buildConversation(history, question))

	start := time.Now()
	reply, err := s.completer.Complete(ctx, CompletionRequest{
		Model:  modelID,
		Prompt: prompt,
	})
	s.metrics.RecordCompletion(operationChat, modelID, time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Warn().Err(err).Str("model", modelID).Msg("chat completion failed")
		return "", &ChatServiceError{Err: err}
	}
	return reply, nil
}
