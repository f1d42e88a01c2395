// Package mentor runs the financial-mentor flow: normalize the user's
// snapshot, analyze it, build the system prompt, and ask the model.
package mentor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shettydevesh/zenvestAi-backend/internal/analyzer"
	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
	"github.com/shettydevesh/zenvestAi-backend/internal/llm"
	"github.com/shettydevesh/zenvestAi-backend/internal/prompt"
)

// DefaultMessage is used when a request carries no question.
const DefaultMessage = "Analyze my financial behavior and provide mentorship advice"

// fallbackResponse is returned when the model call fails; the mentor
// endpoint never surfaces a model error to the user.
const fallbackResponse = "Sorry, something went wrong, so I will be on a break"

// Session is one completed mentor exchange, persisted best-effort.
type Session struct {
	UserID         string
	SessionID      string
	Question       string
	FinancialData  *fidata.Dataset
	Analysis       *analyzer.Summary
	MentorResponse string
	Model          string
	CreatedAt      time.Time
	Metadata       map[string]string
}

// SessionStore persists mentor sessions. The in-flight request never fails
// on a store error; persistence is logged and dropped.
type SessionStore interface {
	SaveMentorSession(ctx context.Context, session *Session) error
	ListMentorSessions(ctx context.Context, userID string, limit int) ([]*Session, error)
}

// Archiver uploads the session payload to object storage, best effort.
type Archiver interface {
	ArchiveSession(ctx context.Context, userID, sessionID string, payload interface{}) error
}

// Response is the mentor endpoint's reply body.
type Response struct {
	ID             string `json:"id"`
	SessionID      string `json:"session_id"`
	MentorResponse string `json:"mentorResponse"`
	Model          string `json:"model"`
}

// Service ties the pipeline stages together for one request at a time.
// Sessions and archive are optional; a nil value disables that step.
type Service struct {
	normalizer *fidata.Normalizer
	generator  llm.Generator
	sessions   SessionStore
	archive    Archiver
	log        zerolog.Logger
	now        func() time.Time
}

// NewService creates a mentor service.
func NewService(normalizer *fidata.Normalizer, generator llm.Generator, sessions SessionStore, archive Archiver, log zerolog.Logger) *Service {
	return &Service{
		normalizer: normalizer,
		generator:  generator,
		sessions:   sessions,
		archive:    archive,
		log:        log,
		now:        time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Chat answers one mentor question for a user. The data pipeline never
// fails: missing or degraded data yields an empty-but-valid summary. Only
// the model call can error, and that degrades to a fallback response.
func (s *Service) Chat(ctx context.Context, userID, requestID, message string) (*Response, error) {
	if message == "" {
		message = DefaultMessage
	}
	now := s.now()

	s.log.Info().
		Str("request_id", requestID).
		Str("user_id", userID).
		Msg("Financial mentor request")

	dataset := s.normalizer.Build(ctx, userID, "")
	summary := analyzer.AnalyzeAt(dataset, now)
	systemPrompt := prompt.BuildMentorPrompt(summary)

	mentorResponse, err := s.generator.Generate(ctx, systemPrompt, nil, message)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("user_id", userID).
			Msg("Model call failed, returning fallback response")
		mentorResponse = fallbackResponse
	}

	sessionID := fmt.Sprintf("fin_session_%s_%d", userID, now.Unix())
	session := &Session{
		UserID:         userID,
		SessionID:      sessionID,
		Question:       message,
		FinancialData:  dataset,
		Analysis:       summary,
		MentorResponse: mentorResponse,
		Model:          llm.DefaultModelName,
		CreatedAt:      now,
		Metadata:       map[string]string{"request_id": requestID},
	}

	if s.sessions != nil {
		if err := s.sessions.SaveMentorSession(ctx, session); err != nil {
			s.log.Error().Err(err).Str("session_id", sessionID).Msg("Saving mentor session failed")
		}
	}
	if s.archive != nil {
		if err := s.archive.ArchiveSession(ctx, userID, sessionID, session); err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("Archiving mentor session failed")
		}
	}

	return &Response{
		ID:             requestID,
		SessionID:      sessionID,
		MentorResponse: mentorResponse,
		Model:          llm.DefaultModelName,
	}, nil
}

// NewRequestID returns an identifier for correlating one mentor request
// across log lines and stored metadata.
func NewRequestID() string {
	return uuid.NewString()
}
