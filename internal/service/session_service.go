package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"consultcoach/internal/cache"
	"consultcoach/internal/config"
	"consultcoach/internal/metrics"
	"consultcoach/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReportRenderer turns an assembled report into a document
type ReportRenderer interface {
	Render(report model.Report) ([]byte, error)
}

// SessionService runs one coaching cycle per session id. State lives in the
// session store; operations on the same id are serialized.
type SessionService struct {
	sessions    cache.SessionCache
	analysis    *AnalysisService
	chat        *ChatService
	tokens      *TokenService
	renderer    ReportRenderer
	broadcaster Broadcaster
	ai          *config.AIConfig
	metrics     *metrics.Metrics
	logger      zerolog.Logger

	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock is held by every in-flight operation on one session id.
// The entry is removed when the last holder releases it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionService creates a new session service
func NewSessionService(
	sessions cache.SessionCache,
	analysis *AnalysisService,
	chat *ChatService,
	tokens *TokenService,
	renderer ReportRenderer,
	ai *config.AIConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		analysis:    analysis,
		chat:        chat,
		tokens:      tokens,
		renderer:    renderer,
		broadcaster: nopBroadcaster{},
		ai:          ai,
		metrics:     m,
		logger:      logger.With().Str("component", "session").Logger(),
		locks:       make(map[string]*sessionLock),
	}
}

// SetBroadcaster sets the broadcaster (to avoid circular dependency)
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = nopBroadcaster{}
	}
	s.broadcaster = b
}

// Create opens an empty session and returns it with its handle
func (s *SessionService) Create(ctx context.Context) (*model.Session, string, error) {
	now := time.Now().UTC()
	session := &model.Session{
		ID:          uuid.New().String(),
		Model:       s.ai.DefaultModel,
		ChatHistory: []model.ChatTurn{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	token, err := s.tokens.Issue(session.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info().Str("session_id", session.ID).Msg("session created")
	return session, token, nil
}

// Get returns the current state of a session
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.load(ctx, id)
}

// LoadTranscript normalizes an upload and replaces the session's transcript.
// Metrics are recomputed; analysis and chat history are cleared. An empty
// formatHint derives the format from the filename.
func (s *SessionService) LoadTranscript(ctx context.Context, id, filename string, data []byte, formatHint string) (*model.Session, error) {
	format, err := resolveFormat(filename, formatHint)
	if err != nil {
		return nil, err
	}
	transcript, err := NewTranscript(filename, data, format)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := ComputeMetrics(transcript.Clean)
	session.ClearDerived()
	session.Transcript = transcript
	session.Metrics = &stats

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.RecordTranscript(string(format), stats.WordCount)
	s.logger.Info().
		Str("session_id", id).
		Str("format", string(format)).
		Int("words", stats.WordCount).
		Msg("transcript loaded")
	s.broadcaster.BroadcastToSession(id, EventTranscript, session.View())
	return session, nil
}

// Analyze requests an analysis of the session's transcript. On failure the
// session's analysis is left unset and the *AnalysisError is returned.
func (s *SessionService) Analyze(ctx context.Context, id, modelID string) (*model.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Transcript == nil {
		return nil, ErrNoTranscript
	}
	resolved, err := s.resolveModel(session, modelID)
	if err != nil {
		return nil, err
	}

	result, err := s.analysis.Analyze(ctx, session.Transcript.Raw, resolved)
	if err != nil {
		session.Analysis = nil
		if saveErr := s.save(ctx, session); saveErr != nil {
			s.logger.Error().Err(saveErr).Str("session_id", id).Msg("failed to persist cleared analysis")
		}

		payload := map[string]string{"error": err.Error()}
		var ae *AnalysisError
		if errors.As(err, &ae) {
			payload["rawResponse"] = ae.RawResponse
		}
		s.broadcaster.BroadcastToSession(id, EventAnalysisFailed, payload)
		return nil, err
	}

	session.Model = resolved
	session.Analysis = result
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToSession(id, EventAnalysisReady, session.View())
	return session, nil
}

// Chat answers one question about the session's transcript. The user and
// coach turns are appended only when an answer is produced.
func (s *SessionService) Chat(ctx context.Context, id, question, modelID string) (string, *model.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if session.Transcript == nil {
		return "", nil, ErrNoTranscript
	}
	resolved, err := s.resolveModel(session, modelID)
	if err != nil {
		return "", nil, err
	}

	answer, err := s.chat.Answer(ctx, session.Transcript.Raw, session.ChatHistory, question, resolved)
	if err != nil {
		return "", nil, err
	}

	session.ChatHistory = append(session.ChatHistory,
		model.ChatTurn{Role: model.RoleUser, Content: question},
		model.ChatTurn{Role: model.RoleAssistant, Content: answer},
	)
	if err := s.save(ctx, session); err != nil {
		return "", nil, err
	}

	s.broadcaster.BroadcastToSession(id, EventChatAnswer, map[string]string{
		"question": question,
		"answer":   answer,
	})
	return answer, session, nil
}

// Report assembles the coaching report for the session's current analysis
func (s *SessionService) Report(ctx context.Context, id string) (model.Report, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return model.Report{}, err
	}
	if session.Analysis == nil || session.Metrics == nil {
		return model.Report{}, ErrNoAnalysis
	}
	s.metrics.RecordReport("json")
	return AssembleReport(*session.Analysis, *session.Metrics), nil
}

// ReportPDF renders the session's report as a PDF document
func (s *SessionService) ReportPDF(ctx context.Context, id string) ([]byte, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Analysis == nil || session.Metrics == nil {
		return nil, ErrNoAnalysis
	}
	doc, err := s.renderer.Render(AssembleReport(*session.Analysis, *session.Metrics))
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	s.metrics.RecordReport("pdf")
	return doc, nil
}

// Reset clears the transcript and everything derived from it
func (s *SessionService) Reset(ctx context.Context, id string) (*model.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Transcript = nil
	session.ClearDerived()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Str("session_id", id).Msg("session reset")
	s.broadcaster.BroadcastToSession(id, EventSessionReset, session.View())
	return session, nil
}

// Authorize checks a session handle against a session id
func (s *SessionService) Authorize(token, id string) error {
	return s.tokens.Authorize(token, id)
}

func (s *SessionService) load(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.ChatHistory == nil {
		session.ChatHistory = []model.ChatTurn{}
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Set(ctx, session); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionService) resolveModel(session *model.Session, requested string) (string, error) {
	if requested == "" {
		requested = session.Model
	}
	resolved, ok := s.ai.ResolveModel(requested)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrModelNotAllowed, requested)
	}
	return resolved, nil
}

func (s *SessionService) lock(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

func (s *SessionService) lockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}

func resolveFormat(filename, hint string) (model.TranscriptFormat, error) {
	if hint != "" {
		return ParseFormat(hint)
	}
	return FormatFromFilename(filename)
}
