package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"consultcoach/internal/cache"
	"consultcoach/internal/config"
	"consultcoach/internal/logging"
	"consultcoach/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	last model.Report
}

func (r *fakeRenderer) Render(report model.Report) ([]byte, error) {
	r.last = report
	return []byte("%PDF-fake"), nil
}

type sessionFixture struct {
	svc       *SessionService
	completer *mockCompleter
	renderer  *fakeRenderer
	events    *recordingBroadcaster
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	logger := logging.Nop()
	ai := &config.AIConfig{DefaultModel: config.DefaultModelID, Models: config.DefaultModels}
	persona := config.DefaultPersona()

	c := new(mockCompleter)
	r := &fakeRenderer{}
	b := &recordingBroadcaster{}

	svc := NewSessionService(
		cache.NewMemorySessionCache(time.Hour),
		NewAnalysisService(c, persona, nil, logger),
		NewChatService(c, nil, persona, nil, logger),
		NewTokenService("secret", time.Hour),
		r,
		ai,
		nil,
		logger,
	)
	svc.SetBroadcaster(b)
	return &sessionFixture{svc: svc, completer: c, renderer: r, events: b}
}

const sampleVTT = "WEBVTT\n\n1\n00:00:00.000 --> 00:00:02.000\nHello there\n\n2\n00:00:02.000 --> 00:00:04.000\nHow are you"

func TestSessionService_FullCycle(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, token, err := f.svc.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NoError(t, f.svc.Authorize(token, session.ID))
	assert.Equal(t, config.DefaultModelID, session.Model)

	loaded, err := f.svc.LoadTranscript(ctx, session.ID, "consult.vtt", []byte(sampleVTT), "")
	require.NoError(t, err)
	assert.Equal(t, model.FormatVTT, loaded.Transcript.Format)
	assert.Equal(t, "Hello there How are you", loaded.Transcript.Clean)
	assert.Equal(t, 5, loaded.Metrics.WordCount)

	f.completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool { return req.JSON })).
		Return(`{"summary":"Brief hello.","strengths":["Warm greeting"]}`, nil).Once()
	analyzed, err := f.svc.Analyze(ctx, session.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Brief hello.", analyzed.Analysis.Summary)

	f.completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool { return !req.JSON })).
		Return("You opened warmly.", nil).Once()
	answer, chatted, err := f.svc.Chat(ctx, session.ID, "How did I open, hello?", "")
	require.NoError(t, err)
	assert.Equal(t, "You opened warmly.", answer)
	assert.Equal(t, []model.ChatTurn{
		{Role: model.RoleUser, Content: "How did I open, hello?"},
		{Role: model.RoleAssistant, Content: "You opened warmly."},
	}, chatted.ChatHistory)

	report, err := f.svc.Report(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "- Warm greeting", report.Sections[2].Body)

	pdf, err := f.svc.ReportPDF(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, report, f.renderer.last)

	assert.Equal(t, []string{EventTranscript, EventAnalysisReady, EventChatAnswer}, f.events.events)
	f.completer.AssertExpectations(t)
}

func TestSessionService_ReuploadClearsDerivedState(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session, _, err := f.svc.Create(ctx)
	require.NoError(t, err)

	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte("pricing talk"), "")
	require.NoError(t, err)
	f.completer.On("Complete", mock.Anything, mock.Anything).Return(`{"summary":"x"}`, nil)
	_, err = f.svc.Analyze(ctx, session.ID, "")
	require.NoError(t, err)
	_, _, err = f.svc.Chat(ctx, session.ID, "pricing?", "")
	require.NoError(t, err)

	reloaded, err := f.svc.LoadTranscript(ctx, session.ID, "b.srt", []byte("1\n00:00:00,000 --> 00:00:01,000\nNew call"), "")
	require.NoError(t, err)
	assert.Nil(t, reloaded.Analysis)
	assert.Empty(t, reloaded.ChatHistory)
	assert.Equal(t, "New call", reloaded.Transcript.Clean)

	_, err = f.svc.Report(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNoAnalysis)
}

func TestSessionService_FailedAnalysisLeavesResultUnset(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session, _, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte("hello"), "")
	require.NoError(t, err)

	f.completer.On("Complete", mock.Anything, mock.Anything).Return("no json here", nil)
	_, err = f.svc.Analyze(ctx, session.ID, "")

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "no json here", ae.RawResponse)

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Analysis)
	assert.Contains(t, f.events.events, EventAnalysisFailed)
}

func TestSessionService_FailedChatLeavesHistory(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session, _, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte("budget talk"), "")
	require.NoError(t, err)

	f.completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("network down"))
	_, _, err = f.svc.Chat(ctx, session.ID, "budget?", "")

	var ce *ChatServiceError
	require.True(t, errors.As(err, &ce))

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ChatHistory)
}

func TestSessionService_RefusalIsRecorded(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session, _, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte("budget talk"), "")
	require.NoError(t, err)

	answer, got, err := f.svc.Chat(ctx, session.ID, "asdfqwer", "")
	require.NoError(t, err)
	assert.Equal(t, RefusalMessage, answer)
	assert.Len(t, got.ChatHistory, 2)
	f.completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestSessionService_Preconditions(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, _, err := f.svc.Create(ctx)
	require.NoError(t, err)

	_, err = f.svc.Analyze(ctx, session.ID, "")
	assert.ErrorIs(t, err, ErrNoTranscript)
	_, _, err = f.svc.Chat(ctx, session.ID, "hi", "")
	assert.ErrorIs(t, err, ErrNoTranscript)
	_, err = f.svc.ReportPDF(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.docx", []byte("x"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte{0xfd, 0x80}, "")
	assert.ErrorIs(t, err, ErrDecode)

	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte("hi"), "")
	require.NoError(t, err)
	_, err = f.svc.Analyze(ctx, session.ID, "gpt-4")
	assert.ErrorIs(t, err, ErrModelNotAllowed)
}

func TestSessionService_SessionsAreIsolated(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	a, tokenA, err := f.svc.Create(ctx)
	require.NoError(t, err)
	b, _, err := f.svc.Create(ctx)
	require.NoError(t, err)

	_, err = f.svc.LoadTranscript(ctx, a.ID, "a.txt", []byte("only in a"), "")
	require.NoError(t, err)

	gotB, err := f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, gotB.Transcript)
	assert.ErrorIs(t, f.svc.Authorize(tokenA, b.ID), ErrInvalidToken)
}

func TestSessionService_Reset(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session, _, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.LoadTranscript(ctx, session.ID, "a.txt", []byte("hello"), "plain")
	require.NoError(t, err)

	reset, err := f.svc.Reset(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, reset.Transcript)
	assert.Nil(t, reset.Metrics)
	assert.Empty(t, reset.ChatHistory)
	assert.Contains(t, f.events.events, EventSessionReset)
}

func TestSessionService_LocksReleasedAfterUse(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		session, _, err := f.svc.Create(ctx)
		require.NoError(t, err)
		ids = append(ids, session.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func(id string, j int) {
				defer wg.Done()
				_, err := f.svc.LoadTranscript(ctx, id, "notes.txt", []byte(fmt.Sprintf("upload %d", j)), "")
				assert.NoError(t, err)
			}(id, j)
		}
	}
	wg.Wait()

	for _, id := range ids {
		_, err := f.svc.Reset(ctx, id)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, f.svc.lockCount())
}
