package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordTranscript("subtitle-vtt", 120)
	m.RecordCompletion("analysis", "gemini-2.5-flash", 0.4, nil)
	m.RecordCompletion("chat", "gemini-2.5-flash", 0.2, errors.New("boom"))
	m.RecordAnalysisFailure("parse")
	m.RecordChatRefusal()
	m.RecordChatRefusal()
	m.RecordHTTPRequest("/v1/sessions", "POST", "201", 0.01)
	m.RecordRateLimited()
	m.WebSocketOpened()
	m.WebSocketOpened()
	m.WebSocketClosed()
	m.RecordReport("pdf")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TranscriptsLoadedTotal.WithLabelValues("subtitle-vtt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompletionsTotal.WithLabelValues("analysis", "gemini-2.5-flash", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompletionsTotal.WithLabelValues("chat", "gemini-2.5-flash", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysisFailuresTotal.WithLabelValues("parse")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChatRefusalsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/v1/sessions", "POST", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebSocketConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsRenderedTotal.WithLabelValues("pdf")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TranscriptWords))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.RecordTranscript("plain", 1)
		m.RecordCompletion("chat", "x", 1, nil)
		m.RecordAnalysisFailure("parse")
		m.RecordChatRefusal()
		m.RecordHTTPRequest("/", "GET", "200", 0)
		m.RecordRateLimited()
		m.WebSocketOpened()
		m.WebSocketClosed()
		m.RecordReport("json")
	})
}

func TestMetrics_Lint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.RecordHTTPRequest("/health", "GET", "200", 0.001)

	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)
}
