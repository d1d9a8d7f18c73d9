package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the coaching service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Transcript metrics
	TranscriptsLoadedTotal *prometheus.CounterVec
	TranscriptWords        prometheus.Histogram

	// Completion metrics
	CompletionsTotal         *prometheus.CounterVec
	CompletionLatencySeconds *prometheus.HistogramVec
	AnalysisFailuresTotal    *prometheus.CounterVec
	ChatRefusalsTotal        prometheus.Counter

	// Transport metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestSeconds   *prometheus.HistogramVec
	RateLimitedTotal     prometheus.Counter
	WebSocketConnections prometheus.Gauge
	ReportsRenderedTotal *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TranscriptsLoadedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_transcripts_loaded_total",
				Help: "Transcripts accepted by format",
			},
			[]string{"format"},
		),
		TranscriptWords: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coach_transcript_words",
				Help:    "Word count of loaded transcripts",
				Buckets: []float64{50, 250, 500, 1000, 2500, 5000, 10000, 20000},
			},
		),

		CompletionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_completions_total",
				Help: "Completion requests by operation, model and status",
			},
			[]string{"operation", "model", "status"},
		),
		CompletionLatencySeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coach_completion_latency_seconds",
				Help:    "Completion request latency",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30, 60, 120},
			},
			[]string{"operation", "model"},
		),
		AnalysisFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_analysis_failures_total",
				Help: "Failed analyses by reason",
			},
			[]string{"reason"},
		),
		ChatRefusalsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "coach_chat_refusals_total",
				Help: "Chat questions refused by the relevance gate",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_http_requests_total",
				Help: "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coach_http_request_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "coach_rate_limited_total",
				Help: "Requests rejected by the per-session rate limiter",
			},
		),
		WebSocketConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "coach_websocket_connections",
				Help: "Open dashboard WebSocket connections",
			},
		),
		ReportsRenderedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_reports_rendered_total",
				Help: "Reports rendered by output type",
			},
			[]string{"output"},
		),
	}
}

// RecordTranscript records an accepted transcript.
func (m *Metrics) RecordTranscript(format string, words int) {
	if m == nil {
		return
	}
	m.TranscriptsLoadedTotal.WithLabelValues(format).Inc()
	m.TranscriptWords.Observe(float64(words))
}

// RecordCompletion records one completion call.
func (m *Metrics) RecordCompletion(operation, model string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CompletionsTotal.WithLabelValues(operation, model, status).Inc()
	m.CompletionLatencySeconds.WithLabelValues(operation, model).Observe(seconds)
}

// RecordAnalysisFailure records a failed analysis.
func (m *Metrics) RecordAnalysisFailure(reason string) {
	if m == nil {
		return
	}
	m.AnalysisFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordChatRefusal records a gate refusal.
func (m *Metrics) RecordChatRefusal() {
	if m == nil {
		return
	}
	m.ChatRefusalsTotal.Inc()
}

// RecordHTTPRequest records a served request.
func (m *Metrics) RecordHTTPRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestSeconds.WithLabelValues(route, method).Observe(seconds)
}

// RecordRateLimited records a rejected request.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}

// WebSocketOpened increments the open connection gauge.
func (m *Metrics) WebSocketOpened() {
	if m == nil {
		return
	}
	m.WebSocketConnections.Inc()
}

// WebSocketClosed decrements the open connection gauge.
func (m *Metrics) WebSocketClosed() {
	if m == nil {
		return
	}
	m.WebSocketConnections.Dec()
}

// RecordReport records a rendered report.
func (m *Metrics) RecordReport(output string) {
	if m == nil {
		return
	}
	m.ReportsRenderedTotal.WithLabelValues(output).Inc()
}
