package rest

import (
	"net/http"
	"time"

	"consultcoach/internal/config"
	"consultcoach/internal/metrics"
	"consultcoach/internal/service"
	"consultcoach/internal/transport/rest/handler"
	"consultcoach/internal/transport/rest/middleware"
	"consultcoach/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Container holds all dependencies for the router
type Container struct {
	Config         *config.Config
	SessionService *service.SessionService
	WSHub          *ws.Hub
	RateLimiter    *middleware.RateLimiter
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Logger         zerolog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.Config.MaxUploadBytes, c.Logger)
	catalogHandler := handler.NewCatalogHandler(c.Config.AI)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService, c.Config.CORSAllowedOrigins, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.SessionService)
	limiter := c.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(c.Config.RateLimitPerMinute, time.Minute)
	}
	rateLimit := middleware.RateLimit(limiter, c.Metrics, c.Logger)

	// CORS middleware (apply first)
	r.Use(middleware.CORS(c.Config.CORSAllowedOrigins))
	r.Use(middleware.RequestLogger(c.Logger, c.Metrics))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/models", catalogHandler.Models).Methods("GET", "OPTIONS")
	v1.HandleFunc("/persona", catalogHandler.Persona).Methods("GET", "OPTIONS")
	v1.HandleFunc("/playbook", catalogHandler.Playbook).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Session routes (require the session's handle)
	sessionRoutes := v1.PathPrefix("/sessions/{id}").Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("", sessionHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("", sessionHandler.Reset).Methods("DELETE", "OPTIONS")
	sessionRoutes.HandleFunc("/report", sessionHandler.Report).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/report.pdf", sessionHandler.ReportPDF).Methods("GET", "OPTIONS")

	// Completion-backed routes are rate limited per session
	completionRoutes := sessionRoutes.NewRoute().Subrouter()
	completionRoutes.Use(rateLimit)

	completionRoutes.HandleFunc("/transcript", sessionHandler.UploadTranscript).Methods("POST", "OPTIONS")
	completionRoutes.HandleFunc("/analysis", sessionHandler.Analyze).Methods("POST", "OPTIONS")
	completionRoutes.HandleFunc("/chat", sessionHandler.Chat).Methods("POST", "OPTIONS")

	return r
}
