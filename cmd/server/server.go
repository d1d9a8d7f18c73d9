package main

import (
	"context"
	"net/http"
	"time"

	"consultcoach/internal/cache"
	"consultcoach/internal/config"
	"consultcoach/internal/metrics"
	"consultcoach/internal/render"
	"consultcoach/internal/service"
	"consultcoach/internal/transport/rest"
	"consultcoach/internal/transport/rest/middleware"
	"consultcoach/internal/transport/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// newServer wires services, hub and router around a session store. The
// returned cleanup stops the hub and the limiter sweep.
func newServer(cfg *config.Config, sessions cache.SessionCache, reg *prometheus.Registry, logger zerolog.Logger) (*http.Server, func()) {
	m := metrics.New(reg)

	completer := newCompleter(cfg.AI, logger)
	logger.Info().Str("completer", completer.Name()).Msg("completion service ready")

	wsHub := ws.NewHub(m, logger)

	analysisSvc := service.NewAnalysisService(completer, cfg.AI.Persona, m, logger)
	chatSvc := service.NewChatService(completer, nil, cfg.AI.Persona, m, logger)
	tokenSvc := service.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	sessionSvc := service.NewSessionService(sessions, analysisSvc, chatSvc, tokenSvc, render.NewPDFRenderer(), cfg.AI, m, logger)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweepLimiter(sweepCtx, limiter)

	router := rest.NewRouter(&rest.Container{
		Config:         cfg,
		SessionService: sessionSvc,
		WSHub:          wsHub,
		RateLimiter:    limiter,
		Metrics:        m,
		Gatherer:       reg,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	cleanup := func() {
		stopSweep()
		wsHub.Close()
	}
	return srv, cleanup
}

func newCompleter(ai *config.AIConfig, logger zerolog.Logger) service.Completer {
	if ai.IsEnabled() {
		return service.NewGeminiClient(ai, logger)
	}
	logger.Warn().Msg("GEMINI_API_KEY not set, using stub completer")
	return service.NewStubClient()
}

func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep()
		}
	}
}
