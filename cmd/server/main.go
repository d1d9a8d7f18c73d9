package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultcoach/internal/cache"
	"consultcoach/internal/config"
	"consultcoach/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(logging.Config{Service: "coach-server"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		JSON:    cfg.LogJSON,
		Service: "coach-server",
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()

	logger.Info().
		Str("default_model", cfg.AI.DefaultModel).
		Int("models", len(cfg.AI.Models)).
		Bool("api_key", cfg.AI.IsEnabled()).
		Str("brand", cfg.AI.Persona.Brand).
		Msg("AI config")
	if cfg.SessionSecretGenerated {
		logger.Warn().Msg("SESSION_SECRET not set, generated a random secret; session handles will not survive a restart")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Session store: Redis when configured, otherwise in-process
	var sessions cache.SessionCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")
		sessions = cache.NewSessionCache(rdb, cfg.SessionTTL)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, sessions are kept in memory")
		sessions = cache.NewMemorySessionCache(cfg.SessionTTL)
	}

	srv, cleanup := newServer(cfg, sessions, reg, logger)
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
	return nil
}
