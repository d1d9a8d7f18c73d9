package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"consultcoach/internal/cache"
	"consultcoach/internal/config"
	"consultcoach/internal/logging"
	"consultcoach/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_ServesCoachingAPI(t *testing.T) {
	cfg := &config.Config{
		HTTPPort:           "0",
		SessionTTL:         time.Hour,
		SessionSecret:      "test-secret",
		CORSAllowedOrigins: "*",
		RateLimitPerMinute: 10,
		MaxUploadBytes:     1 << 20,
		AI: &config.AIConfig{
			DefaultModel: config.DefaultModelID,
			Models:       config.DefaultModels,
			Persona:      config.DefaultPersona(),
		},
	}

	srv, cleanup := newServer(cfg, cache.NewMemorySessionCache(cfg.SessionTTL), prometheus.NewRegistry(), logging.Nop())
	t.Cleanup(cleanup)
	assert.Equal(t, ":0", srv.Addr)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.CreateSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.SessionID)
	assert.NotEmpty(t, created.Token)
}

func TestNewCompleter(t *testing.T) {
	assert.Equal(t, "stub", newCompleter(&config.AIConfig{}, logging.Nop()).Name())
	assert.Equal(t, "gemini", newCompleter(&config.AIConfig{APIKey: "k"}, logging.Nop()).Name())
}
