package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	RedisAddr          string
	SessionTTL         time.Duration
	SessionSecret      string
	LogLevel           string
	LogJSON            bool
	CORSAllowedOrigins string
	RateLimitPerMinute int
	MaxUploadBytes     int64
	PersonaFile        string
	AI                 *AIConfig

	// SessionSecretGenerated is set when SESSION_SECRET was empty and a random
	// secret was generated; handles then do not survive a restart.
	SessionSecretGenerated bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RedisAddr:          strings.TrimPrefix(getEnv("REDIS_ADDR", ""), "redis://"),
		SessionTTL:         getDuration("SESSION_TTL", 24*time.Hour),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogJSON:            getBool("LOG_JSON", false),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 20),
		MaxUploadBytes:     int64(getInt("MAX_UPLOAD_MB", 10)) << 20,
		PersonaFile:        getEnv("PERSONA_FILE", ""),
		AI:                 DefaultAIConfig(),
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		cfg.SessionSecretGenerated = true
	}

	if cfg.PersonaFile != "" {
		p, err := LoadPersona(cfg.PersonaFile)
		if err != nil {
			return nil, err
		}
		cfg.AI.Persona = p
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultVal
}
