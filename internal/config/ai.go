package config

import (
	"os"
	"strconv"
)

// ModelOption is one entry of the model allow-list shown to the UI
type ModelOption struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

// DefaultModels is the versioned allow-list of completion models
var DefaultModels = []ModelOption{
	{Label: "Gemini 3 Pro (Preview)", ID: "gemini-3.0-pro-preview"},
	{Label: "Gemini 3 Flash (Preview)", ID: "gemini-3.0-flash-preview"},
	{Label: "Gemini 2.5 Pro", ID: "gemini-2.5-pro"},
	{Label: "Gemini 2.5 Flash", ID: "gemini-2.5-flash"},
	{Label: "Gemini 2.5 Flash-Lite", ID: "gemini-2.5-flash-lite"},
}

// DefaultModelID is used when a request does not name a model
const DefaultModelID = "gemini-2.5-flash"

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey       string        `json:"-"` // Never serialize
	BaseURL      string        `json:"baseUrl"`
	DefaultModel string        `json:"defaultModel"`
	Models       []ModelOption `json:"models"`
	// TimeoutMS of 0 leaves the completion call unbounded; callers may impose a deadline via context.
	TimeoutMS int     `json:"timeoutMs"`
	Persona   Persona `json:"persona"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	timeout, _ := strconv.Atoi(os.Getenv("GEMINI_TIMEOUT_MS"))
	return &AIConfig{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		BaseURL:      getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		DefaultModel: getEnvOrDefault("GEMINI_MODEL", DefaultModelID),
		Models:       DefaultModels,
		TimeoutMS:    timeout,
		Persona:      DefaultPersona(),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

// ResolveModel maps an empty id to the default and reports whether the id is on the allow-list.
func (c *AIConfig) ResolveModel(id string) (string, bool) {
	if id == "" {
		id = c.DefaultModel
	}
	for _, m := range c.Models {
		if m.ID == id {
			return id, true
		}
	}
	return id, false
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
