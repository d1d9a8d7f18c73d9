package handler

import (
	"net/http"

	"consultcoach/internal/config"
	"consultcoach/internal/model"
)

// CatalogHandler serves static configuration to the dashboard
type CatalogHandler struct {
	ai *config.AIConfig
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(ai *config.AIConfig) *CatalogHandler {
	return &CatalogHandler{ai: ai}
}

// ModelsResponse lists the selectable models
type ModelsResponse struct {
	Default string               `json:"default"`
	Models  []config.ModelOption `json:"models"`
}

// Models handles GET /v1/models
func (h *CatalogHandler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ModelsResponse{
		Default: h.ai.DefaultModel,
		Models:  h.ai.Models,
	})
}

// Persona handles GET /v1/persona
func (h *CatalogHandler) Persona(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ai.Persona)
}

// Playbook handles GET /v1/playbook
func (h *CatalogHandler) Playbook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.DefaultPlaybook())
}
