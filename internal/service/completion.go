package service

import "context"

// Completer sends a prompt to a text-completion backend and returns the raw
// response text.
type Completer interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a single prompt for one model
type CompletionRequest struct {
	Model  string
	Prompt string
	// JSON asks the backend for an application/json response body.
	JSON bool
}
