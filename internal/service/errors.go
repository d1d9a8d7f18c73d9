package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported transcript format")
	ErrDecode            = errors.New("transcript is not valid text")
	ErrNoJSONObject      = errors.New("no JSON object in response")
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoTranscript      = errors.New("no transcript loaded")
	ErrNoAnalysis        = errors.New("no analysis available")
	ErrModelNotAllowed   = errors.New("model is not on the allow-list")
	ErrInvalidToken      = errors.New("invalid or expired session token")
)

// AnalysisError reports a failed analysis request. RawResponse holds whatever
// text the completion service returned, for diagnostics.
type AnalysisError struct {
	Message     string
	RawResponse string
	Err         error
}

func (e *AnalysisError) Error() string {
	return "analysis failed: " + e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// ChatServiceError reports a completion failure during a chat turn
type ChatServiceError struct {
	Err error
}

func (e *ChatServiceError) Error() string {
	return fmt.Sprintf("coach chat failed: %v", e.Err)
}

func (e *ChatServiceError) Unwrap() error {
	return e.Err
}
