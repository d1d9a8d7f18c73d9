package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"consultcoach/internal/model"
)

// StubClient is a deterministic, no-network completer used when no API key
// is configured and in tests. Output depends only on the prompt.
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) Name() string { return "stub" }

func (c *StubClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(req.Prompt))
	short := hex.EncodeToString(sum[:4])

	if !req.JSON {
		return fmt.Sprintf("Stub coach reply (%s). Configure GEMINI_API_KEY for real coaching.", short), nil
	}

	out := map[string]any{
		"summary":         fmt.Sprintf("Stub analysis (%s). Configure GEMINI_API_KEY for a real review.", short),
		"topics":          []string{"consultation"},
		"sentiment_score": 50,
		"strengths":       []string{"Kept the consultation on topic"},
		"improvements":    []string{"Confirm the decision timeline before closing"},
		"coaching_tips":   []string{"State the next step and the date it happens"},
		"client_intent": map[string]any{
			"occasion":           model.UnknownValue,
			"date_mentions":      []string{},
			"decision_timing":    model.UnknownValue,
			"primary_motivation": model.UnknownValue,
		},
		"consult_scorecard": map[string]int{
			"authority_and_leadership": 5,
			"aesthetic_alignment":      5,
			"constraint_setting":       5,
			"package_pricing_clarity":  5,
			"hesitation_handling":      5,
			"decision_safety":          5,
			"next_steps_locked":        5,
		},
		"conversion_risks":          []any{},
		"missed_questions":          []string{"decision process"},
		"recommended_micro_scripts": []any{},
		"timeline":                  []any{},
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
