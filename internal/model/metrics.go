package model

// Metrics are derived deterministically from a transcript's clean text
type Metrics struct {
	WordCount                int     `json:"word_count"`
	EstimatedDurationMinutes float64 `json:"estimated_duration_minutes"`
}
