package service

import (
	"math"
	"strings"

	"consultcoach/internal/model"
)

// WordsPerMinute is the assumed conversational speaking rate.
const WordsPerMinute = 140

// ComputeMetrics counts whitespace-separated tokens and estimates spoken
// duration, rounded to two decimals.
func ComputeMetrics(clean string) model.Metrics {
	words := len(strings.Fields(clean))
	minutes := float64(words) / WordsPerMinute
	return model.Metrics{
		WordCount:                words,
		EstimatedDurationMinutes: math.Round(minutes*100) / 100,
	}
}
