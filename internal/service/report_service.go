package service

import (
	"fmt"
	"strconv"
	"strings"

	"consultcoach/internal/model"
)

// AssembleReport maps an analysis and its metrics onto the fixed report
// sections. Only ASCII is added around the analysis text.
func AssembleReport(a model.AnalysisResult, m model.Metrics) model.Report {
	return model.Report{
		Sections: []model.ReportSection{
			{Title: model.SectionExecutiveSummary, Body: a.Summary},
			{Title: model.SectionKeyMetrics, Body: strings.Join([]string{
				fmt.Sprintf("Sentiment Score: %d/100", a.SentimentScore),
				fmt.Sprintf("Word Count: %d", m.WordCount),
				"Estimated Duration: " + strconv.FormatFloat(m.EstimatedDurationMinutes, 'f', -1, 64) + " mins",
			}, "\n")},
			{Title: model.SectionWentWell, Body: bullets(a.Strengths)},
			{Title: model.SectionImprovements, Body: bullets(a.Improvements)},
			{Title: model.SectionCoachingTips, Body: bullets(a.CoachingTips)},
		},
	}
}

func bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
