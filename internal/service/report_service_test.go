package service

import (
	"testing"

	"consultcoach/internal/model"

	"github.com/stretchr/testify/assert"
)

func sectionTitles(r model.Report) []string {
	titles := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		titles[i] = s.Title
	}
	return titles
}

func TestAssembleReport_FixedSections(t *testing.T) {
	want := []string{"Executive Summary", "Key Metrics", "What Went Well", "Areas for Improvement", "Coaching Tips"}

	empty := AssembleReport(model.AnalysisResult{}.WithDefaults(), model.Metrics{})
	full := AssembleReport(model.AnalysisResult{
		Summary:      "Strong consult.",
		Strengths:    []string{"a", "b"},
		Improvements: []string{"c"},
		CoachingTips: []string{"d"},
	}.WithDefaults(), model.Metrics{WordCount: 2800, EstimatedDurationMinutes: 20})

	assert.Equal(t, want, sectionTitles(empty))
	assert.Equal(t, want, sectionTitles(full))
}

func TestAssembleReport_Bodies(t *testing.T) {
	a := model.AnalysisResult{
		Summary:        "Warm and clear.",
		SentimentScore: 82,
		Strengths:      []string{"Rapport", "Listening"},
		Improvements:   []string{"Pricing"},
		CoachingTips:   []string{"Book the trial on the call"},
	}.WithDefaults()
	m := model.Metrics{WordCount: 5, EstimatedDurationMinutes: 0.04}

	r := AssembleReport(a, m)

	assert.Equal(t, "Warm and clear.", r.Sections[0].Body)
	assert.Equal(t, "Sentiment Score: 82/100\nWord Count: 5\nEstimated Duration: 0.04 mins", r.Sections[1].Body)
	assert.Equal(t, "- Rapport\n- Listening", r.Sections[2].Body)
	assert.Equal(t, "- Pricing", r.Sections[3].Body)
	assert.Equal(t, "- Book the trial on the call", r.Sections[4].Body)
}

func TestAssembleReport_EmptyLists(t *testing.T) {
	r := AssembleReport(model.AnalysisResult{}.WithDefaults(), model.Metrics{})
	assert.Equal(t, "", r.Sections[2].Body)
	assert.Equal(t, "Sentiment Score: 0/100\nWord Count: 0\nEstimated Duration: 0 mins", r.Sections[1].Body)
}
