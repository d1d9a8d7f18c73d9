package model

// Report section titles, in rendering order
const (
	SectionExecutiveSummary = "Executive Summary"
	SectionKeyMetrics       = "Key Metrics"
	SectionWentWell         = "What Went Well"
	SectionImprovements     = "Areas for Improvement"
	SectionCoachingTips     = "Coaching Tips"
)

// ReportSection is one titled block of the coaching report. Body lines are separated by "\n".
type ReportSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Report is the flat, ordered view consumed by renderers
type Report struct {
	Sections []ReportSection `json:"sections"`
}
