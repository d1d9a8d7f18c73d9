package model

import "strings"

// UnknownValue fills client-intent fields the model left empty
const UnknownValue = "unknown"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// MissedQuestionVocabulary is the closed set of consultation questions the model may report as missed
var MissedQuestionVocabulary = []string{
	"skin type",
	"inspiration/photos",
	"schedule",
	"party size",
	"budget range",
	"decision process",
	"trial expectations",
}

// TimelineTypes are the moment categories requested from the model
var TimelineTypes = []string{
	"rapport",
	"authority",
	"alignment",
	"pricing",
	"hesitation",
	"decision",
	"next_step",
}

// AnalysisResult is the validated coaching analysis of one transcript.
// Every field is present after WithDefaults; consumers never check for absence.
type AnalysisResult struct {
	Summary                 string           `json:"summary"`
	Topics                  []string         `json:"topics"`
	SentimentScore          int              `json:"sentiment_score"` // 0-100
	Strengths               []string         `json:"strengths"`
	Improvements            []string         `json:"improvements"`
	CoachingTips            []string         `json:"coaching_tips"`
	ClientIntent            ClientIntent     `json:"client_intent"`
	ConsultScorecard        ConsultScorecard `json:"consult_scorecard"`
	ConversionRisks         []ConversionRisk `json:"conversion_risks"`
	MissedQuestions         []string         `json:"missed_questions"`
	RecommendedMicroScripts []MicroScript    `json:"recommended_micro_scripts"`
	Timeline                []TimelineEvent  `json:"timeline"`
}

type ClientIntent struct {
	Occasion          string   `json:"occasion"`
	DateMentions      []string `json:"date_mentions"`
	DecisionTiming    string   `json:"decision_timing"`
	PrimaryMotivation string   `json:"primary_motivation"`
}

// ConsultScorecard holds 0-10 ratings
type ConsultScorecard struct {
	AuthorityAndLeadership int `json:"authority_and_leadership"`
	AestheticAlignment     int `json:"aesthetic_alignment"`
	ConstraintSetting      int `json:"constraint_setting"`
	PackagePricingClarity  int `json:"package_pricing_clarity"`
	HesitationHandling     int `json:"hesitation_handling"`
	DecisionSafety         int `json:"decision_safety"`
	NextStepsLocked        int `json:"next_steps_locked"`
}

type ConversionRisk struct {
	Label     string   `json:"label"`
	Severity  Severity `json:"severity"`
	Evidence  string   `json:"evidence"`
	Timestamp *string  `json:"timestamp"`
}

type MicroScript struct {
	Moment string `json:"moment"`
	Script string `json:"script"`
}

// TimelineEvent carries either a moment type or, from older prompts, a sentiment label
type TimelineEvent struct {
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type,omitempty"`
	Sentiment   string `json:"sentiment,omitempty"`
	Description string `json:"description"`
}

// WithDefaults completes a partially populated result: nil lists become empty,
// blank intent fields become "unknown", scores are clamped to their ranges,
// severities are normalized and missed questions are restricted to the vocabulary.
// It is idempotent.
func (a AnalysisResult) WithDefaults() AnalysisResult {
	out := a
	out.Topics = nonNil(a.Topics)
	out.SentimentScore = clamp(a.SentimentScore, 0, 100)
	out.Strengths = nonNil(a.Strengths)
	out.Improvements = nonNil(a.Improvements)
	out.CoachingTips = nonNil(a.CoachingTips)

	out.ClientIntent = ClientIntent{
		Occasion:          orUnknown(a.ClientIntent.Occasion),
		DateMentions:      nonNil(a.ClientIntent.DateMentions),
		DecisionTiming:    orUnknown(a.ClientIntent.DecisionTiming),
		PrimaryMotivation: orUnknown(a.ClientIntent.PrimaryMotivation),
	}

	sc := a.ConsultScorecard
	out.ConsultScorecard = ConsultScorecard{
		AuthorityAndLeadership: clamp(sc.AuthorityAndLeadership, 0, 10),
		AestheticAlignment:     clamp(sc.AestheticAlignment, 0, 10),
		ConstraintSetting:      clamp(sc.ConstraintSetting, 0, 10),
		PackagePricingClarity:  clamp(sc.PackagePricingClarity, 0, 10),
		HesitationHandling:     clamp(sc.HesitationHandling, 0, 10),
		DecisionSafety:         clamp(sc.DecisionSafety, 0, 10),
		NextStepsLocked:        clamp(sc.NextStepsLocked, 0, 10),
	}

	out.ConversionRisks = make([]ConversionRisk, 0, len(a.ConversionRisks))
	for _, r := range a.ConversionRisks {
		r.Severity = NormalizeSeverity(string(r.Severity))
		out.ConversionRisks = append(out.ConversionRisks, r)
	}

	out.MissedQuestions = make([]string, 0, len(a.MissedQuestions))
	seen := make(map[string]bool)
	for _, q := range a.MissedQuestions {
		canon, ok := CanonicalMissedQuestion(q)
		if !ok || seen[canon] {
			continue
		}
		seen[canon] = true
		out.MissedQuestions = append(out.MissedQuestions, canon)
	}

	out.RecommendedMicroScripts = nonNil(a.RecommendedMicroScripts)
	out.Timeline = nonNil(a.Timeline)
	return out
}

// NormalizeSeverity lowercases s; anything outside low/medium/high becomes medium.
func NormalizeSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// CanonicalMissedQuestion matches q case-insensitively against the vocabulary.
func CanonicalMissedQuestion(q string) (string, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, v := range MissedQuestionVocabulary {
		if q == v {
			return v, true
		}
	}
	return "", false
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownValue
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
