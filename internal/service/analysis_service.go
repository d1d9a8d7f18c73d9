package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"consultcoach/internal/config"
	"consultcoach/internal/metrics"
	"consultcoach/internal/model"

	"github.com/rs/zerolog"
)

const operationAnalysis = "analysis"

// AnalysisService turns a raw transcript into a validated AnalysisResult
type AnalysisService struct {
	completer Completer
	persona   config.Persona
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(completer Completer, persona config.Persona, m *metrics.Metrics, logger zerolog.Logger) *AnalysisService {
	return &AnalysisService{
		completer: completer,
		persona:   persona,
		metrics:   m,
		logger:    logger.With().Str("component", "analysis").Logger(),
	}
}

// Analyze sends one prompt for rawText and validates the response. Every
// failure is returned as *AnalysisError; no retries are made.
func (s *AnalysisService) Analyze(ctx context.Context, rawText, modelID string) (*model.AnalysisResult, error) {
	prompt := buildAnalysisPrompt(s.persona, rawText)

	start := time.Now()
	response, err := s.completer.Complete(ctx, CompletionRequest{
		Model:  modelID,
		Prompt: prompt,
		JSON:   true,
	})
	elapsed := time.Since(start)
	s.metrics.RecordCompletion(operationAnalysis, modelID, elapsed.Seconds(), err)
	if err != nil {
		s.logger.Warn().Err(err).Str("model", modelID).Msg("completion failed")
		s.metrics.RecordAnalysisFailure("completion")
		return nil, &AnalysisError{Message: err.Error(), Err: err}
	}

	result, err := ParseAnalysis(response)
	if err != nil {
		s.logger.Warn().Err(err).Str("model", modelID).Int("response_len", len(response)).Msg("unparseable analysis response")
		reason := "parse"
		if errors.Is(err, ErrNoJSONObject) {
			reason = "no_json"
		}
		s.metrics.RecordAnalysisFailure(reason)
		return nil, &AnalysisError{Message: err.Error(), RawResponse: response, Err: err}
	}

	s.logger.Info().
		Str("model", modelID).
		Int64("latency_ms", elapsed.Milliseconds()).
		Int("sentiment", result.SentimentScore).
		Int("risks", len(result.ConversionRisks)).
		Msg("analysis complete")
	return result, nil
}

// ParseAnalysis carves the JSON object out of a completion response and
// decodes it field by field. Fields that are absent, null or of the wrong
// shape take their defaults.
func ParseAnalysis(response string) (*model.AnalysisResult, error) {
	objText, err := ExtractJSONObject(response)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(objText), &fields); err != nil {
		return nil, err
	}

	var a model.AnalysisResult
	a.Summary = decodeString(fields["summary"])
	a.Topics = decodeStrings(fields["topics"])
	a.SentimentScore = decodeInt(fields["sentiment_score"])
	a.Strengths = decodeStrings(fields["strengths"])
	a.Improvements = decodeStrings(fields["improvements"])
	a.CoachingTips = decodeStrings(fields["coaching_tips"])

	intent := decodeObject(fields["client_intent"])
	a.ClientIntent = model.ClientIntent{
		Occasion:          decodeString(intent["occasion"]),
		DateMentions:      decodeStrings(intent["date_mentions"]),
		DecisionTiming:    decodeString(intent["decision_timing"]),
		PrimaryMotivation: decodeString(intent["primary_motivation"]),
	}

	sc := decodeObject(fields["consult_scorecard"])
	a.ConsultScorecard = model.ConsultScorecard{
		AuthorityAndLeadership: decodeInt(sc["authority_and_leadership"]),
		AestheticAlignment:     decodeInt(sc["aesthetic_alignment"]),
		ConstraintSetting:      decodeInt(sc["constraint_setting"]),
		PackagePricingClarity:  decodeInt(sc["package_pricing_clarity"]),
		HesitationHandling:     decodeInt(sc["hesitation_handling"]),
		DecisionSafety:         decodeInt(sc["decision_safety"]),
		NextStepsLocked:        decodeInt(sc["next_steps_locked"]),
	}

	for _, item := range decodeArray(fields["conversion_risks"]) {
		obj := decodeObject(item)
		if obj == nil {
			continue
		}
		risk := model.ConversionRisk{
			Label:    decodeString(obj["label"]),
			Severity: model.Severity(decodeString(obj["severity"])),
			Evidence: decodeString(obj["evidence"]),
		}
		if ts := decodeString(obj["timestamp"]); ts != "" {
			risk.Timestamp = &ts
		}
		a.ConversionRisks = append(a.ConversionRisks, risk)
	}

	a.MissedQuestions = decodeStrings(fields["missed_questions"])

	for _, item := range decodeArray(fields["recommended_micro_scripts"]) {
		obj := decodeObject(item)
		if obj == nil {
			continue
		}
		a.RecommendedMicroScripts = append(a.RecommendedMicroScripts, model.MicroScript{
			Moment: decodeString(obj["moment"]),
			Script: decodeString(obj["script"]),
		})
	}

	for _, item := range decodeArray(fields["timeline"]) {
		obj := decodeObject(item)
		if obj == nil {
			continue
		}
		a.Timeline = append(a.Timeline, model.TimelineEvent{
			Timestamp:   decodeString(obj["timestamp"]),
			Type:        decodeString(obj["type"]),
			Sentiment:   decodeString(obj["sentiment"]),
			Description: decodeString(obj["description"]),
		})
	}

	result := a.WithDefaults()
	return &result, nil
}

func decodeObject(raw json.RawMessage) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &obj) != nil {
		return nil
	}
	return obj
}

func decodeArray(raw json.RawMessage) []json.RawMessage {
	var arr []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &arr) != nil {
		return nil
	}
	return arr
}

// decodeString accepts strings and numbers; anything else is empty.
func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// decodeStrings keeps the string elements of an array.
func decodeStrings(raw json.RawMessage) []string {
	items := decodeArray(raw)
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s *string
		if json.Unmarshal(item, &s) == nil && s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// decodeInt accepts numbers and numeric strings, rounding fractions.
// Magnitudes beyond int32 saturate so later clamping sees the right sign.
func decodeInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return roundInt(f)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return roundInt(f)
		}
	}
	return 0
}

func roundInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(f))
}
