package service

import (
	"regexp"
	"strings"
)

// RelevanceGate decides whether a question can plausibly be answered from a
// transcript before any completion is requested.
type RelevanceGate interface {
	Allows(transcript, question string) bool
}

// DefaultStopWords are ignored when extracting question keywords
var DefaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "did", "do", "does",
	"for", "from", "had", "has", "have", "he", "her", "hers", "him", "his", "i",
	"if", "in", "is", "it", "its", "me", "my", "not", "of", "on", "or", "our",
	"she", "so", "that", "the", "their", "them", "they", "this", "to", "was",
	"we", "were", "what", "when", "where", "who", "why", "will", "with", "you",
	"your",
}

var wordRegex = regexp.MustCompile(`[a-z0-9]+`)

// KeywordGate passes a question when any keyword longer than MinLength
// characters appears as a substring of the lowercased transcript. Questions
// with no keywords always pass. Substring matching can both false-accept and
// false-reject paraphrased questions.
type KeywordGate struct {
	stopWords map[string]struct{}
	minLength int
}

// NewKeywordGate builds a gate; nil stopWords uses DefaultStopWords.
func NewKeywordGate(stopWords []string) *KeywordGate {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordGate{stopWords: set, minLength: 2}
}

// Keywords returns the question's lowercase keywords in order.
func (g *KeywordGate) Keywords(question string) []string {
	words := wordRegex.FindAllString(strings.ToLower(question), -1)
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= g.minLength {
			continue
		}
		if _, stop := g.stopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

func (g *KeywordGate) Allows(transcript, question string) bool {
	keywords := g.Keywords(question)
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(transcript)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
