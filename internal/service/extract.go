package service

import (
	"regexp"
	"strings"
)

var codeFenceRegex = regexp.MustCompile("(?i)```(?:json)?")

// StripCodeFences removes markdown code fences, including ```json openers.
func StripCodeFences(text string) string {
	cleaned := codeFenceRegex.ReplaceAllString(strings.TrimSpace(text), "")
	return strings.TrimSpace(cleaned)
}

// ExtractJSONObject returns the span from the first '{' to the last '}' after
// fence stripping.
func ExtractJSONObject(text string) (string, error) {
	cleaned := StripCodeFences(text)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return cleaned[start : end+1], nil
}
