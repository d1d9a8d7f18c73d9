package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fenced json", "```json\n{\"summary\": \"ok\"}\n```", `{"summary": "ok"}`},
		{"uppercase tag", "```JSON\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding prose", "Here is the analysis:\n{\"a\": {\"b\": 2}}\nHope this helps!", `{"a": {"b": 2}}`},
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"greedy to last brace", `{"a": 1} and {"b": 2}`, `{"a": 1} and {"b": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	for _, input := range []string{"", "I cannot help with that.", "} reversed {", "only { open"} {
		_, err := ExtractJSONObject(input)
		assert.ErrorIs(t, err, ErrNoJSONObject, input)
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, "text", StripCodeFences("```json text ```"))
	assert.Equal(t, "", StripCodeFences("   "))
}
