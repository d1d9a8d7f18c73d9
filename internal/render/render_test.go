package render

import (
	"bytes"
	"strings"
	"testing"

	"consultcoach/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"curly quotes", "“She’s lovely”", `"She's lovely"`},
		{"dashes", "trial – then — book", "trial - then - book"},
		{"latin accents kept", "Café naïve", "Café naïve"},
		{"emoji replaced", "so pretty \U0001F60D", "so pretty ?"},
		{"cjk replaced", "花嫁", "??"},
		{"newlines kept", "a\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestEncodeCP1252(t *testing.T) {
	assert.Equal(t, "Caf\xe9", encodeCP1252("Café"))
	assert.Equal(t, "ok ?", encodeCP1252("ok \U0001F60D"))
}

func sampleReport(bullets int) model.Report {
	var lines []string
	for i := 0; i < bullets; i++ {
		lines = append(lines, "- Confirm the trial date and the deposit before ending the consultation.")
	}
	return model.Report{Sections: []model.ReportSection{
		{Title: model.SectionExecutiveSummary, Body: "A “warm” consult – pricing left open."},
		{Title: model.SectionKeyMetrics, Body: "Sentiment Score: 72/100\nWord Count: 1400\nEstimated Duration: 10 mins"},
		{Title: model.SectionWentWell, Body: "- Rapport"},
		{Title: model.SectionImprovements, Body: strings.Join(lines, "\n")},
		{Title: model.SectionCoachingTips, Body: ""},
	}}
}

func TestPDFRenderer_Render(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleReport(1))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestPDFRenderer_LongReportPaginates(t *testing.T) {
	short, err := NewPDFRenderer().Render(sampleReport(1))
	require.NoError(t, err)
	long, err := NewPDFRenderer().Render(sampleReport(200))
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(short, []byte("/Type /Page\n")))
	assert.Greater(t, bytes.Count(long, []byte("/Type /Page\n")), 1)
}

func TestPDFRenderer_EmptyReport(t *testing.T) {
	out, err := NewPDFRenderer().Render(model.Report{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
