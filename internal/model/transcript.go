package model

// TranscriptFormat identifies how an uploaded transcript is encoded
type TranscriptFormat string

const (
	FormatPlain TranscriptFormat = "plain"
	FormatVTT   TranscriptFormat = "subtitle-vtt"
	FormatSRT   TranscriptFormat = "subtitle-srt"
)

// Transcript is one normalized upload. Raw keeps cue markers and timestamps for the model;
// Clean is single-spaced spoken text used for metrics.
type Transcript struct {
	Filename string           `json:"filename"`
	Format   TranscriptFormat `json:"format"`
	Raw      string           `json:"raw"`
	Clean    string           `json:"clean"`
}
