package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"consultcoach/internal/model"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Cue timing lines: 00:00:05.579 --> 00:00:06.858 (vtt) or 00:00:05,579 --> 00:00:06,858 (srt).
// Trailing cue settings after the end time are allowed.
var (
	vttCueTimingRegex = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}\s+-->\s+\d{2}:\d{2}:\d{2}\.\d{3}`)
	srtCueTimingRegex = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3}\s+-->\s+\d{2}:\d{2}:\d{2},\d{3}`)
)

const vttHeader = "WEBVTT"

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// FormatFromFilename derives the format hint from a file extension.
func FormatFromFilename(name string) (model.TranscriptFormat, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return ParseFormat(ext)
}

// ParseFormat accepts a format hint or a bare extension.
func ParseFormat(hint string) (model.TranscriptFormat, error) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "plain", "txt", "text":
		return model.FormatPlain, nil
	case string(model.FormatVTT), "vtt":
		return model.FormatVTT, nil
	case string(model.FormatSRT), "srt":
		return model.FormatSRT, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, hint)
}

// Normalize decodes an uploaded transcript and returns the clean spoken text
// together with the raw text. Subtitle input loses its header, blank lines,
// numeric block indexes and cue timings; the remaining lines keep their order
// and are joined with single spaces. Plain input is returned verbatim as both.
func Normalize(data []byte, format model.TranscriptFormat) (clean, raw string, err error) {
	var cue *regexp.Regexp
	switch format {
	case model.FormatPlain:
	case model.FormatVTT:
		cue = vttCueTimingRegex
	case model.FormatSRT:
		cue = srtCueTimingRegex
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	raw, err = decodeText(data)
	if err != nil {
		return "", "", err
	}
	if format == model.FormatPlain {
		return raw, raw, nil
	}

	lines := strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' })
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isNumeric(line) || cue.MatchString(line) {
			continue
		}
		if format == model.FormatVTT && strings.HasPrefix(line, vttHeader) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " "), raw, nil
}

// NewTranscript normalizes data into a transcript record.
func NewTranscript(filename string, data []byte, format model.TranscriptFormat) (*model.Transcript, error) {
	clean, raw, err := Normalize(data, format)
	if err != nil {
		return nil, err
	}
	return &model.Transcript{
		Filename: filename,
		Format:   format,
		Raw:      raw,
		Clean:    clean,
	}, nil
}

// decodeText accepts UTF-8 (optionally with BOM) and BOM-marked UTF-16.
func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		out, _, err := transform.Bytes(xunicode.BOMOverride(xunicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		data = out
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: malformed UTF-8", ErrDecode)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content", ErrDecode)
	}
	return string(data), nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
