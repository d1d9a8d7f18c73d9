package render

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Placeholder replaces runes the core PDF fonts cannot draw
const Placeholder = '?'

var typographicReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
	" ", " ",
)

// Sanitize maps typographic quotes and dashes to ASCII and replaces any rune
// outside Windows-1252 with Placeholder. The result is still UTF-8.
func Sanitize(s string) string {
	s = typographicReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return Placeholder
		}
		return r
	}, s)
}

// encodeCP1252 converts sanitized text to the single-byte encoding of the core fonts.
func encodeCP1252(s string) string {
	out, err := charmap.Windows1252.NewEncoder().String(Sanitize(s))
	if err != nil {
		return strings.Map(func(r rune) rune {
			if r > 0x7F {
				return Placeholder
			}
			return r
		}, s)
	}
	return out
}
