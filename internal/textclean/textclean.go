// Package textclean normalizes raw text pulled out of PDF pages into a single
// whitespace-collapsed line.
package textclean

import (
	"strings"
	"unicode"
)

// typographic punctuation kept even though it is neither ASCII nor alphabetic.
var keepPunct = map[rune]bool{
	'—': true, // em dash
	'–': true, // en dash
	'“': true,
	'”': true,
	'‘': true,
	'’': true,
}

// Clean trims every line, drops blank ones, joins the rest with a single space,
// filters out control noise and collapses whitespace runs. Paragraph and page
// boundaries are not preserved. Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	joined := strings.Join(kept, " ")

	filtered := strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return -1
	}, joined)

	return strings.Join(strings.Fields(filtered), " ")
}

func keepRune(r rune) bool {
	switch {
	case r > ' ' && r < unicode.MaxASCII: // printable ASCII, space excluded
		return true
	case unicode.IsSpace(r):
		return true
	case r > unicode.MaxASCII && unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_Alphabetic):
		return true
	default:
		return keepPunct[r]
	}
}
