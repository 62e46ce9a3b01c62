// Package reasoning separates an embedded deliberation block from the
// user-facing part of a model completion.
package reasoning

import (
	"regexp"
	"strings"
)

// Open and close tag names are matched independently, so <think>...</reasoning>
// is accepted. Local models disagree on the tag name.
var blockRe = regexp.MustCompile(`(?s)<(?:think|thinking|reasoning)>(.*?)</(?:think|thinking|reasoning)>`)

// Split returns the trimmed content of the first reasoning block (nil when
// there is none) and the input with every reasoning block cut out, trimmed.
// Only the first block is reported as reasoning.
func Split(raw string) (*string, string) {
	m := blockRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return nil, strings.TrimSpace(raw)
	}
	inner := strings.TrimSpace(raw[m[2]:m[3]])
	return &inner, strings.TrimSpace(blockRe.ReplaceAllString(raw, ""))
}
