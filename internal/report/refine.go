package report

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keep letters, digits, whitespace and common punctuation; drop the
	// rest (ligature artifacts, control runes, stray glyphs). Unicode
	// classes rather than \w, which is ASCII-only and would strip
	// accented letters.
	artifactRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,;:!?()'"@#$%&*+=<>\[\]{}|\\/]`)
)

// RefineText cleans one extracted paragraph for presentation: collapse
// whitespace, strip PDF artifacts, cap at 500 chars. Fragments that end
// up shorter than 20 chars are discarded entirely.
func RefineText(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = artifactRe.ReplaceAllString(text, "")

	if r := []rune(text); len(r) > 500 {
		text = string(r[:500]) + "..."
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 20 {
		return ""
	}
	return strings.TrimSpace(text)
}
