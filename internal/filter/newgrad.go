package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Keyword set for entry-level detection. Substring match over normalized
// text so every adapter classifies the same way regardless of source markup.
var newGradKeywords = []string{
	"new grad",
	"new graduate",
	"entry level",
	"entry-level",
	"junior",
	"associate",
	"early career",
	"university grad",
	"recent graduate",
	"0-2 years",
	"0-1 years",
	"fresh grad",
	"campus",
}

// normalizeText lowercases and strips diacritics so "fresher gÓlang" style
// listings still match plain keywords.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// IsNewGrad reports whether the posting reads as a new-grad/entry-level role.
func IsNewGrad(title, description string) bool {
	text := normalizeText(title)
	if description != "" {
		text += " " + normalizeText(description)
	}
	for _, kw := range newGradKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// WorkModeTags derives work-arrangement tags from free text.
func WorkModeTags(text string) []string {
	lowered := strings.ToLower(text)
	var tags []string
	if strings.Contains(lowered, "intern") {
		tags = append(tags, "internship")
	}
	if strings.Contains(lowered, "remote") {
		tags = append(tags, "remote")
	}
	if strings.Contains(lowered, "hybrid") {
		tags = append(tags, "hybrid")
	}
	return tags
}
