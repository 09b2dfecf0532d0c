package segment

import (
	"regexp"
	"strings"
)

var thinkRe = regexp.MustCompile(`(?is)<think>(.*?)</think>`)

// ExtractThink collects all paired reasoning spans from text and returns
// their inner contents joined by newlines, in order of appearance. The
// second return is false when no span is found.
//
// Pairing is first-open to first-close: identical tags nested inside a span
// stay literal in the extracted content, and an orphaned close tag after it
// stays literal in the text. Reasoning extraction is deliberately
// independent of tool-call segmentation.
func ExtractThink(text string) (string, bool) {
	matches := thinkRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, strings.TrimSpace(m[1]))
	}
	return strings.Join(parts, "\n"), true
}

// StripThink returns text with all paired reasoning spans removed, using
// the same pairing rules as ExtractThink. Callers segmenting consolidated
// dialect messages strip reasoning first; the segmenter does not recognize
// it twice.
func StripThink(text string) string {
	return thinkRe.ReplaceAllString(text, "")
}
