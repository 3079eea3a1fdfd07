package analysis

import (
	"strings"
	"unicode/utf8"

	"eventhub/internal/models"
)

const (
	// snippetContext is the number of characters kept on each side of a
	// keyword match when slicing an excerpt out of a message.
	snippetContext = 20

	// maxSnippets caps the details list of a single insight
	maxSnippets = 3
)

// extractSnippets slices a context window around every secondary-keyword
// match in the given messages, wraps each excerpt in literal "..." markers
// and attributes it to the message's sender. Matching and slicing both
// happen on the case-folded text, so excerpts come out lower-cased; the
// window edges are nudged to rune boundaries to keep them valid UTF-8.
// Byte-identical snippets are collapsed to their first occurrence; at
// most maxSnippets are returned, in encounter order.
func extractSnippets(messages []Message, keywords []string) []models.Snippet {
	snippets := make([]models.Snippet, 0, maxSnippets)
	seen := make(map[string]bool)

	for _, m := range messages {
		text := lower(m.Text)
		for _, kw := range keywords {
			idx := strings.Index(text, kw)
			if idx < 0 {
				continue
			}

			start := idx - snippetContext
			if start < 0 {
				start = 0
			}
			for start > 0 && !utf8.RuneStart(text[start]) {
				start--
			}
			end := idx + len(kw) + snippetContext
			if end > len(text) {
				end = len(text)
			}
			for end < len(text) && !utf8.RuneStart(text[end]) {
				end++
			}

			excerpt := "..." + strings.TrimSpace(text[start:end]) + "..."
			if seen[excerpt] {
				continue
			}
			seen[excerpt] = true

			snippets = append(snippets, models.Snippet{From: m.Sender, Text: excerpt})
			if len(snippets) == maxSnippets {
				return snippets
			}
		}
	}
	return snippets
}
