package analysis

import (
	"sort"
	"strings"
)

// topicHits pairs a topic table row with its keyword hit count
type topicHits struct {
	topic *topic
	hits  int
}

// classifyTopics counts, per topic, how many primary-keyword containment
// checks succeed across all messages. A message containing three keywords
// of one topic contributes three hits, not one. Topics with zero hits are
// dropped; the rest are sorted by hit count descending, with declaration
// order as the tie-break (stable sort).
func classifyTopics(messages []Message) []topicHits {
	counts := make([]int, len(topics))
	for _, m := range messages {
		text := lower(m.Text)
		for i := range topics {
			for _, kw := range topics[i].primary {
				if strings.Contains(text, kw) {
					counts[i]++
				}
			}
		}
	}

	var ranked []topicHits
	for i := range topics {
		if counts[i] > 0 {
			ranked = append(ranked, topicHits{topic: &topics[i], hits: counts[i]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].hits > ranked[j].hits
	})
	return ranked
}

func lower(s string) string {
	return strings.ToLower(s)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
