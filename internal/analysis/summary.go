package analysis

import (
	"fmt"
	"strings"

	"eventhub/internal/models"
)

// buildSummary composes the one-paragraph report summary: message count,
// up to three top topics, and the titles of every high-priority insight.
// Duplicate titles are not deduplicated and there is no length cap.
func buildSummary(messageCount int, ranked []topicHits, insights []models.Insight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the analysis of %d messages, ", messageCount)

	if len(ranked) == 0 {
		b.WriteString("no specific topics of interest were identified.")
	} else {
		top := ranked
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, len(top))
		for i, th := range top {
			names[i] = th.topic.category
		}
		fmt.Fprintf(&b, "the main topics discussed were: %s.", strings.Join(names, ", "))
	}

	var highTitles []string
	for _, in := range insights {
		if in.Priority == models.PriorityHigh {
			highTitles = append(highTitles, in.Title)
		}
	}
	if len(highTitles) > 0 {
		fmt.Fprintf(&b, " Key points that need attention: %s.", strings.Join(highTitles, ", "))
	}

	return b.String()
}
