package analysis

import (
	"fmt"
	"time"

	"eventhub/internal/models"
)

// Canonical summaries for the degenerate cases. The empty-transcript
// summary is produced here; the no-report placeholder is returned by the
// insight service when nothing has been analyzed yet.
const (
	EmptyTranscriptSummary = "No messages to analyze yet."
	NoAnalysisSummary      = "No analysis has been performed yet."
)

// Message is one chat message as seen by the analysis pipeline: an
// immutable snapshot of sender display name, text and timestamp.
type Message struct {
	Sender    string
	Text      string
	Timestamp time.Time
}

// Result is the outcome of one analysis run over a transcript
type Result struct {
	Insights []models.Insight
	Summary  string
}

// Analyze runs the full insight pipeline over a transcript: topic
// classification, per-topic snippet extraction, sentiment scoring and
// summary generation. It is a pure function; two calls over an identical
// transcript produce identical results.
func Analyze(messages []Message) Result {
	if len(messages) == 0 {
		return Result{Insights: []models.Insight{}, Summary: EmptyTranscriptSummary}
	}

	ranked := classifyTopics(messages)

	insights := make([]models.Insight, 0, len(ranked)+1)
	for _, th := range ranked {
		matched := filterByKeywords(messages, th.topic.primary)
		if len(matched) == 0 {
			continue
		}
		insights = append(insights, models.Insight{
			Category:    th.topic.category,
			Title:       th.topic.title,
			Description: th.topic.description,
			Details:     extractSnippets(matched, th.topic.secondary),
			Priority:    th.topic.priority,
		})
	}

	// The sentiment insight is always present for a non-empty transcript
	sent := scoreSentiment(messages)
	insights = append(insights, models.Insight{
		Category:    "General",
		Title:       "Overall conversation mood",
		Description: fmt.Sprintf("The overall tone of the conversation is %s.", sent.Label),
		Details: []models.Snippet{{
			From: "System",
			Text: fmt.Sprintf("Found %d positive and %d negative expressions in the conversation.", sent.Positive, sent.Negative),
		}},
		Priority: models.PriorityLow,
	})

	return Result{
		Insights: insights,
		Summary:  buildSummary(len(messages), ranked, insights),
	}
}

// filterByKeywords returns the messages whose lower-cased text contains
// at least one of the given keywords.
func filterByKeywords(messages []Message, keywords []string) []Message {
	var matched []Message
	for _, m := range messages {
		if containsAny(lower(m.Text), keywords) {
			matched = append(matched, m)
		}
	}
	return matched
}
