package analysis

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func msg(sender, text string) Message {
	return Message{Sender: sender, Text: text, Timestamp: time.Unix(1700000000, 0)}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	result := Analyze(nil)

	if result.Summary != EmptyTranscriptSummary {
		t.Errorf("Summary = %q, want %q", result.Summary, EmptyTranscriptSummary)
	}
	if len(result.Insights) != 0 {
		t.Errorf("Expected no insights, got %d", len(result.Insights))
	}
	if result.Insights == nil {
		t.Error("Insights should be an empty slice, not nil")
	}
}

func TestAnalyzeVegetarianQuestion(t *testing.T) {
	result := Analyze([]Message{
		msg("Dana", "Is there vegetarian food available?"),
	})

	var foodDetails []Message
	foodFound := false
	for _, in := range result.Insights {
		if in.Category != "Food & Drinks" {
			continue
		}
		foodFound = true
		for _, d := range in.Details {
			foodDetails = append(foodDetails, Message{Sender: d.From, Text: d.Text})
		}
	}
	if !foodFound {
		t.Fatal("Expected a Food & Drinks insight")
	}

	matched := false
	for _, d := range foodDetails {
		if strings.Contains(d.Text, "veget") {
			matched = true
			if d.Sender != "Dana" {
				t.Errorf("Snippet attributed to %q, want Dana", d.Sender)
			}
		}
	}
	if !matched {
		t.Errorf("No snippet containing 'veget' in details: %+v", foodDetails)
	}
}

func TestAnalyzeAlwaysAppendsSentimentInsight(t *testing.T) {
	result := Analyze([]Message{
		msg("Ana", "hello everyone"),
	})

	if len(result.Insights) != 1 {
		t.Fatalf("Expected only the sentiment insight, got %d insights", len(result.Insights))
	}
	sent := result.Insights[0]
	if sent.Category != "General" {
		t.Errorf("Category = %q, want General", sent.Category)
	}
	if sent.Priority != "low" {
		t.Errorf("Priority = %q, want low", sent.Priority)
	}
	if len(sent.Details) != 1 || sent.Details[0].From != "System" {
		t.Errorf("Expected one System detail, got %+v", sent.Details)
	}
}

func TestAnalyzeIdempotentOnIdenticalTranscript(t *testing.T) {
	transcript := []Message{
		msg("Ana", "What food should we order? I'm so excited!"),
		msg("Ben", "Is there parking near the venue?"),
		msg("Cat", "When does it start?"),
	}

	first := Analyze(transcript)
	second := Analyze(transcript)

	if !reflect.DeepEqual(first, second) {
		t.Error("Two runs over an identical transcript should produce identical results")
	}
}

func TestAnalyzeSnippetCap(t *testing.T) {
	// Four food messages producing seven distinct secondary-keyword
	// matches; the insight must keep exactly three details.
	transcript := []Message{
		msg("Ana", "Will the food menu have vegetarian and vegan options?"),
		msg("Ben", "I have a gluten allergy, what food is safe for me?"),
		msg("Cat", "Any snack and drink suggestions to eat before?"),
		msg("Dan", "Is dessert part of the meal?"),
	}

	result := Analyze(transcript)

	var details int = -1
	for _, in := range result.Insights {
		if in.Category == "Food & Drinks" {
			details = len(in.Details)
		}
	}
	if details != 3 {
		t.Errorf("Food & Drinks details = %d, want exactly 3", details)
	}
}

func TestAnalyzeSummaryCitesHighPriorityTitles(t *testing.T) {
	result := Analyze([]Message{
		msg("Ana", "What food should we bring to eat?"),
	})

	if !strings.HasPrefix(result.Summary, "Based on the analysis of 1 messages, ") {
		t.Errorf("Unexpected summary prefix: %q", result.Summary)
	}
	if !strings.Contains(result.Summary, "the main topics discussed were: Food & Drinks") {
		t.Errorf("Summary missing topic list: %q", result.Summary)
	}
	if !strings.Contains(result.Summary, "Key points that need attention: Food and drink preferences.") {
		t.Errorf("Summary missing high-priority titles: %q", result.Summary)
	}
}

func TestAnalyzeSummaryWithoutTopics(t *testing.T) {
	result := Analyze([]Message{
		msg("Ana", "hi"),
		msg("Ben", "hello"),
	})

	want := "Based on the analysis of 2 messages, no specific topics of interest were identified."
	if result.Summary != want {
		t.Errorf("Summary = %q, want %q", result.Summary, want)
	}
}
