package analysis

import (
	"fmt"
	"testing"
)

func TestScoreSentimentLabels(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		label string
		pos   int
		neg   int
	}{
		{
			name:  "very excited",
			texts: []string{"so excited!", "really excited for this", "excited to come"},
			label: SentimentVeryExcited,
			pos:   3,
			neg:   0,
		},
		{
			name:  "generally positive",
			texts: []string{"this is great", "sounds awesome", "looking forward to it", "a bit worried about rain", "slight problem with my car"},
			label: SentimentGenerallyPositive,
			pos:   3,
			neg:   2,
		},
		{
			name:  "concerned",
			texts: []string{"worried about the weather", "there is a problem", "big issue with the date"},
			label: SentimentConcerned,
			pos:   0,
			neg:   3,
		},
		{
			name:  "somewhat hesitant",
			texts: []string{"love the idea", "love it", "worried though", "another problem", "an issue too"},
			label: SentimentSomewhatHesitant,
			pos:   2,
			neg:   3,
		},
		{
			name:  "neutral on empty",
			texts: []string{"see you there"},
			label: SentimentNeutral,
			pos:   0,
			neg:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var messages []Message
			for _, text := range tt.texts {
				messages = append(messages, msg("Ana", text))
			}

			got := scoreSentiment(messages)

			if got.Label != tt.label {
				t.Errorf("Label = %q, want %q", got.Label, tt.label)
			}
			if got.Positive != tt.pos || got.Negative != tt.neg {
				t.Errorf("Counts = %d/%d, want %d/%d", got.Positive, got.Negative, tt.pos, tt.neg)
			}
		})
	}
}

func TestScoreSentimentDetailText(t *testing.T) {
	transcript := []Message{
		msg("Ana", "so excited"),
		msg("Ben", "excited too"),
		msg("Cat", "very excited indeed"),
	}

	result := Analyze(transcript)

	sent := result.Insights[len(result.Insights)-1]
	want := "Found 3 positive and 0 negative expressions in the conversation."
	if sent.Details[0].Text != want {
		t.Errorf("Detail = %q, want %q", sent.Details[0].Text, want)
	}
	if sent.Description != fmt.Sprintf("The overall tone of the conversation is %s.", SentimentVeryExcited) {
		t.Errorf("Unexpected description: %q", sent.Description)
	}
}

func TestScoreSentimentMultiplePhrasesInOneMessage(t *testing.T) {
	got := scoreSentiment([]Message{
		msg("Ana", "this is great and awesome and amazing"),
	})

	if got.Positive != 3 {
		t.Errorf("Positive = %d, want 3", got.Positive)
	}
}
