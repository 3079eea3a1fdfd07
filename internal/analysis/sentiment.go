package analysis

import "strings"

// Sentiment labels, coarsest first
const (
	SentimentVeryExcited       = "very excited"
	SentimentGenerallyPositive = "generally positive"
	SentimentConcerned         = "concerned"
	SentimentSomewhatHesitant  = "somewhat hesitant"
	SentimentNeutral           = "neutral"
)

// sentiment is the outcome of scoring a full transcript
type sentiment struct {
	Label    string
	Positive int
	Negative int
}

// scoreSentiment counts positive and negative phrase occurrences across
// the whole transcript (one hit per phrase per message) and maps the
// ratio to a qualitative label. Rules are evaluated in order; the first
// match wins, and a tie (including the empty 0/0 case) is neutral.
func scoreSentiment(messages []Message) sentiment {
	var pos, neg int
	for _, m := range messages {
		text := lower(m.Text)
		for _, phrase := range positivePhrases {
			if strings.Contains(text, phrase) {
				pos++
			}
		}
		for _, phrase := range negativePhrases {
			if strings.Contains(text, phrase) {
				neg++
			}
		}
	}

	var label string
	switch {
	case pos > 2*neg:
		label = SentimentVeryExcited
	case pos > neg:
		label = SentimentGenerallyPositive
	case neg > 2*pos:
		label = SentimentConcerned
	case neg > pos:
		label = SentimentSomewhatHesitant
	default:
		label = SentimentNeutral
	}

	return sentiment{Label: label, Positive: pos, Negative: neg}
}
