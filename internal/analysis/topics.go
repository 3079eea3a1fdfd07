package analysis

import "eventhub/internal/models"

// topic is one row of the fixed classification table. Primary keywords
// drive classification and message filtering; secondary keywords drive
// snippet extraction. Matching is plain substring containment on the
// lower-cased text, so stems like "veget" catch both "vegetarian" and
// "vegetables".
type topic struct {
	id          string
	category    string
	title       string
	description string
	priority    string
	primary     []string
	secondary   []string
}

// topics is static configuration, declared once and never mutated.
// Declaration order is the tie-break order for equal hit counts.
var topics = []topic{
	{
		id:          "food",
		category:    "Food & Drinks",
		title:       "Food and drink preferences",
		description: "Guests are discussing food and drink arrangements. Check the highlighted messages for dietary requests and menu ideas.",
		priority:    models.PriorityHigh,
		primary:     []string{"food", "eat", "drink", "menu", "snack", "meal", "veget", "cater"},
		secondary:   []string{"vegetarian", "vegan", "allerg", "gluten", "menu", "drink", "snack", "dessert"},
	},
	{
		id:          "timing",
		category:    "Timing",
		title:       "Schedule and timing questions",
		description: "Guests have questions about when things start and end. Consider posting a clear schedule.",
		priority:    models.PriorityHigh,
		primary:     []string{"time", "when", "schedule", "start", "late", "early", "hour"},
		secondary:   []string{"what time", "start", "end time", "late", "early", "schedule", "delay", "morning", "evening"},
	},
	{
		id:          "activities",
		category:    "Activities",
		title:       "Activity and entertainment ideas",
		description: "Guests are talking about games, music and entertainment for the event.",
		priority:    models.PriorityMedium,
		primary:     []string{"activit", "game", "music", "danc", "play", "entertain", "fun"},
		secondary:   []string{"game", "music", "danc", "playlist", "band", "dj", "karaoke"},
	},
	{
		id:          "logistics",
		category:    "Logistics",
		title:       "Venue and logistics concerns",
		description: "Guests are asking about the venue, directions and parking. Sharing arrival details may help.",
		priority:    models.PriorityHigh,
		primary:     []string{"parking", "direction", "address", "venue", "transport", "arrive", "map", "locat"},
		secondary:   []string{"parking", "park", "direction", "address", "uber", "bus", "train", "map"},
	},
	{
		id:          "attendees",
		category:    "Attendees",
		title:       "Guest list chatter",
		description: "Guests are discussing who is coming and whether they can bring others.",
		priority:    models.PriorityMedium,
		primary:     []string{"who is", "coming", "going", "attend", "guest", "invit", "bring", "people"},
		secondary:   []string{"coming", "going", "bring", "plus one", "guest", "invite", "rsvp"},
	},
}

// positivePhrases and negativePhrases drive the coarse sentiment score.
// Fixed 10-item lists, substring-matched like the topic keywords.
var positivePhrases = []string{
	"excited", "can't wait", "cant wait", "love", "great",
	"awesome", "amazing", "looking forward", "happy", "perfect",
}

var negativePhrases = []string{
	"worried", "concern", "problem", "issue", "unfortunately",
	"disappointed", "sad", "annoy", "confus", "frustrat",
}
