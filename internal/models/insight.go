package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Insight priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Snippet is a short attributed excerpt of a chat message used as
// supporting evidence for an insight.
type Snippet struct {
	From string `bson:"from" json:"from"`
	Text string `bson:"text" json:"text"`
}

// Insight is one structured finding about an event's chat content
type Insight struct {
	Category    string    `bson:"category" json:"category"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Details     []Snippet `bson:"details" json:"details"`
	Priority    string    `bson:"priority" json:"priority"`
}

// InsightReport is the persisted per-event analysis result. At most one
// report exists per event; re-analysis overwrites insights, summary and
// lastUpdated in place.
type InsightReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID     primitive.ObjectID `bson:"eventId" json:"event_id"`
	Insights    []Insight          `bson:"insights" json:"insights"`
	Summary     string             `bson:"summary" json:"summary"`
	LastUpdated time.Time          `bson:"lastUpdated" json:"last_updated"`
}
