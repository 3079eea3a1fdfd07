package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a hosted event
type Event struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time            `bson:"date" json:"date"`
	Time        string               `bson:"time,omitempty" json:"time,omitempty"` // display time, e.g. "18:30"
	Location    string               `bson:"location,omitempty" json:"location,omitempty"`
	Host        primitive.ObjectID   `bson:"host" json:"host"`
	Guests      []primitive.ObjectID `bson:"guests" json:"guests"`
	Tickets     []primitive.ObjectID `bson:"tickets" json:"tickets"`
	CreatedAt   time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updated_at"`
}

// CreateEventRequest is the request body for creating an event
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
}

// UpdateEventRequest is the request body for partial event updates
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Time        *string    `json:"time,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// EventResponse is an event with its host populated for listings
type EventResponse struct {
	Event `bson:",inline"`
	HostInfo *UserSummary `bson:"hostInfo,omitempty" json:"host_info,omitempty"`
}
