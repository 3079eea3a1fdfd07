package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket types
const (
	TicketTypeFree = "free"
	TicketTypePaid = "paid"
)

// Ticket represents an admission class for an event (free or paid)
type Ticket struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Event       primitive.ObjectID   `bson:"event" json:"event"`
	Type        string               `bson:"type" json:"type"`
	Price       float64              `bson:"price" json:"price"`
	TotalSeats  int                  `bson:"totalSeats" json:"total_seats"`
	BookedSeats int                  `bson:"bookedSeats" json:"booked_seats"`
	Attendees   []primitive.ObjectID `bson:"attendees" json:"attendees"`
	CreatedAt   time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updated_at"`
}

// CreateTicketRequest is the request body for creating a ticket class
type CreateTicketRequest struct {
	EventID    string  `json:"eventId"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	TotalSeats int     `json:"totalSeats"`
}

// BookTicketRequest is the request body for booking a seat
type BookTicketRequest struct {
	TicketID string `json:"ticketId"`
}

// BookTicketResponse confirms a booking with a reference code
type BookTicketResponse struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
}
