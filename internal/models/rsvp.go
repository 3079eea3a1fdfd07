package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RSVP statuses
const (
	RSVPStatusPending  = "pending"
	RSVPStatusAccepted = "accepted"
	RSVPStatusDeclined = "declined"
)

// RSVP represents a guest invitation and its response state
type RSVP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"eventId" json:"event_id"`
	GuestID   primitive.ObjectID `bson:"guestId" json:"guest_id"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// InviteGuestRequest is the request body for inviting a guest
type InviteGuestRequest struct {
	EventID string `json:"eventId"`
	GuestID string `json:"guestId"`
}

// RespondToInviteRequest is the request body for answering an invite
type RespondToInviteRequest struct {
	EventID string `json:"eventId"`
	Status  string `json:"status"`
}

// RSVPWithGuest is an RSVP with the invited guest populated
type RSVPWithGuest struct {
	RSVP  `bson:",inline"`
	Guest *UserSummary `bson:"guest,omitempty" json:"guest,omitempty"`
}

// RSVPWithEvent is an RSVP with its event populated (guest's invite list)
type RSVPWithEvent struct {
	RSVP  `bson:",inline"`
	Event *Event `bson:"event,omitempty" json:"event,omitempty"`
}
