package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message represents one chat message in an event's transcript
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"eventId" json:"event_id"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// MessageWithSender is a message with the sender populated (name+email)
type MessageWithSender struct {
	Message    `bson:",inline"`
	SenderInfo *UserSummary `bson:"senderInfo,omitempty" json:"sender_info,omitempty"`
}

// SendMessageRequest is the request body for posting a chat message
type SendMessageRequest struct {
	EventID string `json:"eventId"`
	Message string `json:"message"`
}
