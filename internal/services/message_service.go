package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/database"
	"eventhub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageService handles the per-event chat transcript
type MessageService struct {
	collection *mongo.Collection
	events     *EventService
	metrics    *Metrics
}

// NewMessageService creates a new message service
func NewMessageService(db *database.MongoDB, events *EventService, metrics *Metrics) *MessageService {
	return &MessageService{
		collection: db.Collection(database.CollectionMessages),
		events:     events,
		metrics:    metrics,
	}
}

// Send stores a chat message on an event's transcript
func (s *MessageService) Send(ctx context.Context, senderID primitive.ObjectID, req models.SendMessageRequest) (*models.Message, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}

	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if exists, err := s.events.Exists(ctx, eventID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrEventNotFound
	}

	message := models.Message{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Sender:    senderID,
		Message:   text,
		Timestamp: time.Now(),
	}

	if _, err := s.collection.InsertOne(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordMessageSent()
	}

	return &message, nil
}

// ListByEvent returns an event's transcript in chronological order with
// senders populated
func (s *MessageService) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.MessageWithSender, error) {
	if exists, err := s.events.Exists(ctx, eventID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrEventNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "eventId", Value: eventID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollectionUsers},
			{Key: "localField", Value: "sender"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "senderInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$senderInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "senderInfo.passwordHash", Value: 0},
			{Key: "senderInfo.role", Value: 0},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]models.MessageWithSender, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	return messages, nil
}

// LatestTimestamp returns the timestamp of an event's newest message.
// A zero time means the transcript is empty.
func (s *MessageService) LatestTimestamp(ctx context.Context, eventID primitive.ObjectID) (time.Time, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	var message models.Message
	err := s.collection.FindOne(ctx, bson.M{"eventId": eventID}, opts).Decode(&message)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to check transcript: %w", err)
	}
	return message.Timestamp, nil
}

// EventIDsWithMessages returns the distinct set of events that have at
// least one chat message. Used by the scheduled insight refresh.
func (s *MessageService) EventIDsWithMessages(ctx context.Context) ([]primitive.ObjectID, error) {
	raw, err := s.collection.Distinct(ctx, "eventId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list chatty events: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
