package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/database"
	"eventhub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyInvited is returned when a guest already has an invite for the event
	ErrAlreadyInvited = errors.New("guest already invited")
	// ErrInviteNotFound is returned when a guest responds without a pending invite
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInvalidRSVPStatus is returned for a response other than accepted/declined
	ErrInvalidRSVPStatus = errors.New("status must be accepted or declined")
)

// RSVPService handles guest invitations and responses
type RSVPService struct {
	collection *mongo.Collection
	events     *EventService
	users      *UserService
}

// NewRSVPService creates a new RSVP service
func NewRSVPService(db *database.MongoDB, events *EventService, users *UserService) *RSVPService {
	return &RSVPService{
		collection: db.Collection(database.CollectionRSVPs),
		events:     events,
		users:      users,
	}
}

// Invite creates a pending invite for a guest. Only the host may invite,
// and the unique eventId+guestId index rejects duplicates.
func (s *RSVPService) Invite(ctx context.Context, hostID primitive.ObjectID, req models.InviteGuestRequest) (*models.RSVP, error) {
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	guestID, err := primitive.ObjectIDFromHex(req.GuestID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.events.RequireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, guestID); err != nil {
		return nil, err
	}

	now := time.Now()
	rsvp := models.RSVP{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		GuestID:   guestID,
		Status:    models.RSVPStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.collection.InsertOne(ctx, rsvp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyInvited
		}
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return &rsvp, nil
}

// Respond records a guest's answer to their invite. Accepting also adds
// the guest to the event's guest list.
func (s *RSVPService) Respond(ctx context.Context, guestID primitive.ObjectID, req models.RespondToInviteRequest) (*models.RSVP, error) {
	if req.Status != models.RSVPStatusAccepted && req.Status != models.RSVPStatusDeclined {
		return nil, ErrInvalidRSVPStatus
	}

	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rsvp models.RSVP
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"eventId": eventID, "guestId": guestID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
		opts).Decode(&rsvp)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update invite: %w", err)
	}

	if req.Status == models.RSVPStatusAccepted {
		if err := s.events.AddGuest(ctx, eventID, guestID); err != nil {
			return nil, err
		}
	}

	return &rsvp, nil
}

// ListByEvent returns all invites for an event with guests populated.
// Only the host may see the full invite list.
func (s *RSVPService) ListByEvent(ctx context.Context, hostID, eventID primitive.ObjectID) ([]models.RSVPWithGuest, error) {
	if err := s.events.RequireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "eventId", Value: eventID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollectionUsers},
			{Key: "localField", Value: "guestId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "guest"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$guest"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "guest.passwordHash", Value: 0},
			{Key: "guest.role", Value: 0},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer cursor.Close(ctx)

	rsvps := make([]models.RSVPWithGuest, 0)
	if err := cursor.All(ctx, &rsvps); err != nil {
		return nil, fmt.Errorf("failed to decode invites: %w", err)
	}
	return rsvps, nil
}

// ListByGuest returns a guest's invites with events populated, newest first
func (s *RSVPService) ListByGuest(ctx context.Context, guestID primitive.ObjectID) ([]models.RSVPWithEvent, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "guestId", Value: guestID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollectionEvents},
			{Key: "localField", Value: "eventId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "event"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$event"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer cursor.Close(ctx)

	rsvps := make([]models.RSVPWithEvent, 0)
	if err := cursor.All(ctx, &rsvps); err != nil {
		return nil, fmt.Errorf("failed to decode invites: %w", err)
	}
	return rsvps, nil
}
