package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/database"
	"eventhub/internal/models"

	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrEventNotFound is returned when no event matches the lookup
	ErrEventNotFound = errors.New("event not found")
	// ErrNotEventHost is returned when a mutation is attempted by a non-host
	ErrNotEventHost = errors.New("only the event host may perform this action")
)

// EventService handles event CRUD with MongoDB.
// Host lookups are cached in-process since every message send and every
// analysis run checks them.
type EventService struct {
	collection *mongo.Collection
	users      *mongo.Collection
	hostCache  *gocache.Cache
}

// NewEventService creates a new event service
func NewEventService(db *database.MongoDB) *EventService {
	return &EventService{
		collection: db.Collection(database.CollectionEvents),
		users:      db.Collection(database.CollectionUsers),
		hostCache:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Create inserts a new event hosted by hostID
func (s *EventService) Create(ctx context.Context, hostID primitive.ObjectID, req models.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}

	now := time.Now()
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Host:        hostID,
		Guests:      []primitive.ObjectID{},
		Tickets:     []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.collection.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &event, nil
}

// GetByID retrieves a single event
func (s *EventService) GetByID(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := s.collection.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// GetWithHost retrieves an event with its host populated
func (s *EventService) GetWithHost(ctx context.Context, eventID primitive.ObjectID) (*models.EventResponse, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := models.EventResponse{Event: *event}

	var host models.UserSummary
	err = s.users.FindOne(ctx, bson.M{"_id": event.Host},
		options.FindOne().SetProjection(bson.M{"name": 1, "email": 1})).Decode(&host)
	if err == nil {
		resp.HostInfo = &host
	}

	return &resp, nil
}

// List returns all events sorted by date ascending, hosts populated
func (s *EventService) List(ctx context.Context) ([]models.EventResponse, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollectionUsers},
			{Key: "localField", Value: "host"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "hostInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$hostInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "hostInfo.passwordHash", Value: 0},
			{Key: "hostInfo.role", Value: 0},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]models.EventResponse, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// ListByHost returns events hosted by one user, date ascending
func (s *EventService) ListByHost(ctx context.Context, hostID primitive.ObjectID) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"host": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]models.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// Update applies a partial update. Only the host may update an event.
func (s *EventService) Update(ctx context.Context, eventID, userID primitive.ObjectID, req models.UpdateEventRequest) (*models.Event, error) {
	if err := s.RequireHost(ctx, eventID, userID); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Time != nil {
		set["time"] = *req.Time
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event models.Event
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": eventID}, bson.M{"$set": set}, opts).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &event, nil
}

// Delete removes an event. Only the host may delete it.
func (s *EventService) Delete(ctx context.Context, eventID, userID primitive.ObjectID) error {
	if err := s.RequireHost(ctx, eventID, userID); err != nil {
		return err
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": eventID})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrEventNotFound
	}

	s.hostCache.Delete(eventID.Hex())
	return nil
}

// AddGuest records a guest on the event's guest list (idempotent)
func (s *EventService) AddGuest(ctx context.Context, eventID, guestID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$addToSet": bson.M{"guests": guestID}})
	if err != nil {
		return fmt.Errorf("failed to add guest: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// AddTicket records a ticket reference on the event (idempotent)
func (s *EventService) AddTicket(ctx context.Context, eventID, ticketID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$addToSet": bson.M{"tickets": ticketID}})
	if err != nil {
		return fmt.Errorf("failed to add ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// HostOf returns the host's user ID for an event, via the in-process cache
func (s *EventService) HostOf(ctx context.Context, eventID primitive.ObjectID) (primitive.ObjectID, error) {
	key := eventID.Hex()
	if cached, found := s.hostCache.Get(key); found {
		return cached.(primitive.ObjectID), nil
	}

	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.hostCache.Set(key, event.Host, gocache.DefaultExpiration)
	return event.Host, nil
}

// RequireHost verifies that userID is the host of eventID
func (s *EventService) RequireHost(ctx context.Context, eventID, userID primitive.ObjectID) error {
	host, err := s.HostOf(ctx, eventID)
	if err != nil {
		return err
	}
	if host != userID {
		return ErrNotEventHost
	}
	return nil
}

// Exists reports whether an event exists
func (s *EventService) Exists(ctx context.Context, eventID primitive.ObjectID) (bool, error) {
	_, err := s.HostOf(ctx, eventID)
	if err == ErrEventNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
