package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/database"
	"eventhub/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrTicketNotFound is returned when no ticket matches the lookup
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrTicketSoldOut is returned when booking a ticket with no seats left
	ErrTicketSoldOut = errors.New("no seats available")
	// ErrAlreadyBooked is returned when a user books the same ticket twice
	ErrAlreadyBooked = errors.New("ticket already booked")
)

// TicketService handles ticket classes and seat bookings
type TicketService struct {
	collection *mongo.Collection
	events     *EventService
}

// NewTicketService creates a new ticket service
func NewTicketService(db *database.MongoDB, events *EventService) *TicketService {
	return &TicketService{
		collection: db.Collection(database.CollectionTickets),
		events:     events,
	}
}

// Create adds a ticket class to an event. Only the host may create tickets.
func (s *TicketService) Create(ctx context.Context, userID primitive.ObjectID, req models.CreateTicketRequest) (*models.Ticket, error) {
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if err := s.events.RequireHost(ctx, eventID, userID); err != nil {
		return nil, err
	}

	ticketType := req.Type
	if ticketType != models.TicketTypePaid {
		ticketType = models.TicketTypeFree
	}
	price := req.Price
	if ticketType == models.TicketTypeFree {
		price = 0
	}
	if ticketType == models.TicketTypePaid && price <= 0 {
		return nil, fmt.Errorf("paid tickets require a positive price")
	}
	if req.TotalSeats <= 0 {
		return nil, fmt.Errorf("totalSeats must be positive")
	}

	now := time.Now()
	ticket := models.Ticket{
		ID:          primitive.NewObjectID(),
		Event:       eventID,
		Type:        ticketType,
		Price:       price,
		TotalSeats:  req.TotalSeats,
		BookedSeats: 0,
		Attendees:   []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.collection.InsertOne(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := s.events.AddTicket(ctx, eventID, ticket.ID); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// Book reserves one seat on a ticket for the user. The filter guards
// both capacity and duplicate bookings so concurrent requests cannot
// oversell the ticket.
func (s *TicketService) Book(ctx context.Context, userID primitive.ObjectID, ticketHexID string) (*models.BookTicketResponse, error) {
	ticketID, err := primitive.ObjectIDFromHex(ticketHexID)
	if err != nil {
		return nil, ErrTicketNotFound
	}

	filter := bson.M{
		"_id":       ticketID,
		"attendees": bson.M{"$ne": userID},
		"$expr":     bson.M{"$lt": bson.A{"$bookedSeats", "$totalSeats"}},
	}
	update := bson.M{
		"$inc":  bson.M{"bookedSeats": 1},
		"$push": bson.M{"attendees": userID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to book ticket: %w", err)
	}

	if res.MatchedCount == 0 {
		// Distinguish why the guarded update missed
		var ticket models.Ticket
		err := s.collection.FindOne(ctx, bson.M{"_id": ticketID}).Decode(&ticket)
		if err == mongo.ErrNoDocuments {
			return nil, ErrTicketNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up ticket: %w", err)
		}
		for _, attendee := range ticket.Attendees {
			if attendee == userID {
				return nil, ErrAlreadyBooked
			}
		}
		return nil, ErrTicketSoldOut
	}

	return &models.BookTicketResponse{
		Message:   "Ticket booked successfully",
		Reference: uuid.NewString(),
	}, nil
}

// GetByID retrieves a single ticket
func (s *TicketService) GetByID(ctx context.Context, ticketID primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.collection.FindOne(ctx, bson.M{"_id": ticketID}).Decode(&ticket)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

// ListByEvent returns all ticket classes for an event
func (s *TicketService) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Ticket, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"event": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	tickets := make([]models.Ticket, 0)
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}
