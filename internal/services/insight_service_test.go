package services

import (
	"context"
	"os"
	"testing"
	"time"

	"eventhub/internal/analysis"
	"eventhub/internal/database"
	"eventhub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newInsightTestEnv connects to the MongoDB instance named by
// EVENTHUB_TEST_MONGO_URI and wires the real service stack against it.
// Tests using it are skipped when the variable is unset.
func newInsightTestEnv(t *testing.T) (context.Context, *database.MongoDB, *EventService, *MessageService, *InsightService) {
	t.Helper()

	uri := os.Getenv("EVENTHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("EVENTHUB_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	db, err := database.NewMongoDB(uri)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })

	if err := db.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	events := NewEventService(db)
	messages := NewMessageService(db, events, nil)
	insights := NewInsightService(db, events, messages, nil, nil)

	return ctx, db, events, messages, insights
}

func newTestEvent(t *testing.T, ctx context.Context, db *database.MongoDB, events *EventService) (*models.Event, primitive.ObjectID) {
	t.Helper()

	hostID := primitive.NewObjectID()
	event, err := events.Create(ctx, hostID, models.CreateEventRequest{
		Title: "Analysis fixture",
		Date:  time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	t.Cleanup(func() {
		cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db.Collection(database.CollectionEvents).DeleteOne(cctx, bson.M{"_id": event.ID})
		db.Collection(database.CollectionMessages).DeleteMany(cctx, bson.M{"eventId": event.ID})
		db.Collection(database.CollectionMessageInsights).DeleteMany(cctx, bson.M{"eventId": event.ID})
	})

	return event, hostID
}

func TestAnalyzePersistsPlaceholderForEmptyTranscript(t *testing.T) {
	ctx, db, events, _, insights := newInsightTestEnv(t)
	event, hostID := newTestEvent(t, ctx, db, events)

	report, created, err := insights.Analyze(ctx, hostID, event.ID)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !created {
		t.Error("First analysis should report a created document")
	}
	if report.Summary != analysis.EmptyTranscriptSummary {
		t.Errorf("Summary = %q, want %q", report.Summary, analysis.EmptyTranscriptSummary)
	}

	// The placeholder report must actually be in the collection, not
	// just synthesized in memory.
	var stored models.InsightReport
	err = db.Collection(database.CollectionMessageInsights).
		FindOne(ctx, bson.M{"eventId": event.ID}).Decode(&stored)
	if err != nil {
		t.Fatalf("Stored report not found: %v", err)
	}
	if stored.Summary != "No messages to analyze yet." {
		t.Errorf("Stored summary = %q, want the empty-transcript placeholder", stored.Summary)
	}
	if len(stored.Insights) != 0 {
		t.Errorf("Stored insights = %d, want 0", len(stored.Insights))
	}
}

func TestAnalyzeKeepsOneReportPerEvent(t *testing.T) {
	ctx, db, events, messages, insights := newInsightTestEnv(t)
	event, hostID := newTestEvent(t, ctx, db, events)

	if _, created, err := insights.Analyze(ctx, hostID, event.ID); err != nil {
		t.Fatalf("First analysis failed: %v", err)
	} else if !created {
		t.Error("First analysis should report a created document")
	}

	if _, err := messages.Send(ctx, hostID, models.SendMessageRequest{
		EventID: event.ID.Hex(),
		Message: "What food should we order?",
	}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	report, created, err := insights.Analyze(ctx, hostID, event.ID)
	if err != nil {
		t.Fatalf("Second analysis failed: %v", err)
	}
	if created {
		t.Error("Re-analysis should replace the existing document, not create one")
	}
	if report.Summary == analysis.EmptyTranscriptSummary {
		t.Error("Re-analysis should overwrite the placeholder summary")
	}

	count, err := db.Collection(database.CollectionMessageInsights).
		CountDocuments(ctx, bson.M{"eventId": event.ID})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Reports for event = %d, want 1", count)
	}
}
