package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"eventhub/internal/analysis"
	"eventhub/internal/database"
	"eventhub/internal/logging"
	"eventhub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const insightCacheTTL = 10 * time.Minute

// InsightService runs the chat analysis pipeline and manages the
// per-event insight report. Reports are read through Redis when it is
// available and always persisted in MongoDB.
type InsightService struct {
	collection *mongo.Collection
	events     *EventService
	messages   *MessageService
	redis      *RedisService // optional
	metrics    *Metrics
}

// NewInsightService creates a new insight service. redis may be nil.
func NewInsightService(db *database.MongoDB, events *EventService, messages *MessageService, redis *RedisService, metrics *Metrics) *InsightService {
	return &InsightService{
		collection: db.Collection(database.CollectionMessageInsights),
		events:     events,
		messages:   messages,
		redis:      redis,
		metrics:    metrics,
	}
}

// Analyze runs the full analysis for an event on behalf of a user.
// Only the event host may trigger it. The boolean reports whether this
// run created the event's report (first analysis) or replaced it.
func (s *InsightService) Analyze(ctx context.Context, userID, eventID primitive.ObjectID) (*models.InsightReport, bool, error) {
	if err := s.events.RequireHost(ctx, eventID, userID); err != nil {
		return nil, false, err
	}
	return s.run(ctx, eventID, "api", userID.Hex())
}

// Refresh re-runs the analysis for an event without an authorization
// check. Used by the scheduled refresh job.
func (s *InsightService) Refresh(ctx context.Context, eventID primitive.ObjectID) (*models.InsightReport, error) {
	report, _, err := s.run(ctx, eventID, "scheduled", "system")
	return report, err
}

func (s *InsightService) run(ctx context.Context, eventID primitive.ObjectID, trigger, actor string) (*models.InsightReport, bool, error) {
	transcript, err := s.messages.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, false, err
	}

	input := make([]analysis.Message, 0, len(transcript))
	for _, m := range transcript {
		sender := "Unknown"
		if m.SenderInfo != nil {
			sender = m.SenderInfo.Name
		}
		input = append(input, analysis.Message{
			Sender:    sender,
			Text:      m.Message.Message,
			Timestamp: m.Timestamp,
		})
	}

	start := time.Now()
	result := analysis.Analyze(input)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordAnalysisRun(trigger, elapsed.Seconds(), len(result.Insights))
	}

	report := models.InsightReport{
		EventID:     eventID,
		Insights:    result.Insights,
		Summary:     result.Summary,
		LastUpdated: time.Now(),
	}

	// One report per event: replace in place, insert on first run
	opts := options.Replace().SetUpsert(true)
	res, err := s.collection.ReplaceOne(ctx, bson.M{"eventId": eventID},
		bson.M{
			"eventId":     report.EventID,
			"insights":    report.Insights,
			"summary":     report.Summary,
			"lastUpdated": report.LastUpdated,
		}, opts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to store insight report: %w", err)
	}
	created := res.UpsertedCount > 0

	s.cacheReport(ctx, &report)

	logging.WithEvent(eventID.Hex(), actor).Info("analysis run completed",
		"trigger", trigger,
		"messages", len(input),
		"insights", len(result.Insights),
		"created", created,
		"duration", elapsed)

	return &report, created, nil
}

// GetReport returns the stored insight report for an event. When no
// analysis has run yet it returns an empty placeholder report without
// persisting it.
func (s *InsightService) GetReport(ctx context.Context, eventID primitive.ObjectID) (*models.InsightReport, error) {
	if exists, err := s.events.Exists(ctx, eventID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrEventNotFound
	}

	if cached := s.cachedReport(ctx, eventID); cached != nil {
		return cached, nil
	}

	var report models.InsightReport
	err := s.collection.FindOne(ctx, bson.M{"eventId": eventID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return &models.InsightReport{
			EventID:  eventID,
			Insights: []models.Insight{},
			Summary:  analysis.NoAnalysisSummary,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load insight report: %w", err)
	}

	s.cacheReport(ctx, &report)

	return &report, nil
}

// LastUpdated returns when an event's report was last refreshed.
// A zero time means no report exists.
func (s *InsightService) LastUpdated(ctx context.Context, eventID primitive.ObjectID) (time.Time, error) {
	var report models.InsightReport
	err := s.collection.FindOne(ctx, bson.M{"eventId": eventID},
		options.FindOne().SetProjection(bson.M{"lastUpdated": 1})).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to check insight report: %w", err)
	}
	return report.LastUpdated, nil
}

func insightCacheKey(eventID primitive.ObjectID) string {
	return "insights:" + eventID.Hex()
}

func (s *InsightService) cacheReport(ctx context.Context, report *models.InsightReport) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, insightCacheKey(report.EventID), payload, insightCacheTTL); err != nil {
		log.Printf("⚠️  Failed to cache insight report: %v", err)
	}
}

func (s *InsightService) cachedReport(ctx context.Context, eventID primitive.ObjectID) *models.InsightReport {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, insightCacheKey(eventID))
	if err != nil {
		return nil
	}
	var report models.InsightReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil
	}
	return &report
}
