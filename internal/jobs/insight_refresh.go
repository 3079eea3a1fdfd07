package jobs

import (
	"context"
	"log"
	"time"

	"eventhub/internal/services"

	"github.com/google/uuid"
)

const refreshLockKey = "jobs:insight-refresh"

// InsightRefreshJob re-runs the chat analysis for events whose transcript
// has grown since their report was last updated. Events that were never
// analyzed are left alone; the host decides when the first run happens.
type InsightRefreshJob struct {
	messages *services.MessageService
	insights *services.InsightService
	redis    *services.RedisService // optional, for multi-instance locking
}

// NewInsightRefreshJob creates the scheduled insight refresh job
func NewInsightRefreshJob(messages *services.MessageService, insights *services.InsightService, redis *services.RedisService) *InsightRefreshJob {
	return &InsightRefreshJob{
		messages: messages,
		insights: insights,
		redis:    redis,
	}
}

// Name implements Job
func (j *InsightRefreshJob) Name() string {
	return "insight-refresh"
}

// Run implements Job
func (j *InsightRefreshJob) Run(ctx context.Context) error {
	release, acquired, err := j.acquireLock(ctx)
	if err != nil {
		return err
	}
	if !acquired {
		log.Println("⏭️  [INSIGHT-REFRESH] Another instance holds the lock, skipping")
		return nil
	}
	defer release()

	eventIDs, err := j.messages.EventIDsWithMessages(ctx)
	if err != nil {
		return err
	}

	refreshed := 0
	for _, eventID := range eventIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastAnalyzed, err := j.insights.LastUpdated(ctx, eventID)
		if err != nil {
			log.Printf("⚠️  [INSIGHT-REFRESH] Skipping event %s: %v", eventID.Hex(), err)
			continue
		}
		if lastAnalyzed.IsZero() {
			// Never analyzed
			continue
		}

		latestMessage, err := j.messages.LatestTimestamp(ctx, eventID)
		if err != nil {
			log.Printf("⚠️  [INSIGHT-REFRESH] Skipping event %s: %v", eventID.Hex(), err)
			continue
		}
		if !latestMessage.After(lastAnalyzed) {
			continue
		}

		if _, err := j.insights.Refresh(ctx, eventID); err != nil {
			log.Printf("⚠️  [INSIGHT-REFRESH] Failed to refresh event %s: %v", eventID.Hex(), err)
			continue
		}
		refreshed++
	}

	log.Printf("✅ [INSIGHT-REFRESH] Refreshed %d of %d events with messages", refreshed, len(eventIDs))
	return nil
}

// acquireLock takes the cross-instance lock when Redis is configured.
// Single-instance deployments run without one.
func (j *InsightRefreshJob) acquireLock(ctx context.Context) (release func(), acquired bool, err error) {
	if j.redis == nil {
		return func() {}, true, nil
	}

	lockValue := uuid.NewString()
	ok, err := j.redis.AcquireLock(ctx, refreshLockKey, lockValue, 15*time.Minute)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	return func() {
		if _, err := j.redis.ReleaseLock(context.Background(), refreshLockKey, lockValue); err != nil {
			log.Printf("⚠️  [INSIGHT-REFRESH] Failed to release lock: %v", err)
		}
	}, true, nil
}
