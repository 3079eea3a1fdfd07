package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a unit of scheduled background work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler wraps gocron and runs registered jobs on cron expressions
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler that evaluates cron expressions in UTC
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Register schedules a job on a cron expression
func (s *Scheduler) Register(cronExpr string, job Job) error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			start := time.Now()
			log.Printf("▶️  [SCHEDULER] Running job: %s", job.Name())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			if err := job.Run(ctx); err != nil {
				log.Printf("❌ [SCHEDULER] Job '%s' failed: %v", job.Name(), err)
				return
			}
			log.Printf("✅ [SCHEDULER] Job '%s' completed in %v", job.Name(), time.Since(start))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	log.Printf("⏰ [SCHEDULER] Registered job '%s' with schedule %q", job.Name(), cronExpr)
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.scheduler.Start()
	log.Println("🚀 [SCHEDULER] Job scheduler started")
}

// Stop shuts the scheduler down, waiting for running jobs
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	log.Println("🛑 [SCHEDULER] Job scheduler stopped")
	return nil
}
