package jobs

import (
	"context"
	"testing"
)

type noopJob struct {
	name string
}

func (j *noopJob) Name() string                  { return j.name }
func (j *noopJob) Run(ctx context.Context) error { return nil }

func TestSchedulerRegisterValidCron(t *testing.T) {
	s, err := NewScheduler()
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}
	defer s.Stop()

	if err := s.Register("0 3 * * *", &noopJob{name: "nightly"}); err != nil {
		t.Errorf("Register() error = %v, want nil", err)
	}
}

func TestSchedulerRegisterInvalidCron(t *testing.T) {
	s, err := NewScheduler()
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}
	defer s.Stop()

	if err := s.Register("not a cron", &noopJob{name: "broken"}); err == nil {
		t.Error("Register() should reject an invalid cron expression")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s, err := NewScheduler()
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}

	if err := s.Register("*/5 * * * *", &noopJob{name: "periodic"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	s.Start()
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v, want nil", err)
	}
}
