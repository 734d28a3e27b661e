package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/logging"
)

// runTimeout bounds a single scheduled run
const runTimeout = 10 * time.Minute

// Runner is a single digest round
type Runner interface {
	RunOnce(ctx context.Context) (Report, error)
}

// Scheduler triggers the digest on a standard five-field cron schedule
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	log    logrus.FieldLogger
}

// NewScheduler creates a Scheduler for spec (e.g. "0 8 1 * *").
// log may be nil.
func NewScheduler(spec string, runner Runner, log logrus.FieldLogger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner: runner,
		log:    logging.OrDiscard(log),
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running the schedule in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("next_run", s.Next()).Info("digest scheduler started")
}

// Stop halts the schedule and waits for a running digest to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("digest still running at shutdown")
	}
}

// Next returns the next scheduled run time
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.runner.RunOnce(ctx); err != nil {
		s.log.WithError(err).Error("scheduled digest run failed")
	}
}
