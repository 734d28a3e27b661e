package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
)

// Recommender computes a growth recommendation for one owner
type Recommender interface {
	Recommend(ctx context.Context, ownerID uuid.UUID, savingsGoalPercent int) (*domain.RecommendationResult, error)
}

// Notifier delivers a recommendation to its owner
type Notifier interface {
	Notify(ctx context.Context, user *domain.User, rec *domain.RecommendationResult) error
}

// RunRecorder receives the outcome counts of every run
type RunRecorder interface {
	RecordDigestRun(sent, failed int, at time.Time)
}

// Report summarises one digest run
type Report struct {
	Sent    int
	Skipped int // Owners whose history is too short for a recommendation
	Failed  int
}

// Service sends every owner with an income their monthly recommendation
type Service struct {
	UserRepo    domain.UserRepository
	Recommender Recommender
	Notifier    Notifier
	SavingsGoal int
	Recorder    RunRecorder
	Now         func() time.Time
	log         logrus.FieldLogger
}

// NewService creates a new digest Service instance.
// recorder and log may be nil.
func NewService(userRepo domain.UserRepository, recommender Recommender, notifier Notifier, savingsGoal int, recorder RunRecorder, log logrus.FieldLogger) *Service {
	return &Service{
		UserRepo:    userRepo,
		Recommender: recommender,
		Notifier:    notifier,
		SavingsGoal: savingsGoal,
		Recorder:    recorder,
		Now:         time.Now,
		log:         logging.OrDiscard(log),
	}
}

// RunOnce sends one round of digests
// Logic:
//  1. List every owner with a monthly income
//  2. For each owner compute the recommendation at the configured savings goal
//  3. Insufficient data -> skip; success -> notify
//
// Per-owner failures are logged and counted, never fatal. Only a failure to
// list owners or a cancelled context aborts the run.
func (s *Service) RunOnce(ctx context.Context) (Report, error) {
	var report Report

	// 1. Owners
	users, err := s.UserRepo.ListWithIncome(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list owners: %w", err)
	}

	s.log.WithField("owners", len(users)).Info("starting digest run")

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		log := s.log.WithField("user_id", user.ID)

		// 2. Recommendation
		rec, err := s.Recommender.Recommend(ctx, user.ID, s.SavingsGoal)
		if err != nil {
			log.WithError(err).Error("failed to compute recommendation")
			report.Failed++
			continue
		}

		// 3. Deliver
		if !rec.Success {
			log.WithField("reason", rec.Message).Debug("skipping digest")
			report.Skipped++
			continue
		}
		if err := s.Notifier.Notify(ctx, user, rec); err != nil {
			log.WithError(err).Error("failed to deliver digest")
			report.Failed++
			continue
		}
		report.Sent++
	}

	if s.Recorder != nil {
		s.Recorder.RecordDigestRun(report.Sent, report.Failed, s.Now())
	}

	s.log.WithFields(logrus.Fields{
		"sent":    report.Sent,
		"skipped": report.Skipped,
		"failed":  report.Failed,
	}).Info("digest run finished")

	return report, nil
}
