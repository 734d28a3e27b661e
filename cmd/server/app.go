package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/adapter/email"
	"github.com/simaogato/spendcast-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/spendcast-backend/internal/auth"
	"github.com/simaogato/spendcast-backend/internal/config"
	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
	"github.com/simaogato/spendcast-backend/internal/metrics"
	"github.com/simaogato/spendcast-backend/internal/usecase/digest"
	"github.com/simaogato/spendcast-backend/internal/usecase/expense"
	"github.com/simaogato/spendcast-backend/internal/usecase/forecast"
	"github.com/simaogato/spendcast-backend/internal/usecase/profile"
	"github.com/simaogato/spendcast-backend/internal/usecase/recommendation"
	"github.com/simaogato/spendcast-backend/internal/usecase/seeder"
	"github.com/simaogato/spendcast-backend/internal/usecase/trend"
)

const (
	dbConnectAttempts = 5
	dbConnectBackoff  = 2 * time.Second
)

// app holds the wired dependencies shared by every subcommand
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	db      *postgres.DB
	metrics *metrics.Registry
	tokens  *auth.TokenIssuer

	userRepo    domain.UserRepository
	expenseRepo domain.ExpenseRepository

	expenses        *expense.ExpenseService
	profiles        *profile.Service
	forecasts       *forecast.Service
	recommendations *recommendation.Service
	trends          *trend.Service
}

// newApp loads configuration, connects to Postgres and builds the services
func newApp(ctx context.Context) (*app, error) {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logging.New(cfg.LogLevel)

	// 2. Database
	db, err := connectDB(ctx, cfg.DBConnString(), log)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// 3. Repositories (Postgres)
	userRepo := postgres.NewUserRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)

	// 4. Services (Use Cases)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	forecasts := forecast.NewService(expenseRepo, log)

	return &app{
		cfg:             cfg,
		log:             log,
		db:              db,
		metrics:         metrics.NewRegistry(),
		tokens:          tokens,
		userRepo:        userRepo,
		expenseRepo:     expenseRepo,
		expenses:        expense.NewExpenseService(expenseRepo, log),
		profiles:        profile.NewService(userRepo, tokens, log),
		forecasts:       forecasts,
		recommendations: recommendation.NewService(userRepo, forecasts, log),
		trends:          trend.NewService(expenseRepo, log),
	}, nil
}

// connectDB retries while Postgres is still starting up
func connectDB(ctx context.Context, connStr string, log logrus.FieldLogger) (*postgres.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err := postgres.NewDB(connStr)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.WithError(err).WithField("attempt", attempt).Warn("database not ready")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dbConnectBackoff):
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", dbConnectAttempts, lastErr)
}

func (a *app) seeder() *seeder.DemoSeeder {
	return seeder.NewDemoSeeder(a.userRepo, a.expenseRepo, a.log)
}

func (a *app) digest() *digest.Service {
	sender := email.NewSender(email.Config{
		Host:     a.cfg.SMTP.Host,
		Port:     a.cfg.SMTP.Port,
		Username: a.cfg.SMTP.Username,
		Password: a.cfg.SMTP.Password,
		From:     a.cfg.SMTP.From,
	}, a.log)
	return digest.NewService(a.userRepo, a.recommendations, sender, a.cfg.Digest.SavingsGoalPct, a.metrics, a.log)
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close database")
	}
}
