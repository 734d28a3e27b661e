package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
	"github.com/simaogato/spendcast-backend/internal/metrics"
	"github.com/simaogato/spendcast-backend/internal/usecase/expense"
	"github.com/simaogato/spendcast-backend/internal/usecase/profile"
)

// ProfileService is the account surface used by the /user routes
type ProfileService interface {
	Signup(ctx context.Context, input profile.SignupInput) (*profile.Session, error)
	Login(ctx context.Context, email, password string) (*profile.Session, error)
	EditUser(ctx context.Context, actorID, userID uuid.UUID, input profile.EditInput) (*domain.User, error)
}

// ExpenseService is the record surface used by the /expense routes
type ExpenseService interface {
	LogExpense(ctx context.Context, ownerID uuid.UUID, input expense.LogExpenseInput) (*domain.Expense, error)
	ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]*domain.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, expenseID uuid.UUID, input expense.UpdateExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, expenseID uuid.UUID) error
}

// Forecaster predicts future monthly spend
type Forecaster interface {
	Forecast(ctx context.Context, ownerID uuid.UUID, monthsAhead int) (*domain.ForecastResult, error)
}

// Recommender computes income growth recommendations
type Recommender interface {
	Recommend(ctx context.Context, ownerID uuid.UUID, savingsGoalPercent int) (*domain.RecommendationResult, error)
}

// TrendAnalyzer computes per-category trends
type TrendAnalyzer interface {
	AnalyzeCategoryTrends(ctx context.Context, ownerID uuid.UUID) (*domain.CategoryTrendsResult, error)
}

// TokenParser validates bearer tokens
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// Options tunes the cross-cutting middleware
type Options struct {
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	// MetricsHandler is mounted on /metrics when set
	MetricsHandler http.Handler
}

// Handler serves the REST API
type Handler struct {
	Profiles    ProfileService
	Expenses    ExpenseService
	Forecaster  Forecaster
	Recommender Recommender
	Trends      TrendAnalyzer
	Tokens      TokenParser
	recorder    metrics.Recorder
	log         logrus.FieldLogger
}

// NewHandler creates a new REST Handler.
// recorder and log may be nil.
func NewHandler(
	profiles ProfileService,
	expenses ExpenseService,
	forecaster Forecaster,
	recommender Recommender,
	trends TrendAnalyzer,
	tokens TokenParser,
	recorder metrics.Recorder,
	log logrus.FieldLogger,
) *Handler {
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &Handler{
		Profiles:    profiles,
		Expenses:    expenses,
		Forecaster:  forecaster,
		Recommender: recommender,
		Trends:      trends,
		Tokens:      tokens,
		recorder:    recorder,
		log:         logging.OrDiscard(log),
	}
}

// Router builds the route table wrapped in CORS
func (h *Handler) Router(opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(h.log, h.recorder))
	r.Use(rateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}
	r.HandleFunc("/user/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/user/login", h.Login).Methods(http.MethodPost)

	// Protected routes
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware(h.Tokens))
	protected.HandleFunc("/user/edit/{userId}", h.EditUser).Methods(http.MethodPut)

	protected.HandleFunc("/expense/new", h.AddExpense).Methods(http.MethodPost)
	protected.HandleFunc("/expense/get-all", h.ListExpenses).Methods(http.MethodGet)
	protected.HandleFunc("/expense/edit/{id}", h.UpdateExpense).Methods(http.MethodPut)
	protected.HandleFunc("/expense/delete/{id}", h.DeleteExpense).Methods(http.MethodDelete)

	protected.HandleFunc("/expense-prediction/predict", h.Predict).Methods(http.MethodGet)
	protected.HandleFunc("/expense-prediction/growth-recommendations", h.GrowthRecommendations).Methods(http.MethodGet)
	protected.HandleFunc("/expense-prediction/category-trends", h.CategoryTrends).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "Route not found")
	})

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
	})
	return c.Handler(r)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, "ok", map[string]string{"status": "healthy"})
}
