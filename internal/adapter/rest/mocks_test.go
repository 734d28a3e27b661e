package rest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/usecase/expense"
	"github.com/simaogato/spendcast-backend/internal/usecase/profile"
)

// MockProfileService is a mock implementation of ProfileService for testing
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Signup(ctx context.Context, input profile.SignupInput) (*profile.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Session), args.Error(1)
}

func (m *MockProfileService) Login(ctx context.Context, email, password string) (*profile.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Session), args.Error(1)
}

func (m *MockProfileService) EditUser(ctx context.Context, actorID, userID uuid.UUID, input profile.EditInput) (*domain.User, error) {
	args := m.Called(ctx, actorID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockExpenseService is a mock implementation of ExpenseService for testing
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) LogExpense(ctx context.Context, ownerID uuid.UUID, input expense.LogExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]*domain.Expense, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, ownerID, expenseID uuid.UUID, input expense.UpdateExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, expenseID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, ownerID, expenseID uuid.UUID) error {
	args := m.Called(ctx, ownerID, expenseID)
	return args.Error(0)
}

// MockForecaster is a mock implementation of Forecaster for testing
type MockForecaster struct {
	mock.Mock
}

func (m *MockForecaster) Forecast(ctx context.Context, ownerID uuid.UUID, monthsAhead int) (*domain.ForecastResult, error) {
	args := m.Called(ctx, ownerID, monthsAhead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForecastResult), args.Error(1)
}

// MockRecommender is a mock implementation of Recommender for testing
type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, ownerID uuid.UUID, savingsGoalPercent int) (*domain.RecommendationResult, error) {
	args := m.Called(ctx, ownerID, savingsGoalPercent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationResult), args.Error(1)
}

// MockTrendAnalyzer is a mock implementation of TrendAnalyzer for testing
type MockTrendAnalyzer struct {
	mock.Mock
}

func (m *MockTrendAnalyzer) AnalyzeCategoryTrends(ctx context.Context, ownerID uuid.UUID) (*domain.CategoryTrendsResult, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryTrendsResult), args.Error(1)
}

// recorderSpy captures metric calls
type recorderSpy struct {
	routes   []string
	analyses []string
	tiers    []string
}

func (r *recorderSpy) ObserveRequest(transport, route, status string, _ time.Duration) {
	r.routes = append(r.routes, transport+" "+route+" "+status)
}

func (r *recorderSpy) RecordAnalysis(kind, outcome string) {
	r.analyses = append(r.analyses, kind+":"+outcome)
}

func (r *recorderSpy) RecordTier(tier string) {
	r.tiers = append(r.tiers, tier)
}
