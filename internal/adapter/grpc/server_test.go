package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/usecase/forecast"
)

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

const testToken = "test-token-123"

type testEnv struct {
	client      ForecastServiceClient
	forecaster  *MockForecaster
	recommender *MockRecommender
	trends      *MockTrendAnalyzer
	recorder    *recorderSpy
	owner       uuid.UUID
}

// newTestEnv starts an in-memory gRPC server with the production interceptor chain
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		forecaster:  new(MockForecaster),
		recommender: new(MockRecommender),
		trends:      new(MockTrendAnalyzer),
		recorder:    &recorderSpy{},
		owner:       uuid.New(),
	}

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(nil, env.recorder),
		AuthInterceptor(staticTokens{token: testToken, ownerID: env.owner}),
	))
	RegisterForecastServiceServer(server, NewServer(env.forecaster, env.recommender, env.trends, env.recorder))
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	env.client = NewForecastServiceClient(conn)
	return env
}

func authed() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+testToken)
}

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestGetForecast(t *testing.T) {
	env := newTestEnv(t)

	env.forecaster.On("Forecast", mock.Anything, env.owner, 2).Return(&domain.ForecastResult{
		Success: true,
		HistoricalData: []domain.MonthlyBucket{
			{Month: "2024-01", TotalAmount: 100, Count: 2},
		},
		PredictedMonths: []domain.ForecastPoint{
			{Month: "2024-04", PredictedAmount: 250},
			{Month: "2024-05", PredictedAmount: 300},
		},
		Trend: &domain.RegressionResult{Slope: 50, Intercept: 100, GrowthRatePercent: 33.33, AverageValue: 150},
	}, nil)

	resp, err := env.client.GetForecast(authed(), mustStruct(t, map[string]interface{}{"months": 2}))

	require.NoError(t, err)
	out := resp.AsMap()
	assert.Equal(t, true, out["success"])
	predictions := out["predictions"].([]interface{})
	require.Len(t, predictions, 2)
	assert.Equal(t, map[string]interface{}{"month": "2024-04", "predictedAmount": 250.0}, predictions[0])
	assert.Equal(t, 33.33, out["trend"].(map[string]interface{})["growthRate"])
	assert.Equal(t, []string{"forecast:success"}, env.recorder.analyses)
}

func TestGetForecast_DefaultsAndInsufficientData(t *testing.T) {
	env := newTestEnv(t)

	env.forecaster.On("Forecast", mock.Anything, env.owner, forecast.DefaultMonthsAhead).Return(&domain.ForecastResult{
		Success: false,
		Message: forecast.InsufficientHistoryMessage,
	}, nil)

	resp, err := env.client.GetForecast(authed(), &structpb.Struct{})

	// Insufficient data is a normal response over gRPC
	require.NoError(t, err)
	assert.Equal(t, false, resp.AsMap()["success"])
	assert.Equal(t, forecast.InsufficientHistoryMessage, resp.AsMap()["message"])
}

func TestGetForecast_InvalidArgument(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  map[string]interface{}
	}{
		{name: "fractional", req: map[string]interface{}{"months": 2.5}},
		{name: "string", req: map[string]interface{}{"months": "six"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.GetForecast(authed(), mustStruct(t, tt.req))

			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}

	env.forecaster.On("Forecast", mock.Anything, env.owner, 0).
		Return(nil, domain.NewValidationError("months", "months ahead must be between 1 and 120"))

	_, err := env.client.GetForecast(authed(), mustStruct(t, map[string]interface{}{"months": 0}))

	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "between 1 and 120")
}

func TestGetGrowthRecommendations(t *testing.T) {
	env := newTestEnv(t)

	advice := domain.TierIncomeSufficient.Advice()
	env.recommender.On("Recommend", mock.Anything, env.owner, 20).Return(&domain.RecommendationResult{
		Success:                   true,
		CurrentIncome:             3000,
		AveragePredictedExpense:   2000,
		RequiredIncome:            2500,
		MonthlySavingsTarget:      500,
		IncomeGrowthNeededPercent: -16.67,
		SavingsGoalPercent:        20,
		Tier:                      domain.TierIncomeSufficient,
		RecommendationText:        advice.Recommendation,
		ActionItems:               advice.ActionItems,
	}, nil)

	resp, err := env.client.GetGrowthRecommendations(authed(), &structpb.Struct{})

	require.NoError(t, err)
	out := resp.AsMap()
	assert.Equal(t, 2500.0, out["requiredIncome"])
	assert.Equal(t, "INCOME_SUFFICIENT", out["tier"])
	assert.Len(t, out["actionItems"], 3)
	assert.Equal(t, []string{"INCOME_SUFFICIENT"}, env.recorder.tiers)
}

func TestGetCategoryTrends(t *testing.T) {
	env := newTestEnv(t)

	env.trends.On("AnalyzeCategoryTrends", mock.Anything, env.owner).Return(&domain.CategoryTrendsResult{
		Success: true,
		CategoryTrends: []domain.CategoryTrend{
			{
				Category:      "Travel",
				MonthlyData:   []domain.MonthlyAmount{{Month: "2024-05", Amount: 75}},
				AverageAmount: 75,
				Trend:         domain.CategoryGrowth{GrowthRatePercent: 0, IsIncreasing: false},
			},
		},
	}, nil)

	resp, err := env.client.GetCategoryTrends(authed(), &structpb.Struct{})

	require.NoError(t, err)
	trends := resp.AsMap()["categoryTrends"].([]interface{})
	require.Len(t, trends, 1)
	travel := trends[0].(map[string]interface{})
	assert.Equal(t, "Travel", travel["category"])
	assert.Equal(t, 75.0, travel["averageAmount"])
}

func TestUnauthenticatedCall(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.GetCategoryTrends(context.Background(), &structpb.Struct{})

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	env.trends.AssertNotCalled(t, "AnalyzeCategoryTrends", mock.Anything, mock.Anything)
	assert.Equal(t, "Unauthenticated", env.recorder.status)
}
