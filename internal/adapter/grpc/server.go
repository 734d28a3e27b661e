package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/spendcast-backend/internal/auth"
	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/metrics"
	"github.com/simaogato/spendcast-backend/internal/usecase/forecast"
	"github.com/simaogato/spendcast-backend/internal/usecase/recommendation"
)

// Forecaster predicts an owner's monthly spend
type Forecaster interface {
	Forecast(ctx context.Context, ownerID uuid.UUID, monthsAhead int) (*domain.ForecastResult, error)
}

// Recommender calculates income growth recommendations
type Recommender interface {
	Recommend(ctx context.Context, ownerID uuid.UUID, savingsGoalPercent int) (*domain.RecommendationResult, error)
}

// TrendAnalyzer reports per-category spend trends
type TrendAnalyzer interface {
	AnalyzeCategoryTrends(ctx context.Context, ownerID uuid.UUID) (*domain.CategoryTrendsResult, error)
}

// Server implements the ForecastService gRPC server
type Server struct {
	Forecaster  Forecaster
	Recommender Recommender
	Trends      TrendAnalyzer
	recorder    metrics.Recorder
}

var _ ForecastServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance.
// recorder may be nil.
func NewServer(forecaster Forecaster, recommender Recommender, trends TrendAnalyzer, recorder metrics.Recorder) *Server {
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &Server{
		Forecaster:  forecaster,
		Recommender: recommender,
		Trends:      trends,
		recorder:    recorder,
	}
}

// GetForecast handles the GetForecast RPC.
// Request fields: months (optional, default 6).
func (s *Server) GetForecast(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	// Parse months
	months, err := intField(req, "months", forecast.DefaultMonthsAhead)
	if err != nil {
		return nil, err
	}

	// Call usecase service
	result, err := s.Forecaster.Forecast(ctx, ownerID, months)
	s.recorder.RecordAnalysis("forecast", metrics.AnalysisOutcome(result != nil && result.Success, err))
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	return toStruct(result)
}

// GetGrowthRecommendations handles the GetGrowthRecommendations RPC.
// Request fields: savingsGoal (optional, default 20).
func (s *Server) GetGrowthRecommendations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	// Parse savings goal
	goal, err := intField(req, "savingsGoal", recommendation.DefaultSavingsGoalPercent)
	if err != nil {
		return nil, err
	}

	// Call usecase service
	result, err := s.Recommender.Recommend(ctx, ownerID, goal)
	s.recorder.RecordAnalysis("recommendation", metrics.AnalysisOutcome(result != nil && result.Success, err))
	if err != nil {
		return nil, mapError(err)
	}
	if result.Success {
		s.recorder.RecordTier(string(result.Tier))
	}

	// Build response
	return toStruct(result)
}

// GetCategoryTrends handles the GetCategoryTrends RPC
func (s *Server) GetCategoryTrends(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	// Call usecase service
	result, err := s.Trends.AnalyzeCategoryTrends(ctx, ownerID)
	s.recorder.RecordAnalysis("trend", metrics.AnalysisOutcome(result != nil && result.Success, err))
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	return toStruct(result)
}

func ownerFrom(ctx context.Context) (uuid.UUID, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing owner identity")
	}
	return ownerID, nil
}

// intField reads an optional integral number field, returning def when absent or null
func intField(req *structpb.Struct, name string, def int) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return def, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return def, nil
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, status.Errorf(codes.InvalidArgument, "invalid %s: must be an integer", name)
		}
		return int(n), nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s: must be a number", name)
	}
}

// toStruct converts a result into a Struct using its JSON field names
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Storage faults and anything unexpected
	return status.Error(codes.Internal, fmt.Sprintf("internal error: %v", err))
}
