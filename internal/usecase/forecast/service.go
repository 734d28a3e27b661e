package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
	"github.com/simaogato/spendcast-backend/internal/usecase/regression"
)

const (
	// DefaultMonthsAhead is the forecast horizon used when the caller gives none
	DefaultMonthsAhead = 6

	// MaxMonthsAhead bounds the forecast horizon
	MaxMonthsAhead = 120

	// MinHistoryMonths is the minimum number of historical months needed to forecast
	MinHistoryMonths = 3

	// InsufficientHistoryMessage is reported when fewer than MinHistoryMonths exist
	InsufficientHistoryMessage = "At least 3 months of expense data is needed for accurate predictions"
)

// Service produces multi-month spend forecasts from an owner's expense history
type Service struct {
	ExpenseRepo domain.ExpenseRepository
	log         logrus.FieldLogger
}

// NewService creates a new forecast Service instance.
// log may be nil.
func NewService(expenseRepo domain.ExpenseRepository, log logrus.FieldLogger) *Service {
	return &Service{
		ExpenseRepo: expenseRepo,
		log:         logging.OrDiscard(log),
	}
}

// Forecast predicts the owner's spend for the next monthsAhead months
// Logic:
//  1. Fetch the owner's expense-type records and aggregate them into monthly buckets
//  2. Fewer than 3 months -> insufficient-data outcome (Success=false), not an error
//  3. Fit OLS over (index, monthly total)
//  4. For i in 1..monthsAhead: month = last month + i, amount = max(0, round2(predict(n+i-1)))
//  5. Round the trend metrics to 2 decimals
//
// Storage failures are returned as errors. A monthsAhead outside [1, 120] is a ValidationError.
func (s *Service) Forecast(ctx context.Context, ownerID uuid.UUID, monthsAhead int) (*domain.ForecastResult, error) {
	if monthsAhead < 1 || monthsAhead > MaxMonthsAhead {
		return nil, domain.NewValidationError("months", fmt.Sprintf("months ahead must be between 1 and %d", MaxMonthsAhead))
	}

	log := s.log.WithFields(logrus.Fields{"owner_id": ownerID, "months_ahead": monthsAhead})
	log.Info("predicting expenses")

	// 1. Fetch and aggregate
	expenses, err := s.ExpenseRepo.List(ctx, domain.ExpenseFilter{
		OwnerID: ownerID,
		Type:    domain.ExpenseTypeExpense,
	})
	if err != nil {
		log.WithError(err).Error("failed to fetch expense records")
		return nil, fmt.Errorf("failed to fetch expense records: %w", err)
	}

	buckets := AggregateMonthly(expenses)
	log.WithField("months", len(buckets)).Debug("aggregated monthly expense data")

	// 2. Require enough history
	if len(buckets) < MinHistoryMonths {
		log.WithField("months", len(buckets)).Warn("insufficient data for prediction")
		return insufficient(InsufficientHistoryMessage), nil
	}

	// 3. Fit
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.TotalAmount
	}
	line, err := regression.FitSeries(values)
	if err != nil {
		log.WithError(err).Warn("could not fit expense trend")
		return insufficient(InsufficientHistoryMessage), nil
	}

	// 4. Extrapolate
	predicted, err := extrapolate(line, buckets[len(buckets)-1].Month, monthsAhead)
	if err != nil {
		return nil, err
	}

	// 5. Trend metrics (a zero-mean series reports 0% growth)
	trend := &domain.RegressionResult{
		Slope:             domain.Round2(line.Slope),
		Intercept:         domain.Round2(line.Intercept),
		GrowthRatePercent: domain.Round2(line.GrowthRateOrZero()),
		AverageValue:      domain.Round2(line.Average),
	}

	for _, p := range predicted {
		if !isFinite(p.PredictedAmount) {
			log.Warn("forecast produced a non-finite amount")
			return insufficient(InsufficientHistoryMessage), nil
		}
	}

	log.WithField("growth_rate", trend.GrowthRatePercent).Info("generated expense predictions")

	return &domain.ForecastResult{
		Success:         true,
		HistoricalData:  buckets,
		PredictedMonths: predicted,
		Trend:           trend,
	}, nil
}

// extrapolate walks monthsAhead calendar months past lastMonth, predicting each
func extrapolate(line regression.Line, lastMonth string, monthsAhead int) ([]domain.ForecastPoint, error) {
	last, err := time.Parse(domain.MonthLayout, lastMonth)
	if err != nil {
		return nil, fmt.Errorf("invalid month key %q: %w", lastMonth, err)
	}

	points := make([]domain.ForecastPoint, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		// time.Date normalises month overflow into the following year
		month := time.Date(last.Year(), last.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		amount := domain.Round2(line.Predict(line.N + i - 1))

		points = append(points, domain.ForecastPoint{
			Month:           month.Format(domain.MonthLayout),
			PredictedAmount: math.Max(0, amount),
		})
	}

	return points, nil
}

// AveragePredicted returns the mean of the predicted monthly amounts
func AveragePredicted(points []domain.ForecastPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var total float64
	for _, p := range points {
		total += p.PredictedAmount
	}
	return total / float64(len(points))
}

func insufficient(message string) *domain.ForecastResult {
	return &domain.ForecastResult{
		Success: false,
		Message: message,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
