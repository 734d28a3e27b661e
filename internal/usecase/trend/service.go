package trend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
	"github.com/simaogato/spendcast-backend/internal/usecase/forecast"
	"github.com/simaogato/spendcast-backend/internal/usecase/regression"
)

// LookbackMonths is how far back category trends look
const LookbackMonths = 6

// Service reports per-category spend trends over the recent window
type Service struct {
	ExpenseRepo domain.ExpenseRepository
	Now         func() time.Time
	log         logrus.FieldLogger
}

// NewService creates a new trend Service instance.
// log may be nil.
func NewService(expenseRepo domain.ExpenseRepository, log logrus.FieldLogger) *Service {
	return &Service{
		ExpenseRepo: expenseRepo,
		Now:         time.Now,
		log:         logging.OrDiscard(log),
	}
}

// AnalyzeCategoryTrends summarises each category's spend over the last six months
// Logic:
//  1. Fetch expense-type records dated on or after now minus 6 calendar months
//  2. Group by (category, month), then by category, ascending by month
//  3. averageAmount = mean of the category's monthly totals
//  4. Two or more months -> OLS over (index, amount) for the growth rate, otherwise 0
//  5. isIncreasing = growthRate > 0
//
// Every category with at least one record in the window is reported.
func (s *Service) AnalyzeCategoryTrends(ctx context.Context, ownerID uuid.UUID) (*domain.CategoryTrendsResult, error) {
	log := s.log.WithField("owner_id", ownerID)
	log.Info("analyzing category trends")

	// 1. Window
	since := s.Now().AddDate(0, -LookbackMonths, 0)
	expenses, err := s.ExpenseRepo.List(ctx, domain.ExpenseFilter{
		OwnerID: ownerID,
		Type:    domain.ExpenseTypeExpense,
		Since:   &since,
	})
	if err != nil {
		log.WithError(err).Error("failed to fetch expense records")
		return nil, fmt.Errorf("failed to fetch expense records: %w", err)
	}

	// 2. Group
	series := forecast.AggregateCategoryMonthly(expenses)

	trends := make([]domain.CategoryTrend, 0, len(series))
	for _, cs := range series {
		trends = append(trends, summarize(cs))
	}

	log.WithField("categories", len(trends)).Info("generated category trends")

	return &domain.CategoryTrendsResult{
		Success:        true,
		CategoryTrends: trends,
	}, nil
}

func summarize(cs forecast.CategorySeries) domain.CategoryTrend {
	values := make([]float64, len(cs.Months))
	var total float64
	for i, m := range cs.Months {
		values[i] = m.Amount
		total += m.Amount
	}

	// 3. Average of monthly totals
	var average float64
	if len(values) > 0 {
		average = total / float64(len(values))
	}

	// 4. Growth rate; a single month or degenerate series reports 0%
	var growthRate float64
	if len(values) >= 2 {
		if line, err := regression.FitSeries(values); err == nil {
			growthRate = line.GrowthRateOrZero()
		}
	}
	growthRate = domain.Round2(growthRate)

	// 5. Direction
	return domain.CategoryTrend{
		Category:      cs.Category,
		MonthlyData:   cs.Months,
		AverageAmount: domain.Round2(average),
		Trend: domain.CategoryGrowth{
			GrowthRatePercent: growthRate,
			IsIncreasing:      growthRate > 0,
		},
	}
}
