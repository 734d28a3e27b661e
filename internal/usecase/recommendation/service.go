package recommendation

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
	"github.com/simaogato/spendcast-backend/internal/usecase/forecast"
)

const (
	// DefaultSavingsGoalPercent is used when the caller gives no savings goal
	DefaultSavingsGoalPercent = 20

	// MaxSavingsGoalPercent is the largest accepted savings goal
	MaxSavingsGoalPercent = 90

	// MissingIncomeMessage is reported when the owner's profile has no monthly income
	MissingIncomeMessage = "Monthly income information is required for growth recommendations"

	// InvalidNumbersMessage is reported when the inputs produce non-finite figures
	InvalidNumbersMessage = "Not enough consistent data to compute a recommendation"
)

// Forecaster is the subset of the forecast service the calculator depends on
type Forecaster interface {
	Forecast(ctx context.Context, ownerID uuid.UUID, monthsAhead int) (*domain.ForecastResult, error)
}

// Service turns a spend forecast, the owner's income and a savings goal into an
// income growth recommendation
type Service struct {
	UserRepo   domain.UserRepository
	Forecaster Forecaster
	log        logrus.FieldLogger
}

// NewService creates a new recommendation Service instance.
// log may be nil.
func NewService(userRepo domain.UserRepository, forecaster Forecaster, log logrus.FieldLogger) *Service {
	return &Service{
		UserRepo:   userRepo,
		Forecaster: forecaster,
		log:        logging.OrDiscard(log),
	}
}

// ValidateSavingsGoal checks the savings goal is within [0, 90] percent
func ValidateSavingsGoal(savingsGoalPercent int) error {
	if savingsGoalPercent < 0 || savingsGoalPercent > MaxSavingsGoalPercent {
		return domain.NewValidationError("savingsGoal", "Savings goal must be between 0 and 90 percent")
	}
	return nil
}

// Recommend calculates the income the owner needs to cover predicted spend and
// still save savingsGoalPercent of it
// Logic:
//  1. Fetch the owner's monthly income; absent -> insufficient-data outcome
//  2. Forecast the next 6 months; an insufficient-data forecast is returned unchanged
//  3. requiredIncome = avgPredicted / (1 - goal/100)
//  4. incomeGrowthNeeded = (requiredIncome - income) / income * 100
//  5. Pick the tier and its fixed advice
//  6. monthlySavingsTarget = requiredIncome * goal/100; round everything to 2 decimals
func (s *Service) Recommend(ctx context.Context, ownerID uuid.UUID, savingsGoalPercent int) (*domain.RecommendationResult, error) {
	if err := ValidateSavingsGoal(savingsGoalPercent); err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{"owner_id": ownerID, "savings_goal": savingsGoalPercent})
	log.Info("calculating growth recommendations")

	// 1. Current income
	user, err := s.UserRepo.GetByID(ctx, ownerID)
	if err != nil {
		log.WithError(err).Error("failed to fetch owner profile")
		return nil, fmt.Errorf("failed to fetch owner profile: %w", err)
	}
	if !user.HasIncome() {
		log.Warn("owner income information missing")
		return insufficient(MissingIncomeMessage), nil
	}
	currentIncome := user.MonthlyIncome.InexactFloat64()

	// 2. Forecast
	prediction, err := s.Forecaster.Forecast(ctx, ownerID, forecast.DefaultMonthsAhead)
	if err != nil {
		return nil, err
	}
	if !prediction.Success {
		return insufficient(prediction.Message), nil
	}

	result := Calculate(prediction, currentIncome, savingsGoalPercent)
	if !result.Success {
		log.Warn("recommendation produced non-finite figures")
		return result, nil
	}

	log.WithFields(logrus.Fields{
		"tier":                 result.Tier,
		"income_growth_needed": result.IncomeGrowthNeededPercent,
	}).Info("generated growth recommendations")

	return result, nil
}

// Calculate applies the recommendation policy to a successful forecast.
// It is a pure function of its inputs.
func Calculate(prediction *domain.ForecastResult, currentIncome float64, savingsGoalPercent int) *domain.RecommendationResult {
	avgPredicted := forecast.AveragePredicted(prediction.PredictedMonths)

	// 3. Required income for the savings goal
	savingsRatio := float64(savingsGoalPercent) / 100
	requiredIncome := avgPredicted / (1 - savingsRatio)

	// 4. Growth needed relative to current income
	growthNeeded := (requiredIncome - currentIncome) / currentIncome * 100
	savingsTarget := requiredIncome * savingsRatio

	for _, v := range []float64{avgPredicted, requiredIncome, growthNeeded, savingsTarget} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return insufficient(InvalidNumbersMessage)
		}
	}

	// 5. Tier
	tier := domain.SelectTier(currentIncome, requiredIncome, growthNeeded)
	advice := tier.Advice()

	var growthRate float64
	if prediction.Trend != nil {
		growthRate = prediction.Trend.GrowthRatePercent
	}

	// 6. Rounded output
	return &domain.RecommendationResult{
		Success:                   true,
		CurrentIncome:             domain.Round2(currentIncome),
		AveragePredictedExpense:   domain.Round2(avgPredicted),
		RequiredIncome:            domain.Round2(requiredIncome),
		MonthlySavingsTarget:      domain.Round2(savingsTarget),
		IncomeGrowthNeededPercent: domain.Round2(growthNeeded),
		SavingsGoalPercent:        savingsGoalPercent,
		Tier:                      tier,
		RecommendationText:        advice.Recommendation,
		ActionItems:               advice.ActionItems,
		ExpenseTrend: domain.ExpenseTrend{
			IsIncreasing:             growthRate > 0,
			MonthlyGrowthRatePercent: growthRate,
		},
	}
}

func insufficient(message string) *domain.RecommendationResult {
	return &domain.RecommendationResult{
		Success: false,
		Message: message,
	}
}
