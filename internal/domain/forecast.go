package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyBucket is the aggregate of one owner's expense records for one calendar month.
// Buckets are derived per request and never persisted.
type MonthlyBucket struct {
	Month       string  `json:"month"` // "YYYY-MM"
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

// RegressionResult summarises a fitted line over an ordered series
type RegressionResult struct {
	Slope             float64 `json:"slope"`
	Intercept         float64 `json:"intercept"`
	GrowthRatePercent float64 `json:"growthRate"`
	AverageValue      float64 `json:"averageMonthlyExpense"`
}

// ForecastPoint is a predicted spend for one future month (never negative)
type ForecastPoint struct {
	Month           string  `json:"month"`
	PredictedAmount float64 `json:"predictedAmount"`
}

// ForecastResult is the outcome of a spend forecast.
// Success=false with a Message is the insufficient-data outcome, not a failure.
type ForecastResult struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message,omitempty"`
	HistoricalData  []MonthlyBucket   `json:"historicalData,omitempty"`
	PredictedMonths []ForecastPoint   `json:"predictions,omitempty"`
	Trend           *RegressionResult `json:"trend,omitempty"`
}

// ExpenseTrend is the direction summary carried by a recommendation
type ExpenseTrend struct {
	IsIncreasing             bool    `json:"isIncreasing"`
	MonthlyGrowthRatePercent float64 `json:"monthlyGrowthRate"`
}

// RecommendationResult is the outcome of the income growth calculator
type RecommendationResult struct {
	Success                   bool               `json:"success"`
	Message                   string             `json:"message,omitempty"`
	CurrentIncome             float64            `json:"currentIncome"`
	AveragePredictedExpense   float64            `json:"averagePredictedExpense"`
	RequiredIncome            float64            `json:"requiredIncome"`
	MonthlySavingsTarget      float64            `json:"monthlySavingsTarget"`
	IncomeGrowthNeededPercent float64            `json:"incomeGrowthNeeded"`
	SavingsGoalPercent        int                `json:"savingsGoal"`
	Tier                      RecommendationTier `json:"tier,omitempty"`
	RecommendationText        string             `json:"recommendation,omitempty"`
	ActionItems               []string           `json:"actionItems,omitempty"`
	ExpenseTrend              ExpenseTrend       `json:"expenseTrend"`
}

// MonthlyAmount is one point of a category series
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// CategoryGrowth is the trend summary of a category series
type CategoryGrowth struct {
	GrowthRatePercent float64 `json:"growthRate"`
	IsIncreasing      bool    `json:"isIncreasing"`
}

// CategoryTrend is the per-category spend series over the analysis window
type CategoryTrend struct {
	Category      string          `json:"category"`
	MonthlyData   []MonthlyAmount `json:"monthlyData"`
	AverageAmount float64         `json:"averageAmount"`
	Trend         CategoryGrowth  `json:"trend"`
}

// CategoryTrendsResult wraps the analyzer output. An empty list is a valid result.
type CategoryTrendsResult struct {
	Success        bool            `json:"success"`
	CategoryTrends []CategoryTrend `json:"categoryTrends"`
}

// Round2 rounds v to two decimal places, half away from zero.
// Non-finite values are returned unchanged; callers must reject them before output.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
