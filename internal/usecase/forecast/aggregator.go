package forecast

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/spendcast-backend/internal/domain"
)

// AggregateMonthly groups expense records by calendar month and sums their amounts
// Logic:
//  1. Key each record by its "YYYY-MM" month (UTC storage convention)
//  2. Sum amounts with decimal arithmetic and count records per month
//  3. Return buckets sorted ascending by month
//
// Input order is irrelevant. Empty input returns an empty slice.
func AggregateMonthly(expenses []*domain.Expense) []domain.MonthlyBucket {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)

	for _, e := range expenses {
		if e == nil {
			continue
		}
		month := e.MonthKey()
		totals[month] = totals[month].Add(e.Amount)
		counts[month]++
	}

	buckets := make([]domain.MonthlyBucket, 0, len(totals))
	for month, total := range totals {
		buckets = append(buckets, domain.MonthlyBucket{
			Month:       month,
			TotalAmount: total.InexactFloat64(),
			Count:       counts[month],
		})
	}

	// "YYYY-MM" keys sort chronologically as strings
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})

	return buckets
}

// CategorySeries is one category's monthly totals, ascending by month
type CategorySeries struct {
	Category string
	Months   []domain.MonthlyAmount
}

// AggregateCategoryMonthly groups expense records by (category, month), summing amounts,
// then collects each category's months into an ascending series.
// Series are returned sorted by category name.
func AggregateCategoryMonthly(expenses []*domain.Expense) []CategorySeries {
	byCategory := make(map[string]map[string]decimal.Decimal)

	for _, e := range expenses {
		if e == nil {
			continue
		}
		months, ok := byCategory[e.Category]
		if !ok {
			months = make(map[string]decimal.Decimal)
			byCategory[e.Category] = months
		}
		month := e.MonthKey()
		months[month] = months[month].Add(e.Amount)
	}

	series := make([]CategorySeries, 0, len(byCategory))
	for category, months := range byCategory {
		points := make([]domain.MonthlyAmount, 0, len(months))
		for month, total := range months {
			points = append(points, domain.MonthlyAmount{
				Month:  month,
				Amount: total.InexactFloat64(),
			})
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].Month < points[j].Month
		})
		series = append(series, CategorySeries{Category: category, Months: points})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Category < series[j].Category
	})

	return series
}
