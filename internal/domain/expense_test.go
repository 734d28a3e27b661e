package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Expense {
	return Expense{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Description: "Weekly groceries",
		Amount:      decimal.RequireFromString("54.20"),
		Category:    "Food",
		Date:        time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC),
		Type:        ExpenseTypeExpense,
	}
}

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(e *Expense)
		wantErr   bool
		wantField string
	}{
		{
			name:   "Valid expense should pass",
			mutate: func(e *Expense) {},
		},
		{
			name:   "Income record should pass",
			mutate: func(e *Expense) { e.Type = ExpenseTypeIncome },
		},
		{
			name:    "Missing owner should fail",
			mutate:  func(e *Expense) { e.OwnerID = uuid.Nil },
			wantErr: true,
		},
		{
			name:      "Blank description should fail",
			mutate:    func(e *Expense) { e.Description = "   " },
			wantErr:   true,
			wantField: "description",
		},
		{
			name:      "Zero amount should fail",
			mutate:    func(e *Expense) { e.Amount = decimal.Zero },
			wantErr:   true,
			wantField: "amount",
		},
		{
			name:      "Negative amount should fail",
			mutate:    func(e *Expense) { e.Amount = decimal.NewFromInt(-5) },
			wantErr:   true,
			wantField: "amount",
		},
		{
			name:      "Blank category should fail",
			mutate:    func(e *Expense) { e.Category = "" },
			wantErr:   true,
			wantField: "category",
		},
		{
			name:      "Unknown type should fail",
			mutate:    func(e *Expense) { e.Type = "transfer" },
			wantErr:   true,
			wantField: "type",
		},
		{
			name:      "Zero date should fail",
			mutate:    func(e *Expense) { e.Date = time.Time{} },
			wantErr:   true,
			wantField: "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.mutate(&e)

			err := e.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantField == "" {
				assert.False(t, IsValidation(err))
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestMonthKey_UsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// 1 April 08:00 in Tokyo is still 31 March in UTC
	assert.Equal(t, "2024-03", MonthKey(time.Date(2024, time.April, 1, 8, 0, 0, 0, tokyo)))
	assert.Equal(t, "2023-12", MonthKey(time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)))

	e := validExpense()
	assert.Equal(t, "2024-03", e.MonthKey())
}
