package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseType represents the direction of a recorded money movement
type ExpenseType string

const (
	ExpenseTypeIncome  ExpenseType = "income"
	ExpenseTypeExpense ExpenseType = "expense"
)

// Valid reports whether the type is one of the known expense types
func (t ExpenseType) Valid() bool {
	return t == ExpenseTypeIncome || t == ExpenseTypeExpense
}

// Expense represents a single income or expense record owned by one user.
// Records are immutable once persisted except through an explicit update.
type Expense struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive; direction is carried by Type
	Category    string
	Date        time.Time
	Type        ExpenseType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate ensures the expense adheres to domain rules
// Returns an error if validation fails
func (e *Expense) Validate() error {
	if e.OwnerID == uuid.Nil {
		return errors.New("expense must have an owner")
	}

	if strings.TrimSpace(e.Description) == "" {
		return NewValidationError("description", "description is required")
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "expense amount must be positive")
	}

	if strings.TrimSpace(e.Category) == "" {
		return NewValidationError("category", "category is required")
	}

	if !e.Type.Valid() {
		return NewValidationError("type", "expense type must be income or expense")
	}

	if e.Date.IsZero() {
		return NewValidationError("date", "date is required")
	}

	return nil
}

// MonthKey returns the calendar month of the record in storage convention (UTC, "YYYY-MM")
func (e *Expense) MonthKey() string {
	return MonthKey(e.Date)
}

// MonthKey formats t as a "YYYY-MM" key in UTC
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// MonthLayout is the layout used for month keys
const MonthLayout = "2006-01"

// ExpenseFilter narrows an owner-scoped expense listing
type ExpenseFilter struct {
	OwnerID uuid.UUID
	Type    ExpenseType // Empty means all types
	Since   *time.Time  // Inclusive lower bound on Date; nil means unbounded
}
