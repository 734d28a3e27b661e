package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 6

// User represents an account owner and the profile attributes the
// forecasting engine reads (monthly income)
type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	PasswordHash  string
	AvatarImage   string
	MonthlyIncome *decimal.Decimal // NULL until the owner fills it in
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasIncome reports whether the profile carries a usable monthly income.
// A zero income counts as absent since growth percentages divide by it.
func (u *User) HasIncome() bool {
	return u.MonthlyIncome != nil && u.MonthlyIncome.GreaterThan(decimal.Zero)
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "name is required")
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return NewValidationError("email", "please provide a valid email")
	}

	if u.MonthlyIncome != nil && u.MonthlyIncome.LessThan(decimal.Zero) {
		return NewValidationError("monthlyIncome", "monthly income cannot be negative")
	}

	if u.PasswordHash == "" {
		return errors.New("user must have a password hash")
	}

	return nil
}
