package domain

import (
	"context"

	"github.com/google/uuid"
)

// ExpenseRepository defines the interface for expense record persistence operations.
// It is the storage collaborator the forecasting engine reads from.
type ExpenseRepository interface {
	// Create creates a new expense record
	Create(ctx context.Context, expense *Expense) error

	// GetByID retrieves an expense record by its ID
	// Returns an error wrapping ErrNotFound if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// Update overwrites the mutable fields of an existing record
	Update(ctx context.Context, expense *Expense) error

	// Delete removes an expense record
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves the owner's records matching the filter, in any order
	List(ctx context.Context, filter ExpenseFilter) ([]*Expense, error)
}

// UserRepository defines the interface for user profile persistence operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	// Returns an error wrapping ErrNotFound if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	// Returns an error wrapping ErrNotFound if it does not exist
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update overwrites the profile fields of an existing user
	Update(ctx context.Context, user *User) error

	// ListWithIncome retrieves every user whose monthly income is set
	ListWithIncome(ctx context.Context) ([]*User, error)
}
