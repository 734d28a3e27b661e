package expense

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
)

// LogExpenseInput represents the input for recording an income or expense entry
type LogExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time // Optional: defaults to now
	Type        domain.ExpenseType
}

// UpdateExpenseInput carries the fields to change; nil fields are left untouched
type UpdateExpenseInput struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Date        *time.Time
	Type        *domain.ExpenseType
}

// ExpenseService handles owner-scoped expense record operations
type ExpenseService struct {
	ExpenseRepo domain.ExpenseRepository
	Now         func() time.Time
	log         logrus.FieldLogger
}

// NewExpenseService creates a new ExpenseService instance.
// log may be nil.
func NewExpenseService(expenseRepo domain.ExpenseRepository, log logrus.FieldLogger) *ExpenseService {
	return &ExpenseService{
		ExpenseRepo: expenseRepo,
		Now:         time.Now,
		log:         logging.OrDiscard(log),
	}
}

// LogExpense records a new entry for the owner
// Logic:
//  1. Default the date to now when absent
//  2. Build and validate the record
//  3. Save using ExpenseRepo.Create
func (s *ExpenseService) LogExpense(ctx context.Context, ownerID uuid.UUID, input LogExpenseInput) (*domain.Expense, error) {
	now := s.Now().UTC()

	// 1. Date default
	date := input.Date
	if date.IsZero() {
		date = now
	}

	// 2. Build and validate
	expense := &domain.Expense{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        date,
		Type:        input.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	// 3. Save
	if err := s.ExpenseRepo.Create(ctx, expense); err != nil {
		s.log.WithError(err).WithField("owner_id", ownerID).Error("failed to create expense")
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"expense_id": expense.ID,
		"type":       expense.Type,
	}).Info("expense recorded")

	return expense, nil
}

// ListExpenses returns every record the owner has, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]*domain.Expense, error) {
	expenses, err := s.ExpenseRepo.List(ctx, domain.ExpenseFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

// UpdateExpense applies input to one of the owner's records
// Logic:
//  1. Fetch the record; another owner's record is reported as not found
//  2. Apply the non-nil fields and re-validate
//  3. Save using ExpenseRepo.Update
func (s *ExpenseService) UpdateExpense(ctx context.Context, ownerID, expenseID uuid.UUID, input UpdateExpenseInput) (*domain.Expense, error) {
	// 1. Fetch
	expense, err := s.ownedExpense(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	// 2. Apply
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Type != nil {
		expense.Type = *input.Type
	}
	expense.UpdatedAt = s.Now().UTC()

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	// 3. Save
	if err := s.ExpenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "expense_id": expenseID}).Info("expense updated")
	return expense, nil
}

// DeleteExpense removes one of the owner's records
func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, expenseID uuid.UUID) error {
	if _, err := s.ownedExpense(ctx, ownerID, expenseID); err != nil {
		return err
	}

	if err := s.ExpenseRepo.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "expense_id": expenseID}).Info("expense deleted")
	return nil
}

func (s *ExpenseService) ownedExpense(ctx context.Context, ownerID, expenseID uuid.UUID) (*domain.Expense, error) {
	expense, err := s.ExpenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OwnerID != ownerID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, domain.ErrNotFound)
	}
	return expense, nil
}
