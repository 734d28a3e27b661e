package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
)

// DemoOwnerID is fixed so seeding is idempotent
var DemoOwnerID = uuid.MustParse("00000000-0000-0000-0000-0000000de301")

const (
	DemoEmail    = "demo@spendcast.local"
	DemoPassword = "demo-password"
	DemoMonths   = 6
)

// demoCategory describes one recurring monthly spend line. Each month the amount
// grows by Step, so the seeded history has a visible trend per category.
type demoCategory struct {
	Category    string
	Description string
	Base        decimal.Decimal
	Step        decimal.Decimal
	Day         int
}

var demoCategories = []demoCategory{
	{Category: "Housing", Description: "Rent", Base: decimal.NewFromInt(1200), Step: decimal.Zero, Day: 1},
	{Category: "Food", Description: "Groceries", Base: decimal.NewFromInt(380), Step: decimal.NewFromInt(25), Day: 9},
	{Category: "Transport", Description: "Fuel and transit", Base: decimal.NewFromInt(160), Step: decimal.NewFromInt(-10), Day: 14},
	{Category: "Entertainment", Description: "Streaming and outings", Base: decimal.NewFromInt(90), Step: decimal.NewFromInt(15), Day: 21},
}

// DemoSeeder creates a demo owner with six months of expense history
type DemoSeeder struct {
	userRepo    domain.UserRepository
	expenseRepo domain.ExpenseRepository
	now         func() time.Time
	hashCost    int
	log         logrus.FieldLogger
}

// NewDemoSeeder creates a new DemoSeeder instance.
// log may be nil.
func NewDemoSeeder(userRepo domain.UserRepository, expenseRepo domain.ExpenseRepository, log logrus.FieldLogger) *DemoSeeder {
	return &DemoSeeder{
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
		hashCost:    bcrypt.DefaultCost,
		log:         logging.OrDiscard(log),
	}
}

// Seed ensures the demo owner exists
// If the owner already exists, nothing is written.
// Logic:
//  1. Look up the demo owner by its fixed ID
//  2. Create the owner with a monthly income
//  3. Create one income record and one record per category for each of the last 6 months
func (s *DemoSeeder) Seed(ctx context.Context) error {
	// 1. Existing owner
	_, err := s.userRepo.GetByID(ctx, DemoOwnerID)
	if err == nil {
		s.log.Debug("demo owner already seeded")
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to look up demo owner: %w", err)
	}

	// 2. Owner
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := s.now().UTC()
	income := decimal.NewFromInt(3200)
	owner := &domain.User{
		ID:            DemoOwnerID,
		Name:          "Demo Owner",
		Email:         DemoEmail,
		PasswordHash:  string(hash),
		MonthlyIncome: &income,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := owner.Validate(); err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, owner); err != nil {
		return fmt.Errorf("failed to create demo owner: %w", err)
	}

	// 3. History, oldest month first
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DemoMonths; i++ {
		month := firstOfMonth.AddDate(0, i-DemoMonths, 0)

		records := []*domain.Expense{
			demoRecord(now, month, 1, "Salary", "Monthly salary", income, domain.ExpenseTypeIncome),
		}
		for _, c := range demoCategories {
			amount := c.Base.Add(c.Step.Mul(decimal.NewFromInt(int64(i))))
			records = append(records, demoRecord(now, month, c.Day, c.Category, c.Description, amount, domain.ExpenseTypeExpense))
		}

		for _, record := range records {
			if err := record.Validate(); err != nil {
				return err
			}
			if err := s.expenseRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("failed to create demo expense: %w", err)
			}
		}
	}

	s.log.WithFields(logrus.Fields{"owner_id": DemoOwnerID, "months": DemoMonths}).Info("demo data seeded")
	return nil
}

func demoRecord(now, month time.Time, day int, category, description string, amount decimal.Decimal, kind domain.ExpenseType) *domain.Expense {
	return &domain.Expense{
		ID:          uuid.New(),
		OwnerID:     DemoOwnerID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        month.AddDate(0, 0, day-1).Add(12 * time.Hour),
		Type:        kind,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
