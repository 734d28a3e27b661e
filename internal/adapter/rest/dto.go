package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/spendcast-backend/internal/domain"
)

type userResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	AvatarImage   string           `json:"avatarImage,omitempty"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		AvatarImage:   u.AvatarImage,
		MonthlyIncome: u.MonthlyIncome,
		CreatedAt:     u.CreatedAt,
	}
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type expenseResponse struct {
	ID          uuid.UUID          `json:"id"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Category    string             `json:"category"`
	Date        time.Time          `json:"date"`
	Type        domain.ExpenseType `json:"type"`
}

func toExpenseResponse(e *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Type:        e.Type,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type editUserRequest struct {
	Name          *string          `json:"name"`
	Email         *string          `json:"email"`
	AvatarImage   *string          `json:"avatarImage"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome"`
}

// expenseRequest is shared by create and edit; absent fields stay nil
type expenseRequest struct {
	Description *string             `json:"description"`
	Amount      *decimal.Decimal    `json:"amount"`
	Category    *string             `json:"category"`
	Date        *time.Time          `json:"date"`
	Type        *domain.ExpenseType `json:"type"`
}
