package rest

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/usecase/expense"
)

func sampleExpense(owner uuid.UUID) *domain.Expense {
	return &domain.Expense{
		ID:          uuid.New(),
		OwnerID:     owner,
		Description: "Groceries",
		Amount:      decimal.RequireFromString("42.10"),
		Category:    "Food",
		Date:        time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC),
		Type:        domain.ExpenseTypeExpense,
	}
}

func TestAddExpense(t *testing.T) {
	api := newTestAPI(t, Options{})

	created := sampleExpense(api.owner)
	api.expenses.On("LogExpense", mock.Anything, api.owner, mock.MatchedBy(func(in expense.LogExpenseInput) bool {
		return in.Description == "Groceries" &&
			in.Amount.Equal(decimal.RequireFromString("42.10")) &&
			in.Category == "Food" &&
			in.Type == domain.ExpenseTypeExpense &&
			in.Date.Equal(created.Date)
	})).Return(created, nil)

	rec, body := api.do(t, http.MethodPost, "/expense/new",
		`{"description":"Groceries","amount":"42.10","category":"Food","date":"2024-03-03T10:00:00Z"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Expense added successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, created.ID.String(), data["id"])
	assert.Equal(t, "42.1", data["amount"])
	assert.Equal(t, "expense", data["type"])
}

func TestAddExpense_ValidationError(t *testing.T) {
	api := newTestAPI(t, Options{})

	api.expenses.On("LogExpense", mock.Anything, api.owner, mock.Anything).
		Return(nil, domain.NewValidationError("amount", "amount must be positive"))

	rec, body := api.do(t, http.MethodPost, "/expense/new", `{"description":"Refund","amount":-5,"category":"Food"}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount must be positive", body["message"])
}

func TestListExpenses(t *testing.T) {
	api := newTestAPI(t, Options{})

	api.expenses.On("ListExpenses", mock.Anything, api.owner).
		Return([]*domain.Expense{sampleExpense(api.owner), sampleExpense(api.owner)}, nil)

	rec, body := api.do(t, http.MethodGet, "/expense/get-all", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2 expense records fetched", body["message"])
	assert.Len(t, body["data"], 2)
}

func TestUpdateExpense(t *testing.T) {
	api := newTestAPI(t, Options{})

	updated := sampleExpense(api.owner)
	updated.Category = "Dining"
	api.expenses.On("UpdateExpense", mock.Anything, api.owner, updated.ID, mock.MatchedBy(func(in expense.UpdateExpenseInput) bool {
		return in.Category != nil && *in.Category == "Dining" && in.Amount == nil && in.Description == nil
	})).Return(updated, nil)

	rec, body := api.do(t, http.MethodPut, "/expense/edit/"+updated.ID.String(), `{"category":"Dining"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dining", body["data"].(map[string]interface{})["category"])
}

func TestUpdateExpense_NotFound(t *testing.T) {
	api := newTestAPI(t, Options{})

	id := uuid.New()
	api.expenses.On("UpdateExpense", mock.Anything, api.owner, id, mock.Anything).Return(nil, domain.ErrNotFound)

	rec, body := api.do(t, http.MethodPut, "/expense/edit/"+id.String(), `{"category":"Dining"}`, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestDeleteExpense(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		serviceErr     error
		callsService   bool
		expectedStatus int
	}{
		{name: "deleted", id: uuid.NewString(), callsService: true, expectedStatus: http.StatusOK},
		{name: "missing", id: uuid.NewString(), serviceErr: domain.ErrNotFound, callsService: true, expectedStatus: http.StatusNotFound},
		{name: "invalid id", id: "42", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, Options{})
			if tt.callsService {
				api.expenses.On("DeleteExpense", mock.Anything, api.owner, uuid.MustParse(tt.id)).Return(tt.serviceErr)
			}

			rec, _ := api.do(t, http.MethodDelete, "/expense/delete/"+tt.id, "", true)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if !tt.callsService {
				api.expenses.AssertNotCalled(t, "DeleteExpense", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
