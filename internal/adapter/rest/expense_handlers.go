package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/simaogato/spendcast-backend/internal/auth"
	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/usecase/expense"
)

// AddExpense handles POST /expense/new
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := expense.LogExpenseInput{Type: domain.ExpenseTypeExpense}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.Type != nil {
		input.Type = *req.Type
	}

	created, err := h.Expenses.LogExpense(r.Context(), ownerID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Expense added successfully", toExpenseResponse(created))
}

// ListExpenses handles GET /expense/get-all
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	expenses, err := h.Expenses.ListExpenses(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeData(w, http.StatusOK, fmt.Sprintf("%d expense records fetched", len(out)), out)
}

// UpdateExpense handles PUT /expense/edit/{id}
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	expenseID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Expenses.UpdateExpense(r.Context(), ownerID, expenseID, expense.UpdateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Type:        req.Type,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, fmt.Sprintf("Expense %s updated successfully", expenseID), toExpenseResponse(updated))
}

// DeleteExpense handles DELETE /expense/delete/{id}
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	expenseID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), ownerID, expenseID); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Expense deleted successfully", nil)
}
