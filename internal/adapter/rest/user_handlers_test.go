package rest

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/usecase/profile"
)

func TestSignup(t *testing.T) {
	api := newTestAPI(t, Options{})

	user := &domain.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	api.profiles.On("Signup", mock.Anything, profile.SignupInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	}).Return(&profile.Session{User: user, Token: "issued-token"}, nil)

	rec, body := api.do(t, http.MethodPost, "/user/signup", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`, false)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "issued-token", data["token"])
	assert.Equal(t, "ada@example.com", data["user"].(map[string]interface{})["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignup_Errors(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		serviceErr      error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "malformed body",
			body:            `{"name":`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name:            "short password",
			body:            `{"name":"Ada","email":"ada@example.com","password":"abc"}`,
			serviceErr:      domain.NewValidationError("password", "password must be at least 6 characters"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "password must be at least 6 characters",
		},
		{
			name:            "email in use",
			body:            `{"name":"Ada","email":"ada@example.com","password":"secret123"}`,
			serviceErr:      domain.ErrEmailInUse,
			expectedStatus:  http.StatusConflict,
			expectedMessage: domain.ErrEmailInUse.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, Options{})
			if tt.serviceErr != nil {
				api.profiles.On("Signup", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec, body := api.do(t, http.MethodPost, "/user/signup", tt.body, false)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedMessage, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, Options{})

	user := &domain.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	api.profiles.On("Login", mock.Anything, "ada@example.com", "secret123").
		Return(&profile.Session{User: user, Token: "issued-token"}, nil)
	api.profiles.On("Login", mock.Anything, "ada@example.com", "wrong").
		Return(nil, domain.ErrInvalidCredentials)

	rec, body := api.do(t, http.MethodPost, "/user/login", `{"email":"ada@example.com","password":"secret123"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "issued-token", body["data"].(map[string]interface{})["token"])

	rec, body = api.do(t, http.MethodPost, "/user/login", `{"email":"ada@example.com","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.ErrInvalidCredentials.Error(), body["message"])
}

func TestEditUser(t *testing.T) {
	api := newTestAPI(t, Options{})

	income := decimal.RequireFromString("4200.50")
	updated := &domain.User{ID: api.owner, Name: "Ada", Email: "ada@example.com", MonthlyIncome: &income}
	api.profiles.On("EditUser", mock.Anything, api.owner, api.owner, mock.MatchedBy(func(in profile.EditInput) bool {
		return in.MonthlyIncome != nil && in.MonthlyIncome.Equal(income) && in.Name == nil
	})).Return(updated, nil)

	rec, body := api.do(t, http.MethodPut, "/user/edit/"+api.owner.String(), `{"monthlyIncome":4200.50}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "4200.5", body["data"].(map[string]interface{})["monthlyIncome"])
}

func TestEditUser_Errors(t *testing.T) {
	other := uuid.New()

	tests := []struct {
		name           string
		target         string
		serviceErr     error
		expectedStatus int
	}{
		{name: "invalid id", target: "/user/edit/not-a-uuid", expectedStatus: http.StatusBadRequest},
		{name: "another user", target: "/user/edit/" + other.String(), serviceErr: domain.ErrForbidden, expectedStatus: http.StatusForbidden},
		{name: "storage failure", target: "/user/edit/" + other.String(), serviceErr: errors.New("db down"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, Options{})
			if tt.serviceErr != nil {
				api.profiles.On("EditUser", mock.Anything, api.owner, other, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec, _ := api.do(t, http.MethodPut, tt.target, `{"name":"Eve"}`, true)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
