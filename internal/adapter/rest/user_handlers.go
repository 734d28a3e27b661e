package rest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/simaogato/spendcast-backend/internal/auth"
	"github.com/simaogato/spendcast-backend/internal/usecase/profile"
)

// Signup handles POST /user/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.Profiles.Signup(r.Context(), profile.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "User registered successfully", sessionResponse{
		User:  toUserResponse(session.User),
		Token: session.Token,
	})
}

// Login handles POST /user/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.Profiles.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", sessionResponse{
		User:  toUserResponse(session.User),
		Token: session.Token,
	})
}

// EditUser handles PUT /user/edit/{userId}
func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := auth.OwnerFromContext(r.Context())

	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req editUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Profiles.EditUser(r.Context(), actorID, userID, profile.EditInput{
		Name:          req.Name,
		Email:         req.Email,
		AvatarImage:   req.AvatarImage,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "User updated successfully", toUserResponse(user))
}
