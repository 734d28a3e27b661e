package rest

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/spendcast-backend/internal/auth"
	"github.com/simaogato/spendcast-backend/internal/metrics"
	"github.com/simaogato/spendcast-backend/internal/usecase/forecast"
	"github.com/simaogato/spendcast-backend/internal/usecase/recommendation"
)

// Predict handles GET /expense-prediction/predict?months=
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	months, ok := queryInt(w, r, "months", forecast.DefaultMonthsAhead)
	if !ok {
		return
	}

	result, err := h.Forecaster.Forecast(r.Context(), ownerID, months)
	h.recorder.RecordAnalysis("forecast", metrics.AnalysisOutcome(result != nil && result.Success, err))
	if err != nil {
		h.log.WithError(err).WithField("owner_id", ownerID).Error("failed to generate expense predictions")
		writeError(w, err)
		return
	}
	if !result.Success {
		writeFailure(w, http.StatusBadRequest, result.Message)
		return
	}

	writeData(w, http.StatusOK, "Expense predictions generated successfully", result)
}

// GrowthRecommendations handles GET /expense-prediction/growth-recommendations?savingsGoal=
func (h *Handler) GrowthRecommendations(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	goal, ok := queryInt(w, r, "savingsGoal", recommendation.DefaultSavingsGoalPercent)
	if !ok {
		return
	}

	result, err := h.Recommender.Recommend(r.Context(), ownerID, goal)
	h.recorder.RecordAnalysis("recommendation", metrics.AnalysisOutcome(result != nil && result.Success, err))
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"owner_id": ownerID, "savings_goal": goal}).
			Error("failed to generate growth recommendations")
		writeError(w, err)
		return
	}
	if !result.Success {
		writeFailure(w, http.StatusBadRequest, result.Message)
		return
	}
	h.recorder.RecordTier(string(result.Tier))

	writeData(w, http.StatusOK, "Growth recommendations generated successfully", result)
}

// CategoryTrends handles GET /expense-prediction/category-trends
func (h *Handler) CategoryTrends(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	result, err := h.Trends.AnalyzeCategoryTrends(r.Context(), ownerID)
	h.recorder.RecordAnalysis("trend", metrics.AnalysisOutcome(result != nil && result.Success, err))
	if err != nil {
		h.log.WithError(err).WithField("owner_id", ownerID).Error("failed to analyze category trends")
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Category trends analysis completed successfully", result)
}

// queryInt reads an optional integer query parameter.
// It writes a 400 and returns false when the value is not an integer.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid "+name+": must be an integer")
		return 0, false
	}
	return n, true
}
