package handler

import (
	"net/http"
	"time"

	"ledger-app-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) Trend(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	months, err := parseIntParam(r.URL.Query().Get("months"), h.cfg.TrendMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "months must be a positive integer")
		return
	}

	points, err := h.Reports.MonthlyTrend(r.Context(), user.ID, months)
	if err != nil {
		h.log.InternalError("reports: trend failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, points)
}

func (h *Handlers) CategoryTotals(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	now := time.Now()
	query := r.URL.Query()
	month, monthErr := parseIntParam(query.Get("month"), int(now.Month()))
	year, yearErr := parseIntParam(query.Get("year"), now.Year())
	if monthErr != nil || yearErr != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid_request", "month and year must be valid integers")
		return
	}

	expenses, err := h.Reports.MonthlyExpenses(r.Context(), user.ID, month, year, "")
	if err != nil {
		h.log.InternalError("reports: category totals failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, h.Reports.CategoryTotals(expenses))
}

func (h *Handlers) Recurring(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	recurring, err := h.Reports.DetectRecurring(r.Context(), user.ID, h.cfg.RecurringThreshold)
	if err != nil {
		h.log.InternalError("reports: recurring detection failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, recurring)
}
