package handler

import (
	"net/http"

	"ledger-app-go/internal/transport/httpserver/middleware"
)

type updateBudgetRequest struct {
	Budget *float64 `json:"budget"`
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	var req updateBudgetRequest
	if err := decodeJSON(r, &req); err != nil || req.Budget == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "budget not provided")
		return
	}

	budget, err := h.Ledger.SetBudget(r.Context(), user.ID, *req.Budget)
	if err != nil {
		h.log.InternalError("budget: set failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	progress, err := h.currentBudgetProgress(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("budget: compute progress failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"budget":         budget.Amount,
		"budgetProgress": progress,
	})
}
