package handler

import (
	"net/http"

	"ledger-app-go/internal/transport/httpserver/middleware"
)

type updateBalanceRequest struct {
	Balance *float64 `json:"balance"`
}

// UpdateBalance overwrites the cached balance with the provided value. This
// is the manual correction path; it intentionally breaks the derived
// income-minus-expense invariant.
func (h *Handlers) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	var req updateBalanceRequest
	if err := decodeJSON(r, &req); err != nil || req.Balance == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "balance not provided")
		return
	}

	balance, err := h.Ledger.SetBalance(r.Context(), user.ID, *req.Balance)
	if err != nil {
		h.log.InternalError("balance: set failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"balance": balance.Amount})
}
