package handler

import (
	"net/http"

	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/internal/transport/httpserver/middleware"
)

type addIncomeRequest struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
}

func (h *Handlers) AddIncome(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	var req addIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}
	if req.Amount == nil || *req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}

	income, balance, err := h.Ledger.AddIncome(r.Context(), user.ID, ledger.AddIncomeInput{
		Description: req.Description,
		Amount:      *req.Amount,
	})
	if err != nil {
		h.log.InternalError("income: create failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"income":  newIncomeView(*income),
		"balance": balance.Amount,
	})
}
