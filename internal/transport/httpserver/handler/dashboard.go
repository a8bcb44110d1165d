package handler

import (
	"net/http"
	"time"

	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/internal/transport/httpserver/middleware"
)

// UserData returns everything the dashboard needs in one payload: balance,
// budget, current-month budget progress, current-month expenses and all
// incomes.
func (h *Handlers) UserData(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	balance, err := h.balanceAmount(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("dashboard: get balance failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	budget, err := h.budgetAmount(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("dashboard: get budget failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	now := time.Now()
	expenses, err := h.Reports.MonthlyExpenses(r.Context(), user.ID, int(now.Month()), now.Year(), "")
	if err != nil {
		h.log.InternalError("dashboard: list expenses failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	incomes, err := h.Ledger.Incomes(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("dashboard: list incomes failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance":        balance,
		"budget":         budget,
		"budgetProgress": ledger.BudgetProgress(budget, expenses),
		"expenses":       newExpenseViews(expenses),
		"incomes":        newIncomeViews(incomes),
	})
}
