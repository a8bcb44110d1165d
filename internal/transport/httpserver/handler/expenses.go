package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/internal/transport/httpserver/middleware"
)

type createExpenseRequest struct {
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
}

type deleteExpenseRequest struct {
	ReturnToBalance bool `json:"returnToBalance"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	query := r.URL.Query()
	monthParam := strings.TrimSpace(query.Get("month"))
	yearParam := strings.TrimSpace(query.Get("year"))
	category := strings.TrimSpace(query.Get("category"))

	var expenses []ledger.Expense
	var err error

	switch {
	case monthParam != "" && yearParam != "":
		month, monthErr := parseIntParam(monthParam, 0)
		year, yearErr := parseIntParam(yearParam, 0)
		if monthErr != nil || yearErr != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "invalid_request", "month and year must be valid integers")
			return
		}
		expenses, err = h.Reports.MonthlyExpenses(r.Context(), user.ID, month, year, category)
	case category != "":
		expenses, err = h.Ledger.Expenses(r.Context(), user.ID, ledger.ExpenseFilter{Category: category})
	default:
		expenses, err = h.Ledger.Expenses(r.Context(), user.ID, ledger.ExpenseFilter{})
	}
	if err != nil {
		h.log.InternalError("expenses: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, newExpenseViews(expenses))
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}
	if req.Amount == nil || *req.Amount <= 0 || strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing required fields")
		return
	}

	expense, balance, err := h.Ledger.AddExpense(r.Context(), user.ID, ledger.AddExpenseInput{
		Amount:   *req.Amount,
		Category: req.Category,
		Date:     parseDateFallback(req.Date),
	})
	if err != nil {
		h.log.InternalError("expenses: create failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	// Progress is reported for the month the expense lands in, which is not
	// necessarily the current month when a backdated date was supplied.
	progress, err := h.budgetProgressFor(r.Context(), user.ID, int(expense.Date.Month()), expense.Date.Year())
	if err != nil {
		h.log.InternalError("expenses: compute progress failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	balanceAmount := 0.0
	if balance != nil {
		balanceAmount = balance.Amount
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":             expense.ID,
		"description":    expense.Description,
		"amount":         expense.Amount,
		"category":       expense.Category,
		"date":           expense.Date.Format("2006-01-02"),
		"balance":        balanceAmount,
		"budgetProgress": progress,
	})
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	expenseID, err := parseUintID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		return
	}

	// Body is optional; absence means the amount stays debited.
	var req deleteExpenseRequest
	_ = decodeJSON(r, &req)

	deleted, err := h.Ledger.DeleteExpense(r.Context(), user.ID, expenseID, req.ReturnToBalance)
	if err != nil {
		if errors.Is(err, ledger.ErrExpenseNotFound) {
			h.log.BusinessError("expenses: delete target missing", err, "user_id", user.ID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses: delete failed", err, "user_id", user.ID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	now := time.Now()
	progress := 0.0
	if deleted.Date.Year() == now.Year() && deleted.Date.Month() == now.Month() {
		progress, err = h.currentBudgetProgress(r.Context(), user.ID)
		if err != nil {
			h.log.InternalError("expenses: compute progress failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
	}

	balance, err := h.balanceAmount(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("expenses: get balance failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"balance":        balance,
		"budgetProgress": progress,
	})
}
