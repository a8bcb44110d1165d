package handler

import (
	"encoding/json"
	"net/http"

	"ledger-app-go/internal/codec"
	"ledger-app-go/internal/domain/ledger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type expenseView struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func newExpenseView(expense ledger.Expense) expenseView {
	return expenseView{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Date:        expense.Date.Format(codec.DateLayout),
	}
}

func newExpenseViews(expenses []ledger.Expense) []expenseView {
	views := make([]expenseView, 0, len(expenses))
	for _, expense := range expenses {
		views = append(views, newExpenseView(expense))
	}
	return views
}

type incomeView struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

func newIncomeView(income ledger.Income) incomeView {
	return incomeView{
		ID:          income.ID,
		Description: income.Description,
		Amount:      income.Amount,
		Date:        income.Date.Format(codec.DateLayout),
	}
}

func newIncomeViews(incomes []ledger.Income) []incomeView {
	views := make([]incomeView, 0, len(incomes))
	for _, income := range incomes {
		views = append(views, newIncomeView(income))
	}
	return views
}
