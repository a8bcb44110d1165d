package reports

import (
	"context"

	"ledger-app-go/internal/domain/ledger"
)

type Repository interface {
	ListExpenses(ctx context.Context, userID uint, filter ledger.ExpenseFilter) ([]ledger.Expense, error)
}
