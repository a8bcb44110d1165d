package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ledger-app-go/internal/config"
	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/internal/domain/reports"
	"ledger-app-go/pkg/logger"
)

type Handlers struct {
	Ledger  *ledger.Service
	Reports *reports.Service
	cfg     config.ReportsConfig
	log     logger.Logger
}

func New(ledgerSvc *ledger.Service, reportsSvc *reports.Service, cfg config.ReportsConfig, log logger.Logger) *Handlers {
	return &Handlers{
		Ledger:  ledgerSvc,
		Reports: reportsSvc,
		cfg:     cfg,
		log:     log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) balanceAmount(ctx context.Context, userID uint) (float64, error) {
	balance, err := h.Ledger.Balance(ctx, userID)
	if errors.Is(err, ledger.ErrBalanceNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

func (h *Handlers) budgetAmount(ctx context.Context, userID uint) (float64, error) {
	budget, err := h.Ledger.Budget(ctx, userID)
	if errors.Is(err, ledger.ErrBudgetNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return budget.Amount, nil
}

// budgetProgressFor recomputes utilization for the given month from live
// expense rows plus the persisted budget amount; nothing is cached.
func (h *Handlers) budgetProgressFor(ctx context.Context, userID uint, month, year int) (float64, error) {
	budget, err := h.budgetAmount(ctx, userID)
	if err != nil {
		return 0, err
	}
	expenses, err := h.Reports.MonthlyExpenses(ctx, userID, month, year, "")
	if err != nil {
		return 0, err
	}
	return ledger.BudgetProgress(budget, expenses), nil
}

func (h *Handlers) currentBudgetProgress(ctx context.Context, userID uint) (float64, error) {
	now := time.Now()
	return h.budgetProgressFor(ctx, userID, int(now.Month()), now.Year())
}
