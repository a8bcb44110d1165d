package ledger

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrBalanceNotFound = errors.New("balance not found")
	ErrBudgetNotFound  = errors.New("budget not found")
)
