package ledger

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetUserByID(ctx context.Context, userID uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error

	ListExpenses(ctx context.Context, userID uint, filter ExpenseFilter) ([]Expense, error)
	GetExpenseByID(ctx context.Context, userID, expenseID uint) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	CreateExpenses(ctx context.Context, expenses []Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID uint) (bool, error)

	ListIncomes(ctx context.Context, userID uint) ([]Income, error)
	CreateIncome(ctx context.Context, income *Income) error

	GetBalance(ctx context.Context, userID uint) (*Balance, error)
	CreateBalance(ctx context.Context, balance *Balance) error
	UpdateBalance(ctx context.Context, balance *Balance) error

	GetBudget(ctx context.Context, userID uint) (*Budget, error)
	CreateBudget(ctx context.Context, budget *Budget) error
	UpdateBudget(ctx context.Context, budget *Budget) error
}
