package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultUsername = "default_user"
	defaultEmail    = "default@example.com"

	defaultIncomeDescription = "Income"
)

// Service applies every ledger mutation together with its balance/budget
// side effect in a single repository transaction.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// EnsureDefaultUser looks up the implicit single user and creates it on first
// access, seeding zero-amount balance and budget rows alongside it.
func (s *Service) EnsureDefaultUser(ctx context.Context) (*User, error) {
	user, err := s.repo.GetUserByUsername(ctx, defaultUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	created := &User{Username: defaultUsername, Email: defaultEmail}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateUser(ctx, created); err != nil {
			return err
		}
		now := s.now().UTC()
		if err := tx.CreateBalance(ctx, &Balance{UserID: created.ID, Amount: 0, LastUpdated: now}); err != nil {
			return err
		}
		return tx.CreateBudget(ctx, &Budget{
			UserID:      created.ID,
			Amount:      0,
			Month:       int(now.Month()),
			Year:        now.Year(),
			LastUpdated: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create default user: %w", err)
	}
	return created, nil
}

// AddExpense records an expense and debits the cached balance. A user without
// a balance row gets the expense but no debit; the row is not auto-created
// here (income creation is the only path that seeds one).
func (s *Service) AddExpense(ctx context.Context, userID uint, input AddExpenseInput) (*Expense, *Balance, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, nil, fmt.Errorf("category is required")
	}
	if input.Amount <= 0 {
		return nil, nil, fmt.Errorf("amount must be positive")
	}

	date := input.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	expense := &Expense{
		UserID:      userID,
		Description: category,
		Amount:      input.Amount,
		Category:    category,
		Date:        date,
	}

	var balance *Balance
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateExpense(ctx, expense); err != nil {
			return err
		}

		current, err := tx.GetBalance(ctx, userID)
		if errors.Is(err, ErrBalanceNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		current.Amount -= input.Amount
		current.LastUpdated = s.now().UTC()
		if err := tx.UpdateBalance(ctx, current); err != nil {
			return err
		}
		balance = current
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return expense, balance, nil
}

// DeleteExpense removes an expense owned by userID and returns the deleted
// row. The amount is credited back to the balance only when returnToBalance
// is set; the default is to leave the balance as-is.
func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID uint, returnToBalance bool) (*Expense, error) {
	var deleted *Expense
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		expense, err := tx.GetExpenseByID(ctx, userID, expenseID)
		if err != nil {
			return err
		}

		if returnToBalance {
			balance, err := tx.GetBalance(ctx, userID)
			if err == nil {
				balance.Amount += expense.Amount
				balance.LastUpdated = s.now().UTC()
				if err := tx.UpdateBalance(ctx, balance); err != nil {
					return err
				}
			} else if !errors.Is(err, ErrBalanceNotFound) {
				return err
			}
		}

		ok, err := tx.DeleteExpense(ctx, userID, expenseID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrExpenseNotFound
		}
		deleted = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// AddIncome records an income and credits the cached balance, creating the
// balance row seeded with the income amount when the user has none yet.
func (s *Service) AddIncome(ctx context.Context, userID uint, input AddIncomeInput) (*Income, *Balance, error) {
	if input.Amount <= 0 {
		return nil, nil, fmt.Errorf("amount must be positive")
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = defaultIncomeDescription
	}

	income := &Income{
		UserID:      userID,
		Description: description,
		Amount:      input.Amount,
		Date:        s.now().UTC(),
	}

	var balance *Balance
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateIncome(ctx, income); err != nil {
			return err
		}

		current, err := tx.GetBalance(ctx, userID)
		if errors.Is(err, ErrBalanceNotFound) {
			current = &Balance{UserID: userID, Amount: input.Amount, LastUpdated: s.now().UTC()}
			if err := tx.CreateBalance(ctx, current); err != nil {
				return err
			}
			balance = current
			return nil
		}
		if err != nil {
			return err
		}

		current.Amount += input.Amount
		current.LastUpdated = s.now().UTC()
		if err := tx.UpdateBalance(ctx, current); err != nil {
			return err
		}
		balance = current
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return income, balance, nil
}

// SetBalance overwrites the cached balance unconditionally. This is the manual
// correction path; later mutations apply their deltas on top of the new value.
func (s *Service) SetBalance(ctx context.Context, userID uint, amount float64) (*Balance, error) {
	var balance *Balance
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetBalance(ctx, userID)
		if errors.Is(err, ErrBalanceNotFound) {
			current = &Balance{UserID: userID, Amount: amount, LastUpdated: s.now().UTC()}
			if err := tx.CreateBalance(ctx, current); err != nil {
				return err
			}
			balance = current
			return nil
		}
		if err != nil {
			return err
		}

		current.Amount = amount
		current.LastUpdated = s.now().UTC()
		if err := tx.UpdateBalance(ctx, current); err != nil {
			return err
		}
		balance = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// SetBudget sets the budget amount. A new row is stamped with the current
// month and year; an existing row keeps its original month/year and only the
// amount and LastUpdated change.
func (s *Service) SetBudget(ctx context.Context, userID uint, amount float64) (*Budget, error) {
	var budget *Budget
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetBudget(ctx, userID)
		if errors.Is(err, ErrBudgetNotFound) {
			now := s.now().UTC()
			current = &Budget{
				UserID:      userID,
				Amount:      amount,
				Month:       int(now.Month()),
				Year:        now.Year(),
				LastUpdated: now,
			}
			if err := tx.CreateBudget(ctx, current); err != nil {
				return err
			}
			budget = current
			return nil
		}
		if err != nil {
			return err
		}

		current.Amount = amount
		current.LastUpdated = s.now().UTC()
		if err := tx.UpdateBudget(ctx, current); err != nil {
			return err
		}
		budget = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// ImportExpenses inserts already-parsed rows in bulk and debits the balance by
// their total, all in one transaction. Row-level parse failures never reach
// this method; the codec drops them before the import is applied.
func (s *Service) ImportExpenses(ctx context.Context, userID uint, rows []ImportRow) (ImportResult, error) {
	expenses := make([]Expense, 0, len(rows))
	total := 0.0
	for _, row := range rows {
		expenses = append(expenses, Expense{
			UserID:      userID,
			Description: row.Description,
			Amount:      row.Amount,
			Category:    row.Category,
			Date:        row.Date,
		})
		total += row.Amount
	}

	result := ImportResult{ImportedCount: len(expenses), TotalAmount: total}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if len(expenses) > 0 {
			if err := tx.CreateExpenses(ctx, expenses); err != nil {
				return err
			}
		}

		balance, err := tx.GetBalance(ctx, userID)
		if errors.Is(err, ErrBalanceNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		balance.Amount -= total
		balance.LastUpdated = s.now().UTC()
		if err := tx.UpdateBalance(ctx, balance); err != nil {
			return err
		}
		result.Balance = balance.Amount
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func (s *Service) Expenses(ctx context.Context, userID uint, filter ExpenseFilter) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, userID, filter)
}

func (s *Service) Incomes(ctx context.Context, userID uint) ([]Income, error) {
	return s.repo.ListIncomes(ctx, userID)
}

func (s *Service) Balance(ctx context.Context, userID uint) (*Balance, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *Service) Budget(ctx context.Context, userID uint) (*Budget, error) {
	return s.repo.GetBudget(ctx, userID)
}
