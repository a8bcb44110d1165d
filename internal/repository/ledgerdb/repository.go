// Package ledgerdb implements the ledger repository on GORM. The same code
// runs on the Postgres and SQLite drivers, so the package is named for the
// domain rather than a dialect.
package ledgerdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"ledger-app-go/internal/domain/ledger"
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Transaction(ctx context.Context, fn func(ledger.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*ledger.User, error) {
	var user ledger.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*ledger.User, error) {
	var user ledger.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *ledger.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) ListExpenses(ctx context.Context, userID uint, filter ledger.ExpenseFilter) ([]ledger.Expense, error) {
	query := r.db.WithContext(ctx).Model(&ledger.Expense{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var items []ledger.Expense
	if err := query.Order("date desc, id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) GetExpenseByID(ctx context.Context, userID, expenseID uint) (*ledger.Expense, error) {
	var expense ledger.Expense
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *Repository) CreateExpense(ctx context.Context, expense *ledger.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *Repository) CreateExpenses(ctx context.Context, expenses []ledger.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&expenses).Error
}

func (r *Repository) DeleteExpense(ctx context.Context, userID, expenseID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ledger.Expense{}, "user_id = ? AND id = ?", userID, expenseID)
	return result.RowsAffected > 0, result.Error
}

func (r *Repository) ListIncomes(ctx context.Context, userID uint) ([]ledger.Income, error) {
	var items []ledger.Income
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, id desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) CreateIncome(ctx context.Context, income *ledger.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *Repository) GetBalance(ctx context.Context, userID uint) (*ledger.Balance, error) {
	var balance ledger.Balance
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrBalanceNotFound
		}
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) CreateBalance(ctx context.Context, balance *ledger.Balance) error {
	return r.db.WithContext(ctx).Create(balance).Error
}

func (r *Repository) UpdateBalance(ctx context.Context, balance *ledger.Balance) error {
	return r.db.WithContext(ctx).
		Model(&ledger.Balance{}).
		Where("id = ? AND user_id = ?", balance.ID, balance.UserID).
		Updates(map[string]interface{}{
			"amount":       balance.Amount,
			"last_updated": balance.LastUpdated,
		}).Error
}

func (r *Repository) GetBudget(ctx context.Context, userID uint) (*ledger.Budget, error) {
	var budget ledger.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *Repository) CreateBudget(ctx context.Context, budget *ledger.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

// UpdateBudget touches amount and last_updated only; month/year keep the
// values stamped at creation.
func (r *Repository) UpdateBudget(ctx context.Context, budget *ledger.Budget) error {
	return r.db.WithContext(ctx).
		Model(&ledger.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"amount":       budget.Amount,
			"last_updated": budget.LastUpdated,
		}).Error
}
