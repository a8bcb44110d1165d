package ledger

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeRepo struct {
	users    map[uint]*User
	expenses map[uint]*Expense
	incomes  map[uint]*Income
	balances map[uint]*Balance
	budgets  map[uint]*Budget
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]*User),
		expenses: make(map[uint]*Expense),
		incomes:  make(map[uint]*Income),
		balances: make(map[uint]*Balance),
		budgets:  make(map[uint]*Budget),
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) GetUserByID(ctx context.Context, userID uint) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *fakeRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) CreateUser(ctx context.Context, user *User) error {
	user.ID = r.id()
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepo) ListExpenses(ctx context.Context, userID uint, filter ExpenseFilter) ([]Expense, error) {
	items := make([]Expense, 0)
	for _, expense := range r.expenses {
		if expense.UserID != userID {
			continue
		}
		if filter.From != nil && expense.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !expense.Date.Before(*filter.To) {
			continue
		}
		if filter.Category != "" && expense.Category != filter.Category {
			continue
		}
		items = append(items, *expense)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (r *fakeRepo) GetExpenseByID(ctx context.Context, userID, expenseID uint) (*Expense, error) {
	expense, ok := r.expenses[expenseID]
	if !ok || expense.UserID != userID {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

func (r *fakeRepo) CreateExpense(ctx context.Context, expense *Expense) error {
	expense.ID = r.id()
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeRepo) CreateExpenses(ctx context.Context, expenses []Expense) error {
	for i := range expenses {
		expense := expenses[i]
		expense.ID = r.id()
		r.expenses[expense.ID] = &expense
	}
	return nil
}

func (r *fakeRepo) DeleteExpense(ctx context.Context, userID, expenseID uint) (bool, error) {
	expense, ok := r.expenses[expenseID]
	if !ok || expense.UserID != userID {
		return false, nil
	}
	delete(r.expenses, expenseID)
	return true, nil
}

func (r *fakeRepo) ListIncomes(ctx context.Context, userID uint) ([]Income, error) {
	items := make([]Income, 0)
	for _, income := range r.incomes {
		if income.UserID == userID {
			items = append(items, *income)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (r *fakeRepo) CreateIncome(ctx context.Context, income *Income) error {
	income.ID = r.id()
	r.incomes[income.ID] = income
	return nil
}

func (r *fakeRepo) GetBalance(ctx context.Context, userID uint) (*Balance, error) {
	balance, ok := r.balances[userID]
	if !ok {
		return nil, ErrBalanceNotFound
	}
	copied := *balance
	return &copied, nil
}

func (r *fakeRepo) CreateBalance(ctx context.Context, balance *Balance) error {
	balance.ID = r.id()
	r.balances[balance.UserID] = balance
	return nil
}

func (r *fakeRepo) UpdateBalance(ctx context.Context, balance *Balance) error {
	stored, ok := r.balances[balance.UserID]
	if !ok {
		return ErrBalanceNotFound
	}
	stored.Amount = balance.Amount
	stored.LastUpdated = balance.LastUpdated
	return nil
}

func (r *fakeRepo) GetBudget(ctx context.Context, userID uint) (*Budget, error) {
	budget, ok := r.budgets[userID]
	if !ok {
		return nil, ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *fakeRepo) CreateBudget(ctx context.Context, budget *Budget) error {
	budget.ID = r.id()
	r.budgets[budget.UserID] = budget
	return nil
}

func (r *fakeRepo) UpdateBudget(ctx context.Context, budget *Budget) error {
	stored, ok := r.budgets[budget.UserID]
	if !ok {
		return ErrBudgetNotFound
	}
	stored.Amount = budget.Amount
	stored.LastUpdated = budget.LastUpdated
	return nil
}

func newTestService(repo *fakeRepo, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func addUser(t *testing.T, repo *fakeRepo, username string) *User {
	t.Helper()
	user := &User{Username: username, Email: username + "@example.com"}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestBalanceTracksIncomeMinusExpenses(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "alice")

	if _, _, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Amount: 1000}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, _, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Description: "Bonus", Amount: 250}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, _, err := svc.AddExpense(ctx, user.ID, AddExpenseInput{Amount: 300, Category: "Rent"}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, _, err := svc.AddExpense(ctx, user.ID, AddExpenseInput{Amount: 45.5, Category: "Food"}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	balance, err := svc.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	want := 1000 + 250 - 300 - 45.5
	if balance.Amount != want {
		t.Fatalf("balance = %v, want %v", balance.Amount, want)
	}
}

func TestAddExpenseWithoutBalanceSkipsDecrement(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "bob")

	expense, balance, err := svc.AddExpense(ctx, user.ID, AddExpenseInput{Amount: 80, Category: "Gas"})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if balance != nil {
		t.Fatalf("expected no balance, got %v", balance.Amount)
	}
	if expense.Description != "Gas" {
		t.Fatalf("description = %q, want category copied", expense.Description)
	}
	if _, err := svc.Balance(ctx, user.ID); !errors.Is(err, ErrBalanceNotFound) {
		t.Fatalf("expected ErrBalanceNotFound, got %v", err)
	}
}

func TestAddIncomeCreatesBalanceSeededWithAmount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "carol")

	income, balance, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Amount: 500})
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	if income.Description != "Income" {
		t.Fatalf("description = %q, want default", income.Description)
	}
	if balance == nil || balance.Amount != 500 {
		t.Fatalf("balance = %+v, want amount 500", balance)
	}
}

func TestDeleteExpenseDoesNotRestoreBalanceByDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "dave")

	if _, _, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Amount: 100}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	expense, _, err := svc.AddExpense(ctx, user.ID, AddExpenseInput{Amount: 40, Category: "Books"})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if _, err := svc.DeleteExpense(ctx, user.ID, expense.ID, false); err != nil {
		t.Fatalf("delete expense: %v", err)
	}

	balance, err := svc.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.Amount != 60 {
		t.Fatalf("balance = %v, want 60 (amount stays debited)", balance.Amount)
	}
}

func TestDeleteExpenseReturnToBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "erin")

	if _, _, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Amount: 100}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	expense, _, err := svc.AddExpense(ctx, user.ID, AddExpenseInput{Amount: 40, Category: "Books"})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if _, err := svc.DeleteExpense(ctx, user.ID, expense.ID, true); err != nil {
		t.Fatalf("delete expense: %v", err)
	}

	balance, err := svc.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.Amount != 100 {
		t.Fatalf("balance = %v, want 100 (amount credited back)", balance.Amount)
	}
}

func TestDeleteExpenseOfOtherUserReportsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	owner := addUser(t, repo, "owner")
	intruder := addUser(t, repo, "intruder")

	if _, _, err := svc.AddIncome(ctx, owner.ID, AddIncomeInput{Amount: 100}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, _, err := svc.AddIncome(ctx, intruder.ID, AddIncomeInput{Amount: 50}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	expense, _, err := svc.AddExpense(ctx, owner.ID, AddExpenseInput{Amount: 30, Category: "Food"})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if _, err := svc.DeleteExpense(ctx, intruder.ID, expense.ID, true); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}

	if _, err := svc.Expenses(ctx, owner.ID, ExpenseFilter{}); err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if _, ok := repo.expenses[expense.ID]; !ok {
		t.Fatal("expense was deleted by foreign user")
	}

	ownerBalance, _ := svc.Balance(ctx, owner.ID)
	intruderBalance, _ := svc.Balance(ctx, intruder.ID)
	if ownerBalance.Amount != 70 {
		t.Fatalf("owner balance = %v, want 70", ownerBalance.Amount)
	}
	if intruderBalance.Amount != 50 {
		t.Fatalf("intruder balance = %v, want 50", intruderBalance.Amount)
	}
}

func TestSetBalanceOverwritesAndDeltasApplyOnTop(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "frank")

	if _, _, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Amount: 10}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, err := svc.SetBalance(ctx, user.ID, 5000); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	if _, _, err := svc.AddExpense(ctx, user.ID, AddExpenseInput{Amount: 1000, Category: "Rent"}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	balance, _ := svc.Balance(ctx, user.ID)
	if balance.Amount != 4000 {
		t.Fatalf("balance = %v, want 4000", balance.Amount)
	}
}

func TestSetBudgetStampsCreationPeriodOnly(t *testing.T) {
	repo := newFakeRepo()
	created := time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, created)
	ctx := context.Background()
	user := addUser(t, repo, "grace")

	budget, err := svc.SetBudget(ctx, user.ID, 1500)
	if err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if budget.Month != 11 || budget.Year != 2024 {
		t.Fatalf("budget period = %d/%d, want 11/2024", budget.Month, budget.Year)
	}

	// Months later a new amount keeps the original provenance period.
	svc.now = func() time.Time { return time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC) }
	updated, err := svc.SetBudget(ctx, user.ID, 2000)
	if err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if updated.Amount != 2000 {
		t.Fatalf("amount = %v, want 2000", updated.Amount)
	}
	if updated.Month != 11 || updated.Year != 2024 {
		t.Fatalf("budget period = %d/%d, want unchanged 11/2024", updated.Month, updated.Year)
	}
}

func TestImportExpensesDebitsBalanceOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	user := addUser(t, repo, "heidi")

	if _, _, err := svc.AddIncome(ctx, user.ID, AddIncomeInput{Amount: 500}); err != nil {
		t.Fatalf("add income: %v", err)
	}

	rows := []ImportRow{
		{Description: "Netflix", Amount: 12.99, Category: "Entertainment", Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Description: "Rent", Amount: 300, Category: "Housing", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	result, err := svc.ImportExpenses(ctx, user.ID, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.ImportedCount != 2 {
		t.Fatalf("imported count = %d, want 2", result.ImportedCount)
	}
	if result.TotalAmount != 312.99 {
		t.Fatalf("total = %v, want 312.99", result.TotalAmount)
	}
	if result.Balance != 500-312.99 {
		t.Fatalf("balance = %v, want %v", result.Balance, 500-312.99)
	}
}

func TestEnsureDefaultUserSeedsBalanceAndBudget(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := context.Background()

	user, err := svc.EnsureDefaultUser(ctx)
	if err != nil {
		t.Fatalf("ensure default user: %v", err)
	}
	if user.Username != "default_user" {
		t.Fatalf("username = %q", user.Username)
	}

	balance, err := svc.Balance(ctx, user.ID)
	if err != nil || balance.Amount != 0 {
		t.Fatalf("balance = %+v err = %v, want seeded zero row", balance, err)
	}
	budget, err := svc.Budget(ctx, user.ID)
	if err != nil || budget.Amount != 0 || budget.Month != 6 || budget.Year != 2025 {
		t.Fatalf("budget = %+v err = %v, want zero row stamped 6/2025", budget, err)
	}

	again, err := svc.EnsureDefaultUser(ctx)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("second ensure created a new user: %d != %d", again.ID, user.ID)
	}
}
