package reports

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"ledger-app-go/internal/domain/ledger"
)

const (
	DefaultTrendMonths        = 6
	DefaultRecurringThreshold = 0.9

	recurringFrequency = "Monthly"
)

// Service derives reporting views over raw ledger rows. It never mutates
// state and recomputes everything from live rows on each call.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// MonthlyExpenses returns the expenses falling in the half-open window
// [first of month, first of next month), newest first, optionally narrowed to
// an exact-match category.
func (s *Service) MonthlyExpenses(ctx context.Context, userID uint, month, year int, category string) ([]ledger.Expense, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be in 1..12, got %d", month)
	}

	from, to := monthWindow(year, month)
	return s.repo.ListExpenses(ctx, userID, ledger.ExpenseFilter{
		From:     &from,
		To:       &to,
		Category: category,
	})
}

// CategoryTotals sums expense amounts per category. Category strings are
// compared case-sensitively, one entry per distinct label.
func (s *Service) CategoryTotals(expenses []ledger.Expense) map[string]float64 {
	totals := make(map[string]float64, len(expenses))
	for _, expense := range expenses {
		totals[expense.Category] += expense.Amount
	}
	return totals
}

// MonthlyTrend returns per-month spending totals for the given number of
// consecutive months ending at the current month, in chronological order.
func (s *Service) MonthlyTrend(ctx context.Context, userID uint, months int) ([]TrendPoint, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	current := s.now()
	points := make([]TrendPoint, 0, months)

	for i := months - 1; i >= 0; i-- {
		month := int(current.Month()) - i
		year := current.Year()
		for month <= 0 {
			month += 12
			year--
		}

		expenses, err := s.MonthlyExpenses(ctx, userID, month, year, "")
		if err != nil {
			return nil, err
		}

		total := 0.0
		for _, expense := range expenses {
			total += expense.Amount
		}

		points = append(points, TrendPoint{
			Month: month,
			Year:  year,
			Total: total,
			Label: fmt.Sprintf("%d/%d", month, year),
		})
	}

	return points, nil
}

// DetectRecurring groups a user's expenses by case-insensitive description
// and reports the groups that look like repeating charges: at least two
// members, spanning at least two distinct months, with every amount within
// threshold of the group mean as a fraction of that mean.
func (s *Service) DetectRecurring(ctx context.Context, userID uint, threshold float64) ([]RecurringExpense, error) {
	if threshold <= 0 {
		threshold = DefaultRecurringThreshold
	}

	expenses, err := s.repo.ListExpenses(ctx, userID, ledger.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]ledger.Expense)
	for _, expense := range expenses {
		key := strings.ToLower(expense.Description)
		groups[key] = append(groups[key], expense)
	}

	recurring := make([]RecurringExpense, 0)
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		months := make(map[[2]int]struct{}, len(group))
		sum := 0.0
		for _, expense := range group {
			months[[2]int{expense.Date.Year(), int(expense.Date.Month())}] = struct{}{}
			sum += expense.Amount
		}
		if len(months) < 2 {
			continue
		}

		mean := sum / float64(len(group))
		if !amountsWithinThreshold(group, mean, threshold) {
			continue
		}

		newest := group[0]
		for _, expense := range group[1:] {
			if expense.Date.After(newest.Date) {
				newest = expense
			}
		}

		recurring = append(recurring, RecurringExpense{
			Description: newest.Description,
			Category:    newest.Category,
			Amount:      mean,
			Frequency:   recurringFrequency,
			Count:       len(group),
		})
	}

	return recurring, nil
}

func amountsWithinThreshold(group []ledger.Expense, mean, threshold float64) bool {
	for _, expense := range group {
		if math.Abs(expense.Amount-mean)/mean > threshold {
			return false
		}
	}
	return true
}

func monthWindow(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if month == 12 {
		return from, time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return from, time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}
