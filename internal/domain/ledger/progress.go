package ledger

// BudgetProgress reports how much of a budget the given expenses consume, as a
// percentage capped at 100 for display. The cap hides overspend in the number
// only; spending itself is never limited. A zero or negative budget yields 0.
func BudgetProgress(budget float64, expenses []Expense) float64 {
	if budget <= 0 {
		return 0
	}

	total := 0.0
	for _, expense := range expenses {
		total += expense.Amount
	}

	progress := total / budget * 100
	if progress > 100 {
		return 100
	}
	return progress
}
