package reports

// TrendPoint is one month of total spending in a trend series.
type TrendPoint struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
	Label string  `json:"label"`
}

// RecurringExpense is a description-matched group of expenses that qualifies
// as recurring. Amount is the group mean. Frequency is always "Monthly"; no
// interval inference is performed.
type RecurringExpense struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	Count       int     `json:"count"`
}
