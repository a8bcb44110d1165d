package ledger

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash *string   `gorm:"size:256"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type Expense struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Description string    `gorm:"size:120;not null"`
	Amount      float64   `gorm:"not null"`
	Category    string    `gorm:"size:50;not null"`
	Date        time.Time `gorm:"index;not null"`
}

type Income struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Description string    `gorm:"size:120;not null"`
	Amount      float64   `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
}

// Balance is the cached running total for a user. It is maintained by the
// service on every expense/income mutation rather than recomputed per read.
type Balance struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"uniqueIndex;not null"`
	Amount      float64
	LastUpdated time.Time
}

// Budget is the single monthly envelope for a user. Month and Year record when
// the row was first created; setting a new amount never moves them.
type Budget struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"uniqueIndex;not null"`
	Amount      float64
	Month       int
	Year        int
	LastUpdated time.Time
}

// ExpenseFilter narrows ListExpenses. From is inclusive, To exclusive.
type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

type AddExpenseInput struct {
	Amount   float64
	Category string
	Date     time.Time
}

type AddIncomeInput struct {
	Description string
	Amount      float64
}

// ImportRow is one already-parsed expense row from a bulk import.
type ImportRow struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time
}

// ImportResult reports what a bulk import actually applied.
type ImportResult struct {
	ImportedCount int
	TotalAmount   float64
	Balance       float64
}
