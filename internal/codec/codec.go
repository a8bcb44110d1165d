// Package codec translates between ledger expenses and the tabular file
// formats used for bulk import/export. Both formats share one column
// contract: ID, Description, Amount, Category, Date (YYYY-MM-DD), with a
// header row first. On import the ID column is ignored.
package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var columns = []string{"ID", "Description", "Amount", "Category", "Date"}

// Row is one successfully parsed import row.
type Row struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time
}

// SkippedRow records an import row the codec dropped and why. Line is
// 1-based and counts the header.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// parseCells applies the shared column contract to a raw row. A row with
// fewer than four cells or an unparseable amount is skipped; a missing or
// unparseable date falls back to now.
func parseCells(cells []string, line int, now time.Time) (Row, *SkippedRow) {
	if len(cells) < 4 {
		return Row{}, &SkippedRow{Line: line, Reason: fmt.Sprintf("expected at least 4 columns, got %d", len(cells))}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
	if err != nil {
		return Row{}, &SkippedRow{Line: line, Reason: fmt.Sprintf("invalid amount %q", cells[2])}
	}

	date := now
	if len(cells) > 4 {
		if value := strings.TrimSpace(cells[4]); value != "" {
			if parsed, err := time.Parse(DateLayout, value); err == nil {
				date = parsed
			}
		}
	}

	return Row{
		Description: cells[1],
		Amount:      amount,
		Category:    cells[3],
		Date:        date,
	}, nil
}
