package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"ledger-app-go/internal/domain/ledger"
)

// WriteCSV writes expenses in export order (the caller's order is kept).
func WriteCSV(w io.Writer, expenses []ledger.Expense) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return err
	}

	for _, expense := range expenses {
		record := []string{
			strconv.FormatUint(uint64(expense.ID), 10),
			expense.Description,
			strconv.FormatFloat(expense.Amount, 'f', -1, 64),
			expense.Category,
			expense.Date.Format(DateLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses an expense CSV, skipping the header row. Recoverable row
// problems become SkippedRow entries; only a stream-level failure is an error.
func ReadCSV(r io.Reader, now time.Time) ([]Row, []SkippedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []Row{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	var skipped []SkippedRow
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}

		line++
		row, skip := parseCells(record, line, now)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}
