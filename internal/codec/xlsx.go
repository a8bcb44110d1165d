package codec

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"ledger-app-go/internal/domain/ledger"
)

const (
	sheetName      = "Expenses"
	columnWidth    = 15
	firstDataRow   = 2
	lastColumnName = "E"
)

// WriteXLSX writes expenses to a single-sheet workbook with a bold header row
// and fixed column widths.
func WriteXLSX(w io.Writer, expenses []ledger.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, column); err != nil {
			return err
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastColumnName+"1", boldStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", lastColumnName, columnWidth); err != nil {
		return err
	}

	for i, expense := range expenses {
		row := firstDataRow + i
		values := []interface{}{
			expense.ID,
			expense.Description,
			expense.Amount,
			expense.Category,
			expense.Date.Format(DateLayout),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// ReadXLSX parses the first sheet of a workbook under the shared column
// contract. A workbook that cannot be opened at all is an error; row-level
// problems become SkippedRow entries like the CSV path.
func ReadXLSX(r io.Reader, now time.Time) ([]Row, []SkippedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var rows []Row
	var skipped []SkippedRow

	for i, record := range cells {
		if i == 0 {
			continue
		}

		line := i + 1
		row, skip := parseCells(record, line, now)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}
