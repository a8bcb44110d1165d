package handler

import (
	"io"
	"net/http"
	"time"

	"ledger-app-go/internal/codec"
	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/internal/transport/httpserver/middleware"
)

const maxImportSize = 10 << 20 // 10 MiB multipart memory cap

func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	expenses, err := h.Ledger.Expenses(r.Context(), user.ID, ledger.ExpenseFilter{})
	if err != nil {
		h.log.InternalError("export: list expenses failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=expenses.csv`)
	if err := codec.WriteCSV(w, expenses); err != nil {
		h.log.InternalError("export: write csv failed", err, "user_id", user.ID)
	}
}

func (h *Handlers) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	expenses, err := h.Ledger.Expenses(r.Context(), user.ID, ledger.ExpenseFilter{})
	if err != nil {
		h.log.InternalError("export: list expenses failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=expenses.xlsx`)
	if err := codec.WriteXLSX(w, expenses); err != nil {
		h.log.InternalError("export: write xlsx failed", err, "user_id", user.ID)
	}
}

// ImportCSV bulk-loads expenses from an uploaded CSV. Re-importing a file
// exported from this same ledger debits the balance again for every row; the
// round-trip is deliberately not idempotent on balance.
func (h *Handlers) ImportCSV(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, "csv", func(file io.Reader, now time.Time) ([]codec.Row, []codec.SkippedRow, error) {
		return codec.ReadCSV(file, now)
	})
}

func (h *Handlers) ImportXLSX(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, "xlsx", func(file io.Reader, now time.Time) ([]codec.Row, []codec.SkippedRow, error) {
		return codec.ReadXLSX(file, now)
	})
}

func (h *Handlers) importFile(w http.ResponseWriter, r *http.Request, kind string, read func(io.Reader, time.Time) ([]codec.Row, []codec.SkippedRow, error)) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "no file part")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "no file part")
		return
	}
	defer file.Close()

	switch kind {
	case "csv":
		if !hasExtension(header.Filename, ".csv") {
			writeError(w, http.StatusBadRequest, "invalid_request", "file must be a CSV")
			return
		}
	case "xlsx":
		if !hasExtension(header.Filename, ".xlsx", ".xls") {
			writeError(w, http.StatusBadRequest, "invalid_request", "file must be an Excel file (.xlsx or .xls)")
			return
		}
	}

	rows, skipped, err := read(file, time.Now().UTC())
	if err != nil {
		h.log.BusinessError("import: unreadable file", err, "user_id", user.ID, "filename", header.Filename)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "could not read file: " + err.Error(),
		})
		return
	}

	imports := make([]ledger.ImportRow, 0, len(rows))
	for _, row := range rows {
		imports = append(imports, ledger.ImportRow{
			Description: row.Description,
			Amount:      row.Amount,
			Category:    row.Category,
			Date:        row.Date,
		})
	}

	result, err := h.Ledger.ImportExpenses(r.Context(), user.ID, imports)
	if err != nil {
		h.log.InternalError("import: apply failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	progress, err := h.currentBudgetProgress(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("import: compute progress failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if skipped == nil {
		skipped = []codec.SkippedRow{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"importedCount":  result.ImportedCount,
		"totalAmount":    result.TotalAmount,
		"balance":        result.Balance,
		"budgetProgress": progress,
		"skipped":        skipped,
	})
}
