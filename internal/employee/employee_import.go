package employee

import (
	"bytes"
	"context"
	"strings"

	employeeerrors "github.com/AlfahrezaRico/backend/internal/employee/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Urutan kolom yang diharapkan di sheet pertama, baris pertama header.
var importColumns = []string{
	"first_name", "last_name", "email", "phone",
	"address", "position", "department_id", "hire_date",
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ImportXlsx memproses baris file secara berurutan. Baris yang gagal dicatat
// di hasil per-baris dan tidak membatalkan baris yang sudah masuk; tidak ada
// transaksi yang membungkus seluruh batch.
func (s *service) ImportXlsx(ctx context.Context, fileBytes []byte) (ImportSummary, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return ImportSummary{}, employeeerrors.ErrInvalidImportFile
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ImportSummary{}, employeeerrors.ErrInvalidImportFile
	}
	if len(rows) < 2 {
		return ImportSummary{}, employeeerrors.ErrInvalidImportFile.WithDetails(
			"file must contain a header row and at least one data row",
		)
	}

	header := rows[0]
	for i, col := range importColumns[:3] {
		if !strings.EqualFold(cellAt(header, i), col) {
			return ImportSummary{}, employeeerrors.ErrInvalidImportFile.WithDetails(
				"header row must start with: " + strings.Join(importColumns, ", "),
			)
		}
	}

	summary := ImportSummary{Results: make([]ImportRowResult, 0, len(rows)-1)}

	for i, row := range rows[1:] {
		rowNum := i + 2
		summary.Total++

		req := CreateEmployeeRequest{
			FirstName:    cellAt(row, 0),
			LastName:     cellAt(row, 1),
			Email:        cellAt(row, 2),
			Phone:        cellAt(row, 3),
			Address:      cellAt(row, 4),
			Position:     cellAt(row, 5),
			DepartmentID: cellAt(row, 6),
			HireDate:     cellAt(row, 7),
		}

		if req.FirstName == "" || req.Email == "" || req.DepartmentID == "" {
			summary.Failed++
			summary.Results = append(summary.Results, ImportRowResult{
				Row:    rowNum,
				Status: "failed",
				Error:  "first_name, email, and department_id are required",
			})
			continue
		}

		created, err := s.Create(ctx, req)
		if err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, ImportRowResult{
				Row:    rowNum,
				Status: "failed",
				Error:  err.Error(),
			})
			continue
		}

		summary.Imported++
		summary.Results = append(summary.Results, ImportRowResult{
			Row:    rowNum,
			Status: "imported",
			Nik:    created.Nik,
		})
	}

	s.logger.Info("employee import finished",
		zap.Int("total", summary.Total),
		zap.Int("imported", summary.Imported),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}
