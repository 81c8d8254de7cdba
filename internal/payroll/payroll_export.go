package payroll

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var exportHeaders = []string{
	"Employee ID", "Payment Date", "Basic Salary", "Total Allowances",
	"BPJS Kesehatan (Perusahaan)", "BPJS Kesehatan (Karyawan)",
	"BPJS Ketenagakerjaan (Perusahaan)", "BPJS Ketenagakerjaan (Karyawan)",
	"Kasbon", "Telat", "Angsuran Kredit",
	"Pendapatan Tetap", "Pendapatan Tidak Tetap", "Total Pendapatan",
	"Total Deductions", "Net Salary", "Status",
}

// ExportPeriod membangun file xlsx berisi semua payroll dalam satu bulan
// kalender. Nilai uang ditulis sebagai string desimal supaya tidak ada
// kehilangan presisi lewat float excel.
func (s *service) ExportPeriod(ctx context.Context, year int, month time.Month) ([]byte, string, error) {
	records, err := s.repo.FindPayrollsByPeriod(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for row, record := range records {
		values := []any{
			record.EmployeeID.String(),
			record.PaymentDate.Format("2006-01-02"),
			record.BasicSalary.StringFixed(2),
			record.TotalAllowances.StringFixed(2),
			record.BpjsKesehatanPerusahaan.StringFixed(2),
			record.BpjsKesehatanKaryawan.StringFixed(2),
			record.BpjsKetenagakerjaanPerusahaan.StringFixed(2),
			record.BpjsKetenagakerjaanKaryawan.StringFixed(2),
			record.Kasbon.StringFixed(2),
			record.Telat.StringFixed(2),
			record.AngsuranKredit.StringFixed(2),
			record.PendapatanTetap.StringFixed(2),
			record.PendapatanTidakTetap.StringFixed(2),
			record.TotalPendapatan.StringFixed(2),
			record.TotalDeductions.StringFixed(2),
			record.NetSalary.StringFixed(2),
			record.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payroll-%04d-%02d.xlsx", year, int(month))
	s.logger.Info("payroll period exported",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("rows", len(records)),
	)
	return buf.Bytes(), filename, nil
}
