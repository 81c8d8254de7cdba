package payroll

import "github.com/shopspring/decimal"

type CreateComponentRequest struct {
	Name       string          `json:"name" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=income deduction"`
	Category   string          `json:"category" binding:"required,oneof=fixed variable bpjs allowance"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

type UpdateComponentRequest struct {
	Name       string          `json:"name" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=income deduction"`
	Category   string          `json:"category" binding:"required,oneof=fixed variable bpjs allowance"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	IsActive   *bool           `json:"is_active"`
}

type ComponentResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	IsActive   bool            `json:"is_active"`
}

type CalculateRequest struct {
	EmployeeID       string           `json:"employee_id" binding:"required,uuid"`
	BasicSalaryInput decimal.Decimal  `json:"basic_salary"`
	ManualDeductions ManualDeductions `json:"manual_deductions"`
}

type CreatePayrollRequest struct {
	EmployeeID       string           `json:"employee_id" binding:"required,uuid"`
	PaymentDate      string           `json:"payment_date" binding:"required"`
	BasicSalaryInput decimal.Decimal  `json:"basic_salary"`
	ManualDeductions ManualDeductions `json:"manual_deductions"`

	// Sub-amount BPJS boleh dikirim eksplisit; kalau nol/absen akan dihitung
	// ulang dari komponen bpjs aktif sebelum subtotal dijumlahkan.
	BpjsKesehatanPerusahaan       decimal.Decimal `json:"bpjs_kesehatan_perusahaan"`
	BpjsKesehatanKaryawan         decimal.Decimal `json:"bpjs_kesehatan_karyawan"`
	BpjsKetenagakerjaanPerusahaan decimal.Decimal `json:"bpjs_ketenagakerjaan_perusahaan"`
	BpjsKetenagakerjaanKaryawan   decimal.Decimal `json:"bpjs_ketenagakerjaan_karyawan"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED PAID REJECTED UNPAID"`
}

type PayrollResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PaymentDate string `json:"payment_date"`

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`

	BpjsKesehatanPerusahaan       decimal.Decimal `json:"bpjs_kesehatan_perusahaan"`
	BpjsKesehatanKaryawan         decimal.Decimal `json:"bpjs_kesehatan_karyawan"`
	BpjsKetenagakerjaanPerusahaan decimal.Decimal `json:"bpjs_ketenagakerjaan_perusahaan"`
	BpjsKetenagakerjaanKaryawan   decimal.Decimal `json:"bpjs_ketenagakerjaan_karyawan"`

	Kasbon         decimal.Decimal `json:"kasbon"`
	Telat          decimal.Decimal `json:"telat"`
	AngsuranKredit decimal.Decimal `json:"angsuran_kredit"`

	PendapatanTetap      decimal.Decimal `json:"pendapatan_tetap"`
	PendapatanTidakTetap decimal.Decimal `json:"pendapatan_tidak_tetap"`
	TotalPendapatan      decimal.Decimal `json:"total_pendapatan"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	NetSalary            decimal.Decimal `json:"net_salary"`

	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PayrollDetailResponse struct {
	PayrollResponse
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}
