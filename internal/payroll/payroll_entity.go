package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ComponentTypeIncome    = "income"
	ComponentTypeDeduction = "deduction"

	ComponentCategoryFixed     = "fixed"
	ComponentCategoryVariable  = "variable"
	ComponentCategoryBpjs      = "bpjs"
	ComponentCategoryAllowance = "allowance"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
	StatusRejected = "REJECTED"
	StatusUnpaid   = "UNPAID"
)

// PayrollComponent adalah komponen global perhitungan gaji (BPJS, tunjangan
// tetap, potongan). Kalau Percentage > 0 komponen dihitung persentase dari
// gaji pokok murni, kalau tidak dipakai Amount flat.
type PayrollComponent struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"size:255;not null;uniqueIndex:uq_payroll_component_name"`
	Type       string          `gorm:"size:20;not null"`
	Category   string          `gorm:"size:20;not null"`
	Percentage decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	Amount     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	IsActive   bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

// Payroll menyimpan hasil perhitungan yang sudah di-resolve untuk satu
// periode gaji. Maksimal satu baris per karyawan per bulan kalender:
// payment_month selalu diisi tanggal 1 bulan payment_date dan dijaga
// unik per karyawan lewat uq_payroll_employee_month.
type Payroll struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_payroll_employee_month"`
	PaymentDate  time.Time `gorm:"type:date;not null"`
	PaymentMonth time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_employee_month"`

	BasicSalary     decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	TotalAllowances decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`

	BpjsKesehatanPerusahaan       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	BpjsKesehatanKaryawan         decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	BpjsKetenagakerjaanPerusahaan decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	BpjsKetenagakerjaanKaryawan   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`

	Kasbon         decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Telat          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	AngsuranKredit decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`

	PendapatanTetap      decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	PendapatanTidakTetap decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	TotalPendapatan      decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	NetSalary            decimal.Decimal `gorm:"type:numeric(15,2);not null"`

	Status    string         `gorm:"size:20;not null;default:PENDING"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
