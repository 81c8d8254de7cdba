package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Salary menyimpan gaji pokok murni (tanpa tunjangan) per karyawan.
// Tunjangan disimpan terpisah per jenis dan boleh kosong.
type Salary struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EmployeeID          uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_salary_employee"`
	BasicSalary         decimal.Decimal     `gorm:"type:numeric(15,2);not null"`
	PositionAllowance   decimal.NullDecimal `gorm:"type:numeric(15,2)"`
	ManagementAllowance decimal.NullDecimal `gorm:"type:numeric(15,2)"`
	PhoneAllowance      decimal.NullDecimal `gorm:"type:numeric(15,2)"`
	IncentiveAllowance  decimal.NullDecimal `gorm:"type:numeric(15,2)"`
	OvertimeAllowance   decimal.NullDecimal `gorm:"type:numeric(15,2)"`
	CreatedAt           time.Time           `gorm:"autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt      `gorm:"index"`
}

// TotalAllowances menjumlahkan lima field tunjangan, NULL dihitung nol.
func (s Salary) TotalAllowances() decimal.Decimal {
	total := decimal.Zero
	for _, a := range []decimal.NullDecimal{
		s.PositionAllowance,
		s.ManagementAllowance,
		s.PhoneAllowance,
		s.IncentiveAllowance,
		s.OvertimeAllowance,
	} {
		if a.Valid {
			total = total.Add(a.Decimal)
		}
	}
	return total
}
