package payroll

import (
	"strings"

	payrollerrors "github.com/AlfahrezaRico/backend/internal/payroll/errors"
	"github.com/AlfahrezaRico/backend/internal/salary"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ManualDeductions adalah potongan yang diinput manual oleh HR/Finance.
type ManualDeductions struct {
	Kasbon         decimal.Decimal `json:"kasbon"`
	Telat          decimal.Decimal `json:"telat"`
	AngsuranKredit decimal.Decimal `json:"angsuran_kredit"`
}

func (m ManualDeductions) Total() decimal.Decimal {
	return m.Kasbon.Add(m.Telat).Add(m.AngsuranKredit)
}

func (m ManualDeductions) Validate() error {
	for _, d := range []decimal.Decimal{m.Kasbon, m.Telat, m.AngsuranKredit} {
		if d.IsNegative() {
			return payrollerrors.ErrInvalidAmount
		}
	}
	return nil
}

// ComponentAmount adalah kontribusi satu komponen terhadap slip gaji.
type ComponentAmount struct {
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	PercentageBased bool            `json:"percentage_based"`
	Percentage      decimal.Decimal `json:"percentage"`
}

// Breakdown adalah hasil lengkap kalkulasi: per komponen plus agregat.
// net_salary = total_pendapatan - total_deduction selalu berlaku eksak.
type Breakdown struct {
	EmployeeID       string            `json:"employee_id"`
	BasicSalary      decimal.Decimal   `json:"basic_salary"`
	BasicSalaryInput decimal.Decimal   `json:"basic_salary_input"`
	Components       []ComponentAmount `json:"components"`

	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalAutoDeduction decimal.Decimal `json:"total_auto_deduction"`
	TotalAllowances    decimal.Decimal `json:"total_allowances"`

	PendapatanTetap      decimal.Decimal `json:"pendapatan_tetap"`
	PendapatanTidakTetap decimal.Decimal `json:"pendapatan_tidak_tetap"`
	TotalPendapatan      decimal.Decimal `json:"total_pendapatan"`

	TotalManualDeduction decimal.Decimal `json:"total_manual_deduction"`
	TotalDeduction       decimal.Decimal `json:"total_deduction"`
	NetSalary            decimal.Decimal `json:"net_salary"`
}

// componentContribution menghitung kontribusi satu komponen. Persentase
// menang kalau dua-duanya terisi; hasil dibulatkan half-up 2 desimal.
func componentContribution(c PayrollComponent, pureBasic decimal.Decimal) decimal.Decimal {
	if c.Percentage.IsPositive() {
		return pureBasic.Mul(c.Percentage).Div(oneHundred).Round(2)
	}
	if c.Amount.IsPositive() {
		return c.Amount.Round(2)
	}
	return decimal.Zero
}

// CalculateBreakdown adalah fungsi murni: input yang sama selalu menghasilkan
// breakdown yang identik, tidak ada state yang dimutasi.
//
// basicSalaryInput hanya di-echo kembali untuk tampilan; semua perhitungan
// persentase dan bucket memakai gaji pokok murni dari baris Salary.
func CalculateBreakdown(
	sal salary.Salary,
	components []PayrollComponent,
	basicSalaryInput decimal.Decimal,
	manual ManualDeductions,
) Breakdown {
	pureBasic := sal.BasicSalary

	totalIncome := decimal.Zero
	totalAutoDeduction := decimal.Zero
	amounts := make([]ComponentAmount, 0, len(components))

	for _, c := range components {
		if !c.IsActive {
			continue
		}
		amount := componentContribution(c, pureBasic)
		amounts = append(amounts, ComponentAmount{
			Name:            c.Name,
			Type:            c.Type,
			Category:        c.Category,
			Amount:          amount,
			PercentageBased: c.Percentage.IsPositive(),
			Percentage:      c.Percentage,
		})
		switch c.Type {
		case ComponentTypeIncome:
			totalIncome = totalIncome.Add(amount)
		case ComponentTypeDeduction:
			totalAutoDeduction = totalAutoDeduction.Add(amount)
		}
	}

	totalAllowances := sal.TotalAllowances()

	pendapatanTetap := pureBasic.Add(totalIncome)
	pendapatanTidakTetap := totalAllowances
	totalPendapatan := pendapatanTetap.Add(pendapatanTidakTetap)

	totalManual := manual.Total()
	totalDeduction := totalAutoDeduction.Add(totalManual)

	return Breakdown{
		EmployeeID:           sal.EmployeeID.String(),
		BasicSalary:          pureBasic,
		BasicSalaryInput:     basicSalaryInput,
		Components:           amounts,
		TotalIncome:          totalIncome,
		TotalAutoDeduction:   totalAutoDeduction,
		TotalAllowances:      totalAllowances,
		PendapatanTetap:      pendapatanTetap,
		PendapatanTidakTetap: pendapatanTidakTetap,
		TotalPendapatan:      totalPendapatan,
		TotalManualDeduction: totalManual,
		TotalDeduction:       totalDeduction,
		NetSalary:            totalPendapatan.Sub(totalDeduction),
	}
}

// fallbackIfZero mengembalikan stored kalau positif, kalau nol/absen dihitung
// ulang dari aturan persentase komponen bpjs yang namanya cocok. Jalur create
// memakai ini supaya sub-amount BPJS tidak pernah tersimpan nol hanya karena
// klien tidak mengirimnya.
func fallbackIfZero(stored decimal.Decimal, components []PayrollComponent, pureBasic decimal.Decimal, nameFragments ...string) decimal.Decimal {
	if stored.IsPositive() {
		return stored
	}
	for _, c := range components {
		if !c.IsActive || c.Category != ComponentCategoryBpjs {
			continue
		}
		name := strings.ToLower(c.Name)
		matched := true
		for _, fragment := range nameFragments {
			if !strings.Contains(name, strings.ToLower(fragment)) {
				matched = false
				break
			}
		}
		if matched {
			return componentContribution(c, pureBasic)
		}
	}
	return stored
}
