package payroll

import (
	"testing"

	"github.com/AlfahrezaRico/backend/internal/salary"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func testSalary(basic string) salary.Salary {
	return salary.Salary{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		BasicSalary: dec(basic),
	}
}

func TestCalculateBreakdown_EndToEnd(t *testing.T) {
	sal := testSalary("10000000")
	sal.PositionAllowance = nullDec("500000")

	components := []PayrollComponent{
		{
			Name:       "BPJS JHT (Perusahaan)",
			Type:       ComponentTypeIncome,
			Category:   ComponentCategoryBpjs,
			Percentage: dec("3.7"),
			IsActive:   true,
		},
		{
			Name:       "BPJS Kesehatan (Karyawan)",
			Type:       ComponentTypeDeduction,
			Category:   ComponentCategoryBpjs,
			Percentage: dec("1"),
			IsActive:   true,
		},
	}
	manual := ManualDeductions{Kasbon: dec("200000")}

	got := CalculateBreakdown(sal, components, dec("10500000"), manual)

	assert.True(t, dec("370000").Equal(got.TotalIncome), "total_income = %s", got.TotalIncome)
	assert.True(t, dec("100000").Equal(got.TotalAutoDeduction))
	assert.True(t, dec("500000").Equal(got.TotalAllowances))
	assert.True(t, dec("10370000").Equal(got.PendapatanTetap))
	assert.True(t, dec("500000").Equal(got.PendapatanTidakTetap))
	assert.True(t, dec("10870000").Equal(got.TotalPendapatan))
	assert.True(t, dec("200000").Equal(got.TotalManualDeduction))
	assert.True(t, dec("300000").Equal(got.TotalDeduction))
	assert.True(t, dec("10570000").Equal(got.NetSalary))
}

func TestCalculateBreakdown_IsPure(t *testing.T) {
	sal := testSalary("7250000")
	sal.PhoneAllowance = nullDec("150000")

	components := []PayrollComponent{
		{Name: "BPJS JP (Perusahaan)", Type: ComponentTypeIncome, Category: ComponentCategoryBpjs, Percentage: dec("2"), IsActive: true},
		{Name: "Potongan Koperasi", Type: ComponentTypeDeduction, Category: ComponentCategoryFixed, Amount: dec("25000"), IsActive: true},
	}
	manual := ManualDeductions{Telat: dec("50000")}

	first := CalculateBreakdown(sal, components, sal.BasicSalary, manual)
	second := CalculateBreakdown(sal, components, sal.BasicSalary, manual)

	assert.Equal(t, first, second)
}

func TestCalculateBreakdown_NetIdentityHolds(t *testing.T) {
	cases := []struct {
		name       string
		sal        salary.Salary
		components []PayrollComponent
		manual     ManualDeductions
	}{
		{
			name: "zero allowances zero manual",
			sal:  testSalary("5000000"),
			components: []PayrollComponent{
				{Name: "BPJS JHT (Perusahaan)", Type: ComponentTypeIncome, Category: ComponentCategoryBpjs, Percentage: dec("3.7"), IsActive: true},
			},
		},
		{
			name: "deduction only",
			sal:  testSalary("4123456.78"),
			components: []PayrollComponent{
				{Name: "BPJS Kesehatan (Karyawan)", Type: ComponentTypeDeduction, Category: ComponentCategoryBpjs, Percentage: dec("1"), IsActive: true},
			},
			manual: ManualDeductions{Kasbon: dec("99999.99"), AngsuranKredit: dec("0.01")},
		},
		{
			name:       "no active components",
			sal:        testSalary("1000000"),
			components: nil,
			manual:     ManualDeductions{Telat: dec("10000")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateBreakdown(tc.sal, tc.components, tc.sal.BasicSalary, tc.manual)
			assert.True(t, got.NetSalary.Equal(got.TotalPendapatan.Sub(got.TotalDeduction)))
		})
	}
}

func TestComponentContribution_PercentagePrecedence(t *testing.T) {
	basic := dec("10000000")

	// Percentage menang walau amount ikut terisi.
	both := PayrollComponent{Percentage: dec("2"), Amount: dec("999999"), IsActive: true}
	assert.True(t, dec("200000").Equal(componentContribution(both, basic)))

	flat := PayrollComponent{Amount: dec("75000"), IsActive: true}
	assert.True(t, dec("75000").Equal(componentContribution(flat, basic)))

	empty := PayrollComponent{IsActive: true}
	assert.True(t, componentContribution(empty, basic).IsZero())
}

func TestComponentContribution_RoundsHalfUpToTwoPlaces(t *testing.T) {
	// 3333333 x 0.15% = 4999.9995 -> 5000.00
	c := PayrollComponent{Percentage: dec("0.15"), IsActive: true}
	got := componentContribution(c, dec("3333333"))
	assert.Equal(t, "5000.00", got.StringFixed(2))

	// 1000001 x 1.25% = 12500.0125 -> 12500.01
	c = PayrollComponent{Percentage: dec("1.25"), IsActive: true}
	got = componentContribution(c, dec("1000001"))
	assert.Equal(t, "12500.01", got.StringFixed(2))
}

func TestCalculateBreakdown_SkipsInactiveComponents(t *testing.T) {
	sal := testSalary("10000000")
	components := []PayrollComponent{
		{Name: "Nonaktif", Type: ComponentTypeIncome, Category: ComponentCategoryFixed, Amount: dec("100000"), IsActive: false},
		{Name: "Aktif", Type: ComponentTypeIncome, Category: ComponentCategoryFixed, Amount: dec("50000"), IsActive: true},
	}

	got := CalculateBreakdown(sal, components, sal.BasicSalary, ManualDeductions{})

	require.Len(t, got.Components, 1)
	assert.Equal(t, "Aktif", got.Components[0].Name)
	assert.True(t, dec("50000").Equal(got.TotalIncome))
}

func TestFallbackIfZero(t *testing.T) {
	basic := dec("10000000")
	components := []PayrollComponent{
		{
			Name:       "BPJS Kesehatan (Perusahaan)",
			Type:       ComponentTypeIncome,
			Category:   ComponentCategoryBpjs,
			Percentage: dec("4"),
			IsActive:   true,
		},
		{
			Name:     "Tunjangan Makan",
			Type:     ComponentTypeIncome,
			Category: ComponentCategoryAllowance,
			Amount:   dec("300000"),
			IsActive: true,
		},
	}

	// Nilai tersimpan positif dipertahankan apa adanya.
	kept := fallbackIfZero(dec("123456"), components, basic, "kesehatan", "perusahaan")
	assert.True(t, dec("123456").Equal(kept))

	// Nol dihitung ulang dari komponen bpjs yang namanya cocok.
	recomputed := fallbackIfZero(decimal.Zero, components, basic, "kesehatan", "perusahaan")
	assert.True(t, dec("400000").Equal(recomputed))

	// Tanpa komponen bpjs yang cocok, nol tetap nol.
	missing := fallbackIfZero(decimal.Zero, components, basic, "ketenagakerjaan", "karyawan")
	assert.True(t, missing.IsZero())
}

func TestManualDeductions(t *testing.T) {
	m := ManualDeductions{Kasbon: dec("100"), Telat: dec("50"), AngsuranKredit: dec("25")}
	assert.True(t, dec("175").Equal(m.Total()))
	assert.NoError(t, m.Validate())

	negative := ManualDeductions{Kasbon: dec("-1")}
	assert.Error(t, negative.Validate())
}
