package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AlfahrezaRico/backend/internal/events"
	payrollerrors "github.com/AlfahrezaRico/backend/internal/payroll/errors"
	"github.com/AlfahrezaRico/backend/internal/salary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePayrollRepo struct {
	components []PayrollComponent
	payrolls   map[string]*Payroll
	createErr  error
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: map[string]*Payroll{}}
}

func (f *fakePayrollRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakePayrollRepo) CreateComponent(ctx context.Context, c *PayrollComponent) error {
	f.components = append(f.components, *c)
	return nil
}

func (f *fakePayrollRepo) FindAllComponents(ctx context.Context) ([]PayrollComponent, error) {
	return f.components, nil
}

func (f *fakePayrollRepo) FindActiveComponents(ctx context.Context) ([]PayrollComponent, error) {
	var active []PayrollComponent
	for _, c := range f.components {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (f *fakePayrollRepo) FindComponentByID(ctx context.Context, id string) (*PayrollComponent, error) {
	for i := range f.components {
		if f.components[i].ID.String() == id {
			return &f.components[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepo) UpdateComponent(ctx context.Context, c *PayrollComponent) error { return nil }

func (f *fakePayrollRepo) DeleteComponent(ctx context.Context, id string) error { return nil }

func (f *fakePayrollRepo) CreatePayroll(ctx context.Context, record *Payroll) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.payrolls[record.ID.String()] = record
	return nil
}

func (f *fakePayrollRepo) FindPayrolls(ctx context.Context, employeeID string, limit, offset int) ([]Payroll, int64, error) {
	var out []Payroll
	for _, p := range f.payrolls {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) FindPayrollByID(ctx context.Context, id string) (*Payroll, error) {
	if p, ok := f.payrolls[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepo) FindPayrollsByPeriod(ctx context.Context, year int, month time.Month) ([]Payroll, error) {
	var out []Payroll
	for _, p := range f.payrolls {
		if p.PaymentDate.Year() == year && p.PaymentDate.Month() == month {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) ExistsForMonth(ctx context.Context, employeeID string, paymentDate time.Time) (bool, error) {
	for _, p := range f.payrolls {
		if p.EmployeeID.String() == employeeID &&
			p.PaymentDate.Year() == paymentDate.Year() &&
			p.PaymentDate.Month() == paymentDate.Month() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) UpdatePayrollStatus(ctx context.Context, id, status string) error {
	if p, ok := f.payrolls[id]; ok {
		p.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeSalaryRepo struct {
	byEmployee map[string]*salary.Salary
}

func (f *fakeSalaryRepo) WithTx(tx *sql.Tx) salary.Repository { return f }

func (f *fakeSalaryRepo) Create(ctx context.Context, record *salary.Salary) error { return nil }

func (f *fakeSalaryRepo) FindAll(ctx context.Context) ([]salary.Salary, error) { return nil, nil }

func (f *fakeSalaryRepo) FindByID(ctx context.Context, id string) (*salary.Salary, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRepo) FindByEmployee(ctx context.Context, employeeID string) (*salary.Salary, error) {
	if s, ok := f.byEmployee[employeeID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRepo) Update(ctx context.Context, record *salary.Salary) error { return nil }

func (f *fakeSalaryRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeOutbox struct {
	appended []string
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) events.OutboxRepository { return f }

func (f *fakeOutbox) Append(ctx context.Context, topic, key string, payload any) error {
	f.appended = append(f.appended, topic)
	return nil
}

func (f *fakeOutbox) FetchPending(ctx context.Context, limit int) ([]events.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error { return nil }

func newPayrollService(t *testing.T, repo *fakePayrollRepo, salaryRepo *fakeSalaryRepo, outbox *fakeOutbox, mockSetup func(sqlmock.Sqlmock)) Service {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	if mockSetup != nil {
		mockSetup(mock)
	}
	return NewService(db, repo, salaryRepo, outbox)
}

func seedEmployeeSalary(basic string) (*fakeSalaryRepo, string) {
	employeeID := uuid.New()
	sal := &salary.Salary{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		BasicSalary: dec(basic),
	}
	return &fakeSalaryRepo{byEmployee: map[string]*salary.Salary{employeeID.String(): sal}}, employeeID.String()
}

func TestCreate_PersistsDerivedTotalsAndOutboxEvent(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.components = []PayrollComponent{
		{Name: "BPJS JHT (Perusahaan)", Type: ComponentTypeIncome, Category: ComponentCategoryBpjs, Percentage: dec("3.7"), IsActive: true},
		{Name: "BPJS Kesehatan (Karyawan)", Type: ComponentTypeDeduction, Category: ComponentCategoryBpjs, Percentage: dec("1"), IsActive: true},
	}
	salaryRepo, employeeID := seedEmployeeSalary("10000000")
	outbox := &fakeOutbox{}

	svc := newPayrollService(t, repo, salaryRepo, outbox, func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectCommit()
	})

	got, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:       employeeID,
		PaymentDate:      "2026-08-25",
		ManualDeductions: ManualDeductions{Kasbon: dec("200000")},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, got.Status)
	assert.True(t, dec("10370000").Equal(got.PendapatanTetap))
	assert.True(t, dec("300000").Equal(got.TotalDeductions))
	assert.True(t, dec("10070000").Equal(got.NetSalary))
	// Sub-amount BPJS karyawan tidak dikirim klien, dihitung ulang dari
	// komponen persentase.
	assert.True(t, dec("100000").Equal(got.BpjsKesehatanKaryawan))

	require.Len(t, outbox.appended, 1)
	assert.Equal(t, events.TopicPayrollCreated, outbox.appended[0])
}

func TestCreate_RejectsSecondPayrollSameMonth(t *testing.T) {
	repo := newFakePayrollRepo()
	salaryRepo, employeeID := seedEmployeeSalary("8000000")
	outbox := &fakeOutbox{}

	svc := newPayrollService(t, repo, salaryRepo, outbox, func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectRollback()
	})

	first := CreatePayrollRequest{EmployeeID: employeeID, PaymentDate: "2026-08-25"}
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	// Tanggal beda, bulan sama, nominal beda: tetap Conflict.
	second := CreatePayrollRequest{
		EmployeeID:       employeeID,
		PaymentDate:      "2026-08-01",
		ManualDeductions: ManualDeductions{Kasbon: dec("50000")},
	}
	_, err = svc.Create(context.Background(), second)
	assert.ErrorIs(t, err, payrollerrors.ErrDuplicateMonth)
	assert.Len(t, outbox.appended, 1)
}

func TestCreate_SetsPaymentMonthToFirstOfMonth(t *testing.T) {
	repo := newFakePayrollRepo()
	salaryRepo, employeeID := seedEmployeeSalary("8000000")

	svc := newPayrollService(t, repo, salaryRepo, &fakeOutbox{}, func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectCommit()
	})

	got, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  employeeID,
		PaymentDate: "2026-08-25",
	})
	require.NoError(t, err)

	stored := repo.payrolls[got.ID]
	require.NotNil(t, stored)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), stored.PaymentMonth)
}

func TestCreate_LostRaceOnUniqueMonthIndex(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_employee_month"}
	salaryRepo, employeeID := seedEmployeeSalary("8000000")
	outbox := &fakeOutbox{}

	svc := newPayrollService(t, repo, salaryRepo, outbox, func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectRollback()
	})

	// Penulis lain menang setelah cek ExistsForMonth lolos.
	_, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  employeeID,
		PaymentDate: "2026-08-25",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrDuplicateMonth)
	assert.Empty(t, outbox.appended)
}

func TestCreate_SalaryMissing(t *testing.T) {
	svc := newPayrollService(t, newFakePayrollRepo(), &fakeSalaryRepo{byEmployee: map[string]*salary.Salary{}}, &fakeOutbox{}, func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectRollback()
	})

	_, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  uuid.NewString(),
		PaymentDate: "2026-08-25",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrSalaryNotFound)
}

func TestCreate_RejectsNegativeManualDeduction(t *testing.T) {
	svc := newPayrollService(t, newFakePayrollRepo(), &fakeSalaryRepo{}, &fakeOutbox{}, nil)

	_, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:       uuid.NewString(),
		PaymentDate:      "2026-08-25",
		ManualDeductions: ManualDeductions{Telat: dec("-100")},
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidAmount)
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPaid, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusUnpaid, true},
		{StatusApproved, StatusPending, false},
		{StatusUnpaid, StatusPaid, true},
		{StatusPaid, StatusPending, false},
		{StatusRejected, StatusApproved, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			repo := newFakePayrollRepo()
			record := &Payroll{
				ID:          uuid.New(),
				EmployeeID:  uuid.New(),
				PaymentDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
				Status:      tc.from,
			}
			repo.payrolls[record.ID.String()] = record

			svc := newPayrollService(t, repo, &fakeSalaryRepo{}, &fakeOutbox{}, func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				if tc.allowed {
					mock.ExpectCommit()
				} else {
					mock.ExpectRollback()
				}
			})

			got, err := svc.UpdateStatus(context.Background(), record.ID.String(), UpdateStatusRequest{Status: tc.to})
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, got.Status)
			} else {
				assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
			}
		})
	}
}

func TestCalculate_DoesNotWritePayrollRows(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.components = []PayrollComponent{
		{Name: "BPJS JHT (Perusahaan)", Type: ComponentTypeIncome, Category: ComponentCategoryBpjs, Percentage: dec("3.7"), IsActive: true},
	}
	salaryRepo, employeeID := seedEmployeeSalary("10000000")

	svc := newPayrollService(t, repo, salaryRepo, &fakeOutbox{}, nil)

	got, err := svc.Calculate(context.Background(), CalculateRequest{EmployeeID: employeeID})
	require.NoError(t, err)

	assert.True(t, dec("370000").Equal(got.TotalIncome))
	assert.Empty(t, repo.payrolls)
}

func TestExportPeriod_BuildsWorkbook(t *testing.T) {
	repo := newFakePayrollRepo()
	record := &Payroll{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		PaymentDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		BasicSalary: dec("10000000"),
		NetSalary:   dec("10570000"),
		Status:      StatusApproved,
	}
	repo.payrolls[record.ID.String()] = record

	svc := newPayrollService(t, repo, &fakeSalaryRepo{}, &fakeOutbox{}, nil)

	body, filename, err := svc.ExportPeriod(context.Background(), 2026, time.August)
	require.NoError(t, err)

	assert.Equal(t, "payroll-2026-08.xlsx", filename)
	assert.NotEmpty(t, body)
	// File xlsx adalah arsip zip, dua byte pertama "PK".
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}
