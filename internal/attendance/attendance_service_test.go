package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "github.com/AlfahrezaRico/backend/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttendanceRepo struct {
	records []*Attendance
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *Attendance) error {
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID && existing.Date.Equal(record.Date) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_day"}
		}
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	for _, record := range f.records {
		if record.EmployeeID.String() == employeeID && record.Date.Equal(date) {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Attendance, int64, error) {
	var out []Attendance
	for _, record := range f.records {
		if record.EmployeeID.String() == employeeID {
			out = append(out, *record)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) FindByPeriod(ctx context.Context, year int, month time.Month) ([]Attendance, error) {
	var out []Attendance
	for _, record := range f.records {
		if record.Date.Year() == year && record.Date.Month() == month {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record *Attendance) error { return nil }

func newAttendanceService(t *testing.T, repo Repository, at time.Time, commits, rollbacks int) Service {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < commits+rollbacks; i++ {
		mock.ExpectBegin()
	}
	for i := 0; i < commits; i++ {
		mock.ExpectCommit()
	}
	for i := 0; i < rollbacks; i++ {
		mock.ExpectRollback()
	}

	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return at }
	return svc
}

func TestClockIn_BeforeThresholdIsPresent(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	at := time.Date(2026, 8, 3, 8, 45, 0, 0, officeLocation)
	svc := newAttendanceService(t, repo, at, 1, 0)

	got, err := svc.ClockIn(context.Background(), ClockInRequest{EmployeeID: uuid.NewString()})
	require.NoError(t, err)

	assert.Equal(t, StatusPresent, got.Status)
	assert.Equal(t, "2026-08-03", got.Date)
	assert.Equal(t, "08:45:00", got.ClockIn)
}

func TestClockIn_AfterThresholdIsLate(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	at := time.Date(2026, 8, 3, 9, 1, 0, 0, officeLocation)
	svc := newAttendanceService(t, repo, at, 1, 0)

	got, err := svc.ClockIn(context.Background(), ClockInRequest{EmployeeID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, StatusLate, got.Status)
}

func TestClockIn_TwiceSameDayConflict(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	at := time.Date(2026, 8, 3, 8, 0, 0, 0, officeLocation)
	svc := newAttendanceService(t, repo, at, 1, 1)

	employeeID := uuid.NewString()
	_, err := svc.ClockIn(context.Background(), ClockInRequest{EmployeeID: employeeID})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), ClockInRequest{EmployeeID: employeeID})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
}

func TestClockOut(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	at := time.Date(2026, 8, 3, 8, 0, 0, 0, officeLocation)
	svc := newAttendanceService(t, repo, at, 2, 2).(*service)

	employeeID := uuid.NewString()

	// Belum clock-in sama sekali.
	_, err := svc.ClockOut(context.Background(), ClockOutRequest{EmployeeID: employeeID})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)

	_, err = svc.ClockIn(context.Background(), ClockInRequest{EmployeeID: employeeID})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 8, 3, 17, 30, 0, 0, officeLocation) }
	got, err := svc.ClockOut(context.Background(), ClockOutRequest{EmployeeID: employeeID})
	require.NoError(t, err)
	assert.Equal(t, "17:30:00", got.ClockOut)

	_, err = svc.ClockOut(context.Background(), ClockOutRequest{EmployeeID: employeeID})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
}

func TestExportPeriod(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	at := time.Date(2026, 8, 3, 8, 0, 0, 0, officeLocation)
	svc := newAttendanceService(t, repo, at, 1, 0)

	_, err := svc.ClockIn(context.Background(), ClockInRequest{EmployeeID: uuid.NewString()})
	require.NoError(t, err)

	body, filename, err := svc.ExportPeriod(context.Background(), 2026, time.August)
	require.NoError(t, err)

	assert.Equal(t, "attendance-2026-08.xlsx", filename)
	require.Greater(t, len(body), 2)
	assert.Equal(t, "PK", string(body[:2]))
}
