package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	attendanceerrors "github.com/AlfahrezaRico/backend/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Jam masuk lewat dari ini dihitung LATE.
const lateThreshold = "09:00"

var officeLocation = mustLoadLocation("Asia/Jakarta")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]AttendanceResponse, int64, error)
	ExportPeriod(ctx context.Context, year int, month time.Month) ([]byte, string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	now := s.now().In(officeLocation)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, officeLocation)

	status := StatusPresent
	if now.Format("15:04") > lateThreshold {
		status = StatusLate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       today,
		ClockIn:    &now,
		Status:     status,
		Notes:      req.Notes,
	}
	if err := qtx.Create(ctx, record); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance clock-in",
		zap.String("employee_id", req.EmployeeID),
		zap.String("status", status),
	)
	return mapToResponse(*record), nil
}

func (s *service) ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error) {
	now := s.now().In(officeLocation)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, officeLocation)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if record.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	record.ClockOut = &now
	if err := qtx.Update(ctx, record); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]AttendanceResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 31
	}

	records, total, err := s.repo.FindByEmployee(ctx, employeeID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]AttendanceResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp, total, nil
}

func (s *service) ExportPeriod(ctx context.Context, year int, month time.Month) ([]byte, string, error) {
	records, err := s.repo.FindByPeriod(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Employee ID", "Date", "Clock In", "Clock Out", "Status", "Notes"}
	for i, header := range headers {
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
			record.Date.Format("2006-01-02"),
			formatClock(record.ClockIn),
			formatClock(record.ClockOut),
			record.Status,
			record.Notes,
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

	filename := fmt.Sprintf("attendance-%04d-%02d.xlsx", year, int(month))
	return buf.Bytes(), filename, nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(officeLocation).Format("15:04:05")
}

func mapToResponse(record Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		Date:       record.Date.Format("2006-01-02"),
		ClockIn:    formatClock(record.ClockIn),
		ClockOut:   formatClock(record.ClockOut),
		Status:     record.Status,
		Notes:      record.Notes,
	}
}
