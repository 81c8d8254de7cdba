package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	leaveerrors "github.com/AlfahrezaRico/backend/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Semua pengecekan "tanggal sudah lewat" dievaluasi di zona waktu kantor,
// bukan zona server.
var officeLocation = mustLoadLocation("Asia/Jakarta")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetRequests(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetRequestByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id string) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)

	CreateQuota(ctx context.Context, req CreateQuotaRequest) (QuotaResponse, error)
	GetQuotas(ctx context.Context, employeeID string, year int) ([]QuotaResponse, error)
	UpdateQuota(ctx context.Context, id string, req UpdateQuotaRequest) (QuotaResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrRequestNotFound
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, officeLocation)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, officeLocation)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	now := s.now().In(officeLocation)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, officeLocation)
	if start.Before(today) {
		return LeaveResponse{}, leaveerrors.ErrStartDateInPast
	}

	days := InclusiveDays(start, end)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlap(ctx, req.EmployeeID, start, end)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrOverlappingRequest
	}

	// Hanya tipe tahunan yang dicek terhadap kuota; tipe lain lolos.
	if strings.EqualFold(req.LeaveType, TypeTahunan) {
		quota, err := qtx.FindQuota(ctx, req.EmployeeID, start.Year(), TypeTahunan)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrQuotaNotFound
			}
			return LeaveResponse{}, err
		}
		if quota.Remaining() < days {
			return LeaveResponse{}, leaveerrors.ErrQuotaExceeded
		}
	}

	record := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  strings.ToLower(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		TotalDays:  days,
		Reason:     req.Reason,
		ProofPath:  req.ProofPath,
		Status:     StatusPending,
	}
	if err := qtx.CreateRequest(ctx, record); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", record.LeaveType),
		zap.Int("total_days", days),
	)
	return mapRequestToResponse(*record), nil
}

func (s *service) GetRequests(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	requests, err := s.repo.FindRequests(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(requests))
	for i, req := range requests {
		resp[i] = mapRequestToResponse(req)
	}
	return resp, nil
}

func (s *service) GetRequestByID(ctx context.Context, id string) (LeaveResponse, error) {
	record, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveResponse{}, err
	}
	return mapRequestToResponse(*record), nil
}

// Approve memindahkan PENDING ke APPROVED dan memotong kuota sejumlah hari
// inklusif request. Guard transisinya atomik: approval ganda atau balapan
// hanya akan memotong kuota satu kali. Alasan "Sakit" tidak memotong kuota.
func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveResponse{}, err
	}
	if record.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	moved, err := qtx.TransitionStatus(ctx, id, StatusPending, StatusApproved)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !moved {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if strings.EqualFold(record.LeaveType, TypeTahunan) && record.Reason != ReasonSakit {
		consumed, err := qtx.ConsumeQuota(ctx,
			record.EmployeeID.String(), record.StartDate.Year(), TypeTahunan, record.TotalDays)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !consumed {
			return LeaveResponse{}, leaveerrors.ErrQuotaExceeded
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request approved",
		zap.String("leave_id", id),
		zap.Int("total_days", record.TotalDays),
	)
	record.Status = StatusApproved
	return mapRequestToResponse(*record), nil
}

func (s *service) Reject(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transition(ctx, id, StatusPending, StatusRejected)
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transition(ctx, id, StatusPending, StatusCancelled)
}

func (s *service) transition(ctx context.Context, id, from, to string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveResponse{}, err
	}

	moved, err := qtx.TransitionStatus(ctx, id, from, to)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !moved {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	record.Status = to
	return mapRequestToResponse(*record), nil
}

func (s *service) CreateQuota(ctx context.Context, req CreateQuotaRequest) (QuotaResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return QuotaResponse{}, leaveerrors.ErrQuotaNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuotaResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	quota := &LeaveQuota{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Year:       req.Year,
		QuotaType:  strings.ToLower(req.QuotaType),
		TotalQuota: req.TotalQuota,
	}
	if err := qtx.CreateQuota(ctx, quota); err != nil {
		return QuotaResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return QuotaResponse{}, err
	}

	return mapQuotaToResponse(*quota), nil
}

func (s *service) GetQuotas(ctx context.Context, employeeID string, year int) ([]QuotaResponse, error) {
	quotas, err := s.repo.FindQuotas(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]QuotaResponse, len(quotas))
	for i, quota := range quotas {
		resp[i] = mapQuotaToResponse(quota)
	}
	return resp, nil
}

func (s *service) UpdateQuota(ctx context.Context, id string, req UpdateQuotaRequest) (QuotaResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuotaResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	quota, err := qtx.FindQuotaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotaResponse{}, leaveerrors.ErrQuotaNotFound
		}
		return QuotaResponse{}, err
	}

	// used_quota tidak bisa diedit langsung, hanya lewat approval.
	quota.TotalQuota = req.TotalQuota

	if err := qtx.UpdateQuota(ctx, quota); err != nil {
		return QuotaResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return QuotaResponse{}, err
	}

	return mapQuotaToResponse(*quota), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrQuotaNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leaveerrors.ErrQuotaExists
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return leaveerrors.ErrQuotaExists
	}

	return err
}

func mapRequestToResponse(record LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		LeaveType:  record.LeaveType,
		StartDate:  record.StartDate.Format("2006-01-02"),
		EndDate:    record.EndDate.Format("2006-01-02"),
		TotalDays:  record.TotalDays,
		Reason:     record.Reason,
		ProofPath:  record.ProofPath,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  record.UpdatedAt.Format(time.RFC3339),
	}
}

func mapQuotaToResponse(quota LeaveQuota) QuotaResponse {
	return QuotaResponse{
		ID:         quota.ID.String(),
		EmployeeID: quota.EmployeeID.String(),
		Year:       quota.Year,
		QuotaType:  quota.QuotaType,
		TotalQuota: quota.TotalQuota,
		UsedQuota:  quota.UsedQuota,
		Remaining:  quota.Remaining(),
	}
}
