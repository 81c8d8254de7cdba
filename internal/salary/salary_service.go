package salary

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	salaryerrors "github.com/AlfahrezaRico/backend/internal/salary/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (SalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func validateAmounts(basic decimal.Decimal, allowances ...*decimal.Decimal) error {
	if !basic.IsPositive() {
		return salaryerrors.ErrInvalidBasicSalary
	}
	for _, a := range allowances {
		if a != nil && a.IsNegative() {
			return salaryerrors.ErrInvalidAllowance
		}
	}
	return nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (s *service) Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error) {
	if err := validateAmounts(req.BasicSalary,
		req.PositionAllowance, req.ManagementAllowance, req.PhoneAllowance,
		req.IncentiveAllowance, req.OvertimeAllowance,
	); err != nil {
		return SalaryResponse{}, err
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &Salary{
		ID:                  uuid.New(),
		EmployeeID:          employeeID,
		BasicSalary:         req.BasicSalary,
		PositionAllowance:   toNullDecimal(req.PositionAllowance),
		ManagementAllowance: toNullDecimal(req.ManagementAllowance),
		PhoneAllowance:      toNullDecimal(req.PhoneAllowance),
		IncentiveAllowance:  toNullDecimal(req.IncentiveAllowance),
		OvertimeAllowance:   toNullDecimal(req.OvertimeAllowance),
	}
	if err := qtx.Create(ctx, record); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("salary record created",
		zap.String("salary_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SalaryResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (SalaryResponse, error) {
	record, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	if err := validateAmounts(req.BasicSalary,
		req.PositionAllowance, req.ManagementAllowance, req.PhoneAllowance,
		req.IncentiveAllowance, req.OvertimeAllowance,
	); err != nil {
		return SalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}

	record.BasicSalary = req.BasicSalary
	record.PositionAllowance = toNullDecimal(req.PositionAllowance)
	record.ManagementAllowance = toNullDecimal(req.ManagementAllowance)
	record.PhoneAllowance = toNullDecimal(req.PhoneAllowance)
	record.IncentiveAllowance = toNullDecimal(req.IncentiveAllowance)
	record.OvertimeAllowance = toNullDecimal(req.OvertimeAllowance)

	if err := qtx.Update(ctx, record); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return salaryerrors.ErrSalaryNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return salaryerrors.ErrSalaryExists
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return salaryerrors.ErrSalaryExists
	}

	return err
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func mapToResponse(record Salary) SalaryResponse {
	return SalaryResponse{
		ID:                  record.ID.String(),
		EmployeeID:          record.EmployeeID.String(),
		BasicSalary:         record.BasicSalary,
		PositionAllowance:   fromNullDecimal(record.PositionAllowance),
		ManagementAllowance: fromNullDecimal(record.ManagementAllowance),
		PhoneAllowance:      fromNullDecimal(record.PhoneAllowance),
		IncentiveAllowance:  fromNullDecimal(record.IncentiveAllowance),
		OvertimeAllowance:   fromNullDecimal(record.OvertimeAllowance),
		TotalAllowances:     record.TotalAllowances(),
		CreatedAt:           record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           record.UpdatedAt.Format(time.RFC3339),
	}
}
