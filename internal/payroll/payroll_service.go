package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/AlfahrezaRico/backend/internal/events"
	payrollerrors "github.com/AlfahrezaRico/backend/internal/payroll/errors"
	"github.com/AlfahrezaRico/backend/internal/salary"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Transisi status yang diizinkan. REJECTED dan PAID terminal.
var allowedTransitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusPaid, StatusUnpaid},
	StatusUnpaid:   {StatusPaid},
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	GetAllComponents(ctx context.Context) ([]ComponentResponse, error)
	UpdateComponent(ctx context.Context, id string, req UpdateComponentRequest) (ComponentResponse, error)
	DeleteComponent(ctx context.Context, id string) error

	Calculate(ctx context.Context, req CalculateRequest) (Breakdown, error)
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, employeeID string, page, pageSize int) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, id string) (PayrollDetailResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (PayrollResponse, error)
	ExportPeriod(ctx context.Context, year int, month time.Month) ([]byte, string, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	salaryRepo salary.Repository
	outbox     events.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, salaryRepo salary.Repository, outbox events.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		salaryRepo: salaryRepo,
		outbox:     outbox,
		logger:     l,
	}
}

func (s *service) CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error) {
	if req.Percentage.IsNegative() || req.Amount.IsNegative() {
		return ComponentResponse{}, payrollerrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component := &PayrollComponent{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Type:       req.Type,
		Category:   req.Category,
		Percentage: req.Percentage,
		Amount:     req.Amount,
		IsActive:   true,
	}
	if err := qtx.CreateComponent(ctx, component); err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	s.logger.Info("payroll component created",
		zap.String("component_id", component.ID.String()),
		zap.String("name", component.Name),
		zap.String("type", component.Type),
	)
	return mapComponentToResponse(*component), nil
}

func (s *service) GetAllComponents(ctx context.Context) ([]ComponentResponse, error) {
	components, err := s.repo.FindAllComponents(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ComponentResponse, len(components))
	for i, c := range components {
		resp[i] = mapComponentToResponse(c)
	}
	return resp, nil
}

func (s *service) UpdateComponent(ctx context.Context, id string, req UpdateComponentRequest) (ComponentResponse, error) {
	if req.Percentage.IsNegative() || req.Amount.IsNegative() {
		return ComponentResponse{}, payrollerrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindComponentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComponentResponse{}, payrollerrors.ErrComponentNotFound
		}
		return ComponentResponse{}, err
	}

	component.Name = strings.TrimSpace(req.Name)
	component.Type = req.Type
	component.Category = req.Category
	component.Percentage = req.Percentage
	component.Amount = req.Amount
	if req.IsActive != nil {
		component.IsActive = *req.IsActive
	}

	if err := qtx.UpdateComponent(ctx, component); err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	return mapComponentToResponse(*component), nil
}

func (s *service) DeleteComponent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindComponentByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrComponentNotFound
		}
		return err
	}

	if err := qtx.DeleteComponent(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Calculate itu read-only: tidak menulis baris Payroll apa pun.
func (s *service) Calculate(ctx context.Context, req CalculateRequest) (Breakdown, error) {
	if err := req.ManualDeductions.Validate(); err != nil {
		return Breakdown{}, err
	}
	if req.BasicSalaryInput.IsNegative() {
		return Breakdown{}, payrollerrors.ErrInvalidAmount
	}

	sal, err := s.salaryRepo.FindByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Breakdown{}, payrollerrors.ErrSalaryNotFound
		}
		return Breakdown{}, err
	}

	components, err := s.repo.FindActiveComponents(ctx)
	if err != nil {
		return Breakdown{}, err
	}

	return CalculateBreakdown(*sal, components, req.BasicSalaryInput, req.ManualDeductions), nil
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	if err := req.ManualDeductions.Validate(); err != nil {
		return PayrollResponse{}, err
	}
	for _, d := range []decimal.Decimal{
		req.BpjsKesehatanPerusahaan, req.BpjsKesehatanKaryawan,
		req.BpjsKetenagakerjaanPerusahaan, req.BpjsKetenagakerjaanKaryawan,
	} {
		if d.IsNegative() {
			return PayrollResponse{}, payrollerrors.ErrInvalidAmount
		}
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidAmount
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrSalaryNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForMonth(ctx, req.EmployeeID, paymentDate)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		return PayrollResponse{}, payrollerrors.ErrDuplicateMonth
	}

	sal, err := s.salaryRepo.WithTx(tx).FindByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrSalaryNotFound
		}
		return PayrollResponse{}, err
	}

	components, err := qtx.FindActiveComponents(ctx)
	if err != nil {
		return PayrollResponse{}, err
	}

	breakdown := CalculateBreakdown(*sal, components, req.BasicSalaryInput, req.ManualDeductions)
	pureBasic := sal.BasicSalary

	record := &Payroll{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		PaymentDate:  paymentDate,
		PaymentMonth: time.Date(paymentDate.Year(), paymentDate.Month(), 1, 0, 0, 0, 0, time.UTC),

		BasicSalary:     pureBasic,
		TotalAllowances: breakdown.TotalAllowances,

		BpjsKesehatanPerusahaan: fallbackIfZero(
			req.BpjsKesehatanPerusahaan, components, pureBasic, "kesehatan", "perusahaan"),
		BpjsKesehatanKaryawan: fallbackIfZero(
			req.BpjsKesehatanKaryawan, components, pureBasic, "kesehatan", "karyawan"),
		BpjsKetenagakerjaanPerusahaan: fallbackIfZero(
			req.BpjsKetenagakerjaanPerusahaan, components, pureBasic, "ketenagakerjaan", "perusahaan"),
		BpjsKetenagakerjaanKaryawan: fallbackIfZero(
			req.BpjsKetenagakerjaanKaryawan, components, pureBasic, "ketenagakerjaan", "karyawan"),

		Kasbon:         req.ManualDeductions.Kasbon,
		Telat:          req.ManualDeductions.Telat,
		AngsuranKredit: req.ManualDeductions.AngsuranKredit,

		PendapatanTetap:      breakdown.PendapatanTetap,
		PendapatanTidakTetap: breakdown.PendapatanTidakTetap,
		TotalPendapatan:      breakdown.TotalPendapatan,
		TotalDeductions:      breakdown.TotalDeduction,
		NetSalary:            breakdown.NetSalary,

		Status: StatusPending,
	}

	if err := qtx.CreatePayroll(ctx, record); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.outbox.WithTx(tx).Append(ctx, events.TopicPayrollCreated, record.ID.String(), map[string]any{
		"payroll_id":   record.ID.String(),
		"employee_id":  record.EmployeeID.String(),
		"payment_date": record.PaymentDate.Format("2006-01-02"),
		"net_salary":   record.NetSalary,
		"status":       record.Status,
	}); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll created",
		zap.String("payroll_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("payment_date", req.PaymentDate),
		zap.String("net_salary", record.NetSalary.String()),
	)
	return mapPayrollToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string, page, pageSize int) ([]PayrollResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := s.repo.FindPayrolls(ctx, employeeID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]PayrollResponse, len(records))
	for i, record := range records {
		resp[i] = mapPayrollToResponse(record)
	}
	return resp, total, nil
}

// GetByID mengembalikan baris payroll plus breakdown per komponen yang
// dihitung ulang dari salary dan komponen aktif saat ini.
func (s *service) GetByID(ctx context.Context, id string) (PayrollDetailResponse, error) {
	record, err := s.repo.FindPayrollByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollDetailResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollDetailResponse{}, err
	}

	detail := PayrollDetailResponse{PayrollResponse: mapPayrollToResponse(*record)}

	sal, err := s.salaryRepo.FindByEmployee(ctx, record.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail, nil
		}
		return PayrollDetailResponse{}, err
	}
	components, err := s.repo.FindActiveComponents(ctx)
	if err != nil {
		return PayrollDetailResponse{}, err
	}

	breakdown := CalculateBreakdown(*sal, components, record.BasicSalary, ManualDeductions{
		Kasbon:         record.Kasbon,
		Telat:          record.Telat,
		AngsuranKredit: record.AngsuranKredit,
	})
	detail.Breakdown = &breakdown
	return detail, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindPayrollByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if !transitionAllowed(record.Status, req.Status) {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	if err := qtx.UpdatePayrollStatus(ctx, id, req.Status); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll status changed",
		zap.String("payroll_id", id),
		zap.String("from", record.Status),
		zap.String("to", req.Status),
	)
	record.Status = req.Status
	return mapPayrollToResponse(*record), nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_payroll_component_name" {
			return payrollerrors.ErrComponentNameTaken
		}
		// uq_payroll_employee_month: sudah ada payroll karyawan itu
		// untuk payment_month yang sama.
		return payrollerrors.ErrDuplicateMonth
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return payrollerrors.ErrComponentNameTaken
	}

	return err
}

func mapComponentToResponse(c PayrollComponent) ComponentResponse {
	return ComponentResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Type:       c.Type,
		Category:   c.Category,
		Percentage: c.Percentage,
		Amount:     c.Amount,
		IsActive:   c.IsActive,
	}
}

func mapPayrollToResponse(record Payroll) PayrollResponse {
	return PayrollResponse{
		ID:          record.ID.String(),
		EmployeeID:  record.EmployeeID.String(),
		PaymentDate: record.PaymentDate.Format("2006-01-02"),

		BasicSalary:     record.BasicSalary,
		TotalAllowances: record.TotalAllowances,

		BpjsKesehatanPerusahaan:       record.BpjsKesehatanPerusahaan,
		BpjsKesehatanKaryawan:         record.BpjsKesehatanKaryawan,
		BpjsKetenagakerjaanPerusahaan: record.BpjsKetenagakerjaanPerusahaan,
		BpjsKetenagakerjaanKaryawan:   record.BpjsKetenagakerjaanKaryawan,

		Kasbon:         record.Kasbon,
		Telat:          record.Telat,
		AngsuranKredit: record.AngsuranKredit,

		PendapatanTetap:      record.PendapatanTetap,
		PendapatanTidakTetap: record.PendapatanTidakTetap,
		TotalPendapatan:      record.TotalPendapatan,
		TotalDeductions:      record.TotalDeductions,
		NetSalary:            record.NetSalary,

		Status:    record.Status,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
	}
}
