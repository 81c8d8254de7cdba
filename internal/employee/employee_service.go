package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employeeerrors "github.com/AlfahrezaRico/backend/internal/employee/errors"
	"github.com/AlfahrezaRico/backend/internal/events"
	"github.com/AlfahrezaRico/backend/internal/nik"
	nikerrors "github.com/AlfahrezaRico/backend/internal/nik/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	optionsCacheKey = "employees:options"
	optionsCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	ImportXlsx(ctx context.Context, fileBytes []byte) (ImportSummary, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	nikService nik.Service
	outbox     events.OutboxRepository
	cache      *redis.Client
	group      singleflight.Group
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(db *sql.DB, repo Repository, nikService nik.Service, outbox events.OutboxRepository, cache *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		nikService: nikService,
		outbox:     outbox,
		cache:      cache,
		logger:     l,
		now:        time.Now,
	}
}

// assignNik meminta NIK dari konfigurasi departemen. Kalau tidak ada
// konfigurasi yang bisa dipakai, pembuatan karyawan tidak boleh gagal:
// jatuh ke NIK sintetis berbasis timestamp dan kasusnya dicatat.
func (s *service) assignNik(ctx context.Context, departmentID string) (string, bool) {
	generated, err := s.nikService.Generate(ctx, departmentID)
	if err == nil {
		return generated.Nik, false
	}

	fallback := nik.FallbackNik(s.now())
	if errors.Is(err, nikerrors.ErrNotConfigured) {
		s.logger.Warn("nik generation degraded to fallback",
			zap.String("department_id", departmentID),
			zap.String("fallback_nik", fallback),
		)
	} else {
		s.logger.Error("nik generation failed, using fallback",
			zap.String("department_id", departmentID),
			zap.String("fallback_nik", fallback),
			zap.Error(err),
		)
	}
	return fallback, true
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	var hireDate time.Time
	if req.HireDate != "" {
		hireDate, err = time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
	}

	assignedNik, usedFallback := s.assignNik(ctx, req.DepartmentID)

	emp := &Employee{
		ID:           uuid.New(),
		Nik:          assignedNik,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Address:      req.Address,
		Position:     req.Position,
		DepartmentID: departmentID,
		HireDate:     hireDate,
	}

	if err := s.persistNewEmployee(ctx, emp, usedFallback); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("employee created",
		zap.String("employee_id", emp.ID.String()),
		zap.String("nik", emp.Nik),
		zap.Bool("nik_fallback", usedFallback),
	)

	resp := mapToResponse(*emp)
	resp.NikFallback = usedFallback
	return resp, nil
}

// persistNewEmployee menulis baris karyawan plus event outbox dalam satu
// transaksi. Tabrakan NIK unik dicoba ulang sekali dengan NIK fallback
// berbasis timestamp; tabrakan kedua diserahkan ke pemanggil sebagai Conflict.
func (s *service) persistNewEmployee(ctx context.Context, emp *Employee, usedFallback bool) error {
	attempt := func(e *Employee) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
			return mapRepositoryError(err)
		}

		if err := s.outbox.WithTx(tx).Append(ctx, events.TopicEmployeeCreated, e.ID.String(), map[string]any{
			"employee_id":   e.ID.String(),
			"nik":           e.Nik,
			"email":         e.Email,
			"department_id": e.DepartmentID.String(),
			"nik_fallback":  usedFallback,
		}); err != nil {
			return err
		}

		return tx.Commit()
	}

	err := attempt(emp)
	if errors.Is(err, employeeerrors.ErrNikTaken) {
		retryNik := nik.FallbackNik(s.now())
		s.logger.Warn("nik collision, retrying once with fallback",
			zap.String("colliding_nik", emp.Nik),
			zap.String("retry_nik", retryNik),
		)
		emp.Nik = retryNik
		err = attempt(emp)
	}
	return err
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	employees, total, err := s.repo.FindAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = mapToResponse(emp)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

// GetOptions dilayani dari redis; cache miss di-dedup dengan singleflight
// supaya burst request tidak menghantam database bersamaan.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, optionsCacheKey).Bytes()
		if err == nil {
			var options []EmployeeOption
			if err := json.Unmarshal(cached, &options); err == nil {
				return options, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("options cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.group.Do(optionsCacheKey, func() (any, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, len(employees))
		for i, emp := range employees {
			options[i] = EmployeeOption{
				ID:   emp.ID.String(),
				Nik:  emp.Nik,
				Name: strings.TrimSpace(emp.FirstName + " " + emp.LastName),
			}
		}

		if s.cache != nil {
			if body, err := json.Marshal(options); err == nil {
				if err := s.cache.Set(ctx, optionsCacheKey, body, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("options cache write failed", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]EmployeeOption), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("options cache invalidation failed", zap.Error(err))
	}
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	var hireDate time.Time
	if req.HireDate != "" {
		hireDate, err = time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	// NIK tidak bisa diganti lewat update; NIK mengikuti penerbitan awal.
	emp.FirstName = strings.TrimSpace(req.FirstName)
	emp.LastName = strings.TrimSpace(req.LastName)
	emp.Email = strings.ToLower(strings.TrimSpace(req.Email))
	emp.Phone = req.Phone
	emp.Address = req.Address
	emp.Position = req.Position
	emp.DepartmentID = departmentID
	if !hireDate.IsZero() {
		emp.HireDate = hireDate
	}

	if err := qtx.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*emp), nil
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
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employee_nik":
			return employeeerrors.ErrNikTaken
		default:
			return employeeerrors.ErrEmailTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_employee_nik") {
			return employeeerrors.ErrNikTaken
		}
		return employeeerrors.ErrEmailTaken
	}

	return err
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           emp.ID.String(),
		Nik:          emp.Nik,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		Phone:        emp.Phone,
		Address:      emp.Address,
		Position:     emp.Position,
		DepartmentID: emp.DepartmentID.String(),
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    emp.UpdatedAt.Format(time.RFC3339),
	}
	if !emp.HireDate.IsZero() {
		resp.HireDate = emp.HireDate.Format("2006-01-02")
	}
	if emp.Department != nil {
		resp.DepartmentName = emp.Department.Name
	}
	return resp
}
