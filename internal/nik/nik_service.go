package nik

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	nikerrors "github.com/AlfahrezaRico/backend/internal/nik/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Departemen yang jadi fallback kalau departemen karyawan belum punya
// konfigurasi NIK aktif. Bisa dioverride lewat NIK_DEFAULT_DEPARTMENT.
var defaultDepartments = []string{"Operational", "General"}

// legacyPrefixes is a name-keyed compatibility table. Operational historically
// issued both OPS### and OPS19### NIKs, so validation accepts either form for
// that department only. This is a carve-out, never inferred for other
// departments.
var legacyPrefixes = map[string][]string{
	"Operational": {"OPS", "OPS19"},
}

//go:generate mockgen -source=nik_service.go -destination=mock/nik_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, departmentID string) (GeneratedNik, error)
	ValidateFormat(ctx context.Context, req ValidateFormatRequest) (ValidateFormatResponse, error)
	CreateConfig(ctx context.Context, req CreateConfigRequest) (ConfigResponse, error)
	GetAllConfigs(ctx context.Context) ([]ConfigResponse, error)
	UpdateConfig(ctx context.Context, id string, req UpdateConfigRequest) (ConfigResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("nik.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("nik.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// FallbackNik synthesizes an identifier for the degraded path where no NIK
// configuration is resolvable: "EMP" + last 6 digits of the unix timestamp.
func FallbackNik(now time.Time) string {
	return fmt.Sprintf("EMP%06d", now.Unix()%1_000_000)
}

func (s *service) Generate(ctx context.Context, departmentID string) (GeneratedNik, error) {
	if _, err := uuid.Parse(departmentID); err != nil {
		return GeneratedNik{}, nikerrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate nik begin tx failed", zap.Error(err))
		return GeneratedNik{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	usedFallback := false
	cfg, err := qtx.FindActiveByDepartment(ctx, departmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg, err = s.findDefaultConfig(ctx, qtx)
		usedFallback = err == nil
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("generate nik has no resolvable config",
				zap.String("department_id", departmentID),
			)
			return GeneratedNik{}, nikerrors.ErrNotConfigured
		}
		s.logger.Error("generate nik load config failed", zap.Error(err))
		return GeneratedNik{}, err
	}

	issued, err := qtx.IssueNextSequence(ctx, cfg.ID.String())
	if err != nil {
		s.logger.Error("generate nik issue sequence failed",
			zap.String("config_id", cfg.ID.String()),
			zap.Error(err),
		)
		return GeneratedNik{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate nik commit failed", zap.Error(err))
		return GeneratedNik{}, err
	}

	formatted := resolvePattern(cfg).Format(issued)
	s.logger.Info("nik issued",
		zap.String("department_id", departmentID),
		zap.String("nik", formatted),
		zap.Int64("sequence", issued),
		zap.Bool("used_fallback_department", usedFallback),
	)

	return GeneratedNik{
		Nik:          formatted,
		DepartmentID: cfg.DepartmentID.String(),
		Sequence:     issued,
		NextSequence: issued + 1,
		UsedFallback: usedFallback,
	}, nil
}

func (s *service) findDefaultConfig(ctx context.Context, repo Repository) (*DepartmentNikConfig, error) {
	names := defaultDepartments
	if override := os.Getenv("NIK_DEFAULT_DEPARTMENT"); override != "" {
		names = []string{override}
	}

	for _, name := range names {
		cfg, err := repo.FindActiveByDepartmentName(ctx, name)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *service) ValidateFormat(ctx context.Context, req ValidateFormatRequest) (ValidateFormatResponse, error) {
	cfg, err := s.repo.FindActiveByDepartmentName(ctx, req.DepartmentName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidateFormatResponse{}, nikerrors.ErrNotConfigured
		}
		return ValidateFormatResponse{}, err
	}

	pattern := resolvePattern(cfg)

	prefixes := []string{cfg.Prefix}
	if legacy, ok := legacyPrefixes[req.DepartmentName]; ok {
		prefixes = legacy
	}

	resp := ValidateFormatResponse{
		Nik:            req.Nik,
		DepartmentName: req.DepartmentName,
	}
	for _, prefix := range prefixes {
		re, err := pattern.Regexp(prefix)
		if err != nil {
			return ValidateFormatResponse{}, err
		}
		resp.AcceptedForms = append(resp.AcceptedForms, re.String())
		if re.MatchString(req.Nik) {
			resp.Valid = true
		}
	}

	return resp, nil
}

func (s *service) CreateConfig(ctx context.Context, req CreateConfigRequest) (ConfigResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return ConfigResponse{}, nikerrors.ErrInvalidDepartmentID
	}

	start := req.StartSequence
	if start == 0 {
		start = 1
	}
	if start < 1 {
		return ConfigResponse{}, nikerrors.ErrInvalidStartSequence
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cfg := &DepartmentNikConfig{
		ID:              uuid.New(),
		DepartmentID:    departmentID,
		Prefix:          req.Prefix,
		CurrentSequence: start,
		SequenceLength:  req.SequenceLength,
		FormatPattern:   req.FormatPattern,
		IsActive:        true,
	}

	if err := qtx.Create(ctx, cfg); err != nil {
		return ConfigResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ConfigResponse{}, err
	}

	s.logger.Info("nik config created",
		zap.String("config_id", cfg.ID.String()),
		zap.String("department_id", req.DepartmentID),
		zap.String("prefix", req.Prefix),
	)
	return mapToConfigResponse(*cfg), nil
}

func (s *service) GetAllConfigs(ctx context.Context) ([]ConfigResponse, error) {
	configs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ConfigResponse, len(configs))
	for i, cfg := range configs {
		resp[i] = mapToConfigResponse(cfg)
	}
	return resp, nil
}

func (s *service) UpdateConfig(ctx context.Context, id string, req UpdateConfigRequest) (ConfigResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cfg, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, nikerrors.ErrConfigNotFound
		}
		return ConfigResponse{}, err
	}

	// current_sequence sengaja tidak bisa diubah dari endpoint ini:
	// sequence hanya maju lewat penerbitan NIK, tidak pernah di-reset.
	cfg.Prefix = req.Prefix
	cfg.SequenceLength = req.SequenceLength
	cfg.FormatPattern = req.FormatPattern
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, cfg); err != nil {
		return ConfigResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ConfigResponse{}, err
	}

	return mapToConfigResponse(*cfg), nil
}

func mapToConfigResponse(cfg DepartmentNikConfig) ConfigResponse {
	resp := ConfigResponse{
		ID:              cfg.ID.String(),
		DepartmentID:    cfg.DepartmentID.String(),
		Prefix:          cfg.Prefix,
		CurrentSequence: cfg.CurrentSequence,
		SequenceLength:  cfg.SequenceLength,
		FormatPattern:   cfg.FormatPattern,
		IsActive:        cfg.IsActive,
	}
	if cfg.Department != nil {
		resp.DepartmentName = cfg.Department.Name
	}
	return resp
}
