package nik

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=nik_repo.go -destination=mock/nik_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cfg *DepartmentNikConfig) error
	FindAll(ctx context.Context) ([]DepartmentNikConfig, error)
	FindByID(ctx context.Context, id string) (*DepartmentNikConfig, error)
	FindActiveByDepartment(ctx context.Context, departmentID string) (*DepartmentNikConfig, error)
	FindActiveByDepartmentName(ctx context.Context, name string) (*DepartmentNikConfig, error)
	IssueNextSequence(ctx context.Context, configID string) (int64, error)
	Update(ctx context.Context, cfg *DepartmentNikConfig) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, cfg *DepartmentNikConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) FindAll(ctx context.Context) ([]DepartmentNikConfig, error) {
	var configs []DepartmentNikConfig
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("created_at ASC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*DepartmentNikConfig, error) {
	var cfg DepartmentNikConfig
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&cfg, "id = ?", id).Error
	return &cfg, err
}

func (r *repository) FindActiveByDepartment(ctx context.Context, departmentID string) (*DepartmentNikConfig, error) {
	var cfg DepartmentNikConfig
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND is_active", departmentID).
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) FindActiveByDepartmentName(ctx context.Context, name string) (*DepartmentNikConfig, error) {
	var cfg DepartmentNikConfig
	err := r.db.WithContext(ctx).
		Joins("JOIN departments ON departments.id = department_nik_configs.department_id").
		Where("departments.name = ? AND department_nik_configs.is_active", name).
		First(&cfg).Error
	return &cfg, err
}

// IssueNextSequence bumps the counter in a single atomic statement and
// returns the value that was issued (the pre-increment sequence). Concurrent
// issuance for the same config serializes on the row, the counter never
// hands out the same value twice.
func (r *repository) IssueNextSequence(ctx context.Context, configID string) (int64, error) {
	var issued int64
	err := r.db.WithContext(ctx).Raw(`
		UPDATE department_nik_configs
		SET current_sequence = current_sequence + 1, updated_at = now()
		WHERE id = ? AND is_active
		RETURNING current_sequence - 1
	`, configID).Scan(&issued).Error
	if err != nil {
		return 0, err
	}
	return issued, nil
}

func (r *repository) Update(ctx context.Context, cfg *DepartmentNikConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
