package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *Salary) error
	FindAll(ctx context.Context) ([]Salary, error)
	FindByID(ctx context.Context, id string) (*Salary, error)
	FindByEmployee(ctx context.Context, employeeID string) (*Salary, error)
	Update(ctx context.Context, record *Salary) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, record *Salary) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var records []Salary
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var record Salary
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*Salary, error) {
	var record Salary
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&record).Error
	return &record, err
}

func (r *repository) Update(ctx context.Context, record *Salary) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Salary{}, "id = ?", id).Error
}
