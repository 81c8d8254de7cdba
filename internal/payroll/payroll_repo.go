package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateComponent(ctx context.Context, component *PayrollComponent) error
	FindAllComponents(ctx context.Context) ([]PayrollComponent, error)
	FindActiveComponents(ctx context.Context) ([]PayrollComponent, error)
	FindComponentByID(ctx context.Context, id string) (*PayrollComponent, error)
	UpdateComponent(ctx context.Context, component *PayrollComponent) error
	DeleteComponent(ctx context.Context, id string) error

	CreatePayroll(ctx context.Context, record *Payroll) error
	FindPayrolls(ctx context.Context, employeeID string, limit, offset int) ([]Payroll, int64, error)
	FindPayrollByID(ctx context.Context, id string) (*Payroll, error)
	FindPayrollsByPeriod(ctx context.Context, year int, month time.Month) ([]Payroll, error)
	ExistsForMonth(ctx context.Context, employeeID string, paymentDate time.Time) (bool, error)
	UpdatePayrollStatus(ctx context.Context, id, status string) error
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

func (r *repository) CreateComponent(ctx context.Context, component *PayrollComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindAllComponents(ctx context.Context) ([]PayrollComponent, error) {
	var components []PayrollComponent
	err := r.db.WithContext(ctx).Order("name ASC").Find(&components).Error
	return components, err
}

func (r *repository) FindActiveComponents(ctx context.Context) ([]PayrollComponent, error) {
	var components []PayrollComponent
	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindComponentByID(ctx context.Context, id string) (*PayrollComponent, error) {
	var component PayrollComponent
	err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error
	return &component, err
}

func (r *repository) UpdateComponent(ctx context.Context, component *PayrollComponent) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *repository) DeleteComponent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PayrollComponent{}, "id = ?", id).Error
}

func (r *repository) CreatePayroll(ctx context.Context, record *Payroll) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindPayrolls(ctx context.Context, employeeID string, limit, offset int) ([]Payroll, int64, error) {
	q := r.db.WithContext(ctx).Model(&Payroll{})
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Payroll
	err := q.Order("payment_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, total, err
}

func (r *repository) FindPayrollByID(ctx context.Context, id string) (*Payroll, error) {
	var record Payroll
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) FindPayrollsByPeriod(ctx context.Context, year int, month time.Month) ([]Payroll, error) {
	var records []Payroll
	err := r.db.WithContext(ctx).
		Where("EXTRACT(YEAR FROM payment_date) = ? AND EXTRACT(MONTH FROM payment_date) = ?", year, int(month)).
		Order("payment_date ASC").
		Find(&records).Error
	return records, err
}

// ExistsForMonth mengecek apakah karyawan sudah punya payroll di bulan
// kalender yang sama dengan paymentDate.
func (r *repository) ExistsForMonth(ctx context.Context, employeeID string, paymentDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ?", employeeID).
		Where("date_trunc('month', payment_date) = date_trunc('month', ?::date)", paymentDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdatePayrollStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("id = ?", id).
		Update("status", status).Error
}
