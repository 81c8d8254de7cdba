package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Attendance, int64, error)
	FindByPeriod(ctx context.Context, year int, month time.Month) ([]Attendance, error)
	Update(ctx context.Context, record *Attendance) error
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

func (r *repository) Create(ctx context.Context, record *Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var record Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date.Format("2006-01-02")).
		First(&record).Error
	return &record, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Attendance, int64, error) {
	q := r.db.WithContext(ctx).Model(&Attendance{})
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Attendance
	err := q.Order("date DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

func (r *repository) FindByPeriod(ctx context.Context, year int, month time.Month) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?", year, int(month)).
		Order("date ASC, employee_id ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) Update(ctx context.Context, record *Attendance) error {
	return r.db.WithContext(ctx).Save(record).Error
}
