package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRequest(ctx context.Context, req *LeaveRequest) error
	FindRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error)
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)

	CreateQuota(ctx context.Context, quota *LeaveQuota) error
	FindQuotas(ctx context.Context, employeeID string, year int) ([]LeaveQuota, error)
	FindQuota(ctx context.Context, employeeID string, year int, quotaType string) (*LeaveQuota, error)
	FindQuotaByID(ctx context.Context, id string) (*LeaveQuota, error)
	UpdateQuota(ctx context.Context, quota *LeaveQuota) error
	ConsumeQuota(ctx context.Context, employeeID string, year int, quotaType string, days int) (bool, error)
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

// guardedExec menjalankan UPDATE bersyarat lewat tx yang di-inject bila ada,
// supaya transisi status dan konsumsi kuota ikut commit/rollback transaksi
// pemanggil. Tanpa tx, jalan lewat pool gorm.
func (r *repository) guardedExec(ctx context.Context, query string, args ...any) (int64, error) {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res := r.db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var requests []LeaveRequest
	err := q.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

// HasOverlap melakukan tes irisan inklusif [start,end] terhadap request
// PENDING/APPROVED milik karyawan yang sama.
func (r *repository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count > 0, err
}

// TransitionStatus mengganti status hanya kalau status lama masih `from`.
// Mengembalikan false kalau baris sudah berpindah status (request ganda /
// balapan approval), sehingga efek samping transisi cuma terjadi sekali.
func (r *repository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	affected, err := r.guardedExec(ctx, `
		UPDATE leave_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) CreateQuota(ctx context.Context, quota *LeaveQuota) error {
	return r.db.WithContext(ctx).Create(quota).Error
}

func (r *repository) FindQuotas(ctx context.Context, employeeID string, year int) ([]LeaveQuota, error) {
	q := r.db.WithContext(ctx).Model(&LeaveQuota{})
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	if year > 0 {
		q = q.Where("year = ?", year)
	}

	var quotas []LeaveQuota
	err := q.Order("year DESC, quota_type ASC").Find(&quotas).Error
	return quotas, err
}

func (r *repository) FindQuota(ctx context.Context, employeeID string, year int, quotaType string) (*LeaveQuota, error) {
	var quota LeaveQuota
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND quota_type = ?", employeeID, year, quotaType).
		First(&quota).Error
	return &quota, err
}

func (r *repository) FindQuotaByID(ctx context.Context, id string) (*LeaveQuota, error) {
	var quota LeaveQuota
	err := r.db.WithContext(ctx).First(&quota, "id = ?", id).Error
	return &quota, err
}

func (r *repository) UpdateQuota(ctx context.Context, quota *LeaveQuota) error {
	return r.db.WithContext(ctx).Save(quota).Error
}

// ConsumeQuota menaikkan used_quota secara atomik, dijaga sisa kuota masih
// cukup. false berarti kuota tidak ada atau sisa kurang dari days.
func (r *repository) ConsumeQuota(ctx context.Context, employeeID string, year int, quotaType string, days int) (bool, error) {
	affected, err := r.guardedExec(ctx, `
		UPDATE leave_quotas
		SET used_quota = used_quota + $1, updated_at = now()
		WHERE employee_id = $2 AND year = $3 AND quota_type = $4
		  AND total_quota - used_quota >= $5
	`, days, employeeID, year, quotaType, days)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
