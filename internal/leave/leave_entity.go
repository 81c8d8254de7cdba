package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// Tipe cuti "tahunan" satu-satunya yang dicek terhadap kuota.
const TypeTahunan = "tahunan"

// Alasan "Sakit" tidak memotong kuota walau request-nya di-approve.
const ReasonSakit = "Sakit"

type LeaveRequest struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index"`
	LeaveType  string         `gorm:"size:50;not null"`
	StartDate  time.Time      `gorm:"type:date;not null"`
	EndDate    time.Time      `gorm:"type:date;not null"`
	TotalDays  int            `gorm:"not null"`
	Reason     string         `gorm:"type:text"`
	ProofPath  string         `gorm:"size:512"`
	Status     string         `gorm:"size:20;not null;default:PENDING;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

type LeaveQuota struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_quota_key"`
	Year       int       `gorm:"not null;uniqueIndex:uq_leave_quota_key"`
	QuotaType  string    `gorm:"size:50;not null;uniqueIndex:uq_leave_quota_key"`
	TotalQuota int       `gorm:"not null"`
	UsedQuota  int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (q LeaveQuota) Remaining() int {
	return q.TotalQuota - q.UsedQuota
}

// InclusiveDays menghitung jumlah hari [start,end] inklusif kedua ujungnya.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
