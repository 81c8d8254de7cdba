package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

// Satu baris per karyawan per tanggal, ditegakkan lewat unique index.
type Attendance struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_day"`
	Date       time.Time      `gorm:"type:date;not null;uniqueIndex:uq_attendance_day"`
	ClockIn    *time.Time     `gorm:""`
	ClockOut   *time.Time     `gorm:""`
	Status     string         `gorm:"size:20;not null;default:PRESENT"`
	Notes      string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
