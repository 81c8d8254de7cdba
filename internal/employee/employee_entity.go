package employee

import (
	"time"

	"github.com/AlfahrezaRico/backend/internal/department"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Nik          string         `gorm:"size:50;not null;uniqueIndex:uq_employee_nik"`
	FirstName    string         `gorm:"size:255;not null"`
	LastName     string         `gorm:"size:255"`
	Email        string         `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone        string         `gorm:"size:50"`
	Address      string         `gorm:"type:text"`
	Position     string         `gorm:"size:255"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null;index"`
	HireDate     time.Time      `gorm:"type:date"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Department *department.Department `gorm:"foreignKey:DepartmentID"`
}
