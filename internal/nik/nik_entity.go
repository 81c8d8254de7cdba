package nik

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentNikConfig struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;not null;uniqueIndex:uq_nik_config_active_department,where:is_active"`

	Prefix          string `gorm:"column:prefix;type:varchar(20);not null"`
	CurrentSequence int64  `gorm:"column:current_sequence;type:bigint;not null;default:1"`
	SequenceLength  int    `gorm:"column:sequence_length;type:int;not null;default:3"`
	FormatPattern   string `gorm:"column:format_pattern;type:varchar(100)"`
	IsActive        bool   `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (DepartmentNikConfig) TableName() string {
	return "department_nik_configs"
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}
