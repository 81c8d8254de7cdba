package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

const (
	TopicEmployeeCreated = "hr.employee.created"
	TopicPayrollCreated  = "hr.payroll.created"
)

// OutboxEvent ditulis dalam transaksi yang sama dengan perubahan bisnisnya,
// lalu dikirim ke kafka oleh worker terpisah.
type OutboxEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic     string    `gorm:"size:255;not null;index"`
	Key       string    `gorm:"size:255;not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	Status    string    `gorm:"size:20;not null;default:PENDING;index"`
	Attempts  int       `gorm:"not null;default:0"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	SentAt    *time.Time
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}
