package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Append(ctx context.Context, topic, key string, payload any) error
	FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause error) error
}

type outboxRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

// Append harus ikut transaksi bisnisnya: kalau tx di-inject lewat WithTx,
// INSERT berjalan di koneksi tx itu dan ikut rollback bersama perubahan bisnis.
func (r *outboxRepository) Append(ctx context.Context, topic, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := &OutboxEvent{
		ID:      uuid.New(),
		Topic:   topic,
		Key:     key,
		Payload: body,
		Status:  StatusPending,
	}
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO outbox_events (id, topic, key, payload, status, attempts, created_at)
			 VALUES ($1, $2, $3, $4, $5, 0, $6)`,
			event.ID, event.Topic, event.Key, event.Payload, event.Status, time.Now())
		return err
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var pending []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error
	return pending, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   StatusSent,
			"sent_at":  now,
			"attempts": gorm.Expr("attempts + 1"),
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error {
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     StatusFailed,
			"last_error": cause.Error(),
			"attempts":   gorm.Expr("attempts + 1"),
		}).Error
}
