package events

import (
	"context"
	"time"

	"github.com/AlfahrezaRico/backend/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	relayInterval  = 2 * time.Second
	relayBatchSize = 100
)

// Relay memoles outbox: baris PENDING diterbitkan ke kafka lalu ditandai
// SENT, yang gagal ditandai FAILED berikut penyebabnya.
type Relay struct {
	repo      OutboxRepository
	publisher kafka.Publisher
	logger    *zap.Logger
}

func NewRelay(repo OutboxRepository, publisher kafka.Publisher, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("events.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("events.relay")
	}
	return &Relay{repo: repo, publisher: publisher, logger: l}
}

// Run blok sampai ctx dibatalkan.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(relayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	pending, err := r.repo.FetchPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, event := range pending {
		if err := r.publisher.Publish(ctx, event.Topic, event.Key, event.Payload); err != nil {
			if markErr := r.repo.MarkFailed(ctx, event.ID, err); markErr != nil {
				r.logger.Error("mark failed errored",
					zap.String("event_id", event.ID.String()),
					zap.Error(markErr),
				)
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark sent errored",
				zap.String("event_id", event.ID.String()),
				zap.Error(err),
			)
			continue
		}

		r.logger.Debug("outbox event relayed",
			zap.String("event_id", event.ID.String()),
			zap.String("topic", event.Topic),
		)
	}
	return nil
}
