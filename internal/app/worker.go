package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/AlfahrezaRico/backend/internal/events"
	"github.com/AlfahrezaRico/backend/internal/messaging/kafka"
	"github.com/AlfahrezaRico/backend/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker menjalankan relay outbox -> kafka sampai menerima sinyal stop.
func RunWorker(logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "hris"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
		connectRetries,
	)
	if err != nil {
		return err
	}

	publisher := kafka.NewPublisher(kafkaBrokers(), logger)
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relay := events.NewRelay(events.NewOutboxRepository(db), publisher, logger)
	logger.Info("outbox relay started")
	return relay.Run(ctx)
}
