package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/AlfahrezaRico/backend/internal/events"
	"github.com/AlfahrezaRico/backend/internal/messaging/kafka"

	"go.uber.org/zap"
)

// RunConsumer membaca event payroll dan meneruskannya ke notifier slip gaji
// sampai menerima sinyal stop.
func RunConsumer(logger *zap.Logger) error {
	consumer := kafka.NewConsumer(
		kafkaBrokers(),
		events.TopicPayrollCreated,
		envOr("KAFKA_GROUP_ID", "payslip-consumer"),
		logger,
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := &events.LogPayslipNotifier{Logger: logger}
	logger.Info("payslip consumer started")
	return consumer.Run(ctx, events.PayslipHandler(notifier, logger))
}
