package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipEvent adalah payload acara hr.payroll.created yang dibaca ulang
// oleh consumer slip gaji.
type PayslipEvent struct {
	PayrollID   string `json:"payroll_id"`
	EmployeeID  string `json:"employee_id"`
	PaymentDate string `json:"payment_date"`
	NetSalary   string `json:"net_salary"`
	Status      string `json:"status"`
}

// PayslipNotifier dipanggil sekali per payroll yang berhasil dibuat, biasanya
// untuk mengirim notifikasi slip gaji ke karyawan.
type PayslipNotifier interface {
	NotifyPayslip(ctx context.Context, event PayslipEvent) error
}

// LogPayslipNotifier implementasi default: hanya mencatat, integrasi email
// ada di deployment terpisah.
type LogPayslipNotifier struct {
	Logger *zap.Logger
}

func (n *LogPayslipNotifier) NotifyPayslip(_ context.Context, event PayslipEvent) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Named("events.payslip").Info("payslip ready",
		zap.String("payroll_id", event.PayrollID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("payment_date", event.PaymentDate),
	)
	return nil
}

// PayslipHandler mengadaptasi notifier ke handler pesan kafka. Payload yang
// tidak bisa di-decode dicatat dan dilewati supaya partisi tidak macet.
func PayslipHandler(notifier PayslipNotifier, logger *zap.Logger) func(ctx context.Context, msg kafka.Message) error {
	if logger == nil {
		logger = zap.L()
	}
	l := logger.Named("events.payslip")

	return func(ctx context.Context, msg kafka.Message) error {
		var event PayslipEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			l.Warn("undecodable payroll event skipped",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			return nil
		}
		return notifier.NotifyPayslip(ctx, event)
	}
}
