package notification

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers a rendered notification to the customer.
type Sender interface {
	Send(ctx context.Context, taskType string, p Payload) error
}

// LogSender writes notifications to the log. Delivery channels plug in behind Sender.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, taskType string, p Payload) error {
	fields := []zap.Field{
		zap.String("task", taskType),
		zap.String("booking_id", p.BookingID.String()),
		zap.String("customer_id", p.CustomerID.String()),
		zap.String("status", p.Status.String()),
		zap.Time("scheduled_at", p.ScheduledAt),
	}
	if p.PreviousScheduledAt != nil {
		fields = append(fields, zap.Time("previous_scheduled_at", *p.PreviousScheduledAt))
	}
	if p.FeeCents > 0 {
		fields = append(fields, zap.Int64("fee_cents", p.FeeCents))
	}
	s.logger.Info("notification sent", fields...)
	return nil
}
