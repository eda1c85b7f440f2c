package payment

import (
	"context"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/usecase/shared"

	"go.uber.org/zap"
)

// NoopPaymentService records amounts in the log. Used when no provider key is configured.
type NoopPaymentService struct {
	logger *zap.Logger
}

func NewNoopPaymentService(logger *zap.Logger) *NoopPaymentService {
	return &NoopPaymentService{logger: logger}
}

func (s *NoopPaymentService) Refund(_ context.Context, paymentIntentID string, amount booking.Money, reason string) (*shared.PaymentResult, error) {
	s.logger.Info("refund skipped, no payment provider",
		zap.String("payment_intent_id", paymentIntentID),
		zap.Int64("amount_cents", amount.Cents()),
		zap.String("reason", reason))
	return &shared.PaymentResult{IntentID: paymentIntentID}, nil
}

func (s *NoopPaymentService) ChargeNoShowFee(_ context.Context, b *booking.Booking, fee booking.Money) (*shared.PaymentResult, error) {
	return s.skip(b, fee, "no_show_fee")
}

func (s *NoopPaymentService) ChargeCancellationFee(_ context.Context, b *booking.Booking, fee booking.Money) (*shared.PaymentResult, error) {
	return s.skip(b, fee, "cancellation_fee")
}

func (s *NoopPaymentService) ChargeOvertime(_ context.Context, b *booking.Booking, amount booking.Money) (*shared.PaymentResult, error) {
	return s.skip(b, amount, "overtime")
}

func (s *NoopPaymentService) skip(b *booking.Booking, amount booking.Money, kind string) (*shared.PaymentResult, error) {
	s.logger.Info("charge skipped, no payment provider",
		zap.String("booking_id", b.ID().String()),
		zap.String("kind", kind),
		zap.Int64("amount_cents", amount.Cents()))
	return &shared.PaymentResult{}, nil
}

// NewPaymentService picks the provider from configuration.
func NewPaymentService(cfg config.StripeConfig, logger *zap.Logger) shared.PaymentService {
	if cfg.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set; payments are logged only")
		return NewNoopPaymentService(logger)
	}
	return NewStripePaymentService(cfg, logger)
}
