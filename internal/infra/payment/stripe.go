// Package payment settles refunds and fees with the payment provider.
package payment

import (
	"context"
	"fmt"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

type refunds interface {
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

type paymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type StripePaymentService struct {
	refunds  refunds
	intents  paymentIntents
	currency string
	logger   *zap.Logger
}

func NewStripePaymentService(cfg config.StripeConfig, logger *zap.Logger) *StripePaymentService {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &StripePaymentService{
		refunds:  sc.Refunds,
		intents:  sc.PaymentIntents,
		currency: cfg.Currency,
		logger:   logger,
	}
}

var _ shared.PaymentService = (*StripePaymentService)(nil)

func (s *StripePaymentService) Refund(ctx context.Context, paymentIntentID string, amount booking.Money, reason string) (*shared.PaymentResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amount.Cents()),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.AddMetadata("reason", reason)
	params.SetIdempotencyKey(fmt.Sprintf("refund:%s:%d", paymentIntentID, amount.Cents()))

	r, err := s.refunds.New(params)
	if err != nil {
		return nil, errs.Wrapf(err, "stripe refund %s", paymentIntentID)
	}
	s.logger.Info("refund issued",
		zap.String("payment_intent_id", paymentIntentID),
		zap.String("refund_id", r.ID),
		zap.Int64("amount_cents", amount.Cents()))
	return &shared.PaymentResult{IntentID: paymentIntentID}, nil
}

func (s *StripePaymentService) ChargeNoShowFee(ctx context.Context, b *booking.Booking, fee booking.Money) (*shared.PaymentResult, error) {
	return s.charge(ctx, b, fee, "no_show_fee")
}

func (s *StripePaymentService) ChargeCancellationFee(ctx context.Context, b *booking.Booking, fee booking.Money) (*shared.PaymentResult, error) {
	return s.charge(ctx, b, fee, "cancellation_fee")
}

func (s *StripePaymentService) ChargeOvertime(ctx context.Context, b *booking.Booking, amount booking.Money) (*shared.PaymentResult, error) {
	return s.charge(ctx, b, amount, "overtime")
}

func (s *StripePaymentService) charge(ctx context.Context, b *booking.Booking, amount booking.Money, kind string) (*shared.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount.Cents()),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(fmt.Sprintf("%s for booking %s", kind, b.ID())),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", b.ID().String())
	params.AddMetadata("customer_id", b.CustomerID().String())
	params.AddMetadata("kind", kind)
	// one charge per booking and kind, whatever the number of attempts
	params.SetIdempotencyKey(fmt.Sprintf("%s:%s", kind, b.ID()))

	pi, err := s.intents.New(params)
	if err != nil {
		return nil, errs.Wrapf(err, "stripe %s for booking %s", kind, b.ID())
	}
	s.logger.Info("charge created",
		zap.String("booking_id", b.ID().String()),
		zap.String("kind", kind),
		zap.String("payment_intent_id", pi.ID),
		zap.Int64("amount_cents", amount.Cents()))
	return &shared.PaymentResult{IntentID: pi.ID}, nil
}
