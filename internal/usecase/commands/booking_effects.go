package commands

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	releaseTimeout = 3 * time.Second
	effectsTimeout = 10 * time.Second
)

// acquire takes key without waiting. A held key surfaces as contended, a typed retryable error.
func (uc *bookingUseCaseImpl) acquire(ctx context.Context, key string, ttl time.Duration, contended *errs.Error) (shared.Lease, error) {
	lease, ok, err := uc.locker.Acquire(ctx, key, ttl)
	if err != nil {
		return shared.Lease{}, errs.Wrapf(err, "acquire lock %s", key)
	}
	if !ok {
		return shared.Lease{}, contended.WithDetail("lockKey", key)
	}
	return lease, nil
}

// release runs on every exit path, including cancelled requests, so it uses a detached context.
func (uc *bookingUseCaseImpl) release(ctx context.Context, lease shared.Lease, bookingID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	released, err := uc.locker.Release(ctx, lease)
	switch {
	case err != nil:
		uc.recorder.Failed(ctx, bookingID, shared.EffectLockRelease, lease.Key, err, uc.clock.Now())
	case !released:
		uc.logger.Warn("lock expired before release",
			zap.String("booking_id", bookingID.String()),
			zap.String("lock_key", lease.Key))
	}
}

type effect struct {
	event  booking.EventType
	data   map[string]any
	action string
	notify func(ctx context.Context) error
}

// afterCommit runs the best-effort steps that follow a committed transition. Failures are
// recorded and never returned.
func (uc *bookingUseCaseImpl) afterCommit(ctx context.Context, b *booking.Booking, e effect) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), effectsTimeout)
	defer cancel()
	now := uc.clock.Now()

	if err := uc.cache.Delete(ctx, b.ID()); err != nil {
		uc.recorder.Failed(ctx, b.ID(), shared.EffectCache, "delete_booking", err, now)
	}
	if err := uc.cache.InvalidateCustomer(ctx, b.CustomerID()); err != nil {
		uc.recorder.Failed(ctx, b.ID(), shared.EffectCache, "invalidate_customer", err, now)
	}

	if e.event != "" {
		if err := uc.events.Publish(ctx, booking.NewEvent(e.event, b, now, e.data)); err != nil {
			uc.recorder.Failed(ctx, b.ID(), shared.EffectEvent, string(e.event), err, now)
		}
	}

	if e.notify != nil {
		if err := e.notify(ctx); err != nil {
			uc.recorder.Failed(ctx, b.ID(), shared.EffectNotification, e.action, err, now)
		}
	}
}

type payment struct {
	action string
	call   func(ctx context.Context) (*shared.PaymentResult, error)
}

// paymentFor picks the provider call a committed transition requires, if any.
func (uc *bookingUseCaseImpl) paymentFor(prev, next *booking.Booking) (payment, bool) {
	switch next.Status() {
	case booking.StatusCancelled:
		fee := next.Cancellation().Fee
		if intent, ok := prev.Payment().PrepaidIntent(); ok {
			return uc.refund(intent, prev.AmountDue(), fee, "booking cancelled")
		}
		if fee.IsZero() {
			return payment{}, false
		}
		return payment{action: "cancellation_fee", call: func(ctx context.Context) (*shared.PaymentResult, error) {
			return uc.payments.ChargeCancellationFee(ctx, next, fee)
		}}, true

	case booking.StatusNoShow:
		fee := next.NoShow().Fee
		if intent, ok := prev.Payment().PrepaidIntent(); ok {
			return uc.refund(intent, prev.AmountDue(), fee, "no show")
		}
		if fee.IsZero() {
			return payment{}, false
		}
		return payment{action: "no_show_fee", call: func(ctx context.Context) (*shared.PaymentResult, error) {
			return uc.payments.ChargeNoShowFee(ctx, next, fee)
		}}, true

	case booking.StatusCompleted:
		charge := next.Execution().OvertimeCharge
		if charge.IsZero() {
			return payment{}, false
		}
		return payment{action: "overtime", call: func(ctx context.Context) (*shared.PaymentResult, error) {
			return uc.payments.ChargeOvertime(ctx, next, charge)
		}}, true
	}
	return payment{}, false
}

// refund returns what a prepaid booking is owed back once fee is kept.
func (uc *bookingUseCaseImpl) refund(intent string, paid, fee booking.Money, reason string) (payment, bool) {
	amount := paid.Cents() - fee.Cents()
	if amount <= 0 {
		return payment{}, false
	}
	return payment{action: "refund", call: func(ctx context.Context) (*shared.PaymentResult, error) {
		return uc.payments.Refund(ctx, intent, booking.NewMoney(amount), reason)
	}}, true
}

// settle calls the payment provider while the booking lock is still held. The lifecycle
// transition has already committed: a provider failure only marks the payment UNRESOLVED.
func (uc *bookingUseCaseImpl) settle(ctx context.Context, lease shared.Lease, b *booking.Booking, p payment) *booking.Booking {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), effectsTimeout)
	defer cancel()

	var (
		intentID *string
		state    = booking.PaymentSettled
		failure  string
	)
	extended, err := uc.locker.Extend(ctx, lease, uc.settings.BookingLockTTL)
	switch {
	case err != nil || !extended:
		// without the lock another request could settle the same booking
		if err == nil {
			err = errs.New("booking lock lost before payment")
		}
		state, failure = booking.PaymentUnresolved, err.Error()
		uc.recorder.Failed(ctx, b.ID(), shared.EffectPayment, p.action, err, uc.clock.Now())
	default:
		res, err := p.call(ctx)
		if err != nil {
			state, failure = booking.PaymentUnresolved, err.Error()
			uc.recorder.Failed(ctx, b.ID(), shared.EffectPayment, p.action, err, uc.clock.Now())
		} else if res != nil && res.IntentID != "" {
			intentID = &res.IntentID
		}
	}

	next := b.RecordPayment(uc.clock.Now(), intentID, state, failure)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdatePayment(ctx, next.ID(), next.Payment())
	})
	if err != nil {
		uc.recorder.Failed(ctx, b.ID(), shared.EffectPayment, "record_"+p.action, err, uc.clock.Now())
		return b
	}
	return next
}
