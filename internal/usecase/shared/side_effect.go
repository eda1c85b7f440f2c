package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SideEffectKind string

const (
	EffectNotification SideEffectKind = "NOTIFICATION"
	EffectEvent        SideEffectKind = "EVENT"
	EffectPayment      SideEffectKind = "PAYMENT"
	EffectCache        SideEffectKind = "CACHE"
	EffectLockRelease  SideEffectKind = "LOCK_RELEASE"
)

// SideEffect is the record of a best-effort action that failed after its transition committed.
type SideEffect struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	Kind       SideEffectKind
	Action     string
	Error      string
	OccurredAt time.Time
}

// SideEffectRecorder makes failed best-effort actions observable without failing the caller.
type SideEffectRecorder struct {
	uow     UnitOfWork
	logger  *zap.Logger
	persist bool
}

func NewSideEffectRecorder(uow UnitOfWork, logger *zap.Logger, persist bool) *SideEffectRecorder {
	return &SideEffectRecorder{uow: uow, logger: logger, persist: persist}
}

func (r *SideEffectRecorder) Failed(ctx context.Context, bookingID uuid.UUID, kind SideEffectKind, action string, cause error, at time.Time) {
	r.logger.Warn("side effect failed",
		zap.String("booking_id", bookingID.String()),
		zap.String("effect", string(kind)),
		zap.String("action", action),
		zap.Error(cause))

	if !r.persist {
		return
	}
	effect := SideEffect{
		ID:         uuid.New(),
		BookingID:  bookingID,
		Kind:       kind,
		Action:     action,
		Error:      cause.Error(),
		OccurredAt: at,
	}
	// the request context may already be done; the record must still be written
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	err := r.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.SideEffects().Record(ctx, effect)
	})
	if err != nil {
		r.logger.Error("failed to record side effect",
			zap.String("booking_id", bookingID.String()),
			zap.String("effect", string(kind)),
			zap.Error(err))
	}
}
