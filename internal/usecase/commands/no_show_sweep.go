package commands

import (
	"context"

	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SweepNoShows marks CONFIRMED bookings whose grace period has elapsed. Each booking goes through
// MarkNoShow, so locking, fees and side effects are the same as for a staff request. Bookings held
// by another request are skipped and picked up by the next sweep.
func (uc *bookingUseCaseImpl) SweepNoShows(ctx context.Context, limit int) (SweepResult, error) {
	cutoff := uc.clock.Now().Add(-uc.policy.GracePeriod)

	var due []uuid.UUID
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Bookings().ListDueNoShows(ctx, cutoff, limit)
		return err
	})
	if err != nil {
		return SweepResult{}, err
	}

	res := SweepResult{Scanned: len(due)}
	for _, id := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		_, err := uc.MarkNoShow(ctx, id)
		switch {
		case err == nil:
			res.Marked++
		case errs.IsKind(err, errs.KindContention), errs.IsKind(err, errs.KindBusinessRule):
			res.Skipped++
			uc.logger.Debug("no-show sweep skipped booking",
				zap.String("booking_id", id.String()),
				zap.Error(err))
		default:
			return res, err
		}
	}

	if res.Scanned > 0 {
		uc.logger.Info("no-show sweep finished",
			zap.Int("scanned", res.Scanned),
			zap.Int("marked", res.Marked),
			zap.Int("skipped", res.Skipped))
	}
	return res, nil
}
