package commands

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mutation describes one lifecycle operation on an existing booking.
type mutation struct {
	op string
	// apply runs inside the transaction on the row-locked booking and returns the next state.
	apply func(ctx context.Context, tx shared.Tx, current *booking.Booking, now time.Time) (*booking.Booking, error)
	// effect builds the after-commit steps; nil means cache invalidation only.
	effect func(prev, next *booking.Booking) effect
}

// mutate serializes edits of one booking: booking lock, transaction with a row lock and a
// version-checked write, payment under the still-held lock, then release and side effects.
func (uc *bookingUseCaseImpl) mutate(ctx context.Context, id uuid.UUID, m mutation) (*booking.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	lease, err := uc.acquire(ctx, shared.BookingLockKey(uc.settings.LockKeyPrefix, id), uc.settings.BookingLockTTL, ErrBookingLocked)
	if err != nil {
		return nil, err
	}
	released := false
	defer func() {
		if !released {
			uc.release(ctx, lease, id)
		}
	}()

	var prev, next *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAsBooking(err)
		}
		updated, err := m.apply(ctx, tx, current, uc.clock.Now())
		if err != nil {
			return err
		}
		stored, err := tx.Bookings().Update(ctx, updated)
		if err != nil {
			return err
		}
		prev, next = current, stored
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	uc.logger.Info("booking updated",
		zap.String("booking_id", id.String()),
		zap.String("operation", m.op),
		zap.String("status", next.Status().String()))

	if p, ok := uc.paymentFor(prev, next); ok {
		next = uc.settle(ctx, lease, next, p)
	}
	uc.release(ctx, lease, id)
	released = true

	e := effect{}
	if m.effect != nil {
		e = m.effect(prev, next)
	}
	uc.afterCommit(ctx, next, e)
	return next, nil
}

func (uc *bookingUseCaseImpl) statusUpdate(event booking.EventType) func(prev, next *booking.Booking) effect {
	return func(_, next *booking.Booking) effect {
		return effect{
			event:  event,
			action: "status_update",
			notify: func(ctx context.Context) error { return uc.notifier.SendStatusUpdate(ctx, next) },
		}
	}
}

func (uc *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "confirm",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			return b.Confirm(now)
		},
		effect: uc.statusUpdate(booking.EventConfirmed),
	})
}

func (uc *bookingUseCaseImpl) StartBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "start",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			return b.Start(now)
		},
		effect: uc.statusUpdate(booking.EventStarted),
	})
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, id uuid.UUID, req CompleteBookingRequest) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "complete",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			return b.Complete(uc.policy, now, req.ActualEnd)
		},
		effect: func(_, next *booking.Booking) effect {
			e := uc.statusUpdate(booking.EventCompleted)(nil, next)
			e.data = map[string]any{
				"overtimeMinutes":     next.Execution().OvertimeMinutes,
				"overtimeChargeCents": next.Execution().OvertimeCharge.Cents(),
			}
			return e
		},
	})
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID, req CancelBookingRequest) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "cancel",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			return b.Cancel(uc.policy, now, req.By, req.Reason)
		},
		effect: func(_, next *booking.Booking) effect {
			return effect{
				event: booking.EventCancelled,
				data: map[string]any{
					"cancelledBy": string(next.Cancellation().By),
					"feeCents":    next.Cancellation().Fee.Cents(),
				},
				action: "booking_cancellation",
				notify: func(ctx context.Context) error { return uc.notifier.SendBookingCancellation(ctx, next) },
			}
		},
	})
}

func (uc *bookingUseCaseImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "no_show",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			return b.MarkNoShow(uc.policy, now)
		},
		effect: func(_, next *booking.Booking) effect {
			e := uc.statusUpdate(booking.EventNoShow)(nil, next)
			e.data = map[string]any{"feeCents": next.NoShow().Fee.Cents()}
			return e
		},
	})
}

func (uc *bookingUseCaseImpl) RateBooking(ctx context.Context, id uuid.UUID, req RateBookingRequest) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "rate",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			return b.Rate(uc.policy, now, req.Score, req.Feedback)
		},
		effect: func(_, next *booking.Booking) effect {
			return effect{event: booking.EventUpdated, data: map[string]any{"rating": next.Rating().Score}}
		},
	})
}

func (uc *bookingUseCaseImpl) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "update",
		apply: func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			next, err := b.UpdateDetails(uc.policy, now, booking.DetailsUpdate{Notes: req.Notes, Location: req.Location})
			if err != nil {
				return nil, err
			}
			if req.Location == nil || next.ResourceType() != resource.TypeMobileTeam || next.ResourceID() == nil {
				return next, nil
			}
			team, err := tx.Resources().FindMobileTeam(ctx, *next.ResourceID())
			if err != nil {
				return nil, resourceErr(err, *next.ResourceID())
			}
			if !team.Reaches(*next.Location()) {
				return nil, ErrOutOfServiceArea.
					WithDetail("teamId", team.ID().String()).
					WithDetail("serviceRadiusKm", team.ServiceRadiusKm())
			}
			return next, nil
		},
		effect: func(_, _ *booking.Booking) effect {
			return effect{event: booking.EventUpdated}
		},
	})
}

func (uc *bookingUseCaseImpl) AddService(ctx context.Context, id uuid.UUID, serviceID uuid.UUID) (*booking.Booking, error) {
	lines, equipment, err := uc.serviceLines(ctx, []uuid.UUID{serviceID})
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, mutation{
		op: "add_service",
		apply: func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			next, err := b.AddService(uc.policy, now, lines[0])
			if err != nil {
				return nil, err
			}
			return next, uc.checkResize(ctx, tx, next, equipment)
		},
		effect: func(_, _ *booking.Booking) effect {
			return effect{event: booking.EventUpdated, data: map[string]any{"addedServiceId": serviceID.String()}}
		},
	})
}

func (uc *bookingUseCaseImpl) RemoveService(ctx context.Context, id uuid.UUID, serviceID uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, mutation{
		op: "remove_service",
		apply: func(_ context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*booking.Booking, error) {
			// a shorter booking cannot create a new overlap
			return b.RemoveService(uc.policy, now, serviceID)
		},
		effect: func(_, _ *booking.Booking) effect {
			return effect{event: booking.EventUpdated, data: map[string]any{"removedServiceId": serviceID.String()}}
		},
	})
}

// checkResize re-validates a booking whose duration grew against its resource's other bookings
// and equipment.
func (uc *bookingUseCaseImpl) checkResize(ctx context.Context, tx shared.Tx, b *booking.Booking, required resource.Equipment) error {
	occ, ok := b.Occupancy()
	if !ok {
		return nil
	}
	c, err := tx.Constraints().Active(ctx)
	if err != nil {
		return constraintsErr(err)
	}
	cand, equipment, err := uc.assigned(ctx, tx, b)
	if err != nil {
		return err
	}
	if !equipment.HasAll(required) {
		return ErrResourceNotSuitable.WithDetail("resourceId", cand.ID.String())
	}
	from, to := scheduling.HistoryWindow(c, occ.Start, b.Duration(), 0)
	existing, err := tx.Bookings().ListOccupancies(ctx, []uuid.UUID{cand.ID}, from, to)
	if err != nil {
		return err
	}
	id := b.ID()
	_, err = uc.engine.CheckResize(c, cand, existing, occ.Start, b.Duration(), &id)
	return err
}

// assigned loads the resource a booking holds as an engine candidate.
func (uc *bookingUseCaseImpl) assigned(ctx context.Context, tx shared.Tx, b *booking.Booking) (resource.Candidate, resource.Equipment, error) {
	id := *b.ResourceID()
	if b.ResourceType() == resource.TypeMobileTeam {
		team, err := tx.Resources().FindMobileTeam(ctx, id)
		if err != nil {
			return resource.Candidate{}, nil, resourceErr(err, id)
		}
		return team.Candidate(*b.Location()), team.Equipment(), nil
	}
	bay, err := tx.Resources().FindWashBay(ctx, id)
	if err != nil {
		return resource.Candidate{}, nil, resourceErr(err, id)
	}
	return bay.Candidate(), bay.Equipment(), nil
}

func resourceErr(err error, id uuid.UUID) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return resource.ErrResourceNotFound.WithDetail("resourceId", id.String())
	}
	return err
}
