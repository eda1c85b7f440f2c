package commands

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RescheduleBooking moves a booking to a new start. The current resource is kept when it is free
// at the new time; otherwise the best free resource of the same kind takes over.
func (uc *bookingUseCaseImpl) RescheduleBooking(ctx context.Context, id uuid.UUID, req RescheduleBookingRequest) (*booking.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	bookingLease, err := uc.acquire(ctx, shared.BookingLockKey(uc.settings.LockKeyPrefix, id), uc.settings.BookingLockTTL, ErrBookingLocked)
	if err != nil {
		return nil, err
	}
	// released in reverse order right after commit, or on any earlier return
	leases := []shared.Lease{bookingLease}
	releaseAll := func() {
		for i := len(leases) - 1; i >= 0; i-- {
			uc.release(ctx, leases[i], id)
		}
		leases = nil
	}
	defer releaseAll()

	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c, catalog, err := uc.reference(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	moved, err := current.Reschedule(uc.policy, c, now, req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	search := scheduling.SearchRequest{
		Now:              now,
		DesiredStart:     moved.ScheduledAt(),
		Duration:         moved.Duration(),
		Window:           uc.settings.SearchWindow,
		MaxAlternatives:  uc.settings.MaxAlternatives,
		ExcludeBookingID: &id,
	}
	from, to := scheduling.HistoryWindow(c, search.DesiredStart, search.Duration, search.Window)

	var target *resource.Candidate
	if _, holds := moved.Occupancy(); holds {
		cand, err := uc.relocate(ctx, c, catalog, moved, search, from, to)
		if err != nil {
			return nil, err
		}
		if cand.ID != *moved.ResourceID() {
			if moved, err = moved.Reassign(now, cand.ID); err != nil {
				return nil, err
			}
		}
		target = &cand

		key := shared.SlotLockKey(uc.settings.LockKeyPrefix, cand.Type, cand.ID, moved.ScheduledAt(), c.SlotDuration(), moved.Duration())
		slotLease, err := uc.acquire(ctx, key, uc.settings.SlotLockTTL, ErrSlotContended)
		if err != nil {
			return nil, err
		}
		leases = append(leases, slotLease)
	}

	var saved *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAsBooking(err)
		}
		if locked.Version() != current.Version() {
			return ErrConcurrentModification.WithDetail("bookingId", id.String())
		}
		if target != nil {
			fresh, err := tx.Constraints().Active(ctx)
			if err != nil {
				return constraintsErr(err)
			}
			existing, err := tx.Bookings().ListOccupancies(ctx, []uuid.UUID{target.ID}, from, to)
			if err != nil {
				return err
			}
			if _, err := uc.engine.CheckSlot(fresh, *target, existing, search); err != nil {
				return err
			}
		}
		stored, err := tx.Bookings().Update(ctx, moved)
		if err != nil {
			return err
		}
		saved = stored
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	releaseAll()
	moved = saved

	previous := current.ScheduledAt()
	uc.logger.Info("booking rescheduled",
		zap.String("booking_id", id.String()),
		zap.Time("from", previous),
		zap.Time("to", moved.ScheduledAt()))

	uc.afterCommit(ctx, moved, effect{
		event: booking.EventRescheduled,
		data: map[string]any{
			"previousScheduledAt": previous.Format(time.RFC3339),
			"rescheduleCount":     moved.RescheduleCount(),
		},
		action: "booking_reschedule",
		notify: func(ctx context.Context) error { return uc.notifier.SendBookingReschedule(ctx, moved, previous) },
	})
	return moved, nil
}

// relocate picks the resource for a moved booking: its own when free, else the engine's choice
// among resources able to serve it.
func (uc *bookingUseCaseImpl) relocate(
	ctx context.Context,
	c scheduling.Constraints,
	catalog resource.Catalog,
	b *booking.Booking,
	search scheduling.SearchRequest,
	from, to time.Time,
) (resource.Candidate, error) {
	vehicle, err := uc.vehicles.GetVehicle(ctx, b.VehicleID())
	if err != nil {
		return resource.Candidate{}, err
	}
	if vehicle == nil {
		return resource.Candidate{}, ErrVehicleNotFound.WithDetail("vehicleId", b.VehicleID().String())
	}
	required, err := uc.requiredEquipment(ctx, b.ServiceIDs())
	if err != nil {
		return resource.Candidate{}, err
	}

	candidates := catalog.Match(resource.Requirement{
		Type:        b.ResourceType(),
		VehicleSize: vehicle.Size,
		Equipment:   required,
		Location:    b.Location(),
	})
	if len(candidates) == 0 {
		return resource.Candidate{}, ErrNoMatchingResource.WithDetail("resourceType", b.ResourceType().String())
	}
	history, err := uc.history(ctx, candidates, from, to)
	if err != nil {
		return resource.Candidate{}, err
	}

	for _, cand := range candidates {
		if cand.ID == *b.ResourceID() {
			if _, err := uc.engine.CheckSlot(c, cand, history[cand.ID], search); err == nil {
				return cand, nil
			}
			break
		}
	}

	result := uc.engine.Search(c, candidates, history, search)
	if !result.Found() {
		return resource.Candidate{}, unavailable(result)
	}
	return result.Exact.Candidate, nil
}

// requiredEquipment collects the equipment of the booked services still in the catalog.
func (uc *bookingUseCaseImpl) requiredEquipment(ctx context.Context, ids []uuid.UUID) (resource.Equipment, error) {
	data, err := uc.services.GetServicesData(ctx, ids)
	if err != nil {
		return nil, err
	}
	var items []string
	for _, d := range data {
		items = append(items, d.Equipment...)
	}
	return resource.NewEquipment(items...), nil
}

func (uc *bookingUseCaseImpl) load(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b *booking.Booking
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByID(ctx, id)
		return notFoundAsBooking(err)
	})
	return b, err
}
