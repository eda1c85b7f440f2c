package commands

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CreateBookingRequest struct {
	CustomerID  uuid.UUID
	VehicleID   uuid.UUID
	Type        booking.Type
	ScheduledAt time.Time
	ServiceIDs  []uuid.UUID
	// ResourceID pins the booking to one bay or team; nil lets the engine choose.
	ResourceID *uuid.UUID
	Location   *geo.Point
	Notes      string
	// PaymentIntentID is set when the customer has already paid.
	PaymentIntentID *string
}

type UpdateBookingRequest struct {
	Notes    *string
	Location *geo.Point
}

type RescheduleBookingRequest struct {
	ScheduledAt time.Time
}

type CancelBookingRequest struct {
	By     booking.CancelledBy
	Reason string
}

type CompleteBookingRequest struct {
	ActualEnd *time.Time
}

type RateBookingRequest struct {
	Score    int
	Feedback string
}

type SweepResult struct {
	Scanned int
	Marked  int
	Skipped int
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*booking.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*booking.Booking, error)
	RescheduleBooking(ctx context.Context, id uuid.UUID, req RescheduleBookingRequest) (*booking.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID, req CancelBookingRequest) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	StartBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CompleteBooking(ctx context.Context, id uuid.UUID, req CompleteBookingRequest) (*booking.Booking, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	RateBooking(ctx context.Context, id uuid.UUID, req RateBookingRequest) (*booking.Booking, error)
	AddService(ctx context.Context, id uuid.UUID, serviceID uuid.UUID) (*booking.Booking, error)
	RemoveService(ctx context.Context, id uuid.UUID, serviceID uuid.UUID) (*booking.Booking, error)
	SweepNoShows(ctx context.Context, limit int) (SweepResult, error)
}

// Settings are the orchestration knobs; business rules live in booking.Policy.
type Settings struct {
	OperationTimeout time.Duration
	SearchWindow     time.Duration
	MaxAlternatives  int
	SlotLockTTL      time.Duration
	BookingLockTTL   time.Duration
	LockKeyPrefix    string
}

func NewSettings(cfg config.Config) Settings {
	return Settings{
		OperationTimeout: cfg.Scheduling.OperationTimeout,
		SearchWindow:     cfg.Scheduling.SearchWindow,
		MaxAlternatives:  cfg.Scheduling.MaxAlternatives,
		SlotLockTTL:      cfg.Lock.SlotTTL,
		BookingLockTTL:   cfg.Lock.BookingTTL,
		LockKeyPrefix:    cfg.Lock.KeyPrefix,
	}
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	locker    shared.Locker
	customers shared.CustomerValidator
	vehicles  shared.VehicleValidator
	services  shared.ServiceCatalog
	notifier  shared.NotificationService
	payments  shared.PaymentService
	events    shared.EventBus
	cache     shared.BookingCache
	recorder  *shared.SideEffectRecorder
	engine    *scheduling.Engine
	policy    booking.Policy
	settings  Settings
	clock     clock.Clock
	logger    *zap.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	locker shared.Locker,
	customers shared.CustomerValidator,
	vehicles shared.VehicleValidator,
	services shared.ServiceCatalog,
	notifier shared.NotificationService,
	payments shared.PaymentService,
	events shared.EventBus,
	cache shared.BookingCache,
	recorder *shared.SideEffectRecorder,
	engine *scheduling.Engine,
	policy booking.Policy,
	settings Settings,
	clk clock.Clock,
	logger *zap.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:       uow,
		locker:    locker,
		customers: customers,
		vehicles:  vehicles,
		services:  services,
		notifier:  notifier,
		payments:  payments,
		events:    events,
		cache:     cache,
		recorder:  recorder,
		engine:    engine,
		policy:    policy,
		settings:  settings,
		clock:     clk,
		logger:    logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (*booking.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()
	now := uc.clock.Now()

	var (
		vehicle   *shared.VehicleRecord
		lines     []booking.ServiceLine
		equipment resource.Equipment
		catalog   resource.Catalog
		c         scheduling.Constraints
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vehicle, err = uc.checkOwnership(gctx, req.CustomerID, req.VehicleID)
		return err
	})
	g.Go(func() (err error) {
		lines, equipment, err = uc.serviceLines(gctx, req.ServiceIDs)
		return err
	})
	g.Go(func() (err error) {
		c, catalog, err = uc.reference(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	draft, err := booking.New(uc.policy, c, now, booking.NewParams{
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		Type:        req.Type,
		ScheduledAt: req.ScheduledAt,
		Services:    lines,
		Location:    req.Location,
		Notes:       req.Notes,

		PaymentIntentID: req.PaymentIntentID,
	})
	if err != nil {
		return nil, err
	}

	candidates, err := matchCandidates(catalog, resource.Requirement{
		Type:        draft.Type().ResourceType(),
		VehicleSize: vehicle.Size,
		Equipment:   equipment,
		Location:    draft.Location(),
	}, req.ResourceID)
	if err != nil {
		return nil, err
	}

	search := scheduling.SearchRequest{
		Now:             now,
		DesiredStart:    draft.ScheduledAt(),
		Duration:        draft.Duration(),
		Window:          uc.settings.SearchWindow,
		MaxAlternatives: uc.settings.MaxAlternatives,
	}
	from, to := scheduling.HistoryWindow(c, search.DesiredStart, search.Duration, search.Window)
	history, err := uc.history(ctx, candidates, from, to)
	if err != nil {
		return nil, err
	}
	result := uc.engine.Search(c, candidates, history, search)
	if !result.Found() {
		return nil, unavailable(result)
	}
	chosen := result.Exact.Candidate

	b, err := draft.Reassign(now, chosen.ID)
	if err != nil {
		return nil, err
	}

	key := shared.SlotLockKey(uc.settings.LockKeyPrefix, chosen.Type, chosen.ID, b.ScheduledAt(), c.SlotDuration(), b.Duration())
	lease, err := uc.acquire(ctx, key, uc.settings.SlotLockTTL, ErrSlotContended)
	if err != nil {
		return nil, err
	}
	released := false
	defer func() {
		if !released {
			uc.release(ctx, lease, b.ID())
		}
	}()

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Constraints().Active(ctx)
		if err != nil {
			return constraintsErr(err)
		}
		existing, err := tx.Bookings().ListOccupancies(ctx, []uuid.UUID{chosen.ID}, from, to)
		if err != nil {
			return err
		}
		if _, err := uc.engine.CheckSlot(current, chosen, existing, search); err != nil {
			return err
		}
		return tx.Bookings().Create(ctx, b)
	})
	if err != nil {
		return nil, translate(err)
	}
	uc.release(ctx, lease, b.ID())
	released = true

	uc.logger.Info("booking created",
		zap.String("booking_id", b.ID().String()),
		zap.String("resource_id", chosen.ID.String()),
		zap.Time("scheduled_at", b.ScheduledAt()))

	uc.afterCommit(ctx, b, effect{
		event:  booking.EventCreated,
		action: "booking_confirmation",
		notify: func(ctx context.Context) error { return uc.notifier.SendBookingConfirmation(ctx, b) },
	})
	return b, nil
}

// checkOwnership validates the customer and vehicle references and returns the vehicle.
func (uc *bookingUseCaseImpl) checkOwnership(ctx context.Context, customerID, vehicleID uuid.UUID) (*shared.VehicleRecord, error) {
	exists, err := uc.customers.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound.WithDetail("customerId", customerID.String())
	}
	vehicle, err := uc.vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound.WithDetail("vehicleId", vehicleID.String())
	}
	owned, err := uc.vehicles.BelongsToCustomer(ctx, vehicleID, customerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrVehicleNotOwned.WithDetail("vehicleId", vehicleID.String())
	}
	return vehicle, nil
}

// serviceLines snapshots catalog prices and durations into booking lines, in request order.
func (uc *bookingUseCaseImpl) serviceLines(ctx context.Context, ids []uuid.UUID) ([]booking.ServiceLine, resource.Equipment, error) {
	data, err := uc.services.GetServicesData(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]shared.ServiceData, len(data))
	for _, d := range data {
		byID[d.ID] = d
	}

	lines := make([]booking.ServiceLine, 0, len(ids))
	var required []string
	for _, id := range ids {
		d, ok := byID[id]
		if !ok {
			return nil, nil, ErrServiceNotFound.WithDetail("serviceId", id.String())
		}
		lines = append(lines, booking.ServiceLine{
			ServiceID:       d.ID,
			Name:            d.Name,
			Price:           booking.NewMoney(d.PriceCents),
			DurationMinutes: d.DurationMinutes,
		})
		required = append(required, d.Equipment...)
	}
	return lines, resource.NewEquipment(required...), nil
}

// reference loads the active constraints and the resource catalog from one snapshot.
func (uc *bookingUseCaseImpl) reference(ctx context.Context) (scheduling.Constraints, resource.Catalog, error) {
	var (
		c   scheduling.Constraints
		cat resource.Catalog
	)
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if c, err = tx.Constraints().Active(ctx); err != nil {
			return constraintsErr(err)
		}
		cat, err = tx.Resources().Catalog(ctx)
		return err
	})
	return c, cat, err
}

func (uc *bookingUseCaseImpl) history(ctx context.Context, candidates []resource.Candidate, from, to time.Time) (scheduling.History, error) {
	ids := make([]uuid.UUID, len(candidates))
	for i, cand := range candidates {
		ids[i] = cand.ID
	}
	var occupancies []scheduling.Occupancy
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		occupancies, err = tx.Bookings().ListOccupancies(ctx, ids, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scheduling.GroupByResource(occupancies), nil
}

// matchCandidates filters the catalog for req. When requested is set, only that resource is
// considered and it must be able to serve the booking.
func matchCandidates(cat resource.Catalog, req resource.Requirement, requested *uuid.UUID) ([]resource.Candidate, error) {
	matched := cat.Match(req)
	if requested == nil {
		if len(matched) == 0 {
			return nil, ErrNoMatchingResource.
				WithDetail("resourceType", req.Type.String()).
				WithDetail("vehicleSize", req.VehicleSize.String())
		}
		return matched, nil
	}

	for _, cand := range matched {
		if cand.ID == *requested {
			return []resource.Candidate{cand}, nil
		}
	}
	_, isBay := cat.FindBay(*requested)
	_, isTeam := cat.FindTeam(*requested)
	switch {
	case !isBay && !isTeam:
		return nil, resource.ErrResourceNotFound.WithDetail("resourceId", requested.String())
	case isBay != (req.Type == resource.TypeWashBay):
		return nil, ErrInvalidResourceID.WithDetail("resourceId", requested.String())
	}
	return nil, ErrResourceNotSuitable.WithDetail("resourceId", requested.String())
}

func unavailable(result scheduling.SearchResult) error {
	if len(result.Alternatives) == 0 {
		return scheduling.ErrNoAvailability
	}
	return scheduling.ErrSlotUnavailable.WithDetail("alternatives", describeOptions(result.Alternatives))
}

func describeOptions(options []scheduling.Option) []map[string]any {
	out := make([]map[string]any, len(options))
	for i, o := range options {
		out[i] = map[string]any{
			"resourceId":    o.Candidate.ID.String(),
			"resourceType":  o.Candidate.Type.String(),
			"start":         o.Slot.Start().Format(time.RFC3339),
			"offsetMinutes": int(o.Offset / time.Minute),
		}
	}
	return out
}
