package queries

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

type SearchAvailabilityRequest struct {
	Type         booking.Type
	DesiredStart time.Time
	ServiceIDs   []uuid.UUID
	// VehicleID wins over VehicleSize when both are given.
	VehicleID   *uuid.UUID
	VehicleSize resource.VehicleSize
	Location    *geo.Point
}

type AvailabilityQueries interface {
	SearchAvailability(ctx context.Context, req SearchAvailabilityRequest) (*AvailabilityView, error)
}

type SearchSettings struct {
	Window          time.Duration
	MaxAlternatives int
}

func NewSearchSettings(cfg config.Config) SearchSettings {
	return SearchSettings{Window: cfg.Scheduling.SearchWindow, MaxAlternatives: cfg.Scheduling.MaxAlternatives}
}

type availabilityQueriesImpl struct {
	uow      shared.UnitOfWork
	vehicles shared.VehicleValidator
	services shared.ServiceCatalog
	engine   *scheduling.Engine
	settings SearchSettings
	clock    clock.Clock
	logger   *zap.Logger
}

func NewAvailabilityQueries(
	uow shared.UnitOfWork,
	vehicles shared.VehicleValidator,
	services shared.ServiceCatalog,
	engine *scheduling.Engine,
	settings SearchSettings,
	clk clock.Clock,
	logger *zap.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:      uow,
		vehicles: vehicles,
		services: services,
		engine:   engine,
		settings: settings,
		clock:    clk,
		logger:   logger,
	}
}

// SearchAvailability answers "when and where could this booking go" without taking any lock.
// An empty result is not an error.
func (q *availabilityQueriesImpl) SearchAvailability(ctx context.Context, req SearchAvailabilityRequest) (*AvailabilityView, error) {
	if !req.Type.IsValid() {
		return nil, booking.ErrInvalidBookingType
	}
	if req.Type == booking.TypeMobile {
		if req.Location == nil {
			return nil, booking.ErrLocationRequired
		}
		if err := req.Location.Validate(); err != nil {
			return nil, err
		}
	}

	var (
		size      resource.VehicleSize
		duration  time.Duration
		equipment resource.Equipment
		c         scheduling.Constraints
		catalog   resource.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		size, err = q.vehicleSize(gctx, req)
		return err
	})
	g.Go(func() (err error) {
		duration, equipment, err = q.requirements(gctx, req.ServiceIDs)
		return err
	})
	g.Go(func() error {
		return q.uow.WithinReadOnly(gctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			if c, err = tx.Constraints().Active(ctx); err != nil {
				return constraintsNotFound(err)
			}
			catalog, err = tx.Resources().Catalog(ctx)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &AvailabilityView{DurationMinutes: int(duration / time.Minute), Alternatives: []SlotView{}}
	candidates := catalog.Match(resource.Requirement{
		Type:        req.Type.ResourceType(),
		VehicleSize: size,
		Equipment:   equipment,
		Location:    req.Location,
	})
	if len(candidates) == 0 {
		return view, nil
	}

	search := scheduling.SearchRequest{
		Now:             q.clock.Now(),
		DesiredStart:    req.DesiredStart,
		Duration:        duration,
		Window:          q.settings.Window,
		MaxAlternatives: q.settings.MaxAlternatives,
	}
	ids := make([]uuid.UUID, len(candidates))
	for i, cand := range candidates {
		ids[i] = cand.ID
	}
	from, to := scheduling.HistoryWindow(c, search.DesiredStart, search.Duration, search.Window)
	var occupancies []scheduling.Occupancy
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		occupancies, err = tx.Bookings().ListOccupancies(ctx, ids, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	result := q.engine.Search(c, candidates, scheduling.GroupByResource(occupancies), search)
	if result.Exact != nil {
		exact := newSlotView(*result.Exact)
		view.Available, view.Exact = true, &exact
	}
	for _, o := range result.Alternatives {
		view.Alternatives = append(view.Alternatives, newSlotView(o))
	}
	q.logger.Debug("availability searched",
		zap.Time("desired_start", req.DesiredStart),
		zap.Int("candidates", len(candidates)),
		zap.Bool("available", view.Available),
		zap.Int("alternatives", len(view.Alternatives)))
	return view, nil
}

func (q *availabilityQueriesImpl) vehicleSize(ctx context.Context, req SearchAvailabilityRequest) (resource.VehicleSize, error) {
	if req.VehicleID == nil {
		if !req.VehicleSize.IsValid() {
			return "", ErrInvalidVehicleSize
		}
		return req.VehicleSize, nil
	}
	v, err := q.vehicles.GetVehicle(ctx, *req.VehicleID)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", ErrVehicleNotFound.WithDetail("vehicleId", req.VehicleID.String())
	}
	return v.Size, nil
}

// requirements sums the service durations and collects their equipment.
func (q *availabilityQueriesImpl) requirements(ctx context.Context, ids []uuid.UUID) (time.Duration, resource.Equipment, error) {
	if len(ids) == 0 {
		return 0, nil, booking.ErrTooFewServices
	}
	data, err := q.services.GetServicesData(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	byID := make(map[uuid.UUID]shared.ServiceData, len(data))
	for _, d := range data {
		byID[d.ID] = d
	}
	var (
		minutes int
		items   []string
	)
	for _, id := range ids {
		d, ok := byID[id]
		if !ok {
			return 0, nil, ErrServiceNotFound.WithDetail("serviceId", id.String())
		}
		minutes += d.DurationMinutes
		items = append(items, d.Equipment...)
	}
	return time.Duration(minutes) * time.Minute, resource.NewEquipment(items...), nil
}
