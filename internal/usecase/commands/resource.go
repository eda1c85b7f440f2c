package commands

import (
	"context"

	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResourceCommands interface {
	CreateWashBay(ctx context.Context, p resource.NewWashBayParams) (*resource.WashBay, error)
	CreateMobileTeam(ctx context.Context, p resource.NewMobileTeamParams) (*resource.MobileTeam, error)
	SetResourceStatus(ctx context.Context, t resource.Type, id uuid.UUID, status resource.Status) (resource.Status, error)
}

type resourceUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *zap.Logger
}

func NewResourceUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *zap.Logger) ResourceCommands {
	return &resourceUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *resourceUseCaseImpl) CreateWashBay(ctx context.Context, p resource.NewWashBayParams) (*resource.WashBay, error) {
	bay, err := resource.NewWashBay(p, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().CreateWashBay(ctx, bay)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, ErrBayNumberTaken.WithDetail("bayNumber", p.BayNumber)
	}
	if err != nil {
		return nil, err
	}
	uc.logger.Info("wash bay created", zap.String("resource_id", bay.ID().String()), zap.Int("bay_number", bay.BayNumber()))
	return bay, nil
}

func (uc *resourceUseCaseImpl) CreateMobileTeam(ctx context.Context, p resource.NewMobileTeamParams) (*resource.MobileTeam, error) {
	team, err := resource.NewMobileTeam(p, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().CreateMobileTeam(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("mobile team created", zap.String("resource_id", team.ID().String()), zap.String("name", team.Name()))
	return team, nil
}

// SetResourceStatus takes a resource in or out of service. Existing bookings keep their resource;
// only new searches stop offering it.
func (uc *resourceUseCaseImpl) SetResourceStatus(ctx context.Context, t resource.Type, id uuid.UUID, status resource.Status) (resource.Status, error) {
	if !t.IsValid() {
		return "", resource.ErrInvalidType.Withf("unknown resource type %q", t)
	}
	if !status.IsValid() {
		return "", resource.ErrInvalidStatus.Withf("unknown resource status %q", status)
	}
	now := uc.clock.Now()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if t == resource.TypeWashBay {
			bay, err := tx.Resources().FindWashBay(ctx, id)
			if err != nil {
				return resourceErr(err, id)
			}
			next, err := bay.WithStatus(status, now)
			if err != nil {
				return err
			}
			return tx.Resources().UpdateWashBayStatus(ctx, next)
		}
		team, err := tx.Resources().FindMobileTeam(ctx, id)
		if err != nil {
			return resourceErr(err, id)
		}
		next, err := team.WithStatus(status, now)
		if err != nil {
			return err
		}
		return tx.Resources().UpdateMobileTeamStatus(ctx, next)
	})
	if err != nil {
		return "", err
	}
	uc.logger.Info("resource status changed",
		zap.String("resource_id", id.String()),
		zap.String("type", t.String()),
		zap.String("status", status.String()))
	return status, nil
}
