package commands

import (
	"context"

	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/usecase/shared"

	"go.uber.org/zap"
)

type ConstraintsCommands interface {
	ReplaceConstraints(ctx context.Context, p scheduling.ConstraintsParams) (scheduling.Constraints, error)
}

type constraintsUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *zap.Logger
}

func NewConstraintsUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *zap.Logger) ConstraintsCommands {
	return &constraintsUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

// ReplaceConstraints deactivates the active version and inserts its successor in one transaction.
// Bookings already made keep the buffer they were created with.
func (uc *constraintsUseCaseImpl) ReplaceConstraints(ctx context.Context, p scheduling.ConstraintsParams) (scheduling.Constraints, error) {
	now := uc.clock.Now()
	var next scheduling.Constraints

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.Constraints().Active(ctx)
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			if next, err = scheduling.NewConstraints(p, now); err != nil {
				return err
			}
			return tx.Constraints().Insert(ctx, next)
		case err != nil:
			return err
		}

		retired, successor, err := active.Supersede(p, now)
		if err != nil {
			return err
		}
		if err := tx.Constraints().Deactivate(ctx, retired.ID()); err != nil {
			return err
		}
		next = successor
		return tx.Constraints().Insert(ctx, next)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindStaleVersion) {
		return scheduling.Constraints{}, ErrConcurrentModification.Withf("constraints were replaced concurrently")
	}
	if err != nil {
		return scheduling.Constraints{}, err
	}

	uc.logger.Info("scheduling constraints replaced", zap.Int("version", next.Version()), zap.String("summary", next.String()))
	return next, nil
}
