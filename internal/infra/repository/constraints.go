package repository

import (
	"context"

	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/infra/repository/converter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConstraintsQueries interface {
	GetActiveConstraints(ctx context.Context, db pgquery.DBTX) (pgquery.SchedulingConstraints, error)
	InsertConstraints(ctx context.Context, db pgquery.DBTX, arg pgquery.SchedulingConstraints) error
	DeactivateConstraints(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (int64, error)
}

type ConstraintsRepository struct {
	queries ConstraintsQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewConstraintsRepository(queries ConstraintsQueries, db pgquery.DBTX, logger *zap.Logger) *ConstraintsRepository {
	return &ConstraintsRepository{queries: queries, db: db, logger: logger}
}

func (r *ConstraintsRepository) Active(ctx context.Context) (scheduling.Constraints, error) {
	row, err := r.queries.GetActiveConstraints(ctx, r.db)
	if err != nil {
		return scheduling.Constraints{}, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to load active constraints", err)
	}
	c, err := converter.ConstraintsFromRow(row)
	if err != nil {
		return scheduling.Constraints{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored constraints are invalid", err)
	}
	return c, nil
}

func (r *ConstraintsRepository) Insert(ctx context.Context, c scheduling.Constraints) error {
	row, err := converter.ConstraintsToRow(c)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode constraints", err)
	}
	if err := r.queries.InsertConstraints(ctx, r.db, row); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to insert constraints", err)
	}
	return nil
}

func (r *ConstraintsRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeactivateConstraints(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to deactivate constraints", err)
	}
	if n == 0 {
		// another writer retired it first
		return infra.WrapRepoErr(r.logger, infra.KindStaleVersion, "constraints already inactive", nil)
	}
	return nil
}
