package repository

import (
	"context"

	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/usecase/shared"

	"go.uber.org/zap"
)

type SideEffectQueries interface {
	InsertSideEffect(ctx context.Context, db pgquery.DBTX, arg pgquery.SideEffectLog) error
}

type SideEffectRepository struct {
	queries SideEffectQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewSideEffectRepository(queries SideEffectQueries, db pgquery.DBTX, logger *zap.Logger) *SideEffectRepository {
	return &SideEffectRepository{queries: queries, db: db, logger: logger}
}

func (r *SideEffectRepository) Record(ctx context.Context, e shared.SideEffect) error {
	err := r.queries.InsertSideEffect(ctx, r.db, pgquery.SideEffectLog{
		ID:         e.ID,
		BookingID:  e.BookingID,
		Kind:       string(e.Kind),
		Action:     e.Action,
		Error:      e.Error,
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to record side effect", err)
	}
	return nil
}
