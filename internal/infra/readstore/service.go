package readstore

import (
	"context"

	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServiceReadQueries interface {
	ListActiveServicesByIDs(ctx context.Context, db pgquery.DBTX, ids []uuid.UUID) ([]pgquery.Services, error)
}

type ServiceReadStore struct {
	queries ServiceReadQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewServiceReadStore(queries ServiceReadQueries, db pgquery.DBTX, logger *zap.Logger) *ServiceReadStore {
	return &ServiceReadStore{queries: queries, db: db, logger: logger}
}

var _ shared.ServiceCatalog = (*ServiceReadStore)(nil)

func (r *ServiceReadStore) GetServicesData(ctx context.Context, ids []uuid.UUID) ([]shared.ServiceData, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.queries.ListActiveServicesByIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load services", err)
	}
	out := make([]shared.ServiceData, len(rows))
	for i, row := range rows {
		out[i] = shared.ServiceData{
			ID:              row.ID,
			Name:            row.Name,
			PriceCents:      row.PriceCents,
			DurationMinutes: int(row.DurationMinutes),
			Equipment:       row.Equipment,
		}
	}
	return out, nil
}
