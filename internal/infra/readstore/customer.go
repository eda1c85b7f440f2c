package readstore

import (
	"context"

	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/pkg/ptr"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerReadQueries interface {
	CustomerExists(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (bool, error)
	GetCustomer(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Customers, error)
}

// CustomerReadStore answers customer lookups outside any transaction.
type CustomerReadStore struct {
	queries CustomerReadQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewCustomerReadStore(queries CustomerReadQueries, db pgquery.DBTX, logger *zap.Logger) *CustomerReadStore {
	return &CustomerReadStore{queries: queries, db: db, logger: logger}
}

var _ shared.CustomerValidator = (*CustomerReadStore)(nil)

func (r *CustomerReadStore) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.queries.CustomerExists(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check customer", err)
	}
	return exists, nil
}

func (r *CustomerReadStore) GetCustomerData(ctx context.Context, id uuid.UUID) (*shared.CustomerRecord, error) {
	row, err := r.queries.GetCustomer(ctx, r.db, id)
	if err != nil {
		kind := infra.ClassifyPgError(err)
		if kind == infra.KindNotFound {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, kind, "failed to find customer", err)
	}
	return &shared.CustomerRecord{
		ID:    row.ID,
		Name:  row.Name,
		Email: row.Email,
		Phone: ptr.Deref(row.Phone),
	}, nil
}
