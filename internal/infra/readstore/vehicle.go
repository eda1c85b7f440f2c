package readstore

import (
	"context"

	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehicleReadQueries interface {
	GetVehicle(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Vehicles, error)
	VehicleBelongsToCustomer(ctx context.Context, db pgquery.DBTX, vehicleID, customerID uuid.UUID) (bool, error)
}

type VehicleReadStore struct {
	queries VehicleReadQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewVehicleReadStore(queries VehicleReadQueries, db pgquery.DBTX, logger *zap.Logger) *VehicleReadStore {
	return &VehicleReadStore{queries: queries, db: db, logger: logger}
}

var _ shared.VehicleValidator = (*VehicleReadStore)(nil)

func (r *VehicleReadStore) BelongsToCustomer(ctx context.Context, vehicleID, customerID uuid.UUID) (bool, error) {
	owned, err := r.queries.VehicleBelongsToCustomer(ctx, r.db, vehicleID, customerID)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check vehicle owner", err)
	}
	return owned, nil
}

func (r *VehicleReadStore) GetVehicle(ctx context.Context, id uuid.UUID) (*shared.VehicleRecord, error) {
	row, err := r.queries.GetVehicle(ctx, r.db, id)
	if err != nil {
		kind := infra.ClassifyPgError(err)
		if kind == infra.KindNotFound {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, kind, "failed to find vehicle", err)
	}
	return &shared.VehicleRecord{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Size:       resource.VehicleSize(row.Size),
		Plate:      row.Plate,
	}, nil
}
