package pgquery

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customerExists = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`

func (q *Queries) CustomerExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, customerExists, id).Scan(&exists)
	return exists, err
}

const getCustomer = `SELECT id, name, email, phone, created_at FROM customers WHERE id = $1`

func (q *Queries) GetCustomer(ctx context.Context, db DBTX, id uuid.UUID) (Customers, error) {
	rows, err := db.Query(ctx, getCustomer, id)
	if err != nil {
		return Customers{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Customers])
}

const getVehicle = `SELECT id, customer_id, plate, size, created_at FROM vehicles WHERE id = $1`

func (q *Queries) GetVehicle(ctx context.Context, db DBTX, id uuid.UUID) (Vehicles, error) {
	rows, err := db.Query(ctx, getVehicle, id)
	if err != nil {
		return Vehicles{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Vehicles])
}

const vehicleBelongsToCustomer = `SELECT EXISTS (SELECT 1 FROM vehicles WHERE id = $1 AND customer_id = $2)`

func (q *Queries) VehicleBelongsToCustomer(ctx context.Context, db DBTX, vehicleID, customerID uuid.UUID) (bool, error) {
	var owned bool
	err := db.QueryRow(ctx, vehicleBelongsToCustomer, vehicleID, customerID).Scan(&owned)
	return owned, err
}

const listActiveServicesByIDs = `SELECT id, name, price_cents, duration_minutes, equipment, is_active, created_at
FROM services
WHERE id = ANY($1::uuid[]) AND is_active`

func (q *Queries) ListActiveServicesByIDs(ctx context.Context, db DBTX, ids []uuid.UUID) ([]Services, error) {
	rows, err := db.Query(ctx, listActiveServicesByIDs, ids)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Services])
}
