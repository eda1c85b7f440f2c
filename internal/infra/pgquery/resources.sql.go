package pgquery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const washBayColumns = `id, bay_number, max_vehicle_size, equipment, status, lat, lng, created_at, updated_at`

const listWashBays = `SELECT ` + washBayColumns + ` FROM wash_bays ORDER BY bay_number`

func (q *Queries) ListWashBays(ctx context.Context, db DBTX) ([]WashBays, error) {
	rows, err := db.Query(ctx, listWashBays)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[WashBays])
}

const getWashBay = `SELECT ` + washBayColumns + ` FROM wash_bays WHERE id = $1`

func (q *Queries) GetWashBay(ctx context.Context, db DBTX, id uuid.UUID) (WashBays, error) {
	rows, err := db.Query(ctx, getWashBay, id)
	if err != nil {
		return WashBays{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[WashBays])
}

const createWashBay = `INSERT INTO wash_bays (` + washBayColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (q *Queries) CreateWashBay(ctx context.Context, db DBTX, arg WashBays) error {
	_, err := db.Exec(ctx, createWashBay,
		arg.ID, arg.BayNumber, arg.MaxVehicleSize, arg.Equipment, arg.Status, arg.Lat, arg.Lng, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateWashBayStatus = `UPDATE wash_bays SET status = $2, updated_at = $3 WHERE id = $1`

func (q *Queries) UpdateWashBayStatus(ctx context.Context, db DBTX, id uuid.UUID, status string, updatedAt time.Time) (int64, error) {
	tag, err := db.Exec(ctx, updateWashBayStatus, id, status, updatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const mobileTeamColumns = `id, name, base_lat, base_lng, service_radius_km, daily_capacity, equipment, status, created_at, updated_at`

const listMobileTeams = `SELECT ` + mobileTeamColumns + ` FROM mobile_teams ORDER BY name, id`

func (q *Queries) ListMobileTeams(ctx context.Context, db DBTX) ([]MobileTeams, error) {
	rows, err := db.Query(ctx, listMobileTeams)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[MobileTeams])
}

const getMobileTeam = `SELECT ` + mobileTeamColumns + ` FROM mobile_teams WHERE id = $1`

func (q *Queries) GetMobileTeam(ctx context.Context, db DBTX, id uuid.UUID) (MobileTeams, error) {
	rows, err := db.Query(ctx, getMobileTeam, id)
	if err != nil {
		return MobileTeams{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[MobileTeams])
}

const createMobileTeam = `INSERT INTO mobile_teams (` + mobileTeamColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (q *Queries) CreateMobileTeam(ctx context.Context, db DBTX, arg MobileTeams) error {
	_, err := db.Exec(ctx, createMobileTeam,
		arg.ID, arg.Name, arg.BaseLat, arg.BaseLng, arg.ServiceRadiusKm, arg.DailyCapacity,
		arg.Equipment, arg.Status, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateMobileTeamStatus = `UPDATE mobile_teams SET status = $2, updated_at = $3 WHERE id = $1`

func (q *Queries) UpdateMobileTeamStatus(ctx context.Context, db DBTX, id uuid.UUID, status string, updatedAt time.Time) (int64, error) {
	tag, err := db.Exec(ctx, updateMobileTeamStatus, id, status, updatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
