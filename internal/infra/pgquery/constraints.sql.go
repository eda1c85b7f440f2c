package pgquery

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const constraintsColumns = `id, version, min_advance_minutes, max_advance_minutes, slot_duration_minutes,
	buffer_minutes, business_hours, closed_dates, time_zone, is_active, created_at`

const getActiveConstraints = `SELECT ` + constraintsColumns + `
FROM scheduling_constraints WHERE is_active`

func (q *Queries) GetActiveConstraints(ctx context.Context, db DBTX) (SchedulingConstraints, error) {
	rows, err := db.Query(ctx, getActiveConstraints)
	if err != nil {
		return SchedulingConstraints{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[SchedulingConstraints])
}

const insertConstraints = `INSERT INTO scheduling_constraints (` + constraintsColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (q *Queries) InsertConstraints(ctx context.Context, db DBTX, arg SchedulingConstraints) error {
	_, err := db.Exec(ctx, insertConstraints,
		arg.ID, arg.Version, arg.MinAdvanceMinutes, arg.MaxAdvanceMinutes, arg.SlotDurationMinutes,
		arg.BufferMinutes, arg.BusinessHours, arg.ClosedDates, arg.TimeZone, arg.IsActive, arg.CreatedAt)
	return err
}

const deactivateConstraints = `UPDATE scheduling_constraints SET is_active = FALSE WHERE id = $1 AND is_active`

func (q *Queries) DeactivateConstraints(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deactivateConstraints, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
