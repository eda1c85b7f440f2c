package pgquery

import "context"

const insertSideEffect = `INSERT INTO side_effect_log (id, booking_id, kind, action, error, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (q *Queries) InsertSideEffect(ctx context.Context, db DBTX, arg SideEffectLog) error {
	_, err := db.Exec(ctx, insertSideEffect, arg.ID, arg.BookingID, arg.Kind, arg.Action, arg.Error, arg.OccurredAt)
	return err
}
