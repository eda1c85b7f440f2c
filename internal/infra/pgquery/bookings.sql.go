package pgquery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, customer_id, vehicle_id, booking_type, status, scheduled_at, estimated_minutes,
	total_price_cents, resource_id, resource_type, buffer_minutes, lat, lng, notes,
	cancelled_at, cancelled_by, cancellation_reason, cancellation_fee_cents, no_show_at, no_show_fee_cents,
	actual_start, actual_end, overtime_minutes, overtime_charge_cents, final_price_cents,
	rating, feedback, rated_at, payment_intent_id, payment_state, payment_error, payment_updated_at,
	reschedule_count, version, created_at, updated_at`

type BookingWriteParams struct {
	Bookings
	BlockedFrom time.Time
	BlockedTo   time.Time
}

const createBooking = `INSERT INTO bookings (` + bookingColumns + `, blocked_slot)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36,
	tstzrange($37, $38, '[)'))`

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg BookingWriteParams) error {
	_, err := db.Exec(ctx, createBooking, append(bookingArgs(arg.Bookings), arg.BlockedFrom, arg.BlockedTo)...)
	return err
}

const updateBooking = `UPDATE bookings SET
	status = $2, scheduled_at = $3, estimated_minutes = $4, total_price_cents = $5,
	resource_id = $6, resource_type = $7, buffer_minutes = $8, lat = $9, lng = $10, notes = $11,
	cancelled_at = $12, cancelled_by = $13, cancellation_reason = $14, cancellation_fee_cents = $15,
	no_show_at = $16, no_show_fee_cents = $17, actual_start = $18, actual_end = $19,
	overtime_minutes = $20, overtime_charge_cents = $21, final_price_cents = $22,
	rating = $23, feedback = $24, rated_at = $25, reschedule_count = $26, updated_at = $27,
	blocked_slot = tstzrange($28, $29, '[)'),
	version = version + 1
WHERE id = $1 AND version = $30`

// UpdateBooking returns the number of rows written; zero means the version moved on.
func (q *Queries) UpdateBooking(ctx context.Context, db DBTX, arg BookingWriteParams) (int64, error) {
	b := arg.Bookings
	tag, err := db.Exec(ctx, updateBooking,
		b.ID, b.Status, b.ScheduledAt, b.EstimatedMinutes, b.TotalPriceCents,
		b.ResourceID, b.ResourceType, b.BufferMinutes, b.Lat, b.Lng, b.Notes,
		b.CancelledAt, b.CancelledBy, b.CancellationReason, b.CancellationFeeCents,
		b.NoShowAt, b.NoShowFeeCents, b.ActualStart, b.ActualEnd,
		b.OvertimeMinutes, b.OvertimeChargeCents, b.FinalPriceCents,
		b.Rating, b.Feedback, b.RatedAt, b.RescheduleCount, b.UpdatedAt,
		arg.BlockedFrom, arg.BlockedTo,
		b.Version,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type UpdateBookingPaymentParams struct {
	ID               uuid.UUID
	PaymentIntentID  *string
	PaymentState     string
	PaymentError     string
	PaymentUpdatedAt *time.Time
}

const updateBookingPayment = `UPDATE bookings SET
	payment_intent_id = COALESCE($2, payment_intent_id),
	payment_state = $3, payment_error = $4, payment_updated_at = $5
WHERE id = $1`

func (q *Queries) UpdateBookingPayment(ctx context.Context, db DBTX, arg UpdateBookingPaymentParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingPayment,
		arg.ID, arg.PaymentIntentID, arg.PaymentState, arg.PaymentError, arg.PaymentUpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getBooking = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

func (q *Queries) GetBooking(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	rows, err := db.Query(ctx, getBooking, id)
	if err != nil {
		return Bookings{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Bookings])
}

const getBookingForUpdate = getBooking + ` FOR UPDATE`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	rows, err := db.Query(ctx, getBookingForUpdate, id)
	if err != nil {
		return Bookings{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Bookings])
}

const listBookingServiceLines = `SELECT booking_id, position, service_id, name, price_cents, duration_minutes
FROM booking_service_lines
WHERE booking_id = ANY($1::uuid[])
ORDER BY booking_id, position`

func (q *Queries) ListBookingServiceLines(ctx context.Context, db DBTX, bookingIDs []uuid.UUID) ([]BookingServiceLines, error) {
	rows, err := db.Query(ctx, listBookingServiceLines, bookingIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[BookingServiceLines])
}

const deleteBookingServiceLines = `DELETE FROM booking_service_lines WHERE booking_id = $1`

const insertBookingServiceLines = `INSERT INTO booking_service_lines
	(booking_id, position, service_id, name, price_cents, duration_minutes)
SELECT $1, l.position, l.service_id, l.name, l.price_cents, l.duration_minutes
FROM unnest($2::int[], $3::uuid[], $4::text[], $5::bigint[], $6::int[])
	AS l(position, service_id, name, price_cents, duration_minutes)`

// ReplaceBookingServiceLines rewrites the lines of one booking in a single round trip per statement.
func (q *Queries) ReplaceBookingServiceLines(ctx context.Context, db DBTX, bookingID uuid.UUID, lines []BookingServiceLines) error {
	if _, err := db.Exec(ctx, deleteBookingServiceLines, bookingID); err != nil {
		return err
	}
	var (
		positions = make([]int32, len(lines))
		serviceID = make([]uuid.UUID, len(lines))
		names     = make([]string, len(lines))
		prices    = make([]int64, len(lines))
		durations = make([]int32, len(lines))
	)
	for i, l := range lines {
		positions[i], serviceID[i], names[i], prices[i], durations[i] = l.Position, l.ServiceID, l.Name, l.PriceCents, l.DurationMinutes
	}
	_, err := db.Exec(ctx, insertBookingServiceLines, bookingID, positions, serviceID, names, prices, durations)
	return err
}

type ListOccupanciesParams struct {
	ResourceIDs []uuid.UUID
	Statuses    []string
	From        time.Time
	To          time.Time
}

type ListOccupanciesRow struct {
	ID               uuid.UUID `db:"id"`
	ResourceID       uuid.UUID `db:"resource_id"`
	ScheduledAt      time.Time `db:"scheduled_at"`
	EstimatedMinutes int32     `db:"estimated_minutes"`
	BufferMinutes    int32     `db:"buffer_minutes"`
}

const listOccupancies = `SELECT id, resource_id, scheduled_at, estimated_minutes, buffer_minutes
FROM bookings
WHERE resource_id = ANY($1::uuid[])
	AND status = ANY($2::text[])
	AND blocked_slot && tstzrange($3, $4, '[)')
ORDER BY resource_id, scheduled_at`

func (q *Queries) ListOccupancies(ctx context.Context, db DBTX, arg ListOccupanciesParams) ([]ListOccupanciesRow, error) {
	rows, err := db.Query(ctx, listOccupancies, arg.ResourceIDs, arg.Statuses, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[ListOccupanciesRow])
}

type ListCustomerBookingsParams struct {
	CustomerID       uuid.UUID
	Statuses         []string
	From             *time.Time
	To               *time.Time
	AfterScheduledAt *time.Time
	AfterID          *uuid.UUID
	Limit            int32
}

const listCustomerBookings = `SELECT ` + bookingColumns + `
FROM bookings
WHERE customer_id = $1
	AND (COALESCE(cardinality($2::text[]), 0) = 0 OR status = ANY($2::text[]))
	AND ($3::timestamptz IS NULL OR scheduled_at >= $3)
	AND ($4::timestamptz IS NULL OR scheduled_at < $4)
	AND ($5::timestamptz IS NULL OR (scheduled_at, id) > ($5, $6::uuid))
ORDER BY scheduled_at, id
LIMIT $7`

func (q *Queries) ListCustomerBookings(ctx context.Context, db DBTX, arg ListCustomerBookingsParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listCustomerBookings,
		arg.CustomerID, arg.Statuses, arg.From, arg.To, arg.AfterScheduledAt, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Bookings])
}

const listDueNoShows = `SELECT id FROM bookings
WHERE status = 'CONFIRMED' AND scheduled_at <= $1
ORDER BY scheduled_at, id
LIMIT $2`

func (q *Queries) ListDueNoShows(ctx context.Context, db DBTX, cutoff time.Time, limit int32) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listDueNoShows, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func bookingArgs(b Bookings) []any {
	return []any{
		b.ID, b.CustomerID, b.VehicleID, b.BookingType, b.Status, b.ScheduledAt, b.EstimatedMinutes,
		b.TotalPriceCents, b.ResourceID, b.ResourceType, b.BufferMinutes, b.Lat, b.Lng, b.Notes,
		b.CancelledAt, b.CancelledBy, b.CancellationReason, b.CancellationFeeCents, b.NoShowAt, b.NoShowFeeCents,
		b.ActualStart, b.ActualEnd, b.OvertimeMinutes, b.OvertimeChargeCents, b.FinalPriceCents,
		b.Rating, b.Feedback, b.RatedAt, b.PaymentIntentID, b.PaymentState, b.PaymentError, b.PaymentUpdatedAt,
		b.RescheduleCount, b.Version, b.CreatedAt, b.UpdatedAt,
	}
}
