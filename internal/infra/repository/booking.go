package repository

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/infra/repository/converter"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingQueries interface {
	CreateBooking(ctx context.Context, db pgquery.DBTX, arg pgquery.BookingWriteParams) error
	UpdateBooking(ctx context.Context, db pgquery.DBTX, arg pgquery.BookingWriteParams) (int64, error)
	UpdateBookingPayment(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateBookingPaymentParams) (int64, error)
	GetBooking(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Bookings, error)
	GetBookingForUpdate(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Bookings, error)
	ListBookingServiceLines(ctx context.Context, db pgquery.DBTX, bookingIDs []uuid.UUID) ([]pgquery.BookingServiceLines, error)
	ReplaceBookingServiceLines(ctx context.Context, db pgquery.DBTX, bookingID uuid.UUID, lines []pgquery.BookingServiceLines) error
	ListOccupancies(ctx context.Context, db pgquery.DBTX, arg pgquery.ListOccupanciesParams) ([]pgquery.ListOccupanciesRow, error)
	ListCustomerBookings(ctx context.Context, db pgquery.DBTX, arg pgquery.ListCustomerBookingsParams) ([]pgquery.Bookings, error)
	ListDueNoShows(ctx context.Context, db pgquery.DBTX, cutoff time.Time, limit int32) ([]uuid.UUID, error)
}

type BookingRepository struct {
	queries BookingQueries
	db      pgquery.DBTX
	logger  *zap.Logger
}

func NewBookingRepository(queries BookingQueries, db pgquery.DBTX, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

var _ shared.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	params, lines := converter.BookingToWriteParams(b)
	if err := r.queries.CreateBooking(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create booking", err)
	}
	if err := r.queries.ReplaceBookingServiceLines(ctx, r.db, b.ID(), lines); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to store booking services", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	params, lines := converter.BookingToWriteParams(b)
	n, err := r.queries.UpdateBooking(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update booking", err)
	}
	if n == 0 {
		return nil, infra.WrapRepoErr(r.logger, infra.KindStaleVersion, "booking version changed", nil)
	}
	if err := r.queries.ReplaceBookingServiceLines(ctx, r.db, b.ID(), lines); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to store booking services", err)
	}

	stored := b.Snapshot()
	stored.Version++
	return booking.Reconstruct(stored), nil
}

func (r *BookingRepository) UpdatePayment(ctx context.Context, id uuid.UUID, p booking.Payment) error {
	n, err := r.queries.UpdateBookingPayment(ctx, r.db, converter.PaymentToParams(id, p))
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update booking payment", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find booking", err)
	}
	return r.withLines(ctx, row)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to lock booking", err)
	}
	return r.withLines(ctx, row)
}

func (r *BookingRepository) withLines(ctx context.Context, row pgquery.Bookings) (*booking.Booking, error) {
	lines, err := r.queries.ListBookingServiceLines(ctx, r.db, []uuid.UUID{row.ID})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load booking services", err)
	}
	return converter.BookingFromRow(row, lines), nil
}

func (r *BookingRepository) ListOccupancies(ctx context.Context, resourceIDs []uuid.UUID, from, to time.Time) ([]scheduling.Occupancy, error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}
	statuses := make([]string, len(booking.ActiveStatuses))
	for i, s := range booking.ActiveStatuses {
		statuses[i] = string(s)
	}
	rows, err := r.queries.ListOccupancies(ctx, r.db, pgquery.ListOccupanciesParams{
		ResourceIDs: resourceIDs,
		Statuses:    statuses,
		From:        from,
		To:          to,
	})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list occupancies", err)
	}
	out := make([]scheduling.Occupancy, len(rows))
	for i, row := range rows {
		out[i] = converter.OccupancyFromRow(row)
	}
	return out, nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, f shared.BookingFilter) ([]*booking.Booking, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}
	rows, err := r.queries.ListCustomerBookings(ctx, r.db, pgquery.ListCustomerBookingsParams{
		CustomerID:       f.CustomerID,
		Statuses:         statuses,
		From:             f.From,
		To:               f.To,
		AfterScheduledAt: f.AfterScheduledAt,
		AfterID:          f.AfterID,
		Limit:            int32(f.Limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list customer bookings", err)
	}
	if len(rows) == 0 {
		return []*booking.Booking{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.queries.ListBookingServiceLines(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load booking services", err)
	}
	byBooking := converter.GroupServiceLines(lines)

	out := make([]*booking.Booking, len(rows))
	for i, row := range rows {
		out[i] = converter.BookingFromRow(row, byBooking[row.ID])
	}
	return out, nil
}

func (r *BookingRepository) ListDueNoShows(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListDueNoShows(ctx, r.db, cutoff, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list due no-shows", err)
	}
	return ids, nil
}
