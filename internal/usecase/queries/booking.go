package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListBookingsRequest struct {
	CustomerID uuid.UUID
	Statuses   []booking.Status
	From       *time.Time
	To         *time.Time
	Cursor     string
	Limit      int
}

type BookingQueries interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListCustomerBookings(ctx context.Context, req ListBookingsRequest) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	uow    shared.UnitOfWork
	cache  shared.BookingCache
	logger *zap.Logger
}

func NewBookingQueries(uow shared.UnitOfWork, cache shared.BookingCache, logger *zap.Logger) BookingQueries {
	return &bookingQueriesImpl{uow: uow, cache: cache, logger: logger}
}

// GetBooking is cache-aside: a cache failure degrades to a database read and is never returned.
// The fill is skipped when the booking changed while it was being read.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	cached, err := q.cache.Get(ctx, id)
	cacheUp := err == nil
	if err != nil {
		q.logger.Warn("booking cache read failed", zap.String("booking_id", id.String()), zap.Error(err))
	} else if cached.Hit {
		var v BookingView
		if err := json.Unmarshal(cached.Data, &v); err == nil {
			return &v, nil
		}
		q.logger.Warn("discarding undecodable cached booking", zap.String("booking_id", id.String()))
	}

	var b *booking.Booking
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByID(ctx, id)
		return bookingNotFound(err)
	})
	if err != nil {
		return nil, err
	}

	v := NewBookingView(b)
	if !cacheUp {
		return v, nil
	}
	if data, err := json.Marshal(v); err == nil {
		stored, err := q.cache.Set(ctx, id, cached.Generation, data)
		switch {
		case err != nil:
			q.logger.Warn("booking cache write failed", zap.String("booking_id", id.String()), zap.Error(err))
		case !stored:
			q.logger.Debug("booking changed during read; view not cached", zap.String("booking_id", id.String()))
		}
	}
	return v, nil
}

// ListCustomerBookings pages by (scheduled_at, id) ascending. Pages are cached per customer and
// dropped whenever one of the customer's bookings changes.
func (q *bookingQueriesImpl) ListCustomerBookings(ctx context.Context, req ListBookingsRequest) (*BookingPage, error) {
	limit := ValidateLimit(req.Limit)
	filter := shared.BookingFilter{
		CustomerID: req.CustomerID,
		Statuses:   req.Statuses,
		From:       req.From,
		To:         req.To,
		Limit:      limit + 1,
	}
	for _, s := range req.Statuses {
		if !s.IsValid() {
			return nil, ErrInvalidStatusFilter.WithDetail("status", string(s))
		}
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, ErrInvalidDateRange
	}
	if req.Cursor != "" {
		at, id, err := DecodeAfterCursor(req.Cursor)
		if err != nil {
			return nil, ErrInvalidCursor.WithCause(err)
		}
		filter.AfterScheduledAt, filter.AfterID = &at, &id
	}

	key := pageKey(req, limit)
	if data, ok, err := q.cache.GetCustomerPage(ctx, req.CustomerID, key); err != nil {
		q.logger.Warn("booking list cache read failed", zap.String("customer_id", req.CustomerID.String()), zap.Error(err))
	} else if ok {
		var page BookingPage
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
	}

	var rows []*booking.Booking
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rows, err = tx.Bookings().ListByCustomer(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	page := &BookingPage{Items: make([]*BookingView, 0, min(len(rows), limit))}
	if len(rows) > limit {
		last := rows[limit-1]
		page.NextCursor = EncodeAfterCursor(last.ScheduledAt(), last.ID())
		rows = rows[:limit]
	}
	for _, b := range rows {
		page.Items = append(page.Items, NewBookingView(b))
	}

	if data, err := json.Marshal(page); err == nil {
		if err := q.cache.SetCustomerPage(ctx, req.CustomerID, key, data); err != nil {
			q.logger.Warn("booking list cache write failed", zap.String("customer_id", req.CustomerID.String()), zap.Error(err))
		}
	}
	return page, nil
}

func pageKey(req ListBookingsRequest, limit int) string {
	statuses := make([]string, len(req.Statuses))
	for i, s := range req.Statuses {
		statuses[i] = string(s)
	}
	slices.Sort(statuses)
	return fmt.Sprintf("s=%s|f=%s|t=%s|c=%s|l=%d",
		strings.Join(statuses, ","), unixOrEmpty(req.From), unixOrEmpty(req.To), req.Cursor, limit)
}

func unixOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprint(t.Unix())
}
