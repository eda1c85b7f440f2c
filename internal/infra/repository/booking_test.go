//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/infra/repository/converter"
	"carwash-scheduler/internal/usecase/shared"
	"carwash-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBookingQueries struct {
	mock.Mock
}

func (m *MockBookingQueries) CreateBooking(ctx context.Context, db pgquery.DBTX, arg pgquery.BookingWriteParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockBookingQueries) UpdateBooking(ctx context.Context, db pgquery.DBTX, arg pgquery.BookingWriteParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingQueries) UpdateBookingPayment(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateBookingPaymentParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingQueries) GetBooking(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Bookings, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(pgquery.Bookings), args.Error(1)
}

func (m *MockBookingQueries) GetBookingForUpdate(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Bookings, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(pgquery.Bookings), args.Error(1)
}

func (m *MockBookingQueries) ListBookingServiceLines(ctx context.Context, db pgquery.DBTX, bookingIDs []uuid.UUID) ([]pgquery.BookingServiceLines, error) {
	args := m.Called(ctx, db, bookingIDs)
	return args.Get(0).([]pgquery.BookingServiceLines), args.Error(1)
}

func (m *MockBookingQueries) ReplaceBookingServiceLines(ctx context.Context, db pgquery.DBTX, bookingID uuid.UUID, lines []pgquery.BookingServiceLines) error {
	args := m.Called(ctx, db, bookingID, lines)
	return args.Error(0)
}

func (m *MockBookingQueries) ListOccupancies(ctx context.Context, db pgquery.DBTX, arg pgquery.ListOccupanciesParams) ([]pgquery.ListOccupanciesRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]pgquery.ListOccupanciesRow), args.Error(1)
}

func (m *MockBookingQueries) ListCustomerBookings(ctx context.Context, db pgquery.DBTX, arg pgquery.ListCustomerBookingsParams) ([]pgquery.Bookings, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]pgquery.Bookings), args.Error(1)
}

func (m *MockBookingQueries) ListDueNoShows(ctx context.Context, db pgquery.DBTX, cutoff time.Time, limit int32) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, cutoff, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func newBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	return b
}

func TestBookingRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "overlapping booking", mockError: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindConflict},
		{name: "unknown vehicle", mockError: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(t)
			mockQueries := new(MockBookingQueries)
			mockQueries.On("CreateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.BookingWriteParams) bool {
				// blocked range is widened by the buffer on both sides
				return p.ID == b.ID() &&
					p.BlockedFrom.Equal(b.ScheduledAt().Add(-15*time.Minute)) &&
					p.BlockedTo.Equal(b.EndsAt().Add(15*time.Minute))
			})).Return(tt.mockError)
			if tt.mockError == nil {
				mockQueries.On("ReplaceBookingServiceLines", mock.Anything, mock.Anything, b.ID(), mock.MatchedBy(func(lines []pgquery.BookingServiceLines) bool {
					return len(lines) == 2 && lines[0].Position == 0 && lines[1].Position == 1
				})).Return(nil)
			}

			repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
			err := repo.Create(context.Background(), b)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_Update(t *testing.T) {
	t.Run("success bumps the version", func(t *testing.T) {
		b := newBooking(t)
		confirmed, err := b.Confirm(builder.DefaultNow)
		require.NoError(t, err)

		mockQueries := new(MockBookingQueries)
		mockQueries.On("UpdateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.BookingWriteParams) bool {
			return p.Version == 1 && p.Status == string(booking.StatusConfirmed)
		})).Return(int64(1), nil)
		mockQueries.On("ReplaceBookingServiceLines", mock.Anything, mock.Anything, b.ID(), mock.Anything).Return(nil)

		repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
		stored, err := repo.Update(context.Background(), confirmed)

		require.NoError(t, err)
		assert.Equal(t, 2, stored.Version())
		assert.Equal(t, booking.StatusConfirmed, stored.Status())
		assert.Equal(t, 1, confirmed.Version(), "input is not modified")
		mockQueries.AssertExpectations(t)
	})

	t.Run("zero rows is a stale version", func(t *testing.T) {
		b := newBooking(t)
		mockQueries := new(MockBookingQueries)
		mockQueries.On("UpdateBooking", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
		stored, err := repo.Update(context.Background(), b)

		assert.Nil(t, stored)
		assert.True(t, infra.IsKind(err, infra.KindStaleVersion))
		mockQueries.AssertNotCalled(t, "ReplaceBookingServiceLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("exclusion violation is a conflict", func(t *testing.T) {
		b := newBooking(t)
		mockQueries := new(MockBookingQueries)
		mockQueries.On("UpdateBooking", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), &pgconn.PgError{Code: "23P01"})

		repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
		_, err := repo.Update(context.Background(), b)

		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}

func TestBookingRepository_FindByID(t *testing.T) {
	b := newBooking(t)
	params, lines := converter.BookingToWriteParams(b)

	t.Run("success loads service lines", func(t *testing.T) {
		mockQueries := new(MockBookingQueries)
		mockQueries.On("GetBooking", mock.Anything, mock.Anything, b.ID()).Return(params.Bookings, nil)
		mockQueries.On("ListBookingServiceLines", mock.Anything, mock.Anything, []uuid.UUID{b.ID()}).Return(lines, nil)

		repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
		got, err := repo.FindByID(context.Background(), b.ID())

		require.NoError(t, err)
		assert.Equal(t, b.Snapshot(), got.Snapshot())
		mockQueries.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockQueries := new(MockBookingQueries)
		mockQueries.On("GetBooking", mock.Anything, mock.Anything, mock.Anything).Return(pgquery.Bookings{}, pgx.ErrNoRows)

		repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
		_, err := repo.FindByID(context.Background(), uuid.New())

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingRepository_ListByCustomer(t *testing.T) {
	first, second := newBooking(t), newBooking(t)
	firstRow, firstLines := converter.BookingToWriteParams(first)
	secondRow, secondLines := converter.BookingToWriteParams(second)

	mockQueries := new(MockBookingQueries)
	mockQueries.On("ListCustomerBookings", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.ListCustomerBookingsParams) bool {
		return p.Limit == 21 && len(p.Statuses) == 1 && p.Statuses[0] == "PENDING"
	})).Return([]pgquery.Bookings{firstRow.Bookings, secondRow.Bookings}, nil)
	mockQueries.On("ListBookingServiceLines", mock.Anything, mock.Anything, []uuid.UUID{first.ID(), second.ID()}).
		Return(append(secondLines, firstLines...), nil)

	repo := NewBookingRepository(mockQueries, nil, zap.NewNop())
	got, err := repo.ListByCustomer(context.Background(), shared.BookingFilter{
		CustomerID: first.CustomerID(),
		Statuses:   []booking.Status{booking.StatusPending},
		Limit:      21,
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.Services(), got[0].Services())
	assert.Equal(t, second.Services(), got[1].Services())
}

func TestBookingRepository_ListOccupancies(t *testing.T) {
	resourceID := uuid.New()
	start := builder.DefaultNow.Add(24 * time.Hour)

	mockQueries := new(MockBookingQueries)
	mockQueries.On("ListOccupancies", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.ListOccupanciesParams) bool {
		return len(p.Statuses) == 3
	})).Return([]pgquery.ListOccupanciesRow{
		{ID: uuid.New(), ResourceID: resourceID, ScheduledAt: start, EstimatedMinutes: 50, BufferMinutes: 15},
	}, nil)

	repo := NewBookingRepository(mockQueries, nil, zap.NewNop())

	t.Run("converts rows to intervals", func(t *testing.T) {
		got, err := repo.ListOccupancies(context.Background(), []uuid.UUID{resourceID}, start.Add(-time.Hour), start.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, start.Add(50*time.Minute), got[0].End)
		assert.Equal(t, 15*time.Minute, got[0].Buffer)
	})

	t.Run("no resources skips the query", func(t *testing.T) {
		got, err := repo.ListOccupancies(context.Background(), nil, start, start.Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, got)
		mockQueries.AssertNumberOfCalls(t, "ListOccupancies", 1)
	})
}
