package shared

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-write transaction with retry on serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Constraints() ConstraintsRepository
	Resources() ResourceRepository
	SideEffects() SideEffectRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Update writes b when the stored version still equals b.Version() and returns the
	// stored state carrying the next version.
	Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, p booking.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate row-locks the booking until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ListOccupancies returns the intervals held by active bookings on the given resources whose
	// blocked range intersects [from, to).
	ListOccupancies(ctx context.Context, resourceIDs []uuid.UUID, from, to time.Time) ([]scheduling.Occupancy, error)
	ListByCustomer(ctx context.Context, f BookingFilter) ([]*booking.Booking, error)
	// ListDueNoShows returns CONFIRMED bookings scheduled at or before cutoff.
	ListDueNoShows(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
}

type BookingFilter struct {
	CustomerID uuid.UUID
	Statuses   []booking.Status
	From       *time.Time
	To         *time.Time
	// keyset position: rows strictly after (AfterScheduledAt, AfterID)
	AfterScheduledAt *time.Time
	AfterID          *uuid.UUID
	Limit            int
}

type ConstraintsRepository interface {
	Active(ctx context.Context) (scheduling.Constraints, error)
	Insert(ctx context.Context, c scheduling.Constraints) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ResourceRepository interface {
	Catalog(ctx context.Context) (resource.Catalog, error)
	FindWashBay(ctx context.Context, id uuid.UUID) (*resource.WashBay, error)
	FindMobileTeam(ctx context.Context, id uuid.UUID) (*resource.MobileTeam, error)
	CreateWashBay(ctx context.Context, b *resource.WashBay) error
	CreateMobileTeam(ctx context.Context, t *resource.MobileTeam) error
	UpdateWashBayStatus(ctx context.Context, b *resource.WashBay) error
	UpdateMobileTeamStatus(ctx context.Context, t *resource.MobileTeam) error
}

type SideEffectRepository interface {
	Record(ctx context.Context, e SideEffect) error
}
