package shared

import (
	"context"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/resource"

	"github.com/google/uuid"
)

type CustomerRecord struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

type CustomerValidator interface {
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
	// GetCustomerData returns nil when the customer does not exist.
	GetCustomerData(ctx context.Context, id uuid.UUID) (*CustomerRecord, error)
}

type VehicleRecord struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Size       resource.VehicleSize
	Plate      string
}

type VehicleValidator interface {
	BelongsToCustomer(ctx context.Context, vehicleID, customerID uuid.UUID) (bool, error)
	// GetVehicle returns nil when the vehicle does not exist.
	GetVehicle(ctx context.Context, id uuid.UUID) (*VehicleRecord, error)
}

// ServiceData is the catalog entry copied into a booking line at booking time.
type ServiceData struct {
	ID              uuid.UUID
	Name            string
	PriceCents      int64
	DurationMinutes int
	Equipment       []string
}

type ServiceCatalog interface {
	// GetServicesData returns the active services among ids; unknown ids are simply absent.
	GetServicesData(ctx context.Context, ids []uuid.UUID) ([]ServiceData, error)
}

type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, b *booking.Booking) error
	SendBookingCancellation(ctx context.Context, b *booking.Booking) error
	SendBookingReschedule(ctx context.Context, b *booking.Booking, previous time.Time) error
	SendStatusUpdate(ctx context.Context, b *booking.Booking) error
}

type PaymentResult struct {
	IntentID string
}

type PaymentService interface {
	Refund(ctx context.Context, paymentIntentID string, amount booking.Money, reason string) (*PaymentResult, error)
	ChargeNoShowFee(ctx context.Context, b *booking.Booking, fee booking.Money) (*PaymentResult, error)
	ChargeCancellationFee(ctx context.Context, b *booking.Booking, fee booking.Money) (*PaymentResult, error)
	ChargeOvertime(ctx context.Context, b *booking.Booking, amount booking.Money) (*PaymentResult, error)
}

// EventBus publishes lifecycle events; the event type selects the routing key.
type EventBus interface {
	Publish(ctx context.Context, e booking.Event) error
}

// CachedBooking is one cache read. Generation is handed back to Set so a fill never lands on top
// of an invalidation that happened after the read.
type CachedBooking struct {
	Data       []byte
	Hit        bool
	Generation int64
}

// BookingCache holds rendered booking views keyed by booking id, and list pages per customer.
type BookingCache interface {
	Get(ctx context.Context, id uuid.UUID) (CachedBooking, error)
	// Set stores view unless the booking was invalidated since generation was read.
	Set(ctx context.Context, id uuid.UUID, generation int64, view []byte) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetCustomerPage(ctx context.Context, customerID uuid.UUID, page string) ([]byte, bool, error)
	SetCustomerPage(ctx context.Context, customerID uuid.UUID, page string, data []byte) error
	// InvalidateCustomer drops every cached list page of the customer.
	InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error
}
