package pgquery

import (
	"time"

	"github.com/google/uuid"
)

type Bookings struct {
	ID                   uuid.UUID  `db:"id"`
	CustomerID           uuid.UUID  `db:"customer_id"`
	VehicleID            uuid.UUID  `db:"vehicle_id"`
	BookingType          string     `db:"booking_type"`
	Status               string     `db:"status"`
	ScheduledAt          time.Time  `db:"scheduled_at"`
	EstimatedMinutes     int32      `db:"estimated_minutes"`
	TotalPriceCents      int64      `db:"total_price_cents"`
	ResourceID           *uuid.UUID `db:"resource_id"`
	ResourceType         *string    `db:"resource_type"`
	BufferMinutes        int32      `db:"buffer_minutes"`
	Lat                  *float64   `db:"lat"`
	Lng                  *float64   `db:"lng"`
	Notes                string     `db:"notes"`
	CancelledAt          *time.Time `db:"cancelled_at"`
	CancelledBy          *string    `db:"cancelled_by"`
	CancellationReason   *string    `db:"cancellation_reason"`
	CancellationFeeCents *int64     `db:"cancellation_fee_cents"`
	NoShowAt             *time.Time `db:"no_show_at"`
	NoShowFeeCents       *int64     `db:"no_show_fee_cents"`
	ActualStart          *time.Time `db:"actual_start"`
	ActualEnd            *time.Time `db:"actual_end"`
	OvertimeMinutes      int32      `db:"overtime_minutes"`
	OvertimeChargeCents  int64      `db:"overtime_charge_cents"`
	FinalPriceCents      *int64     `db:"final_price_cents"`
	Rating               *int32     `db:"rating"`
	Feedback             *string    `db:"feedback"`
	RatedAt              *time.Time `db:"rated_at"`
	PaymentIntentID      *string    `db:"payment_intent_id"`
	PaymentState         string     `db:"payment_state"`
	PaymentError         string     `db:"payment_error"`
	PaymentUpdatedAt     *time.Time `db:"payment_updated_at"`
	RescheduleCount      int32      `db:"reschedule_count"`
	Version              int32      `db:"version"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

type BookingServiceLines struct {
	BookingID       uuid.UUID `db:"booking_id"`
	Position        int32     `db:"position"`
	ServiceID       uuid.UUID `db:"service_id"`
	Name            string    `db:"name"`
	PriceCents      int64     `db:"price_cents"`
	DurationMinutes int32     `db:"duration_minutes"`
}

type SchedulingConstraints struct {
	ID                  uuid.UUID `db:"id"`
	Version             int32     `db:"version"`
	MinAdvanceMinutes   int32     `db:"min_advance_minutes"`
	MaxAdvanceMinutes   int32     `db:"max_advance_minutes"`
	SlotDurationMinutes int32     `db:"slot_duration_minutes"`
	BufferMinutes       int32     `db:"buffer_minutes"`
	BusinessHours       []byte    `db:"business_hours"`
	ClosedDates         []string  `db:"closed_dates"`
	TimeZone            string    `db:"time_zone"`
	IsActive            bool      `db:"is_active"`
	CreatedAt           time.Time `db:"created_at"`
}

type WashBays struct {
	ID             uuid.UUID `db:"id"`
	BayNumber      int32     `db:"bay_number"`
	MaxVehicleSize string    `db:"max_vehicle_size"`
	Equipment      []string  `db:"equipment"`
	Status         string    `db:"status"`
	Lat            *float64  `db:"lat"`
	Lng            *float64  `db:"lng"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type MobileTeams struct {
	ID              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	BaseLat         float64   `db:"base_lat"`
	BaseLng         float64   `db:"base_lng"`
	ServiceRadiusKm float64   `db:"service_radius_km"`
	DailyCapacity   int32     `db:"daily_capacity"`
	Equipment       []string  `db:"equipment"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type SideEffectLog struct {
	ID         uuid.UUID `db:"id"`
	BookingID  uuid.UUID `db:"booking_id"`
	Kind       string    `db:"kind"`
	Action     string    `db:"action"`
	Error      string    `db:"error"`
	OccurredAt time.Time `db:"occurred_at"`
}

type Customers struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

type Vehicles struct {
	ID         uuid.UUID `db:"id"`
	CustomerID uuid.UUID `db:"customer_id"`
	Plate      string    `db:"plate"`
	Size       string    `db:"size"`
	CreatedAt  time.Time `db:"created_at"`
}

type Services struct {
	ID              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	PriceCents      int64     `db:"price_cents"`
	DurationMinutes int32     `db:"duration_minutes"`
	Equipment       []string  `db:"equipment"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
}
