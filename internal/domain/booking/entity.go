package booking

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"

	"github.com/google/uuid"
)

// Booking is the aggregate root. Its transitions never modify the receiver; each returns the next state.
type Booking struct {
	id               uuid.UUID
	customerID       uuid.UUID
	vehicleID        uuid.UUID
	bookingType      Type
	status           Status
	scheduledAt      time.Time
	services         []ServiceLine
	totalPrice       Money
	estimatedMinutes int
	resourceID       *uuid.UUID
	resourceType     resource.Type
	bufferMinutes    int
	location         *geo.Point
	notes            string
	cancellation     *Cancellation
	noShow           *NoShow
	execution        Execution
	rating           *Rating
	payment          Payment
	rescheduleCount  int
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

type NewParams struct {
	CustomerID  uuid.UUID
	VehicleID   uuid.UUID
	Type        Type
	ScheduledAt time.Time
	Services    []ServiceLine
	ResourceID  *uuid.UUID
	Location    *geo.Point
	Notes       string
	// PaymentIntentID marks the booking as paid up front; cancellations refund against it.
	PaymentIntentID *string
}

// New builds a PENDING booking after checking every creation invariant, including the scheduling
// constraints at now. The resource buffer is taken from the constraints in force.
func New(p Policy, c scheduling.Constraints, now time.Time, params NewParams) (*Booking, error) {
	if !params.Type.IsValid() {
		return nil, ErrInvalidBookingType.Withf("unknown booking type %q", params.Type)
	}
	total, minutes, err := p.summarize(params.Services)
	if err != nil {
		return nil, err
	}
	if err := p.checkLocation(params.Type, params.Location); err != nil {
		return nil, err
	}
	if err := p.checkNotes(params.Notes); err != nil {
		return nil, err
	}
	if err := c.ValidateBookingTime(now, params.ScheduledAt, time.Duration(minutes)*time.Minute); err != nil {
		return nil, err
	}
	payment := Payment{State: PaymentNone}
	if params.PaymentIntentID != nil {
		intent := strings.TrimSpace(*params.PaymentIntentID)
		if intent == "" {
			return nil, ErrInvalidPaymentIntent
		}
		payment = Payment{State: PaymentPrepaid, IntentID: &intent}
	}

	b := &Booking{
		id:               uuid.New(),
		customerID:       params.CustomerID,
		vehicleID:        params.VehicleID,
		bookingType:      params.Type,
		status:           StatusPending,
		scheduledAt:      params.ScheduledAt,
		services:         slices.Clone(params.Services),
		totalPrice:       total,
		estimatedMinutes: minutes,
		bufferMinutes:    int(c.Buffer() / time.Minute),
		location:         params.Location,
		notes:            params.Notes,
		payment:          payment,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}
	if params.ResourceID != nil {
		id := *params.ResourceID
		b.resourceID = &id
		b.resourceType = params.Type.ResourceType()
	}
	return b, nil
}

// summarize enforces the service count, uniqueness, duration and price bounds.
func (p Policy) summarize(lines []ServiceLine) (Money, int, error) {
	if len(lines) < p.MinServices {
		return Money{}, 0, ErrTooFewServices.Withf("at least %d service(s) required", p.MinServices)
	}
	if len(lines) > p.MaxServices {
		return Money{}, 0, ErrTooManyServices.Withf("at most %d services allowed", p.MaxServices)
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	total := NewMoney(0)
	minutes := 0
	for _, l := range lines {
		if err := l.validate(); err != nil {
			return Money{}, 0, err
		}
		if _, dup := seen[l.ServiceID]; dup {
			return Money{}, 0, ErrDuplicateService.Withf("service %s listed more than once", l.ServiceID).
				WithDetail("serviceId", l.ServiceID.String())
		}
		seen[l.ServiceID] = struct{}{}
		total = total.Add(l.Price)
		minutes += l.DurationMinutes
	}
	if minutes < p.MinDurationMinutes || minutes > p.MaxDurationMinutes {
		return Money{}, 0, ErrDurationOutOfRange.
			Withf("total duration %d min must be between %d and %d", minutes, p.MinDurationMinutes, p.MaxDurationMinutes)
	}
	if total.Cents() < 0 || total.Cents() > p.MaxTotalPrice.Cents() {
		return Money{}, 0, ErrPriceOutOfRange.Withf("total price %s must be between 0.00 and %s", total, p.MaxTotalPrice)
	}
	return total, minutes, nil
}

func (p Policy) checkLocation(t Type, loc *geo.Point) error {
	if loc == nil {
		if t == TypeMobile {
			return ErrLocationRequired
		}
		return nil
	}
	return loc.Validate()
}

func (p Policy) checkNotes(notes string) error {
	if utf8.RuneCountInString(notes) > p.MaxNotesLength {
		return ErrNotesTooLong.Withf("notes exceed %d characters", p.MaxNotesLength)
	}
	return nil
}

// Snapshot is the flat persistence form of a booking.
type Snapshot struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	VehicleID        uuid.UUID
	Type             Type
	Status           Status
	ScheduledAt      time.Time
	Services         []ServiceLine
	TotalPrice       Money
	EstimatedMinutes int
	ResourceID       *uuid.UUID
	ResourceType     resource.Type
	BufferMinutes    int
	Location         *geo.Point
	Notes            string
	Cancellation     *Cancellation
	NoShow           *NoShow
	Execution        Execution
	Rating           *Rating
	Payment          Payment
	RescheduleCount  int
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:               s.ID,
		customerID:       s.CustomerID,
		vehicleID:        s.VehicleID,
		bookingType:      s.Type,
		status:           s.Status,
		scheduledAt:      s.ScheduledAt,
		services:         slices.Clone(s.Services),
		totalPrice:       s.TotalPrice,
		estimatedMinutes: s.EstimatedMinutes,
		resourceID:       s.ResourceID,
		resourceType:     s.ResourceType,
		bufferMinutes:    s.BufferMinutes,
		location:         s.Location,
		notes:            s.Notes,
		cancellation:     s.Cancellation,
		noShow:           s.NoShow,
		execution:        s.Execution,
		rating:           s.Rating,
		payment:          s.Payment,
		rescheduleCount:  s.RescheduleCount,
		version:          s.Version,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:               b.id,
		CustomerID:       b.customerID,
		VehicleID:        b.vehicleID,
		Type:             b.bookingType,
		Status:           b.status,
		ScheduledAt:      b.scheduledAt,
		Services:         slices.Clone(b.services),
		TotalPrice:       b.totalPrice,
		EstimatedMinutes: b.estimatedMinutes,
		ResourceID:       b.resourceID,
		ResourceType:     b.resourceType,
		BufferMinutes:    b.bufferMinutes,
		Location:         b.location,
		Notes:            b.notes,
		Cancellation:     b.cancellation,
		NoShow:           b.noShow,
		Execution:        b.execution,
		Rating:           b.rating,
		Payment:          b.payment,
		RescheduleCount:  b.rescheduleCount,
		Version:          b.version,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.updatedAt,
	}
}

// clone returns a copy whose slices can be changed without touching b.
func (b *Booking) clone(now time.Time) *Booking {
	c := *b
	c.services = slices.Clone(b.services)
	c.updatedAt = now
	return &c
}

func (b *Booking) Duration() time.Duration {
	return time.Duration(b.estimatedMinutes) * time.Minute
}

func (b *Booking) EndsAt() time.Time {
	return b.scheduledAt.Add(b.Duration())
}

func (b *Booking) Buffer() time.Duration {
	return time.Duration(b.bufferMinutes) * time.Minute
}

// Occupancy is the interval this booking holds on its resource; ok is false when it holds none.
func (b *Booking) Occupancy() (scheduling.Occupancy, bool) {
	if b.resourceID == nil || !b.status.OccupiesResource() {
		return scheduling.Occupancy{}, false
	}
	return scheduling.Occupancy{
		BookingID:  b.id,
		ResourceID: *b.resourceID,
		Start:      b.scheduledAt,
		End:        b.EndsAt(),
		Buffer:     b.Buffer(),
	}, true
}

func (b *Booking) HasService(id uuid.UUID) bool {
	return slices.ContainsFunc(b.services, func(l ServiceLine) bool { return l.ServiceID == id })
}

func (b *Booking) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.services))
	for i, l := range b.services {
		ids[i] = l.ServiceID
	}
	return ids
}

// AmountDue is what the customer owes for the final state of the booking.
func (b *Booking) AmountDue() Money {
	switch {
	case b.execution.FinalPrice != nil:
		return *b.execution.FinalPrice
	case b.cancellation != nil:
		return b.cancellation.Fee
	case b.noShow != nil:
		return b.noShow.Fee
	default:
		return b.totalPrice
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) CustomerID() uuid.UUID       { return b.customerID }
func (b *Booking) VehicleID() uuid.UUID        { return b.vehicleID }
func (b *Booking) Type() Type                  { return b.bookingType }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) ScheduledAt() time.Time      { return b.scheduledAt }
func (b *Booking) Services() []ServiceLine     { return slices.Clone(b.services) }
func (b *Booking) TotalPrice() Money           { return b.totalPrice }
func (b *Booking) EstimatedMinutes() int       { return b.estimatedMinutes }
func (b *Booking) ResourceID() *uuid.UUID      { return b.resourceID }
func (b *Booking) ResourceType() resource.Type { return b.resourceType }
func (b *Booking) BufferMinutes() int          { return b.bufferMinutes }
func (b *Booking) Location() *geo.Point        { return b.location }
func (b *Booking) Notes() string               { return b.notes }
func (b *Booking) Cancellation() *Cancellation { return b.cancellation }
func (b *Booking) NoShow() *NoShow             { return b.noShow }
func (b *Booking) Execution() Execution        { return b.execution }
func (b *Booking) Rating() *Rating             { return b.rating }
func (b *Booking) Payment() Payment            { return b.payment }
func (b *Booking) RescheduleCount() int        { return b.rescheduleCount }
func (b *Booking) Version() int                { return b.version }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
