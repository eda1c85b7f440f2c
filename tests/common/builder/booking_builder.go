//go:build unit || e2e

package builder

import (
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/scheduling"
	reqdto "carwash-scheduler/internal/handler/dto/request"

	"github.com/google/uuid"
)

// Monday 2026-03-02 09:00 UTC, inside default business hours.
var DefaultNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	Now         time.Time
	Policy      booking.Policy
	Constraints scheduling.ConstraintsParams
	CustomerID  uuid.UUID
	VehicleID   uuid.UUID
	Type        booking.Type
	ScheduledAt time.Time
	Services    []booking.ServiceLine
	ResourceID  *uuid.UUID
	Location    *geo.Point
	Notes       string
	PaymentID   *string
}

func NewBookingBuilder() *BookingBuilder {
	resourceID := uuid.New()
	return &BookingBuilder{
		Now:         DefaultNow,
		Policy:      booking.DefaultPolicy(),
		Constraints: scheduling.DefaultConstraintsParams(),
		CustomerID:  uuid.New(),
		VehicleID:   uuid.New(),
		Type:        booking.TypeFixedBay,
		ScheduledAt: DefaultNow.Add(24 * time.Hour),
		Services: []booking.ServiceLine{
			ServiceLine("Exterior wash", 2500, 30),
			ServiceLine("Interior vacuum", 1500, 20),
		},
		ResourceID: &resourceID,
		Notes:      "",
	}
}

func ServiceLine(name string, cents int64, minutes int) booking.ServiceLine {
	return booking.ServiceLine{
		ServiceID:       uuid.New(),
		Name:            name,
		Price:           booking.NewMoney(cents),
		DurationMinutes: minutes,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildConstraints() scheduling.Constraints {
	c, err := scheduling.NewConstraints(b.Constraints, b.Now.Add(-time.Hour))
	if err != nil {
		panic("builder: invalid constraints: " + err.Error())
	}
	return c
}

func (b *BookingBuilder) BuildParams() booking.NewParams {
	return booking.NewParams{
		CustomerID:  b.CustomerID,
		VehicleID:   b.VehicleID,
		Type:        b.Type,
		ScheduledAt: b.ScheduledAt,
		Services:    b.Services,
		ResourceID:  b.ResourceID,
		Location:    b.Location,
		Notes:       b.Notes,

		PaymentIntentID: b.PaymentID,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.New(b.Policy, b.BuildConstraints(), b.Now, b.BuildParams())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	ids := make([]uuid.UUID, len(b.Services))
	for i, s := range b.Services {
		ids[i] = s.ServiceID
	}
	req := reqdto.CreateBookingRequest{
		CustomerID:  b.CustomerID,
		VehicleID:   b.VehicleID,
		BookingType: string(b.Type),
		ScheduledAt: b.ScheduledAt,
		ServiceIDs:  ids,
		ResourceID:  b.ResourceID,
		Notes:       b.Notes,

		PaymentIntentID: b.PaymentID,
	}
	if b.Location != nil {
		req.Location = &reqdto.Location{Lat: b.Location.Lat, Lng: b.Location.Lng}
	}
	return req
}

// BuildInStatus builds a valid booking and walks it through the lifecycle up to status.
func (b *BookingBuilder) BuildInStatus(status booking.Status) (*booking.Booking, error) {
	bk, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if status == booking.StatusPending {
		return bk, nil
	}
	if status == booking.StatusCancelled {
		return bk.Cancel(b.Policy, b.Now, booking.CancelledByCustomer, "")
	}
	if bk, err = bk.Confirm(b.Now); err != nil || status == booking.StatusConfirmed {
		return bk, err
	}
	if status == booking.StatusNoShow {
		return bk.MarkNoShow(b.Policy, b.ScheduledAt.Add(b.Policy.GracePeriod))
	}
	if bk, err = bk.Start(b.ScheduledAt); err != nil || status == booking.StatusInProgress {
		return bk, err
	}
	end := b.ScheduledAt.Add(bk.Duration())
	return bk.Complete(b.Policy, end, &end)
}

// Fluent builder methods
func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) WithScheduledAt(at time.Time) *BookingBuilder {
	b.ScheduledAt = at
	return b
}

func (b *BookingBuilder) WithServices(lines ...booking.ServiceLine) *BookingBuilder {
	b.Services = lines
	return b
}

func (b *BookingBuilder) WithResourceID(id *uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) WithCustomerID(id uuid.UUID) *BookingBuilder {
	b.CustomerID = id
	return b
}

func (b *BookingBuilder) WithPaymentIntent(id string) *BookingBuilder {
	b.PaymentID = &id
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.Notes = notes
	return b
}

func (b *BookingBuilder) AsMobile(loc *geo.Point) *BookingBuilder {
	b.Type = booking.TypeMobile
	b.Location = loc
	return b
}
