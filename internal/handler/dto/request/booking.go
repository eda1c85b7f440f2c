package request

import (
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l *Location) ToPoint() *geo.Point {
	if l == nil {
		return nil
	}
	return &geo.Point{Lat: l.Lat, Lng: l.Lng}
}

type CreateBookingRequest struct {
	CustomerID      uuid.UUID   `json:"customerId" binding:"required"`
	VehicleID       uuid.UUID   `json:"vehicleId" binding:"required"`
	BookingType     string      `json:"bookingType" binding:"required,oneof=FIXED_BAY MOBILE"`
	ScheduledAt     time.Time   `json:"scheduledAt" binding:"required"`
	ServiceIDs      []uuid.UUID `json:"serviceIds" binding:"required,min=1,max=10"`
	ResourceID      *uuid.UUID  `json:"resourceId,omitempty"`
	Location        *Location   `json:"location,omitempty"`
	Notes           string      `json:"notes" binding:"max=500"`
	PaymentIntentID *string     `json:"paymentIntentId,omitempty" binding:"omitempty,max=255"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		Type:        booking.Type(r.BookingType),
		ScheduledAt: r.ScheduledAt,
		ServiceIDs:  r.ServiceIDs,
		ResourceID:  r.ResourceID,
		Location:    r.Location.ToPoint(),
		Notes:       r.Notes,

		PaymentIntentID: r.PaymentIntentID,
	}
}

type UpdateBookingRequest struct {
	Notes    *string   `json:"notes,omitempty" binding:"omitempty,max=500"`
	Location *Location `json:"location,omitempty"`
}

func (r UpdateBookingRequest) ToCommand() commands.UpdateBookingRequest {
	return commands.UpdateBookingRequest{Notes: r.Notes, Location: r.Location.ToPoint()}
}

type RescheduleBookingRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

type CancelBookingRequest struct {
	CancelledBy string `json:"cancelledBy" binding:"required,oneof=CUSTOMER STAFF SYSTEM"`
	Reason      string `json:"reason" binding:"max=500"`
}

func (r CancelBookingRequest) ToCommand() commands.CancelBookingRequest {
	return commands.CancelBookingRequest{By: booking.CancelledBy(r.CancelledBy), Reason: r.Reason}
}

type CompleteBookingRequest struct {
	ActualEnd *time.Time `json:"actualEnd,omitempty"`
}

type RateBookingRequest struct {
	Score    int    `json:"score" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"max=1000"`
}

type AddServiceRequest struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
}
