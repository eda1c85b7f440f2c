package request

import (
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type SearchAvailabilityRequest struct {
	BookingType  string      `json:"bookingType" binding:"required,oneof=FIXED_BAY MOBILE"`
	DesiredStart time.Time   `json:"desiredStart" binding:"required"`
	ServiceIDs   []uuid.UUID `json:"serviceIds" binding:"required,min=1,max=10"`
	VehicleID    *uuid.UUID  `json:"vehicleId,omitempty"`
	VehicleSize  string      `json:"vehicleSize,omitempty" binding:"omitempty,oneof=SMALL MEDIUM LARGE EXTRA_LARGE"`
	Location     *Location   `json:"location,omitempty"`
}

func (r SearchAvailabilityRequest) ToQuery() queries.SearchAvailabilityRequest {
	return queries.SearchAvailabilityRequest{
		Type:         booking.Type(r.BookingType),
		DesiredStart: r.DesiredStart,
		ServiceIDs:   r.ServiceIDs,
		VehicleID:    r.VehicleID,
		VehicleSize:  resource.VehicleSize(r.VehicleSize),
		Location:     r.Location.ToPoint(),
	}
}
