package queries

import (
	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/pkg/errs"
)

var (
	ErrInvalidCursor       = errs.Validation("INVALID_CURSOR", "cursor", "invalid pagination cursor")
	ErrInvalidStatusFilter = errs.Validation("INVALID_STATUS_FILTER", "status", "unknown booking status")
	ErrInvalidDateRange    = errs.Validation("INVALID_DATE_RANGE", "to", "range end is before its start")
	ErrInvalidVehicleSize  = errs.Validation("INVALID_VEHICLE_SIZE", "vehicleSize", "vehicle id or a known vehicle size is required")
	ErrVehicleNotFound     = errs.NotFound("VEHICLE_NOT_FOUND", "vehicle not found")
	ErrServiceNotFound     = errs.NotFound("SERVICE_NOT_FOUND", "service not found")
)

func bookingNotFound(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return booking.ErrBookingNotFound
	}
	return err
}

func constraintsNotFound(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return scheduling.ErrConstraintsNotFound
	}
	return err
}
