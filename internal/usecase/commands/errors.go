package commands

import (
	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/pkg/errs"
)

const (
	CodeSlotContended          errs.Code = "SLOT_CONTENDED"
	CodeBookingLocked          errs.Code = "BOOKING_LOCKED"
	CodeConcurrentModification errs.Code = "CONCURRENT_MODIFICATION"
	CodeCustomerNotFound       errs.Code = "CUSTOMER_NOT_FOUND"
	CodeVehicleNotFound        errs.Code = "VEHICLE_NOT_FOUND"
	CodeVehicleNotOwned        errs.Code = "VEHICLE_NOT_OWNED"
	CodeServiceNotFound        errs.Code = "SERVICE_NOT_FOUND"
	CodeNoMatchingResource     errs.Code = "NO_MATCHING_RESOURCE"
	CodeResourceNotSuitable    errs.Code = "RESOURCE_NOT_SUITABLE"
	CodeOutOfServiceArea       errs.Code = "LOCATION_OUT_OF_SERVICE_AREA"
	CodeBayNumberTaken         errs.Code = "BAY_NUMBER_TAKEN"
	CodeInvalidResourceID      errs.Code = "INVALID_RESOURCE_ID"
)

var (
	ErrSlotContended          = errs.Contention(CodeSlotContended, "another request is booking this slot, retry shortly")
	ErrBookingLocked          = errs.Contention(CodeBookingLocked, "booking is being modified by another request, retry shortly")
	ErrConcurrentModification = errs.Contention(CodeConcurrentModification, "data changed while the request was processed, retry")

	ErrCustomerNotFound = errs.NotFound(CodeCustomerNotFound, "customer not found")
	ErrVehicleNotFound  = errs.NotFound(CodeVehicleNotFound, "vehicle not found")
	ErrServiceNotFound  = errs.NotFound(CodeServiceNotFound, "service not found")
	ErrVehicleNotOwned  = errs.Validation(CodeVehicleNotOwned, "vehicleId", "vehicle does not belong to the customer")

	ErrNoMatchingResource  = errs.Rule(CodeNoMatchingResource, "no active resource can perform this booking")
	ErrResourceNotSuitable = errs.Rule(CodeResourceNotSuitable, "requested resource cannot perform this booking")
	ErrOutOfServiceArea    = errs.Validation(CodeOutOfServiceArea, "location", "location is outside the assigned team's service area")
	ErrBayNumberTaken      = errs.Rule(CodeBayNumberTaken, "bay number already in use")
	ErrInvalidResourceID   = errs.Validation(CodeInvalidResourceID, "resourceId", "resource id does not match the booking type")
)

// translate maps repository failures that carry business meaning onto typed errors.
// Anything else is returned untouched and surfaces as an internal error.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindConflict):
		return scheduling.ErrSlotUnavailable.Withf("an overlapping booking was committed concurrently").WithCause(err)
	case infra.IsKind(err, infra.KindStaleVersion):
		return ErrConcurrentModification.WithCause(err)
	}
	return err
}

func notFoundAsBooking(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return booking.ErrBookingNotFound
	}
	return err
}

func constraintsErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return scheduling.ErrConstraintsNotFound
	}
	return err
}
