package scheduling

import "carwash-scheduler/internal/pkg/errs"

const (
	CodeAdvanceNoticeTooShort errs.Code = "ADVANCE_NOTICE_TOO_SHORT"
	CodeBookingTooFarAhead    errs.Code = "BOOKING_TOO_FAR_AHEAD"
	CodeOutsideBusinessHours  errs.Code = "OUTSIDE_BUSINESS_HOURS"
	CodeClosedDay             errs.Code = "CLOSED_DAY"
	CodeInvalidConstraints    errs.Code = "INVALID_SCHEDULING_CONSTRAINTS"
	CodeInvalidTimeSlot       errs.Code = "INVALID_TIME_SLOT"
	CodeSlotUnavailable       errs.Code = "SLOT_UNAVAILABLE"
	CodeNoAvailability        errs.Code = "NO_AVAILABILITY"
	CodeDailyCapacityReached  errs.Code = "DAILY_CAPACITY_REACHED"
	CodeConstraintsNotFound   errs.Code = "CONSTRAINTS_NOT_FOUND"
)

var (
	ErrAdvanceNoticeTooShort = errs.Validation(CodeAdvanceNoticeTooShort, "scheduledAt", "booking does not meet the minimum advance notice")
	ErrBookingTooFarAhead    = errs.Validation(CodeBookingTooFarAhead, "scheduledAt", "booking is beyond the maximum advance window")
	ErrOutsideBusinessHours  = errs.Validation(CodeOutsideBusinessHours, "scheduledAt", "booking falls outside business hours")
	ErrClosedDay             = errs.Validation(CodeClosedDay, "scheduledAt", "business is closed on this day")
	ErrInvalidConstraints    = errs.Validation(CodeInvalidConstraints, "", "invalid scheduling constraints")
	ErrInvalidTimeSlot       = errs.Validation(CodeInvalidTimeSlot, "scheduledAt", "invalid time slot")

	// contention outcomes are retryable: another booking holds the interval right now
	ErrSlotUnavailable      = errs.Contention(CodeSlotUnavailable, "requested slot overlaps an existing booking")
	ErrNoAvailability       = errs.Contention(CodeNoAvailability, "no resource is available for the requested time")
	ErrDailyCapacityReached = errs.Contention(CodeDailyCapacityReached, "mobile team has reached its daily capacity")

	ErrConstraintsNotFound = errs.NotFound(CodeConstraintsNotFound, "no active scheduling constraints")
)
