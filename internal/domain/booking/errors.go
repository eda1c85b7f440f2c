package booking

import "carwash-scheduler/internal/pkg/errs"

const (
	CodeInvalidTransition        errs.Code = "INVALID_STATUS_TRANSITION"
	CodeTooFewServices           errs.Code = "TOO_FEW_SERVICES"
	CodeTooManyServices          errs.Code = "TOO_MANY_SERVICES"
	CodeDuplicateService         errs.Code = "DUPLICATE_SERVICE"
	CodeServiceNotInBooking      errs.Code = "SERVICE_NOT_IN_BOOKING"
	CodeInvalidServiceLine       errs.Code = "INVALID_SERVICE_LINE"
	CodeDurationOutOfRange       errs.Code = "DURATION_OUT_OF_RANGE"
	CodePriceOutOfRange          errs.Code = "PRICE_OUT_OF_RANGE"
	CodeLocationRequired         errs.Code = "LOCATION_REQUIRED"
	CodeInvalidBookingType       errs.Code = "INVALID_BOOKING_TYPE"
	CodeNotesTooLong             errs.Code = "NOTES_TOO_LONG"
	CodeReasonTooLong            errs.Code = "REASON_TOO_LONG"
	CodeInvalidCancelledBy       errs.Code = "INVALID_CANCELLED_BY"
	CodeNoShowTooEarly           errs.Code = "NO_SHOW_TOO_EARLY"
	CodeRescheduleNoticeTooShort errs.Code = "RESCHEDULE_NOTICE_TOO_SHORT"
	CodeInvalidEndTime           errs.Code = "INVALID_END_TIME"
	CodeInvalidRating            errs.Code = "INVALID_RATING"
	CodeFeedbackTooLong          errs.Code = "FEEDBACK_TOO_LONG"
	CodeAlreadyRated             errs.Code = "ALREADY_RATED"
	CodeBookingNotFound          errs.Code = "BOOKING_NOT_FOUND"
	CodeInvalidPolicy            errs.Code = "INVALID_BOOKING_POLICY"
	CodeInvalidPaymentIntent     errs.Code = "INVALID_PAYMENT_INTENT"
)

var (
	ErrInvalidTransition = errs.Rule(CodeInvalidTransition, "transition not allowed from the current status")

	ErrTooFewServices      = errs.Validation(CodeTooFewServices, "services", "too few services")
	ErrTooManyServices     = errs.Validation(CodeTooManyServices, "services", "too many services")
	ErrDuplicateService    = errs.Validation(CodeDuplicateService, "services", "service listed more than once")
	ErrServiceNotInBooking = errs.NotFound(CodeServiceNotInBooking, "service is not part of this booking")
	ErrInvalidServiceLine  = errs.Validation(CodeInvalidServiceLine, "services", "invalid service line")
	ErrDurationOutOfRange  = errs.Validation(CodeDurationOutOfRange, "services", "total duration out of range")
	ErrPriceOutOfRange     = errs.Validation(CodePriceOutOfRange, "services", "total price out of range")
	ErrLocationRequired    = errs.Validation(CodeLocationRequired, "location", "mobile bookings require a customer location")
	ErrInvalidBookingType  = errs.Validation(CodeInvalidBookingType, "bookingType", "unknown booking type")
	ErrNotesTooLong        = errs.Validation(CodeNotesTooLong, "notes", "notes are too long")
	ErrReasonTooLong       = errs.Validation(CodeReasonTooLong, "reason", "cancellation reason is too long")
	ErrInvalidCancelledBy  = errs.Validation(CodeInvalidCancelledBy, "cancelledBy", "unknown canceller")
	ErrInvalidEndTime      = errs.Validation(CodeInvalidEndTime, "endTime", "end time is before the service started")
	ErrInvalidRating       = errs.Validation(CodeInvalidRating, "rating", "rating must be between 1 and 5")
	ErrFeedbackTooLong     = errs.Validation(CodeFeedbackTooLong, "feedback", "feedback is too long")

	ErrNoShowTooEarly           = errs.Rule(CodeNoShowTooEarly, "grace period has not elapsed")
	ErrRescheduleNoticeTooShort = errs.Rule(CodeRescheduleNoticeTooShort, "new time does not meet the reschedule notice")
	ErrAlreadyRated             = errs.Rule(CodeAlreadyRated, "booking has already been rated")

	ErrBookingNotFound = errs.NotFound(CodeBookingNotFound, "booking not found")
	ErrInvalidPolicy   = errs.Validation(CodeInvalidPolicy, "", "invalid booking policy")

	ErrInvalidPaymentIntent = errs.Validation(CodeInvalidPaymentIntent, "paymentIntentId", "payment intent id must not be blank")
)
