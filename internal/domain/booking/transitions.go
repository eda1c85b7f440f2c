package booking

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/scheduling"

	"github.com/google/uuid"
)

func (b *Booking) requireStatus(op string, allowed ...Status) error {
	if slices.Contains(allowed, b.status) {
		return nil
	}
	return ErrInvalidTransition.
		Withf("cannot %s a booking that is %s", op, b.status).
		WithDetail("status", b.status.String()).
		WithDetail("operation", op)
}

func (b *Booking) Confirm(now time.Time) (*Booking, error) {
	if err := b.requireStatus("confirm", StatusPending); err != nil {
		return nil, err
	}
	next := b.clone(now)
	next.status = StatusConfirmed
	return next, nil
}

func (b *Booking) Start(now time.Time) (*Booking, error) {
	if err := b.requireStatus("start", StatusConfirmed); err != nil {
		return nil, err
	}
	next := b.clone(now)
	next.status = StatusInProgress
	started := now
	next.execution.ActualStart = &started
	return next, nil
}

// Complete finishes the service at end, or at now when end is nil, and charges overtime
// for every whole minute beyond the estimate.
func (b *Booking) Complete(p Policy, now time.Time, end *time.Time) (*Booking, error) {
	if err := b.requireStatus("complete", StatusInProgress); err != nil {
		return nil, err
	}
	finished := now
	if end != nil {
		finished = *end
	}
	started := b.scheduledAt
	if b.execution.ActualStart != nil {
		started = *b.execution.ActualStart
	}
	if finished.Before(started) {
		return nil, ErrInvalidEndTime.WithDetail("actualStart", started)
	}

	overMinutes, charge := p.Overtime(b.estimatedMinutes, started, finished)
	final := b.totalPrice.Add(charge)

	next := b.clone(now)
	next.status = StatusCompleted
	next.execution.ActualStart = &started
	next.execution.ActualEnd = &finished
	next.execution.OvertimeMinutes = overMinutes
	next.execution.OvertimeCharge = charge
	next.execution.FinalPrice = &final
	return next, nil
}

func (b *Booking) Cancel(p Policy, now time.Time, by CancelledBy, reason string) (*Booking, error) {
	if err := b.requireStatus("cancel", StatusPending, StatusConfirmed); err != nil {
		return nil, err
	}
	if !by.IsValid() {
		return nil, ErrInvalidCancelledBy.Withf("unknown canceller %q", by)
	}
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > p.MaxReasonLength {
		return nil, ErrReasonTooLong.Withf("reason exceeds %d characters", p.MaxReasonLength)
	}

	next := b.clone(now)
	next.status = StatusCancelled
	next.cancellation = &Cancellation{
		At:     now,
		By:     by,
		Reason: reason,
		Fee:    p.CancellationFee(b.totalPrice, b.scheduledAt, now),
	}
	return next, nil
}

func (b *Booking) MarkNoShow(p Policy, now time.Time) (*Booking, error) {
	if err := b.requireStatus("mark as no-show", StatusConfirmed); err != nil {
		return nil, err
	}
	if earliest := b.scheduledAt.Add(p.GracePeriod); now.Before(earliest) {
		return nil, ErrNoShowTooEarly.
			Withf("no-show can be recorded from %s", earliest.Format(time.RFC3339)).
			WithDetail("earliest", earliest)
	}
	next := b.clone(now)
	next.status = StatusNoShow
	next.noShow = &NoShow{At: now, Fee: p.NoShowFee(b.totalPrice)}
	return next, nil
}

// Reschedule moves the booking to at, validated against the constraints in force now.
// Status and fee rules are unaffected; only the schedule and the counter change.
func (b *Booking) Reschedule(p Policy, c scheduling.Constraints, now, at time.Time) (*Booking, error) {
	if err := b.requireStatus("reschedule", StatusPending, StatusConfirmed); err != nil {
		return nil, err
	}
	if earliest := now.Add(p.MinRescheduleNotice); at.Before(earliest) {
		return nil, ErrRescheduleNoticeTooShort.
			Withf("new time must be at least %s ahead", p.MinRescheduleNotice).
			WithDetail("earliest", earliest)
	}
	if err := c.ValidateBookingTime(now, at, b.Duration()); err != nil {
		return nil, err
	}
	next := b.clone(now)
	next.scheduledAt = at
	next.bufferMinutes = int(c.Buffer() / time.Minute)
	next.rescheduleCount++
	return next, nil
}

// Reassign moves the booking to another resource of the same kind.
func (b *Booking) Reassign(now time.Time, resourceID uuid.UUID) (*Booking, error) {
	if err := b.requireStatus("reassign", StatusPending, StatusConfirmed); err != nil {
		return nil, err
	}
	next := b.clone(now)
	id := resourceID
	next.resourceID = &id
	next.resourceType = b.bookingType.ResourceType()
	return next, nil
}

func (b *Booking) AddService(p Policy, now time.Time, line ServiceLine) (*Booking, error) {
	if err := b.requireStatus("add a service to", StatusPending); err != nil {
		return nil, err
	}
	if b.HasService(line.ServiceID) {
		return nil, ErrDuplicateService.Withf("service %s is already booked", line.ServiceID).
			WithDetail("serviceId", line.ServiceID.String())
	}
	return b.withServices(p, now, append(slices.Clone(b.services), line))
}

func (b *Booking) RemoveService(p Policy, now time.Time, serviceID uuid.UUID) (*Booking, error) {
	if err := b.requireStatus("remove a service from", StatusPending); err != nil {
		return nil, err
	}
	if !b.HasService(serviceID) {
		return nil, ErrServiceNotInBooking.WithDetail("serviceId", serviceID.String())
	}
	rest := slices.DeleteFunc(slices.Clone(b.services), func(l ServiceLine) bool { return l.ServiceID == serviceID })
	return b.withServices(p, now, rest)
}

func (b *Booking) withServices(p Policy, now time.Time, lines []ServiceLine) (*Booking, error) {
	total, minutes, err := p.summarize(lines)
	if err != nil {
		return nil, err
	}
	next := b.clone(now)
	next.services = lines
	next.totalPrice = total
	next.estimatedMinutes = minutes
	return next, nil
}

func (b *Booking) Rate(p Policy, now time.Time, score int, feedback string) (*Booking, error) {
	if err := b.requireStatus("rate", StatusCompleted); err != nil {
		return nil, err
	}
	if b.rating != nil {
		return nil, ErrAlreadyRated.WithDetail("ratedAt", b.rating.RatedAt)
	}
	if score < 1 || score > 5 {
		return nil, ErrInvalidRating
	}
	feedback = strings.TrimSpace(feedback)
	if utf8.RuneCountInString(feedback) > p.MaxFeedbackLength {
		return nil, ErrFeedbackTooLong.Withf("feedback exceeds %d characters", p.MaxFeedbackLength)
	}
	next := b.clone(now)
	next.rating = &Rating{Score: score, Feedback: feedback, RatedAt: now}
	return next, nil
}

type DetailsUpdate struct {
	Notes    *string
	Location *geo.Point
}

func (b *Booking) UpdateDetails(p Policy, now time.Time, u DetailsUpdate) (*Booking, error) {
	if err := b.requireStatus("update", StatusPending, StatusConfirmed); err != nil {
		return nil, err
	}
	next := b.clone(now)
	if u.Notes != nil {
		if err := p.checkNotes(*u.Notes); err != nil {
			return nil, err
		}
		next.notes = *u.Notes
	}
	if u.Location != nil {
		if err := u.Location.Validate(); err != nil {
			return nil, err
		}
		loc := *u.Location
		next.location = &loc
	}
	return next, nil
}

// RecordPayment stores the outcome of a payment provider call. It is allowed in any status
// because charges and refunds follow terminal transitions.
func (b *Booking) RecordPayment(now time.Time, intentID *string, state PaymentState, failure string) *Booking {
	next := b.clone(now)
	if intentID != nil {
		id := *intentID
		next.payment.IntentID = &id
	}
	next.payment.State = state
	next.payment.LastError = failure
	at := now
	next.payment.UpdatedAt = &at
	return next
}
