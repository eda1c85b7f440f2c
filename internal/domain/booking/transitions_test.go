//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inStatus(t *testing.T, b *builder.BookingBuilder, status booking.Status) *booking.Booking {
	t.Helper()
	bk, err := b.BuildInStatus(status)
	require.NoError(t, err)
	require.Equal(t, status, bk.Status())
	return bk
}

func TestBooking_Lifecycle(t *testing.T) {
	t.Run("create, confirm, start, complete ten minutes late", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		p := b.Policy

		created, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, created.Status())
		assert.Equal(t, "40.00", created.TotalPrice().String())
		assert.Equal(t, 50, created.EstimatedMinutes())

		confirmed, err := created.Confirm(b.Now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, confirmed.Status())

		started, err := confirmed.Start(b.ScheduledAt)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusInProgress, started.Status())
		require.NotNil(t, started.Execution().ActualStart)
		assert.Equal(t, b.ScheduledAt, *started.Execution().ActualStart)

		end := b.ScheduledAt.Add(60 * time.Minute)
		completed, err := started.Complete(p, end, nil)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, completed.Status())
		assert.Equal(t, 10, completed.Execution().OvertimeMinutes)
		assert.Equal(t, "10.00", completed.Execution().OvertimeCharge.String())
		require.NotNil(t, completed.Execution().FinalPrice)
		assert.Equal(t, "50.00", completed.Execution().FinalPrice.String())
		assert.Equal(t, end, completed.UpdatedAt())
	})

	t.Run("transitions never modify the receiver", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		pending := inStatus(t, b, booking.StatusPending)
		before := pending.Snapshot()

		_, err := pending.Confirm(b.Now.Add(time.Hour))
		require.NoError(t, err)
		_, err = pending.AddService(b.Policy, b.Now, builder.ServiceLine("Wax", 1000, 20))
		require.NoError(t, err)

		assert.Equal(t, before, pending.Snapshot())
	})

	t.Run("completing early charges no overtime", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		inProgress := inStatus(t, b, booking.StatusInProgress)
		end := b.ScheduledAt.Add(40 * time.Minute)

		done, err := inProgress.Complete(b.Policy, end.Add(time.Minute), &end)
		require.NoError(t, err)
		assert.Equal(t, 0, done.Execution().OvertimeMinutes)
		assert.True(t, done.Execution().OvertimeCharge.IsZero())
		assert.Equal(t, "40.00", done.Execution().FinalPrice.String())
		assert.Equal(t, end, *done.Execution().ActualEnd)
	})

	t.Run("partial minutes are not charged", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		inProgress := inStatus(t, b, booking.StatusInProgress)
		end := b.ScheduledAt.Add(52*time.Minute + 59*time.Second)

		done, err := inProgress.Complete(b.Policy, end, &end)
		require.NoError(t, err)
		assert.Equal(t, 2, done.Execution().OvertimeMinutes)
		assert.Equal(t, "2.00", done.Execution().OvertimeCharge.String())
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		inProgress := inStatus(t, b, booking.StatusInProgress)
		end := b.ScheduledAt.Add(-time.Minute)

		_, err := inProgress.Complete(b.Policy, b.ScheduledAt, &end)
		require.ErrorIs(t, err, booking.ErrInvalidEndTime)
	})
}

func TestBooking_InvalidTransitions(t *testing.T) {
	b := builder.NewBookingBuilder()
	p := b.Policy
	later := b.ScheduledAt.Add(2 * time.Hour)

	ops := map[string]func(*booking.Booking) (*booking.Booking, error){
		"confirm":    func(bk *booking.Booking) (*booking.Booking, error) { return bk.Confirm(later) },
		"start":      func(bk *booking.Booking) (*booking.Booking, error) { return bk.Start(later) },
		"complete":   func(bk *booking.Booking) (*booking.Booking, error) { return bk.Complete(p, later, nil) },
		"cancel":     func(bk *booking.Booking) (*booking.Booking, error) { return bk.Cancel(p, later, booking.CancelledByCustomer, "") },
		"no-show":    func(bk *booking.Booking) (*booking.Booking, error) { return bk.MarkNoShow(p, later) },
		"rate":       func(bk *booking.Booking) (*booking.Booking, error) { return bk.Rate(p, later, 5, "") },
		"addService": func(bk *booking.Booking) (*booking.Booking, error) { return bk.AddService(p, later, builder.ServiceLine("Wax", 100, 10)) },
	}

	allowed := map[string][]booking.Status{
		"confirm":    {booking.StatusPending},
		"start":      {booking.StatusConfirmed},
		"complete":   {booking.StatusInProgress},
		"cancel":     {booking.StatusPending, booking.StatusConfirmed},
		"no-show":    {booking.StatusConfirmed},
		"rate":       {booking.StatusCompleted},
		"addService": {booking.StatusPending},
	}

	statuses := []booking.Status{
		booking.StatusPending, booking.StatusConfirmed, booking.StatusInProgress,
		booking.StatusCompleted, booking.StatusCancelled, booking.StatusNoShow,
	}

	for name, op := range ops {
		for _, st := range statuses {
			t.Run(name+" from "+st.String(), func(t *testing.T) {
				bk := inStatus(t, builder.NewBookingBuilder(), st)
				_, err := op(bk)

				if contains(allowed[name], st) {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, booking.ErrInvalidTransition)
				assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
				assert.Equal(t, booking.CodeInvalidTransition, errs.CodeOf(err))
			})
		}
	}
}

func TestPolicy_CancellationFee(t *testing.T) {
	p := booking.DefaultPolicy()
	total := booking.NewMoney(4000)
	scheduled := builder.DefaultNow.Add(48 * time.Hour)

	cases := []struct {
		notice time.Duration
		want   string
	}{
		{notice: 30 * time.Hour, want: "0.00"},
		{notice: 24 * time.Hour, want: "0.00"},
		{notice: 24*time.Hour - time.Second, want: "10.00"},
		{notice: 6 * time.Hour, want: "10.00"},
		{notice: 5 * time.Hour, want: "20.00"},
		{notice: 2 * time.Hour, want: "20.00"},
		{notice: 2*time.Hour - time.Second, want: "40.00"},
		{notice: 0, want: "40.00"},
		{notice: -time.Hour, want: "40.00"},
	}

	for _, tc := range cases {
		t.Run(tc.notice.String(), func(t *testing.T) {
			cancelledAt := scheduled.Add(-tc.notice)
			first := p.CancellationFee(total, scheduled, cancelledAt)
			second := p.CancellationFee(total, scheduled, cancelledAt)

			assert.Equal(t, tc.want, first.String())
			assert.Equal(t, first, second)
		})
	}
}

func TestBooking_Cancel(t *testing.T) {
	t.Run("five hours before costs half", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		confirmed := inStatus(t, b, booking.StatusConfirmed)
		at := b.ScheduledAt.Add(-5 * time.Hour)

		cancelled, err := confirmed.Cancel(b.Policy, at, booking.CancelledByCustomer, "  plans changed ")
		require.NoError(t, err)

		require.NotNil(t, cancelled.Cancellation())
		assert.Equal(t, "20.00", cancelled.Cancellation().Fee.String())
		assert.Equal(t, "plans changed", cancelled.Cancellation().Reason)
		assert.Equal(t, booking.CancelledByCustomer, cancelled.Cancellation().By)
		assert.Equal(t, "20.00", cancelled.AmountDue().String())
		_, occupies := cancelled.Occupancy()
		assert.False(t, occupies)
	})

	t.Run("reason too long", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		pending := inStatus(t, b, booking.StatusPending)

		_, err := pending.Cancel(b.Policy, b.Now, booking.CancelledByCustomer, strings.Repeat("r", 501))
		require.ErrorIs(t, err, booking.ErrReasonTooLong)
	})

	t.Run("unknown canceller", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		pending := inStatus(t, b, booking.StatusPending)

		_, err := pending.Cancel(b.Policy, b.Now, "ROBOT", "")
		require.ErrorIs(t, err, booking.ErrInvalidCancelledBy)
	})
}

func TestBooking_MarkNoShow(t *testing.T) {
	b := builder.NewBookingBuilder()
	confirmed := inStatus(t, b, booking.StatusConfirmed)

	t.Run("inside the grace period", func(t *testing.T) {
		_, err := confirmed.MarkNoShow(b.Policy, b.ScheduledAt.Add(29*time.Minute))
		require.ErrorIs(t, err, booking.ErrNoShowTooEarly)
		assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
	})

	t.Run("once the grace period elapsed", func(t *testing.T) {
		noShow, err := confirmed.MarkNoShow(b.Policy, b.ScheduledAt.Add(30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusNoShow, noShow.Status())
		assert.Equal(t, "40.00", noShow.NoShow().Fee.String())
	})
}

func TestBooking_Reschedule(t *testing.T) {
	t.Run("round trip restores schedule and fee semantics", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		c := b.BuildConstraints()
		original := inStatus(t, b, booking.StatusConfirmed)
		t1 := original.ScheduledAt()
		t2 := t1.Add(24 * time.Hour)

		moved, err := original.Reschedule(b.Policy, c, b.Now, t2)
		require.NoError(t, err)
		assert.Equal(t, t2, moved.ScheduledAt())
		assert.Equal(t, booking.StatusConfirmed, moved.Status())

		back, err := moved.Reschedule(b.Policy, c, b.Now, t1)
		require.NoError(t, err)
		assert.Equal(t, t1, back.ScheduledAt())
		assert.Equal(t, 2, back.RescheduleCount())

		cancelAt := t1.Add(-5 * time.Hour)
		fresh, err := original.Cancel(b.Policy, cancelAt, booking.CancelledByCustomer, "")
		require.NoError(t, err)
		roundTripped, err := back.Cancel(b.Policy, cancelAt, booking.CancelledByCustomer, "")
		require.NoError(t, err)
		assert.Equal(t, fresh.Cancellation().Fee, roundTripped.Cancellation().Fee)
		assert.Equal(t, original.TotalPrice(), back.TotalPrice())
	})

	t.Run("uses the time of the reschedule for notice", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		c := b.BuildConstraints()
		pending := inStatus(t, b, booking.StatusPending)
		now := b.ScheduledAt.Add(-3 * time.Hour)

		_, err := pending.Reschedule(b.Policy, c, now, now.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrRescheduleNoticeTooShort)

		_, err = pending.Reschedule(b.Policy, c, now, now.Add(2*time.Hour))
		require.NoError(t, err)
	})

	t.Run("new time is checked against business hours", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		c := b.BuildConstraints()
		pending := inStatus(t, b, booking.StatusPending)
		night := time.Date(2026, 3, 4, 22, 0, 0, 0, time.UTC)

		_, err := pending.Reschedule(b.Policy, c, b.Now, night)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestBooking_Services(t *testing.T) {
	b := builder.NewBookingBuilder()
	p := b.Policy
	pending := inStatus(t, b, booking.StatusPending)

	t.Run("add recomputes totals", func(t *testing.T) {
		wax := builder.ServiceLine("Wax", 1200, 25)
		next, err := pending.AddService(p, b.Now, wax)
		require.NoError(t, err)
		assert.Equal(t, "52.00", next.TotalPrice().String())
		assert.Equal(t, 75, next.EstimatedMinutes())
		assert.True(t, next.HasService(wax.ServiceID))
	})

	t.Run("add duplicate", func(t *testing.T) {
		existing := pending.Services()[0]
		_, err := pending.AddService(p, b.Now, existing)
		require.ErrorIs(t, err, booking.ErrDuplicateService)
	})

	t.Run("add past duration bound", func(t *testing.T) {
		_, err := pending.AddService(p, b.Now, builder.ServiceLine("Detailing", 9000, 200))
		require.ErrorIs(t, err, booking.ErrDurationOutOfRange)
	})

	t.Run("eleventh service", func(t *testing.T) {
		full, err := builder.NewBookingBuilder().WithServices(lines(10, 100, 10)...).BuildDomain()
		require.NoError(t, err)
		_, err = full.AddService(p, b.Now, builder.ServiceLine("Extra", 100, 5))
		require.ErrorIs(t, err, booking.ErrTooManyServices)
	})

	t.Run("remove recomputes totals", func(t *testing.T) {
		three, err := builder.NewBookingBuilder().WithServices(
			builder.ServiceLine("Exterior", 2500, 30),
			builder.ServiceLine("Interior", 1500, 20),
			builder.ServiceLine("Wax", 1000, 20),
		).BuildDomain()
		require.NoError(t, err)

		next, err := three.RemoveService(p, b.Now, three.Services()[2].ServiceID)
		require.NoError(t, err)
		assert.Equal(t, "40.00", next.TotalPrice().String())
		assert.Equal(t, 50, next.EstimatedMinutes())
		assert.Len(t, three.Services(), 3)
	})

	t.Run("remove unknown", func(t *testing.T) {
		_, err := pending.RemoveService(p, b.Now, uuid.New())
		require.ErrorIs(t, err, booking.ErrServiceNotInBooking)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("remove last", func(t *testing.T) {
		single, err := builder.NewBookingBuilder().WithServices(builder.ServiceLine("Full", 4000, 60)).BuildDomain()
		require.NoError(t, err)
		_, err = single.RemoveService(p, b.Now, single.Services()[0].ServiceID)
		require.ErrorIs(t, err, booking.ErrTooFewServices)
	})
}

func TestBooking_Rate(t *testing.T) {
	b := builder.NewBookingBuilder()
	completed := inStatus(t, b, booking.StatusCompleted)
	later := b.ScheduledAt.Add(3 * time.Hour)

	t.Run("rating bounds", func(t *testing.T) {
		for _, score := range []int{0, 6, -1} {
			_, err := completed.Rate(b.Policy, later, score, "")
			require.ErrorIs(t, err, booking.ErrInvalidRating)
		}
	})

	t.Run("feedback length", func(t *testing.T) {
		_, err := completed.Rate(b.Policy, later, 4, strings.Repeat("f", 1000))
		require.NoError(t, err)
		_, err = completed.Rate(b.Policy, later, 4, strings.Repeat("f", 1001))
		require.ErrorIs(t, err, booking.ErrFeedbackTooLong)
	})

	t.Run("rating is set once", func(t *testing.T) {
		rated, err := completed.Rate(b.Policy, later, 5, "spotless")
		require.NoError(t, err)
		require.NotNil(t, rated.Rating())
		assert.Equal(t, 5, rated.Rating().Score)

		_, err = rated.Rate(b.Policy, later.Add(time.Hour), 1, "changed my mind")
		require.ErrorIs(t, err, booking.ErrAlreadyRated)
	})
}

func TestBooking_UpdateDetails(t *testing.T) {
	b := builder.NewBookingBuilder().AsMobile(&geo.Point{Lat: 52.52, Lng: 13.40})
	confirmed := inStatus(t, b, booking.StatusConfirmed)
	notes := "gate code 4411"

	next, err := confirmed.UpdateDetails(b.Policy, b.Now, booking.DetailsUpdate{
		Notes:    &notes,
		Location: &geo.Point{Lat: 52.53, Lng: 13.41},
	})
	require.NoError(t, err)
	assert.Equal(t, notes, next.Notes())
	assert.Equal(t, 52.53, next.Location().Lat)

	_, err = confirmed.UpdateDetails(b.Policy, b.Now, booking.DetailsUpdate{Location: &geo.Point{Lat: 100}})
	require.ErrorIs(t, err, geo.ErrInvalidLocation)
}

func TestBooking_RecordPayment(t *testing.T) {
	b := builder.NewBookingBuilder()
	cancelled := inStatus(t, b, booking.StatusCancelled)
	intent := "pi_123"

	next := cancelled.RecordPayment(b.Now, &intent, booking.PaymentUnresolved, "card declined")

	assert.Equal(t, booking.PaymentUnresolved, next.Payment().State)
	assert.Equal(t, "card declined", next.Payment().LastError)
	assert.Equal(t, intent, *next.Payment().IntentID)
	assert.Equal(t, booking.StatusCancelled, next.Status())
	assert.Equal(t, booking.PaymentNone, cancelled.Payment().State)
}

func contains(list []booking.Status, s booking.Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
