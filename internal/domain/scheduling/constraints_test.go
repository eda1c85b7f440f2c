//go:build unit

package scheduling_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-03-02 08:00 UTC
var monday0800 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func defaultConstraints(t *testing.T, mutate ...func(*scheduling.ConstraintsParams)) scheduling.Constraints {
	t.Helper()
	p := scheduling.DefaultConstraintsParams()
	for _, m := range mutate {
		m(&p)
	}
	c, err := scheduling.NewConstraints(p, monday0800)
	require.NoError(t, err)
	return c
}

func TestConstraints_ValidateBookingTime(t *testing.T) {
	c := defaultConstraints(t, func(p *scheduling.ConstraintsParams) {
		p.ClosedDates = []string{"2026-03-04"}
		p.Hours[time.Sunday] = scheduling.DayHours{Closed: true}
	})
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	service := 50 * time.Minute

	cases := []struct {
		name  string
		start time.Time
		errIs error
	}{
		{name: "exactly minimum notice", start: now.Add(2 * time.Hour)},
		{name: "one hour ahead", start: now.Add(time.Hour), errIs: scheduling.ErrAdvanceNoticeTooShort},
		{name: "in the past", start: now.Add(-time.Hour), errIs: scheduling.ErrAdvanceNoticeTooShort},
		{name: "beyond 90 days", start: now.Add(91 * 24 * time.Hour), errIs: scheduling.ErrBookingTooFarAhead},
		{name: "before opening", start: time.Date(2026, 3, 3, 7, 30, 0, 0, time.UTC), errIs: scheduling.ErrOutsideBusinessHours},
		{name: "runs past closing", start: time.Date(2026, 3, 3, 19, 30, 0, 0, time.UTC), errIs: scheduling.ErrOutsideBusinessHours},
		{name: "ends exactly at closing", start: time.Date(2026, 3, 3, 19, 10, 0, 0, time.UTC)},
		{name: "closed date", start: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), errIs: scheduling.ErrClosedDay},
		{name: "closed weekday", start: time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), errIs: scheduling.ErrClosedDay},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.ValidateBookingTime(now, tc.start, service)
			if tc.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.errIs)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}
}

func TestConstraints_TimeZone(t *testing.T) {
	c := defaultConstraints(t, func(p *scheduling.ConstraintsParams) {
		p.TimeZone = "Europe/Berlin"
	})

	// 07:30 UTC is 08:30 in Berlin during winter time
	start := time.Date(2026, 3, 3, 7, 30, 0, 0, time.UTC)
	require.NoError(t, c.ValidateOpening(start, 30*time.Minute))
	assert.Equal(t, "2026-03-03", c.LocalDate(start))

	dayStart, dayEnd := c.DayBounds(start)
	assert.Equal(t, 24*time.Hour, dayEnd.Sub(dayStart))
	assert.Equal(t, time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC), dayStart.UTC())
}

func TestConstraints_Supersede(t *testing.T) {
	c := defaultConstraints(t)

	p := c.Params()
	p.Buffer = 30 * time.Minute
	later := monday0800.Add(time.Hour)

	retired, next, err := c.Supersede(p, later)
	require.NoError(t, err)

	assert.False(t, retired.IsActive())
	assert.Equal(t, c.ID(), retired.ID())
	assert.True(t, c.IsActive(), "receiver stays untouched")

	assert.True(t, next.IsActive())
	assert.Equal(t, c.Version()+1, next.Version())
	assert.NotEqual(t, c.ID(), next.ID())
	assert.Equal(t, 30*time.Minute, next.Buffer())
	assert.Equal(t, later, next.CreatedAt())
}

func TestNewConstraints_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*scheduling.ConstraintsParams)
	}{
		{name: "negative min advance", mutate: func(p *scheduling.ConstraintsParams) { p.MinAdvance = -time.Minute }},
		{name: "max not above min", mutate: func(p *scheduling.ConstraintsParams) { p.MaxAdvance = p.MinAdvance }},
		{name: "slot too small", mutate: func(p *scheduling.ConstraintsParams) { p.SlotDuration = time.Minute }},
		{name: "negative buffer", mutate: func(p *scheduling.ConstraintsParams) { p.Buffer = -time.Minute }},
		{name: "inverted hours", mutate: func(p *scheduling.ConstraintsParams) { p.Hours[time.Monday] = scheduling.Hours("18:00", "08:00") }},
		{name: "bad closed date", mutate: func(p *scheduling.ConstraintsParams) { p.ClosedDates = []string{"03/04/2026"} }},
		{name: "unknown zone", mutate: func(p *scheduling.ConstraintsParams) { p.TimeZone = "Mars/Olympus" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := scheduling.DefaultConstraintsParams()
			tc.mutate(&p)
			_, err := scheduling.NewConstraints(p, monday0800)
			require.ErrorIs(t, err, scheduling.ErrInvalidConstraints)
		})
	}
}
