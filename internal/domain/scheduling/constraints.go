package scheduling

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DayHours is an opening window expressed in minutes after local midnight. Close is exclusive.
type DayHours struct {
	Closed      bool `json:"closed"`
	OpenMinute  int  `json:"openMinute"`
	CloseMinute int  `json:"closeMinute"`
}

// WeeklyHours is indexed by time.Weekday.
type WeeklyHours [7]DayHours

func Hours(open, closing string) DayHours {
	return DayHours{OpenMinute: clockMinute(open), CloseMinute: clockMinute(closing)}
}

func clockMinute(hhmm string) int {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

type ConstraintsParams struct {
	MinAdvance   time.Duration
	MaxAdvance   time.Duration
	SlotDuration time.Duration
	Buffer       time.Duration
	Hours        WeeklyHours
	ClosedDates  []string
	TimeZone     string
}

func DefaultConstraintsParams() ConstraintsParams {
	weekday := Hours("08:00", "20:00")
	return ConstraintsParams{
		MinAdvance:   2 * time.Hour,
		MaxAdvance:   90 * 24 * time.Hour,
		SlotDuration: 30 * time.Minute,
		Buffer:       15 * time.Minute,
		Hours: WeeklyHours{
			time.Sunday:    Hours("09:00", "17:00"),
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
			time.Saturday:  weekday,
		},
		TimeZone: "UTC",
	}
}

// Constraints is the versioned scheduling policy. A value is never edited in place;
// Supersede retires it and yields the next version.
type Constraints struct {
	id           uuid.UUID
	version      int
	minAdvance   time.Duration
	maxAdvance   time.Duration
	slotDuration time.Duration
	buffer       time.Duration
	hours        WeeklyHours
	closedDates  []string
	location     *time.Location
	active       bool
	createdAt    time.Time
}

func NewConstraints(p ConstraintsParams, now time.Time) (Constraints, error) {
	return build(uuid.New(), 1, p, true, now)
}

func ReconstructConstraints(id uuid.UUID, version int, p ConstraintsParams, active bool, createdAt time.Time) (Constraints, error) {
	return build(id, version, p, active, createdAt)
}

func build(id uuid.UUID, version int, p ConstraintsParams, active bool, createdAt time.Time) (Constraints, error) {
	if err := p.validate(); err != nil {
		return Constraints{}, err
	}
	tz := p.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Constraints{}, ErrInvalidConstraints.WithField("timeZone").Withf("unknown time zone %q", tz)
	}
	closed := slices.Clone(p.ClosedDates)
	slices.Sort(closed)
	closed = slices.Compact(closed)

	return Constraints{
		id:           id,
		version:      version,
		minAdvance:   p.MinAdvance,
		maxAdvance:   p.MaxAdvance,
		slotDuration: p.SlotDuration,
		buffer:       p.Buffer,
		hours:        p.Hours,
		closedDates:  closed,
		location:     loc,
		active:       active,
		createdAt:    createdAt,
	}, nil
}

func (p ConstraintsParams) validate() error {
	switch {
	case p.MinAdvance < 0:
		return ErrInvalidConstraints.WithField("minAdvance").Withf("minimum advance cannot be negative")
	case p.MaxAdvance <= p.MinAdvance:
		return ErrInvalidConstraints.WithField("maxAdvance").Withf("maximum advance must exceed minimum advance")
	case p.SlotDuration < 5*time.Minute || p.SlotDuration > 8*time.Hour:
		return ErrInvalidConstraints.WithField("slotDuration").Withf("slot duration must be between 5 minutes and 8 hours")
	case p.Buffer < 0 || p.Buffer > 2*time.Hour:
		return ErrInvalidConstraints.WithField("buffer").Withf("buffer must be between 0 and 2 hours")
	}
	for day, h := range p.Hours {
		if h.Closed {
			continue
		}
		if h.OpenMinute < 0 || h.CloseMinute > 24*60 || h.OpenMinute >= h.CloseMinute {
			return ErrInvalidConstraints.WithField("businessHours").
				Withf("invalid opening hours on %s", time.Weekday(day))
		}
	}
	for _, d := range p.ClosedDates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return ErrInvalidConstraints.WithField("closedDates").Withf("invalid date %q", d)
		}
	}
	return nil
}

// Supersede returns the retired copy of c and the next active version built from p.
func (c Constraints) Supersede(p ConstraintsParams, now time.Time) (retired, next Constraints, err error) {
	next, err = build(uuid.New(), c.version+1, p, true, now)
	if err != nil {
		return Constraints{}, Constraints{}, err
	}
	retired = c
	retired.active = false
	return retired, next, nil
}

// ValidateBookingTime checks advance-notice bounds relative to now, closures and business hours.
// The whole service interval must fit in one opening window of the local day.
func (c Constraints) ValidateBookingTime(now, start time.Time, duration time.Duration) error {
	if duration <= 0 {
		return ErrInvalidTimeSlot.Withf("duration must be positive")
	}
	if earliest := now.Add(c.minAdvance); start.Before(earliest) {
		return ErrAdvanceNoticeTooShort.
			Withf("booking must be at least %s in advance", c.minAdvance).
			WithDetail("earliest", earliest)
	}
	if latest := now.Add(c.maxAdvance); start.After(latest) {
		return ErrBookingTooFarAhead.
			Withf("booking cannot be more than %s in advance", c.maxAdvance).
			WithDetail("latest", latest)
	}
	return c.ValidateOpening(start, duration)
}

func (c Constraints) ValidateOpening(start time.Time, duration time.Duration) error {
	local := start.In(c.location)
	if c.IsClosedDate(local) {
		return ErrClosedDay.Withf("closed on %s", local.Format(dateLayout))
	}
	h := c.hours[local.Weekday()]
	if h.Closed {
		return ErrClosedDay.Withf("closed on %s", local.Weekday())
	}

	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location)
	open := midnight.Add(time.Duration(h.OpenMinute) * time.Minute)
	closeAt := midnight.Add(time.Duration(h.CloseMinute) * time.Minute)
	if local.Before(open) || local.Add(duration).After(closeAt) {
		return ErrOutsideBusinessHours.Withf(
			"service must run between %s and %s on %s",
			open.Format("15:04"), closeAt.Format("15:04"), local.Weekday(),
		)
	}
	return nil
}

func (c Constraints) IsClosedDate(t time.Time) bool {
	_, found := slices.BinarySearch(c.closedDates, t.In(c.location).Format(dateLayout))
	return found
}

// LocalDate returns the calendar day t falls on in the business time zone.
func (c Constraints) LocalDate(t time.Time) string {
	return t.In(c.location).Format(dateLayout)
}

// DayBounds returns [start, end) of the business-local day containing t.
func (c Constraints) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location)
	return start, start.AddDate(0, 0, 1)
}

func (c Constraints) Params() ConstraintsParams {
	return ConstraintsParams{
		MinAdvance:   c.minAdvance,
		MaxAdvance:   c.maxAdvance,
		SlotDuration: c.slotDuration,
		Buffer:       c.buffer,
		Hours:        c.hours,
		ClosedDates:  slices.Clone(c.closedDates),
		TimeZone:     c.location.String(),
	}
}

func (c Constraints) String() string {
	return fmt.Sprintf("constraints v%d (slot %s, buffer %s)", c.version, c.slotDuration, c.buffer)
}

func (c Constraints) ID() uuid.UUID               { return c.id }
func (c Constraints) Version() int                { return c.version }
func (c Constraints) MinAdvance() time.Duration   { return c.minAdvance }
func (c Constraints) MaxAdvance() time.Duration   { return c.maxAdvance }
func (c Constraints) SlotDuration() time.Duration { return c.slotDuration }
func (c Constraints) Buffer() time.Duration       { return c.buffer }
func (c Constraints) BusinessHours() WeeklyHours  { return c.hours }
func (c Constraints) ClosedDates() []string       { return slices.Clone(c.closedDates) }
func (c Constraints) Location() *time.Location    { return c.location }
func (c Constraints) IsActive() bool              { return c.active }
func (c Constraints) CreatedAt() time.Time        { return c.createdAt }
