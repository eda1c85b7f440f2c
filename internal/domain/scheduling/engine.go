package scheduling

import (
	"cmp"
	"slices"
	"time"

	"carwash-scheduler/internal/domain/resource"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Now             time.Time
	DesiredStart    time.Time
	Duration        time.Duration
	Window          time.Duration
	MaxAlternatives int
	// ExcludeBookingID lets a booking being moved ignore its own current interval.
	ExcludeBookingID *uuid.UUID
}

type Option struct {
	Slot      TimeSlot
	Candidate resource.Candidate
	// Offset is the signed distance from the desired start.
	Offset time.Duration
}

type SearchResult struct {
	Exact        *Option
	Alternatives []Option
}

func (r SearchResult) Found() bool {
	return r.Exact != nil
}

// History holds the active occupancies of each candidate resource, keyed by resource id.
type History map[uuid.UUID][]Occupancy

// GroupByResource buckets occupancies by their resource, keeping input order per bucket.
func GroupByResource(occupancies []Occupancy) History {
	h := History{}
	for _, o := range occupancies {
		h[o.ResourceID] = append(h[o.ResourceID], o)
	}
	return h
}

// Engine enumerates candidate slots. It performs no I/O: callers pass the catalog
// candidates and the booking history they loaded.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Search returns the desired slot on the most preferred free candidate, or, when none is free,
// up to MaxAlternatives options ranked by |offset|, then candidate preference.
func (e *Engine) Search(c Constraints, candidates []resource.Candidate, history History, req SearchRequest) SearchResult {
	step := c.SlotDuration()
	steps := int(req.Window / step)

	ordered := slices.Clone(candidates)
	resource.SortCandidates(ordered)

	for _, cand := range ordered {
		if opt, ok := e.evaluate(c, cand, history[cand.ID], req, req.DesiredStart); ok {
			return SearchResult{Exact: &opt}
		}
	}

	var options []Option
	for _, cand := range ordered {
		for k := -steps; k <= steps; k++ {
			if k == 0 {
				continue
			}
			start := req.DesiredStart.Add(time.Duration(k) * step)
			if opt, ok := e.evaluate(c, cand, history[cand.ID], req, start); ok {
				options = append(options, opt)
			}
		}
	}

	slices.SortStableFunc(options, compareOptions)
	if req.MaxAlternatives > 0 && len(options) > req.MaxAlternatives {
		options = options[:req.MaxAlternatives]
	}
	return SearchResult{Alternatives: options}
}

// CheckSlot validates one explicit resource and start time against constraints and history.
func (e *Engine) CheckSlot(c Constraints, cand resource.Candidate, existing []Occupancy, req SearchRequest) (TimeSlot, error) {
	if err := c.ValidateBookingTime(req.Now, req.DesiredStart, req.Duration); err != nil {
		return TimeSlot{}, err
	}
	return e.hold(c, cand, existing, req.DesiredStart, req.Duration, req.ExcludeBookingID)
}

// CheckResize validates a booking whose start stays put while its duration changes. Advance notice
// is not re-applied; opening hours, overlaps and capacity are.
func (e *Engine) CheckResize(c Constraints, cand resource.Candidate, existing []Occupancy, start time.Time, duration time.Duration, exclude *uuid.UUID) (TimeSlot, error) {
	if err := c.ValidateOpening(start, duration); err != nil {
		return TimeSlot{}, err
	}
	return e.hold(c, cand, existing, start, duration, exclude)
}

func (e *Engine) hold(c Constraints, cand resource.Candidate, existing []Occupancy, start time.Time, duration time.Duration, exclude *uuid.UUID) (TimeSlot, error) {
	slot, err := NewTimeSlot(start, duration, cand.ID, cand.Type, c.Buffer())
	if err != nil {
		return TimeSlot{}, err
	}
	if conflicts := DetectConflicts(slot, existing, exclude); len(conflicts) > 0 {
		return TimeSlot{}, ErrSlotUnavailable.WithDetail("conflictingBookings", conflictIDs(conflicts))
	}
	if atCapacity(c, cand, existing, slot, exclude) {
		return TimeSlot{}, ErrDailyCapacityReached.WithDetail("date", c.LocalDate(slot.Start()))
	}
	return slot, nil
}

func (e *Engine) evaluate(c Constraints, cand resource.Candidate, existing []Occupancy, req SearchRequest, start time.Time) (Option, bool) {
	if c.ValidateBookingTime(req.Now, start, req.Duration) != nil {
		return Option{}, false
	}
	slot, err := NewTimeSlot(start, req.Duration, cand.ID, cand.Type, c.Buffer())
	if err != nil {
		return Option{}, false
	}
	if len(DetectConflicts(slot, existing, req.ExcludeBookingID)) > 0 {
		return Option{}, false
	}
	if atCapacity(c, cand, existing, slot, req.ExcludeBookingID) {
		return Option{}, false
	}
	return Option{Slot: slot, Candidate: cand, Offset: start.Sub(req.DesiredStart)}, true
}

func atCapacity(c Constraints, cand resource.Candidate, existing []Occupancy, slot TimeSlot, exclude *uuid.UUID) bool {
	if cand.Type != resource.TypeMobileTeam || cand.DailyCapacity <= 0 {
		return false
	}
	day := c.LocalDate(slot.Start())
	n := 0
	for _, o := range existing {
		if exclude != nil && o.BookingID == *exclude {
			continue
		}
		if c.LocalDate(o.Start) == day {
			n++
		}
	}
	return n >= cand.DailyCapacity
}

func compareOptions(a, b Option) int {
	if c := cmp.Compare(absDuration(a.Offset), absDuration(b.Offset)); c != 0 {
		return c
	}
	if c := resource.CompareCandidates(a.Candidate, b.Candidate); c != 0 {
		return c
	}
	return a.Slot.Start().Compare(b.Slot.Start())
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// HistoryWindow is the range of stored bookings a search around desired needs: whole business days
// covering the search window, widened by the buffer so edge overlaps are seen.
func HistoryWindow(c Constraints, desired time.Time, duration, window time.Duration) (time.Time, time.Time) {
	from, _ := c.DayBounds(desired.Add(-window))
	_, to := c.DayBounds(desired.Add(window + duration))
	return from.Add(-c.Buffer()), to.Add(c.Buffer())
}
