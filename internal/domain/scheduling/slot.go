package scheduling

import (
	"time"

	"carwash-scheduler/internal/domain/resource"

	"github.com/google/uuid"
)

// TimeSlot is a candidate interval on one resource. It is derived for conflict math and never persisted.
type TimeSlot struct {
	start        time.Time
	end          time.Time
	resourceID   uuid.UUID
	resourceType resource.Type
	buffer       time.Duration
}

func NewTimeSlot(start time.Time, duration time.Duration, resourceID uuid.UUID, resourceType resource.Type, buffer time.Duration) (TimeSlot, error) {
	if duration <= 0 {
		return TimeSlot{}, ErrInvalidTimeSlot.Withf("duration must be positive")
	}
	if buffer < 0 {
		return TimeSlot{}, ErrInvalidTimeSlot.Withf("buffer cannot be negative")
	}
	return TimeSlot{
		start:        start,
		end:          start.Add(duration),
		resourceID:   resourceID,
		resourceType: resourceType,
		buffer:       buffer,
	}, nil
}

func (s TimeSlot) Start() time.Time            { return s.start }
func (s TimeSlot) End() time.Time              { return s.end }
func (s TimeSlot) Duration() time.Duration     { return s.end.Sub(s.start) }
func (s TimeSlot) ResourceID() uuid.UUID       { return s.resourceID }
func (s TimeSlot) ResourceType() resource.Type { return s.resourceType }
func (s TimeSlot) Buffer() time.Duration       { return s.buffer }
func (s TimeSlot) BlockedStart() time.Time     { return s.start.Add(-s.buffer) }
func (s TimeSlot) BlockedEnd() time.Time       { return s.end.Add(s.buffer) }

func (s TimeSlot) Occupancy(bookingID uuid.UUID) Occupancy {
	return Occupancy{
		BookingID:  bookingID,
		ResourceID: s.resourceID,
		Start:      s.start,
		End:        s.end,
		Buffer:     s.buffer,
	}
}

// Occupancy is an interval a persisted booking holds on a resource.
type Occupancy struct {
	BookingID  uuid.UUID
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	Buffer     time.Duration
}

// Overlaps applies the half-open rule to both intervals widened by their buffers:
// not (aEnd+buf <= bStart-buf or bEnd+buf <= aStart-buf).
func Overlaps(a, b Occupancy) bool {
	aFrom, aTo := a.Start.Add(-a.Buffer), a.End.Add(a.Buffer)
	bFrom, bTo := b.Start.Add(-b.Buffer), b.End.Add(b.Buffer)
	return aTo.After(bFrom) && bTo.After(aFrom)
}

// DetectConflicts returns the existing occupancies on the slot's resource that overlap it.
// exclude skips the caller's own booking when re-checking a moved booking.
func DetectConflicts(slot TimeSlot, existing []Occupancy, exclude *uuid.UUID) []Occupancy {
	proposed := slot.Occupancy(uuid.Nil)
	var out []Occupancy
	for _, o := range existing {
		if o.ResourceID != slot.resourceID {
			continue
		}
		if exclude != nil && o.BookingID == *exclude {
			continue
		}
		if Overlaps(proposed, o) {
			out = append(out, o)
		}
	}
	return out
}

func conflictIDs(cs []Occupancy) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.BookingID.String()
	}
	return ids
}
