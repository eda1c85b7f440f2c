//go:build unit

package scheduling_test

import (
	"testing"
	"time"

	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 3, hour, minute, 0, 0, time.UTC)
}

func occupancy(resourceID uuid.UUID, start time.Time, minutes int, buffer time.Duration) scheduling.Occupancy {
	return scheduling.Occupancy{
		BookingID:  uuid.New(),
		ResourceID: resourceID,
		Start:      start,
		End:        start.Add(time.Duration(minutes) * time.Minute),
		Buffer:     buffer,
	}
}

func TestOverlaps(t *testing.T) {
	bay := uuid.New()
	buf := 15 * time.Minute
	existing := occupancy(bay, at(10, 0), 50, buf)

	cases := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{name: "same start", start: at(10, 0), want: true},
		{name: "inside buffer after", start: at(11, 15), want: true},
		{name: "touching buffered edges after", start: at(11, 20), want: false},
		{name: "touching buffered edges before", start: at(8, 40), want: false},
		{name: "inside buffer before", start: at(8, 45), want: true},
		{name: "well clear", start: at(13, 0), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			proposed := occupancy(bay, tc.start, 50, buf)
			assert.Equal(t, tc.want, scheduling.Overlaps(proposed, existing))
			assert.Equal(t, tc.want, scheduling.Overlaps(existing, proposed), "symmetric")
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	bay := uuid.New()
	other := uuid.New()
	buf := 15 * time.Minute

	mine := occupancy(bay, at(10, 0), 50, buf)
	clash := occupancy(bay, at(10, 30), 30, buf)
	elsewhere := occupancy(other, at(10, 0), 50, buf)
	existing := []scheduling.Occupancy{mine, clash, elsewhere}

	slot, err := scheduling.NewTimeSlot(at(10, 15), 50*time.Minute, bay, resource.TypeWashBay, buf)
	require.NoError(t, err)

	t.Run("reports every overlapping booking on the resource", func(t *testing.T) {
		got := scheduling.DetectConflicts(slot, existing, nil)
		require.Len(t, got, 2)
		assert.ElementsMatch(t, []uuid.UUID{mine.BookingID, clash.BookingID}, []uuid.UUID{got[0].BookingID, got[1].BookingID})
	})

	t.Run("exclusion skips the moved booking", func(t *testing.T) {
		got := scheduling.DetectConflicts(slot, existing, &mine.BookingID)
		require.Len(t, got, 1)
		assert.Equal(t, clash.BookingID, got[0].BookingID)
	})
}

func TestTimeSlot(t *testing.T) {
	id := uuid.New()
	slot, err := scheduling.NewTimeSlot(at(10, 0), 50*time.Minute, id, resource.TypeWashBay, 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, at(10, 50), slot.End())
	assert.Equal(t, at(9, 45), slot.BlockedStart())
	assert.Equal(t, at(11, 5), slot.BlockedEnd())

	_, err = scheduling.NewTimeSlot(at(10, 0), 0, id, resource.TypeWashBay, 0)
	require.ErrorIs(t, err, scheduling.ErrInvalidTimeSlot)
}
