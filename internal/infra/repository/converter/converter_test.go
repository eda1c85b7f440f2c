//go:build unit

package converter

import (
	"testing"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRow_PreservesLifecycleData(t *testing.T) {
	b := builder.NewBookingBuilder()
	cancelled, err := b.BuildInStatus(booking.StatusCancelled)
	require.NoError(t, err)
	completed, err := b.BuildInStatus(booking.StatusCompleted)
	require.NoError(t, err)
	rated, err := completed.Rate(b.Policy, completed.UpdatedAt().Add(time.Hour), 5, "spotless")
	require.NoError(t, err)
	mobile, err := builder.NewBookingBuilder().AsMobile(&geo.Point{Lat: 40.7128, Lng: -74.006}).BuildDomain()
	require.NoError(t, err)

	for name, original := range map[string]*booking.Booking{
		"cancelled": cancelled,
		"rated":     rated,
		"mobile":    mobile,
	} {
		t.Run(name, func(t *testing.T) {
			params, lines := BookingToWriteParams(original)
			restored := BookingFromRow(params.Bookings, lines)

			if diff := cmp.Diff(original.Snapshot(), restored.Snapshot(), cmp.AllowUnexported(booking.Money{})); diff != "" {
				t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConstraintsRow(t *testing.T) {
	p := scheduling.DefaultConstraintsParams()
	p.ClosedDates = []string{"2026-12-25"}
	p.TimeZone = "America/New_York"
	c, err := scheduling.NewConstraints(p, builder.DefaultNow)
	require.NoError(t, err)

	row, err := ConstraintsToRow(c)
	require.NoError(t, err)
	assert.Equal(t, int32(30), row.SlotDurationMinutes)
	assert.Equal(t, "America/New_York", row.TimeZone)

	restored, err := ConstraintsFromRow(row)
	require.NoError(t, err)
	if diff := cmp.Diff(c.Params(), restored.Params()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, c.Version(), restored.Version())
	assert.True(t, restored.IsActive())
}
