package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/pkg/ptr"
)

func ConstraintsToRow(c scheduling.Constraints) (pgquery.SchedulingConstraints, error) {
	hours, err := json.Marshal(c.BusinessHours())
	if err != nil {
		return pgquery.SchedulingConstraints{}, fmt.Errorf("encode business hours: %w", err)
	}
	closed := c.ClosedDates()
	if closed == nil {
		closed = []string{}
	}
	return pgquery.SchedulingConstraints{
		ID:                  c.ID(),
		Version:             int32(c.Version()),
		MinAdvanceMinutes:   minutes(c.MinAdvance()),
		MaxAdvanceMinutes:   minutes(c.MaxAdvance()),
		SlotDurationMinutes: minutes(c.SlotDuration()),
		BufferMinutes:       minutes(c.Buffer()),
		BusinessHours:       hours,
		ClosedDates:         closed,
		TimeZone:            c.Location().String(),
		IsActive:            c.IsActive(),
		CreatedAt:           c.CreatedAt(),
	}, nil
}

func ConstraintsFromRow(row pgquery.SchedulingConstraints) (scheduling.Constraints, error) {
	var hours scheduling.WeeklyHours
	if err := json.Unmarshal(row.BusinessHours, &hours); err != nil {
		return scheduling.Constraints{}, fmt.Errorf("decode business hours: %w", err)
	}
	return scheduling.ReconstructConstraints(row.ID, int(row.Version), scheduling.ConstraintsParams{
		MinAdvance:   time.Duration(row.MinAdvanceMinutes) * time.Minute,
		MaxAdvance:   time.Duration(row.MaxAdvanceMinutes) * time.Minute,
		SlotDuration: time.Duration(row.SlotDurationMinutes) * time.Minute,
		Buffer:       time.Duration(row.BufferMinutes) * time.Minute,
		Hours:        hours,
		ClosedDates:  row.ClosedDates,
		TimeZone:     row.TimeZone,
	}, row.IsActive, row.CreatedAt)
}

func minutes(d time.Duration) int32 {
	return int32(d / time.Minute)
}

func WashBayToRow(b *resource.WashBay) pgquery.WashBays {
	row := pgquery.WashBays{
		ID:             b.ID(),
		BayNumber:      int32(b.BayNumber()),
		MaxVehicleSize: string(b.MaxVehicleSize()),
		Equipment:      nonNil(b.Equipment()),
		Status:         string(b.Status()),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
	if loc := b.Location(); loc != nil {
		row.Lat, row.Lng = ptr.Of(loc.Lat), ptr.Of(loc.Lng)
	}
	return row
}

func WashBayFromRow(row pgquery.WashBays) *resource.WashBay {
	var loc *geo.Point
	if row.Lat != nil && row.Lng != nil {
		loc = &geo.Point{Lat: *row.Lat, Lng: *row.Lng}
	}
	return resource.ReconstructWashBay(
		row.ID,
		int(row.BayNumber),
		resource.VehicleSize(row.MaxVehicleSize),
		row.Equipment,
		resource.Status(row.Status),
		loc,
		row.CreatedAt, row.UpdatedAt,
	)
}

func MobileTeamToRow(t *resource.MobileTeam) pgquery.MobileTeams {
	base := t.BaseLocation()
	return pgquery.MobileTeams{
		ID:              t.ID(),
		Name:            t.Name(),
		BaseLat:         base.Lat,
		BaseLng:         base.Lng,
		ServiceRadiusKm: t.ServiceRadiusKm(),
		DailyCapacity:   int32(t.DailyCapacity()),
		Equipment:       nonNil(t.Equipment()),
		Status:          string(t.Status()),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func MobileTeamFromRow(row pgquery.MobileTeams) *resource.MobileTeam {
	return resource.ReconstructMobileTeam(
		row.ID,
		row.Name,
		geo.Point{Lat: row.BaseLat, Lng: row.BaseLng},
		row.ServiceRadiusKm,
		int(row.DailyCapacity),
		row.Equipment,
		resource.Status(row.Status),
		row.CreatedAt, row.UpdatedAt,
	)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
