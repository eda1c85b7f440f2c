package request

import (
	"strings"
	"time"

	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
)

type DayHoursRequest struct {
	Closed bool   `json:"closed"`
	Open   string `json:"open" binding:"required_unless=Closed true"`
	Close  string `json:"close" binding:"required_unless=Closed true"`
}

// ReplaceConstraintsRequest keys businessHours by lower-case English weekday name. Days left out
// are closed.
type ReplaceConstraintsRequest struct {
	MinAdvanceMinutes   int                        `json:"minAdvanceMinutes" binding:"min=0"`
	MaxAdvanceDays      int                        `json:"maxAdvanceDays" binding:"required,min=1"`
	SlotDurationMinutes int                        `json:"slotDurationMinutes" binding:"required"`
	BufferMinutes       int                        `json:"bufferMinutes" binding:"min=0"`
	BusinessHours       map[string]DayHoursRequest `json:"businessHours" binding:"required,dive"`
	ClosedDates         []string                   `json:"closedDates"`
	TimeZone            string                     `json:"timeZone"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (r ReplaceConstraintsRequest) ToParams() (scheduling.ConstraintsParams, error) {
	var hours scheduling.WeeklyHours
	for i := range hours {
		hours[i] = scheduling.DayHours{Closed: true}
	}
	for name, h := range r.BusinessHours {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return scheduling.ConstraintsParams{}, scheduling.ErrInvalidConstraints.
				WithField("businessHours").
				Withf("unknown weekday %q", name)
		}
		if h.Closed {
			continue
		}
		hours[day] = scheduling.Hours(h.Open, h.Close)
	}
	tz := r.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	return scheduling.ConstraintsParams{
		MinAdvance:   time.Duration(r.MinAdvanceMinutes) * time.Minute,
		MaxAdvance:   time.Duration(r.MaxAdvanceDays) * 24 * time.Hour,
		SlotDuration: time.Duration(r.SlotDurationMinutes) * time.Minute,
		Buffer:       time.Duration(r.BufferMinutes) * time.Minute,
		Hours:        hours,
		ClosedDates:  r.ClosedDates,
		TimeZone:     tz,
	}, nil
}

type CreateWashBayRequest struct {
	BayNumber      int       `json:"bayNumber" binding:"required,min=1"`
	MaxVehicleSize string    `json:"maxVehicleSize" binding:"required,oneof=SMALL MEDIUM LARGE EXTRA_LARGE"`
	Equipment      []string  `json:"equipment"`
	Location       *Location `json:"location,omitempty"`
}

func (r CreateWashBayRequest) ToParams() resource.NewWashBayParams {
	return resource.NewWashBayParams{
		BayNumber:      r.BayNumber,
		MaxVehicleSize: resource.VehicleSize(r.MaxVehicleSize),
		Equipment:      r.Equipment,
		Location:       r.Location.ToPoint(),
	}
}

type CreateMobileTeamRequest struct {
	Name            string   `json:"name" binding:"required,max=100"`
	BaseLocation    Location `json:"baseLocation"`
	ServiceRadiusKm float64  `json:"serviceRadiusKm" binding:"required,gt=0"`
	DailyCapacity   int      `json:"dailyCapacity" binding:"required,min=1"`
	Equipment       []string `json:"equipment"`
}

func (r CreateMobileTeamRequest) ToParams() resource.NewMobileTeamParams {
	return resource.NewMobileTeamParams{
		Name:            r.Name,
		BaseLocation:    geo.Point{Lat: r.BaseLocation.Lat, Lng: r.BaseLocation.Lng},
		ServiceRadiusKm: r.ServiceRadiusKm,
		DailyCapacity:   r.DailyCapacity,
		Equipment:       r.Equipment,
	}
}

type SetResourceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE MAINTENANCE INACTIVE"`
}
