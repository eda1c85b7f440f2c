package response

import (
	"fmt"
	"strings"
	"time"

	"carwash-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type DayHoursResponse struct {
	Closed bool   `json:"closed"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

type ConstraintsResponse struct {
	ID                  uuid.UUID                   `json:"id"`
	Version             int                         `json:"version"`
	MinAdvanceMinutes   int                         `json:"minAdvanceMinutes"`
	MaxAdvanceDays      int                         `json:"maxAdvanceDays"`
	SlotDurationMinutes int                         `json:"slotDurationMinutes"`
	BufferMinutes       int                         `json:"bufferMinutes"`
	BusinessHours       map[string]DayHoursResponse `json:"businessHours"`
	ClosedDates         []string                    `json:"closedDates"`
	TimeZone            string                      `json:"timeZone"`
	CreatedAt           time.Time                   `json:"createdAt"`
}

func FromConstraintsView(v *queries.ConstraintsView) *ConstraintsResponse {
	resp := &ConstraintsResponse{
		ID:                  v.ID,
		Version:             v.Version,
		MinAdvanceMinutes:   v.MinAdvanceMinutes,
		MaxAdvanceDays:      v.MaxAdvanceMinutes / (24 * 60),
		SlotDurationMinutes: v.SlotDurationMinutes,
		BufferMinutes:       v.BufferMinutes,
		BusinessHours:       make(map[string]DayHoursResponse, len(v.BusinessHours)),
		ClosedDates:         v.ClosedDates,
		TimeZone:            v.TimeZone,
		CreatedAt:           v.CreatedAt,
	}
	if resp.ClosedDates == nil {
		resp.ClosedDates = []string{}
	}
	for day, h := range v.BusinessHours {
		name := strings.ToLower(time.Weekday(day).String())
		if h.Closed {
			resp.BusinessHours[name] = DayHoursResponse{Closed: true}
			continue
		}
		resp.BusinessHours[name] = DayHoursResponse{Open: clock(h.OpenMinute), Close: clock(h.CloseMinute)}
	}
	return resp
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

type WashBayResponse struct {
	ID             uuid.UUID         `json:"id"`
	BayNumber      int               `json:"bayNumber"`
	MaxVehicleSize string            `json:"maxVehicleSize"`
	Equipment      []string          `json:"equipment"`
	Status         string            `json:"status"`
	Location       *LocationResponse `json:"location,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func FromWashBayView(v *queries.WashBayView) *WashBayResponse {
	resp := &WashBayResponse{
		ID:             v.ID,
		BayNumber:      v.BayNumber,
		MaxVehicleSize: v.MaxVehicleSize,
		Equipment:      nonNil(v.Equipment),
		Status:         v.Status,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if v.Location != nil {
		resp.Location = &LocationResponse{Lat: v.Location.Lat, Lng: v.Location.Lng}
	}
	return resp
}

type MobileTeamResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	BaseLocation    LocationResponse `json:"baseLocation"`
	ServiceRadiusKm float64          `json:"serviceRadiusKm"`
	DailyCapacity   int              `json:"dailyCapacity"`
	Equipment       []string         `json:"equipment"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func FromMobileTeamView(v *queries.MobileTeamView) *MobileTeamResponse {
	return &MobileTeamResponse{
		ID:              v.ID,
		Name:            v.Name,
		BaseLocation:    LocationResponse{Lat: v.BaseLocation.Lat, Lng: v.BaseLocation.Lng},
		ServiceRadiusKm: v.ServiceRadiusKm,
		DailyCapacity:   v.DailyCapacity,
		Equipment:       nonNil(v.Equipment),
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type ResourceListResponse struct {
	WashBays    []*WashBayResponse    `json:"washBays"`
	MobileTeams []*MobileTeamResponse `json:"mobileTeams"`
}

func FromCatalogView(v *queries.CatalogView) *ResourceListResponse {
	resp := &ResourceListResponse{
		WashBays:    make([]*WashBayResponse, 0, len(v.WashBays)),
		MobileTeams: make([]*MobileTeamResponse, 0, len(v.MobileTeams)),
	}
	for _, b := range v.WashBays {
		resp.WashBays = append(resp.WashBays, FromWashBayView(b))
	}
	for _, t := range v.MobileTeams {
		resp.MobileTeams = append(resp.MobileTeams, FromMobileTeamView(t))
	}
	return resp
}

type ResourceStatusResponse struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Status string    `json:"status"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
