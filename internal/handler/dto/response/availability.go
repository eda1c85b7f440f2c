package response

import (
	"time"

	"carwash-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ResourceID    uuid.UUID `json:"resourceId"`
	ResourceType  string    `json:"resourceType"`
	ResourceName  string    `json:"resourceName"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DistanceKm    *float64  `json:"distanceKm,omitempty"`
	OffsetMinutes int       `json:"offsetMinutes"`
}

type AvailabilityResponse struct {
	Available       bool           `json:"available"`
	DurationMinutes int            `json:"durationMinutes"`
	Exact           *SlotResponse  `json:"exact,omitempty"`
	Alternatives    []SlotResponse `json:"alternatives"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Available:       v.Available,
		DurationMinutes: v.DurationMinutes,
		Alternatives:    make([]SlotResponse, 0, len(v.Alternatives)),
	}
	if v.Exact != nil {
		exact := SlotResponse(*v.Exact)
		resp.Exact = &exact
	}
	for _, alt := range v.Alternatives {
		resp.Alternatives = append(resp.Alternatives, SlotResponse(alt))
	}
	return resp
}
