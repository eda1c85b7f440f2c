package queries

import (
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ServiceLineView struct {
	ServiceID       uuid.UUID `json:"service_id"`
	Name            string    `json:"name"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
}

type LocationView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CancellationView struct {
	At       time.Time `json:"at"`
	By       string    `json:"by"`
	Reason   string    `json:"reason,omitempty"`
	FeeCents int64     `json:"fee_cents"`
}

type NoShowView struct {
	At       time.Time `json:"at"`
	FeeCents int64     `json:"fee_cents"`
}

type ExecutionView struct {
	ActualStart         *time.Time `json:"actual_start,omitempty"`
	ActualEnd           *time.Time `json:"actual_end,omitempty"`
	OvertimeMinutes     int        `json:"overtime_minutes"`
	OvertimeChargeCents int64      `json:"overtime_charge_cents"`
	FinalPriceCents     *int64     `json:"final_price_cents,omitempty"`
}

type RatingView struct {
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
	RatedAt  time.Time `json:"rated_at"`
}

type PaymentView struct {
	IntentID  *string    `json:"intent_id,omitempty"`
	State     string     `json:"state"`
	LastError string     `json:"last_error,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type BookingView struct {
	ID                       uuid.UUID         `json:"id"`
	CustomerID               uuid.UUID         `json:"customer_id"`
	VehicleID                uuid.UUID         `json:"vehicle_id"`
	BookingType              string            `json:"booking_type"`
	Status                   string            `json:"status"`
	ScheduledAt              time.Time         `json:"scheduled_at"`
	EndsAt                   time.Time         `json:"ends_at"`
	Services                 []ServiceLineView `json:"services"`
	TotalPriceCents          int64             `json:"total_price_cents"`
	AmountDueCents           int64             `json:"amount_due_cents"`
	EstimatedDurationMinutes int               `json:"estimated_duration_minutes"`
	ResourceID               *uuid.UUID        `json:"resource_id,omitempty"`
	ResourceType             string            `json:"resource_type"`
	BufferMinutes            int               `json:"buffer_minutes"`
	Location                 *LocationView     `json:"location,omitempty"`
	Notes                    string            `json:"notes,omitempty"`
	Cancellation             *CancellationView `json:"cancellation,omitempty"`
	NoShow                   *NoShowView       `json:"no_show,omitempty"`
	Execution                ExecutionView     `json:"execution"`
	Rating                   *RatingView       `json:"rating,omitempty"`
	Payment                  PaymentView       `json:"payment"`
	RescheduleCount          int               `json:"reschedule_count"`
	Version                  int               `json:"version"`
	CreatedAt                time.Time         `json:"created_at"`
	UpdatedAt                time.Time         `json:"updated_at"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	v := &BookingView{
		ID:                       b.ID(),
		CustomerID:               b.CustomerID(),
		VehicleID:                b.VehicleID(),
		BookingType:              b.Type().String(),
		Status:                   b.Status().String(),
		ScheduledAt:              b.ScheduledAt(),
		EndsAt:                   b.EndsAt(),
		TotalPriceCents:          b.TotalPrice().Cents(),
		AmountDueCents:           b.AmountDue().Cents(),
		EstimatedDurationMinutes: b.EstimatedMinutes(),
		ResourceID:               b.ResourceID(),
		ResourceType:             b.ResourceType().String(),
		BufferMinutes:            b.BufferMinutes(),
		Location:                 newLocationView(b.Location()),
		Notes:                    b.Notes(),
		RescheduleCount:          b.RescheduleCount(),
		Version:                  b.Version(),
		CreatedAt:                b.CreatedAt(),
		UpdatedAt:                b.UpdatedAt(),
	}

	for _, l := range b.Services() {
		v.Services = append(v.Services, ServiceLineView{
			ServiceID:       l.ServiceID,
			Name:            l.Name,
			PriceCents:      l.Price.Cents(),
			DurationMinutes: l.DurationMinutes,
		})
	}
	if c := b.Cancellation(); c != nil {
		v.Cancellation = &CancellationView{At: c.At, By: string(c.By), Reason: c.Reason, FeeCents: c.Fee.Cents()}
	}
	if n := b.NoShow(); n != nil {
		v.NoShow = &NoShowView{At: n.At, FeeCents: n.Fee.Cents()}
	}
	e := b.Execution()
	v.Execution = ExecutionView{
		ActualStart:         e.ActualStart,
		ActualEnd:           e.ActualEnd,
		OvertimeMinutes:     e.OvertimeMinutes,
		OvertimeChargeCents: e.OvertimeCharge.Cents(),
	}
	if e.FinalPrice != nil {
		cents := e.FinalPrice.Cents()
		v.Execution.FinalPriceCents = &cents
	}
	if r := b.Rating(); r != nil {
		v.Rating = &RatingView{Score: r.Score, Feedback: r.Feedback, RatedAt: r.RatedAt}
	}
	p := b.Payment()
	v.Payment = PaymentView{IntentID: p.IntentID, State: string(p.State), LastError: p.LastError, UpdatedAt: p.UpdatedAt}
	return v
}

func newLocationView(p *geo.Point) *LocationView {
	if p == nil {
		return nil
	}
	return &LocationView{Lat: p.Lat, Lng: p.Lng}
}

type BookingPage struct {
	Items      []*BookingView `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

type SlotView struct {
	ResourceID    uuid.UUID `json:"resource_id"`
	ResourceType  string    `json:"resource_type"`
	ResourceName  string    `json:"resource_name"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DistanceKm    *float64  `json:"distance_km,omitempty"`
	OffsetMinutes int       `json:"offset_minutes"`
}

func newSlotView(o scheduling.Option) SlotView {
	return SlotView{
		ResourceID:    o.Candidate.ID,
		ResourceType:  o.Candidate.Type.String(),
		ResourceName:  o.Candidate.Name,
		Start:         o.Slot.Start(),
		End:           o.Slot.End(),
		DistanceKm:    o.Candidate.DistanceKm,
		OffsetMinutes: int(o.Offset / time.Minute),
	}
}

type AvailabilityView struct {
	Available       bool       `json:"available"`
	DurationMinutes int        `json:"duration_minutes"`
	Exact           *SlotView  `json:"exact,omitempty"`
	Alternatives    []SlotView `json:"alternatives"`
}

type ConstraintsView struct {
	ID                  uuid.UUID              `json:"id"`
	Version             int                    `json:"version"`
	MinAdvanceMinutes   int                    `json:"min_advance_minutes"`
	MaxAdvanceMinutes   int                    `json:"max_advance_minutes"`
	SlotDurationMinutes int                    `json:"slot_duration_minutes"`
	BufferMinutes       int                    `json:"buffer_minutes"`
	BusinessHours       scheduling.WeeklyHours `json:"business_hours"`
	ClosedDates         []string               `json:"closed_dates"`
	TimeZone            string                 `json:"time_zone"`
	CreatedAt           time.Time              `json:"created_at"`
}

func NewConstraintsView(c scheduling.Constraints) *ConstraintsView {
	return &ConstraintsView{
		ID:                  c.ID(),
		Version:             c.Version(),
		MinAdvanceMinutes:   int(c.MinAdvance() / time.Minute),
		MaxAdvanceMinutes:   int(c.MaxAdvance() / time.Minute),
		SlotDurationMinutes: int(c.SlotDuration() / time.Minute),
		BufferMinutes:       int(c.Buffer() / time.Minute),
		BusinessHours:       c.BusinessHours(),
		ClosedDates:         c.ClosedDates(),
		TimeZone:            c.Location().String(),
		CreatedAt:           c.CreatedAt(),
	}
}

type WashBayView struct {
	ID             uuid.UUID     `json:"id"`
	BayNumber      int           `json:"bay_number"`
	MaxVehicleSize string        `json:"max_vehicle_size"`
	Equipment      []string      `json:"equipment"`
	Status         string        `json:"status"`
	Location       *LocationView `json:"location,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewWashBayView(b *resource.WashBay) *WashBayView {
	return &WashBayView{
		ID:             b.ID(),
		BayNumber:      b.BayNumber(),
		MaxVehicleSize: b.MaxVehicleSize().String(),
		Equipment:      b.Equipment(),
		Status:         b.Status().String(),
		Location:       newLocationView(b.Location()),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

type MobileTeamView struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	BaseLocation    LocationView `json:"base_location"`
	ServiceRadiusKm float64      `json:"service_radius_km"`
	DailyCapacity   int          `json:"daily_capacity"`
	Equipment       []string     `json:"equipment"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func NewMobileTeamView(t *resource.MobileTeam) *MobileTeamView {
	base := t.BaseLocation()
	return &MobileTeamView{
		ID:              t.ID(),
		Name:            t.Name(),
		BaseLocation:    LocationView{Lat: base.Lat, Lng: base.Lng},
		ServiceRadiusKm: t.ServiceRadiusKm(),
		DailyCapacity:   t.DailyCapacity(),
		Equipment:       t.Equipment(),
		Status:          t.Status().String(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

type CatalogView struct {
	WashBays    []*WashBayView    `json:"wash_bays"`
	MobileTeams []*MobileTeamView `json:"mobile_teams"`
}
