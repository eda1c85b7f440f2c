package response

import (
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceLineResponse struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Name            string    `json:"name"`
	PriceCents      int64     `json:"priceCents"`
	DurationMinutes int       `json:"durationMinutes"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CancellationResponse struct {
	At       time.Time `json:"at"`
	By       string    `json:"by"`
	Reason   string    `json:"reason,omitempty"`
	FeeCents int64     `json:"feeCents"`
}

type NoShowResponse struct {
	At       time.Time `json:"at"`
	FeeCents int64     `json:"feeCents"`
}

type ExecutionResponse struct {
	ActualStart         *time.Time `json:"actualStart,omitempty"`
	ActualEnd           *time.Time `json:"actualEnd,omitempty"`
	OvertimeMinutes     int        `json:"overtimeMinutes"`
	OvertimeChargeCents int64      `json:"overtimeChargeCents"`
	FinalPriceCents     *int64     `json:"finalPriceCents,omitempty"`
}

type RatingResponse struct {
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
	RatedAt  time.Time `json:"ratedAt"`
}

type PaymentResponse struct {
	State     string  `json:"state"`
	IntentID  *string `json:"intentId,omitempty"`
	LastError string  `json:"lastError,omitempty"`
}

type BookingResponse struct {
	ID                       uuid.UUID             `json:"id"`
	CustomerID               uuid.UUID             `json:"customerId"`
	VehicleID                uuid.UUID             `json:"vehicleId"`
	BookingType              string                `json:"bookingType"`
	Status                   string                `json:"status"`
	ScheduledAt              time.Time             `json:"scheduledAt"`
	EndsAt                   time.Time             `json:"endsAt"`
	Services                 []ServiceLineResponse `json:"services"`
	TotalPriceCents          int64                 `json:"totalPriceCents"`
	AmountDueCents           int64                 `json:"amountDueCents"`
	EstimatedDurationMinutes int                   `json:"estimatedDurationMinutes"`
	ResourceID               *uuid.UUID            `json:"resourceId,omitempty"`
	ResourceType             string                `json:"resourceType"`
	BufferMinutes            int                   `json:"bufferMinutes"`
	Location                 *LocationResponse     `json:"location,omitempty"`
	Notes                    string                `json:"notes,omitempty"`
	Cancellation             *CancellationResponse `json:"cancellation,omitempty"`
	NoShow                   *NoShowResponse       `json:"noShow,omitempty"`
	Execution                ExecutionResponse     `json:"execution"`
	Rating                   *RatingResponse       `json:"rating,omitempty"`
	Payment                  PaymentResponse       `json:"payment"`
	RescheduleCount          int                   `json:"rescheduleCount"`
	Version                  int                   `json:"version"`
	CreatedAt                time.Time             `json:"createdAt"`
	UpdatedAt                time.Time             `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return FromBookingView(queries.NewBookingView(b))
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{
		ID:                       v.ID,
		CustomerID:               v.CustomerID,
		VehicleID:                v.VehicleID,
		BookingType:              v.BookingType,
		Status:                   v.Status,
		ScheduledAt:              v.ScheduledAt,
		EndsAt:                   v.EndsAt,
		Services:                 make([]ServiceLineResponse, 0, len(v.Services)),
		TotalPriceCents:          v.TotalPriceCents,
		AmountDueCents:           v.AmountDueCents,
		EstimatedDurationMinutes: v.EstimatedDurationMinutes,
		ResourceID:               v.ResourceID,
		ResourceType:             v.ResourceType,
		BufferMinutes:            v.BufferMinutes,
		Notes:                    v.Notes,
		Execution: ExecutionResponse{
			ActualStart:         v.Execution.ActualStart,
			ActualEnd:           v.Execution.ActualEnd,
			OvertimeMinutes:     v.Execution.OvertimeMinutes,
			OvertimeChargeCents: v.Execution.OvertimeChargeCents,
			FinalPriceCents:     v.Execution.FinalPriceCents,
		},
		Payment: PaymentResponse{
			State:     v.Payment.State,
			IntentID:  v.Payment.IntentID,
			LastError: v.Payment.LastError,
		},
		RescheduleCount: v.RescheduleCount,
		Version:         v.Version,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
	for _, l := range v.Services {
		resp.Services = append(resp.Services, ServiceLineResponse(l))
	}
	if v.Location != nil {
		resp.Location = &LocationResponse{Lat: v.Location.Lat, Lng: v.Location.Lng}
	}
	if c := v.Cancellation; c != nil {
		resp.Cancellation = &CancellationResponse{At: c.At, By: c.By, Reason: c.Reason, FeeCents: c.FeeCents}
	}
	if n := v.NoShow; n != nil {
		resp.NoShow = &NoShowResponse{At: n.At, FeeCents: n.FeeCents}
	}
	if r := v.Rating; r != nil {
		resp.Rating = &RatingResponse{Score: r.Score, Feedback: r.Feedback, RatedAt: r.RatedAt}
	}
	return resp
}

func FromBookingPage(p *queries.BookingPage) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings:   make([]*BookingResponse, 0, len(p.Items)),
		NextCursor: p.NextCursor,
	}
	for _, v := range p.Items {
		resp.Bookings = append(resp.Bookings, FromBookingView(v))
	}
	return resp
}
