package notification

import (
	"encoding/json"
	"time"

	"carwash-scheduler/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeBookingConfirmation = "notification:booking_confirmation"
	TypeBookingCancellation = "notification:booking_cancellation"
	TypeBookingReschedule   = "notification:booking_reschedule"
	TypeStatusUpdate        = "notification:status_update"

	Queue = "notifications"
)

// Payload is what a notification task carries; the worker renders the message from it.
type Payload struct {
	BookingID           uuid.UUID      `json:"bookingId"`
	CustomerID          uuid.UUID      `json:"customerId"`
	Status              booking.Status `json:"status"`
	ScheduledAt         time.Time      `json:"scheduledAt"`
	PreviousScheduledAt *time.Time     `json:"previousScheduledAt,omitempty"`
	AmountCents         int64          `json:"amountCents"`
	FeeCents            int64          `json:"feeCents,omitempty"`
}

func NewPayload(b *booking.Booking) Payload {
	p := Payload{
		BookingID:   b.ID(),
		CustomerID:  b.CustomerID(),
		Status:      b.Status(),
		ScheduledAt: b.ScheduledAt(),
		AmountCents: b.AmountDue().Cents(),
	}
	if c := b.Cancellation(); c != nil {
		p.FeeCents = c.Fee.Cents()
	}
	if n := b.NoShow(); n != nil {
		p.FeeCents = n.Fee.Cents()
	}
	return p
}

func NewTask(taskType string, p Payload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

func ParsePayload(t *asynq.Task) (Payload, error) {
	var p Payload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
