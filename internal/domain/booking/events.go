package booking

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated     EventType = "booking.created"
	EventConfirmed   EventType = "booking.confirmed"
	EventStarted     EventType = "booking.started"
	EventCompleted   EventType = "booking.completed"
	EventCancelled   EventType = "booking.cancelled"
	EventRescheduled EventType = "booking.rescheduled"
	EventNoShow      EventType = "booking.no_show"
	EventUpdated     EventType = "booking.updated"
)

// Event is the published form of a lifecycle change.
type Event struct {
	ID          uuid.UUID      `json:"id"`
	Type        EventType      `json:"type"`
	BookingID   uuid.UUID      `json:"bookingId"`
	CustomerID  uuid.UUID      `json:"customerId"`
	Status      Status         `json:"status"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	ResourceID  *uuid.UUID     `json:"resourceId,omitempty"`
	AmountCents int64          `json:"amountCents"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Data        map[string]any `json:"data,omitempty"`
}

func NewEvent(t EventType, b *Booking, at time.Time, data map[string]any) Event {
	return Event{
		ID:          uuid.New(),
		Type:        t,
		BookingID:   b.id,
		CustomerID:  b.customerID,
		Status:      b.status,
		ScheduledAt: b.scheduledAt,
		ResourceID:  b.resourceID,
		AmountCents: b.AmountDue().Cents(),
		OccurredAt:  at,
		Data:        data,
	}
}
