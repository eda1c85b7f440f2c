package converter

import (
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/geo"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra/pgquery"
	"carwash-scheduler/internal/pkg/ptr"

	"github.com/google/uuid"
)

// BookingToWriteParams flattens a booking into its row, its blocked range and its service lines.
func BookingToWriteParams(b *booking.Booking) (pgquery.BookingWriteParams, []pgquery.BookingServiceLines) {
	s := b.Snapshot()
	row := pgquery.Bookings{
		ID:                  s.ID,
		CustomerID:          s.CustomerID,
		VehicleID:           s.VehicleID,
		BookingType:         string(s.Type),
		Status:              string(s.Status),
		ScheduledAt:         s.ScheduledAt,
		EstimatedMinutes:    int32(s.EstimatedMinutes),
		TotalPriceCents:     s.TotalPrice.Cents(),
		ResourceID:          s.ResourceID,
		BufferMinutes:       int32(s.BufferMinutes),
		Notes:               s.Notes,
		ActualStart:         s.Execution.ActualStart,
		ActualEnd:           s.Execution.ActualEnd,
		OvertimeMinutes:     int32(s.Execution.OvertimeMinutes),
		OvertimeChargeCents: s.Execution.OvertimeCharge.Cents(),
		PaymentIntentID:     s.Payment.IntentID,
		PaymentState:        string(s.Payment.State),
		PaymentError:        s.Payment.LastError,
		PaymentUpdatedAt:    s.Payment.UpdatedAt,
		RescheduleCount:     int32(s.RescheduleCount),
		Version:             int32(s.Version),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.ResourceType != "" {
		row.ResourceType = ptr.Of(string(s.ResourceType))
	}
	if s.Location != nil {
		row.Lat, row.Lng = ptr.Of(s.Location.Lat), ptr.Of(s.Location.Lng)
	}
	if c := s.Cancellation; c != nil {
		row.CancelledAt = ptr.Of(c.At)
		row.CancelledBy = ptr.Of(string(c.By))
		row.CancellationReason = ptr.Of(c.Reason)
		row.CancellationFeeCents = ptr.Of(c.Fee.Cents())
	}
	if n := s.NoShow; n != nil {
		row.NoShowAt = ptr.Of(n.At)
		row.NoShowFeeCents = ptr.Of(n.Fee.Cents())
	}
	if f := s.Execution.FinalPrice; f != nil {
		row.FinalPriceCents = ptr.Of(f.Cents())
	}
	if r := s.Rating; r != nil {
		row.Rating = ptr.Of(int32(r.Score))
		row.Feedback = ptr.Of(r.Feedback)
		row.RatedAt = ptr.Of(r.RatedAt)
	}

	buffer := time.Duration(s.BufferMinutes) * time.Minute
	params := pgquery.BookingWriteParams{
		Bookings:    row,
		BlockedFrom: s.ScheduledAt.Add(-buffer),
		BlockedTo:   b.EndsAt().Add(buffer),
	}

	lines := make([]pgquery.BookingServiceLines, len(s.Services))
	for i, l := range s.Services {
		lines[i] = pgquery.BookingServiceLines{
			BookingID:       s.ID,
			Position:        int32(i),
			ServiceID:       l.ServiceID,
			Name:            l.Name,
			PriceCents:      l.Price.Cents(),
			DurationMinutes: int32(l.DurationMinutes),
		}
	}
	return params, lines
}

func BookingFromRow(row pgquery.Bookings, lines []pgquery.BookingServiceLines) *booking.Booking {
	s := booking.Snapshot{
		ID:               row.ID,
		CustomerID:       row.CustomerID,
		VehicleID:        row.VehicleID,
		Type:             booking.Type(row.BookingType),
		Status:           booking.Status(row.Status),
		ScheduledAt:      row.ScheduledAt,
		TotalPrice:       booking.NewMoney(row.TotalPriceCents),
		EstimatedMinutes: int(row.EstimatedMinutes),
		ResourceID:       row.ResourceID,
		BufferMinutes:    int(row.BufferMinutes),
		Notes:            row.Notes,
		Execution: booking.Execution{
			ActualStart:     row.ActualStart,
			ActualEnd:       row.ActualEnd,
			OvertimeMinutes: int(row.OvertimeMinutes),
			OvertimeCharge:  booking.NewMoney(row.OvertimeChargeCents),
		},
		Payment: booking.Payment{
			IntentID:  row.PaymentIntentID,
			State:     booking.PaymentState(row.PaymentState),
			LastError: row.PaymentError,
			UpdatedAt: row.PaymentUpdatedAt,
		},
		RescheduleCount: int(row.RescheduleCount),
		Version:         int(row.Version),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.ResourceType != nil {
		s.ResourceType = resource.Type(*row.ResourceType)
	}
	if row.Lat != nil && row.Lng != nil {
		s.Location = &geo.Point{Lat: *row.Lat, Lng: *row.Lng}
	}
	if row.CancelledAt != nil {
		s.Cancellation = &booking.Cancellation{
			At:     *row.CancelledAt,
			By:     booking.CancelledBy(ptr.Deref(row.CancelledBy)),
			Reason: ptr.Deref(row.CancellationReason),
			Fee:    booking.NewMoney(ptr.Deref(row.CancellationFeeCents)),
		}
	}
	if row.NoShowAt != nil {
		s.NoShow = &booking.NoShow{At: *row.NoShowAt, Fee: booking.NewMoney(ptr.Deref(row.NoShowFeeCents))}
	}
	if row.FinalPriceCents != nil {
		s.Execution.FinalPrice = ptr.Of(booking.NewMoney(*row.FinalPriceCents))
	}
	if row.Rating != nil {
		s.Rating = &booking.Rating{
			Score:    int(*row.Rating),
			Feedback: ptr.Deref(row.Feedback),
			RatedAt:  ptr.Deref(row.RatedAt),
		}
	}
	for _, l := range lines {
		s.Services = append(s.Services, booking.ServiceLine{
			ServiceID:       l.ServiceID,
			Name:            l.Name,
			Price:           booking.NewMoney(l.PriceCents),
			DurationMinutes: int(l.DurationMinutes),
		})
	}
	return booking.Reconstruct(s)
}

// GroupServiceLines indexes lines by booking, keeping their stored order.
func GroupServiceLines(lines []pgquery.BookingServiceLines) map[uuid.UUID][]pgquery.BookingServiceLines {
	out := make(map[uuid.UUID][]pgquery.BookingServiceLines)
	for _, l := range lines {
		out[l.BookingID] = append(out[l.BookingID], l)
	}
	return out
}

func OccupancyFromRow(row pgquery.ListOccupanciesRow) scheduling.Occupancy {
	return scheduling.Occupancy{
		BookingID:  row.ID,
		ResourceID: row.ResourceID,
		Start:      row.ScheduledAt,
		End:        row.ScheduledAt.Add(time.Duration(row.EstimatedMinutes) * time.Minute),
		Buffer:     time.Duration(row.BufferMinutes) * time.Minute,
	}
}

func PaymentToParams(id uuid.UUID, p booking.Payment) pgquery.UpdateBookingPaymentParams {
	return pgquery.UpdateBookingPaymentParams{
		ID:               id,
		PaymentIntentID:  p.IntentID,
		PaymentState:     string(p.State),
		PaymentError:     p.LastError,
		PaymentUpdatedAt: p.UpdatedAt,
	}
}
