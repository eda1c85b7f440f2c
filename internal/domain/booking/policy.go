package booking

import (
	"cmp"
	"slices"
	"time"
)

// FeeTier charges Percent of the total when a booking is cancelled with at least MinNotice to go.
type FeeTier struct {
	MinNotice time.Duration
	Percent   int
}

// Policy holds the business constants of the booking lifecycle.
type Policy struct {
	MinServices         int
	MaxServices         int
	MinDurationMinutes  int
	MaxDurationMinutes  int
	MaxTotalPrice       Money
	GracePeriod         time.Duration
	MinRescheduleNotice time.Duration
	OvertimeRate        Money // per started minute over the estimate
	CancellationTiers   []FeeTier
	PastCancellationPct int
	NoShowFeePct        int
	MaxFeedbackLength   int
	MaxReasonLength     int
	MaxNotesLength      int
}

func DefaultPolicy() Policy {
	return Policy{
		MinServices:         1,
		MaxServices:         10,
		MinDurationMinutes:  30,
		MaxDurationMinutes:  240,
		MaxTotalPrice:       NewMoney(1_000_000),
		GracePeriod:         30 * time.Minute,
		MinRescheduleNotice: 2 * time.Hour,
		OvertimeRate:        NewMoney(100),
		CancellationTiers: []FeeTier{
			{MinNotice: 24 * time.Hour, Percent: 0},
			{MinNotice: 6 * time.Hour, Percent: 25},
			{MinNotice: 2 * time.Hour, Percent: 50},
			{MinNotice: 0, Percent: 100},
		},
		PastCancellationPct: 100,
		NoShowFeePct:        100,
		MaxFeedbackLength:   1000,
		MaxReasonLength:     500,
		MaxNotesLength:      500,
	}
}

func (p Policy) Validate() error {
	switch {
	case p.MinServices < 1 || p.MaxServices < p.MinServices:
		return ErrInvalidPolicy.Withf("service count bounds are inconsistent")
	case p.MinDurationMinutes <= 0 || p.MaxDurationMinutes < p.MinDurationMinutes:
		return ErrInvalidPolicy.Withf("duration bounds are inconsistent")
	case p.MaxTotalPrice.Cents() < 0:
		return ErrInvalidPolicy.Withf("maximum price cannot be negative")
	case p.GracePeriod < 0 || p.MinRescheduleNotice < 0:
		return ErrInvalidPolicy.Withf("durations cannot be negative")
	case len(p.CancellationTiers) == 0:
		return ErrInvalidPolicy.Withf("at least one cancellation tier is required")
	}
	for _, t := range p.CancellationTiers {
		if t.Percent < 0 || t.Percent > 100 || t.MinNotice < 0 {
			return ErrInvalidPolicy.Withf("invalid cancellation tier %+v", t)
		}
	}
	return nil
}

// CancellationPercent maps the time left until the appointment to a fee percentage.
// Tiers are matched from the longest notice down; a negative notice means the slot already started.
func (p Policy) CancellationPercent(notice time.Duration) int {
	if notice < 0 {
		return p.PastCancellationPct
	}
	tiers := slices.Clone(p.CancellationTiers)
	slices.SortFunc(tiers, func(a, b FeeTier) int { return cmp.Compare(b.MinNotice, a.MinNotice) })
	for _, t := range tiers {
		if notice >= t.MinNotice {
			return t.Percent
		}
	}
	return p.PastCancellationPct
}

// CancellationFee is a pure function of the total and the time between cancellation and appointment.
func (p Policy) CancellationFee(total Money, scheduledAt, cancelledAt time.Time) Money {
	return total.Percent(p.CancellationPercent(scheduledAt.Sub(cancelledAt)))
}

func (p Policy) NoShowFee(total Money) Money {
	return total.Percent(p.NoShowFeePct)
}

// Overtime returns the whole minutes past the estimate and their charge.
func (p Policy) Overtime(estimatedMinutes int, start, end time.Time) (int, Money) {
	actual := int(end.Sub(start) / time.Minute)
	over := actual - estimatedMinutes
	if over <= 0 {
		return 0, NewMoney(0)
	}
	return over, p.OvertimeRate.Times(int64(over))
}
