package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Money is an amount in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(n int64) Money {
	return Money{cents: m.cents * n}
}

// Percent returns pct percent of m, rounded half up to the cent.
func (m Money) Percent(pct int) Money {
	return Money{cents: (m.cents*int64(pct) + 50) / 100}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ServiceLine is the catalog data of one service copied at booking time.
type ServiceLine struct {
	ServiceID       uuid.UUID
	Name            string
	Price           Money
	DurationMinutes int
}

func (l ServiceLine) validate() error {
	switch {
	case l.ServiceID == uuid.Nil:
		return ErrInvalidServiceLine.Withf("service id is required")
	case strings.TrimSpace(l.Name) == "":
		return ErrInvalidServiceLine.Withf("service %s has no name", l.ServiceID)
	case l.Price.Cents() < 0:
		return ErrInvalidServiceLine.Withf("service %s has a negative price", l.ServiceID)
	case l.DurationMinutes <= 0:
		return ErrInvalidServiceLine.Withf("service %s has no duration", l.ServiceID)
	}
	return nil
}

type Cancellation struct {
	At     time.Time
	By     CancelledBy
	Reason string
	Fee    Money
}

type NoShow struct {
	At  time.Time
	Fee Money
}

type Execution struct {
	ActualStart     *time.Time
	ActualEnd       *time.Time
	OvertimeMinutes int
	OvertimeCharge  Money
	FinalPrice      *Money
}

type Rating struct {
	Score    int
	Feedback string
	RatedAt  time.Time
}

type Payment struct {
	IntentID  *string
	State     PaymentState
	LastError string
	UpdatedAt *time.Time
}

// PrepaidIntent returns the intent an up-front payment was taken with, if it still stands.
func (p Payment) PrepaidIntent() (string, bool) {
	if p.State != PaymentPrepaid || p.IntentID == nil {
		return "", false
	}
	return *p.IntentID, true
}
