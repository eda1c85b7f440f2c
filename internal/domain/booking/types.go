package booking

import "carwash-scheduler/internal/domain/resource"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// ActiveStatuses are the statuses in which a booking occupies its resource.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) OccupiesResource() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

type Type string

const (
	TypeFixedBay Type = "FIXED_BAY"
	TypeMobile   Type = "MOBILE"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return t == TypeFixedBay || t == TypeMobile
}

func (t Type) ResourceType() resource.Type {
	if t == TypeMobile {
		return resource.TypeMobileTeam
	}
	return resource.TypeWashBay
}

type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "CUSTOMER"
	CancelledByStaff    CancelledBy = "STAFF"
	CancelledBySystem   CancelledBy = "SYSTEM"
)

func (c CancelledBy) IsValid() bool {
	switch c {
	case CancelledByCustomer, CancelledByStaff, CancelledBySystem:
		return true
	default:
		return false
	}
}

// PaymentState tracks the money side of a booking independently of its lifecycle status.
type PaymentState string

const (
	PaymentNone PaymentState = "NONE"
	// PaymentPrepaid means the customer paid up front through Payment.IntentID.
	PaymentPrepaid    PaymentState = "PREPAID"
	PaymentSettled    PaymentState = "SETTLED"
	PaymentUnresolved PaymentState = "UNRESOLVED"
)
