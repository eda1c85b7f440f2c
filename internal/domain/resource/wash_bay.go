package resource

import (
	"time"

	"carwash-scheduler/internal/domain/geo"

	"github.com/google/uuid"
)

type WashBay struct {
	id             uuid.UUID
	bayNumber      int
	maxVehicleSize VehicleSize
	equipment      Equipment
	status         Status
	location       *geo.Point
	createdAt      time.Time
	updatedAt      time.Time
}

type NewWashBayParams struct {
	BayNumber      int
	MaxVehicleSize VehicleSize
	Equipment      []string
	Location       *geo.Point
}

func NewWashBay(p NewWashBayParams, now time.Time) (*WashBay, error) {
	if p.BayNumber <= 0 {
		return nil, ErrInvalidBayNumber
	}
	if !p.MaxVehicleSize.IsValid() {
		return nil, ErrInvalidVehicleSize.Withf("unknown vehicle size %q", p.MaxVehicleSize)
	}
	if p.Location != nil {
		if err := p.Location.Validate(); err != nil {
			return nil, err
		}
	}

	return &WashBay{
		id:             uuid.New(),
		bayNumber:      p.BayNumber,
		maxVehicleSize: p.MaxVehicleSize,
		equipment:      NewEquipment(p.Equipment...),
		status:         StatusActive,
		location:       p.Location,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructWashBay(
	id uuid.UUID,
	bayNumber int,
	maxVehicleSize VehicleSize,
	equipment []string,
	status Status,
	location *geo.Point,
	createdAt, updatedAt time.Time,
) *WashBay {
	return &WashBay{
		id:             id,
		bayNumber:      bayNumber,
		maxVehicleSize: maxVehicleSize,
		equipment:      NewEquipment(equipment...),
		status:         status,
		location:       location,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Accepts reports whether the bay can take a vehicle of the given size needing the given equipment.
func (b *WashBay) Accepts(size VehicleSize, required Equipment) bool {
	return b.status == StatusActive &&
		size.FitsWithin(b.maxVehicleSize) &&
		b.equipment.HasAll(required)
}

func (b *WashBay) WithStatus(status Status, now time.Time) (*WashBay, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus.Withf("unknown resource status %q", status)
	}
	if status == b.status {
		return nil, ErrStatusUnchanged
	}
	next := *b
	next.status = status
	next.updatedAt = now
	return &next, nil
}

func (b *WashBay) Candidate() Candidate {
	return Candidate{
		ID:        b.id,
		Type:      TypeWashBay,
		BayNumber: b.bayNumber,
	}
}

func (b *WashBay) ID() uuid.UUID               { return b.id }
func (b *WashBay) BayNumber() int              { return b.bayNumber }
func (b *WashBay) MaxVehicleSize() VehicleSize { return b.maxVehicleSize }
func (b *WashBay) Equipment() Equipment        { return b.equipment }
func (b *WashBay) Status() Status              { return b.status }
func (b *WashBay) Location() *geo.Point        { return b.location }
func (b *WashBay) CreatedAt() time.Time        { return b.createdAt }
func (b *WashBay) UpdatedAt() time.Time        { return b.updatedAt }
