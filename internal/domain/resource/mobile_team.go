package resource

import (
	"strings"
	"time"

	"carwash-scheduler/internal/domain/geo"

	"github.com/google/uuid"
)

type MobileTeam struct {
	id              uuid.UUID
	name            string
	baseLocation    geo.Point
	serviceRadiusKm float64
	dailyCapacity   int
	equipment       Equipment
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

type NewMobileTeamParams struct {
	Name            string
	BaseLocation    geo.Point
	ServiceRadiusKm float64
	DailyCapacity   int
	Equipment       []string
}

func NewMobileTeam(p NewMobileTeamParams, now time.Time) (*MobileTeam, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyTeamName
	}
	if len(name) > MaxTeamNameLength {
		return nil, ErrTeamNameTooLong
	}
	if err := p.BaseLocation.Validate(); err != nil {
		return nil, err
	}
	if p.ServiceRadiusKm <= 0 || p.ServiceRadiusKm > MaxServiceRadiusKm {
		return nil, ErrInvalidServiceRadius.Withf("service radius must be in (0, %d] km", MaxServiceRadiusKm)
	}
	if p.DailyCapacity <= 0 || p.DailyCapacity > MaxDailyCapacity {
		return nil, ErrInvalidCapacity.Withf("daily capacity must be in [1, %d]", MaxDailyCapacity)
	}

	return &MobileTeam{
		id:              uuid.New(),
		name:            name,
		baseLocation:    p.BaseLocation,
		serviceRadiusKm: p.ServiceRadiusKm,
		dailyCapacity:   p.DailyCapacity,
		equipment:       NewEquipment(p.Equipment...),
		status:          StatusActive,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructMobileTeam(
	id uuid.UUID,
	name string,
	baseLocation geo.Point,
	serviceRadiusKm float64,
	dailyCapacity int,
	equipment []string,
	status Status,
	createdAt, updatedAt time.Time,
) *MobileTeam {
	return &MobileTeam{
		id:              id,
		name:            name,
		baseLocation:    baseLocation,
		serviceRadiusKm: serviceRadiusKm,
		dailyCapacity:   dailyCapacity,
		equipment:       NewEquipment(equipment...),
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (t *MobileTeam) DistanceKm(p geo.Point) float64 {
	return geo.PlanarDistanceKm(t.baseLocation, p)
}

func (t *MobileTeam) Reaches(p geo.Point) bool {
	return geo.WithinRadius(t.baseLocation, p, t.serviceRadiusKm)
}

// Serves reports whether the team is active, reaches the customer and carries the required equipment.
func (t *MobileTeam) Serves(customer geo.Point, required Equipment) bool {
	return t.status == StatusActive &&
		t.Reaches(customer) &&
		t.equipment.HasAll(required)
}

func (t *MobileTeam) WithStatus(status Status, now time.Time) (*MobileTeam, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus.Withf("unknown resource status %q", status)
	}
	if status == t.status {
		return nil, ErrStatusUnchanged
	}
	next := *t
	next.status = status
	next.updatedAt = now
	return &next, nil
}

func (t *MobileTeam) Candidate(customer geo.Point) Candidate {
	d := t.DistanceKm(customer)
	return Candidate{
		ID:            t.id,
		Type:          TypeMobileTeam,
		Name:          t.name,
		DistanceKm:    &d,
		DailyCapacity: t.dailyCapacity,
	}
}

func (t *MobileTeam) ID() uuid.UUID            { return t.id }
func (t *MobileTeam) Name() string             { return t.name }
func (t *MobileTeam) BaseLocation() geo.Point  { return t.baseLocation }
func (t *MobileTeam) ServiceRadiusKm() float64 { return t.serviceRadiusKm }
func (t *MobileTeam) DailyCapacity() int       { return t.dailyCapacity }
func (t *MobileTeam) Equipment() Equipment     { return t.equipment }
func (t *MobileTeam) Status() Status           { return t.status }
func (t *MobileTeam) CreatedAt() time.Time     { return t.createdAt }
func (t *MobileTeam) UpdatedAt() time.Time     { return t.updatedAt }
