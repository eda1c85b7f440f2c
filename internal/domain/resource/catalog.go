package resource

import (
	"cmp"
	"slices"

	"carwash-scheduler/internal/domain/geo"

	"github.com/google/uuid"
)

// Candidate is a resource that passed capability filtering for one request.
type Candidate struct {
	ID            uuid.UUID
	Type          Type
	Name          string
	BayNumber     int
	DistanceKm    *float64
	DailyCapacity int
}

type Requirement struct {
	Type        Type
	VehicleSize VehicleSize
	Equipment   Equipment
	Location    *geo.Point
}

// Catalog is a read-only view of the resources known at the time of a request.
type Catalog struct {
	Bays  []*WashBay
	Teams []*MobileTeam
}

// Match filters the catalog to the resources able to serve req, ordered by preference:
// wash bays by bay number, mobile teams by distance to the customer. Ties fall back to the id.
func (c Catalog) Match(req Requirement) []Candidate {
	var out []Candidate
	switch req.Type {
	case TypeWashBay:
		for _, b := range c.Bays {
			if b.Accepts(req.VehicleSize, req.Equipment) {
				out = append(out, b.Candidate())
			}
		}
	case TypeMobileTeam:
		if req.Location == nil {
			return nil
		}
		for _, t := range c.Teams {
			if t.Serves(*req.Location, req.Equipment) {
				out = append(out, t.Candidate(*req.Location))
			}
		}
	}
	SortCandidates(out)
	return out
}

func SortCandidates(cs []Candidate) {
	slices.SortStableFunc(cs, CompareCandidates)
}

func CompareCandidates(a, b Candidate) int {
	if a.DistanceKm != nil && b.DistanceKm != nil {
		if c := cmp.Compare(*a.DistanceKm, *b.DistanceKm); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.BayNumber, b.BayNumber); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

func (c Catalog) FindBay(id uuid.UUID) (*WashBay, bool) {
	for _, b := range c.Bays {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

func (c Catalog) FindTeam(id uuid.UUID) (*MobileTeam, bool) {
	for _, t := range c.Teams {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}
