package geo

import (
	"math"

	"carwash-scheduler/internal/pkg/errs"
)

const (
	CodeInvalidLocation errs.Code = "INVALID_GPS_LOCATION"

	// km per degree used by the planar approximation
	kmPerDegreeLat = 110.574
	kmPerDegreeLng = 111.320
)

var ErrInvalidLocation = errs.Validation(CodeInvalidLocation, "location", "invalid GPS coordinates")

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewPoint(lat, lng float64) (Point, error) {
	p := Point{Lat: lat, Lng: lng}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return ErrInvalidLocation.Withf("coordinates must be numbers")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return ErrInvalidLocation.Withf("latitude %.6f out of range [-90, 90]", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return ErrInvalidLocation.Withf("longitude %.6f out of range [-180, 180]", p.Lng)
	}
	return nil
}

// PlanarDistanceKm is an equirectangular approximation, not a great-circle distance. It is accurate
// enough for service radii of a few tens of kilometres and is what radius checks are based on.
func PlanarDistanceKm(a, b Point) float64 {
	meanLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	dx := (b.Lng - a.Lng) * kmPerDegreeLng * math.Cos(meanLat)
	dy := (b.Lat - a.Lat) * kmPerDegreeLat
	return math.Sqrt(dx*dx + dy*dy)
}

func WithinRadius(center, p Point, radiusKm float64) bool {
	return PlanarDistanceKm(center, p) <= radiusKm
}
