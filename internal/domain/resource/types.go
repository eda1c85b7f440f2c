package resource

import (
	"slices"
	"strings"
)

type Type string

const (
	TypeWashBay    Type = "WASH_BAY"
	TypeMobileTeam Type = "MOBILE_TEAM"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeWashBay, TypeMobileTeam:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusMaintenance Status = "MAINTENANCE"
	StatusInactive    Status = "INACTIVE"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	default:
		return false
	}
}

type VehicleSize string

const (
	VehicleSizeSmall  VehicleSize = "SMALL"
	VehicleSizeMedium VehicleSize = "MEDIUM"
	VehicleSizeLarge  VehicleSize = "LARGE"
	VehicleSizeXL     VehicleSize = "EXTRA_LARGE"
)

var sizeRank = map[VehicleSize]int{
	VehicleSizeSmall:  1,
	VehicleSizeMedium: 2,
	VehicleSizeLarge:  3,
	VehicleSizeXL:     4,
}

func (s VehicleSize) String() string {
	return string(s)
}

func (s VehicleSize) IsValid() bool {
	_, ok := sizeRank[s]
	return ok
}

// FitsWithin reports whether a vehicle of size s can be served by a resource rated for max.
func (s VehicleSize) FitsWithin(max VehicleSize) bool {
	have, ok := sizeRank[s]
	if !ok {
		return false
	}
	limit, ok := sizeRank[max]
	return ok && have <= limit
}

// Equipment is a normalised, sorted set of equipment type names.
type Equipment []string

func NewEquipment(items ...string) Equipment {
	out := make(Equipment, 0, len(items))
	for _, it := range items {
		it = strings.ToUpper(strings.TrimSpace(it))
		if it == "" || slices.Contains(out, it) {
			continue
		}
		out = append(out, it)
	}
	slices.Sort(out)
	return out
}

func (e Equipment) Contains(item string) bool {
	_, found := slices.BinarySearch(e, strings.ToUpper(strings.TrimSpace(item)))
	return found
}

func (e Equipment) HasAll(required Equipment) bool {
	for _, r := range required {
		if !e.Contains(r) {
			return false
		}
	}
	return true
}
