package resource

import "carwash-scheduler/internal/pkg/errs"

var (
	ErrInvalidBayNumber     = errs.Validation("INVALID_BAY_NUMBER", "bayNumber", "bay number must be positive")
	ErrInvalidVehicleSize   = errs.Validation("INVALID_VEHICLE_SIZE", "maxVehicleSize", "unknown vehicle size")
	ErrInvalidStatus        = errs.Validation("INVALID_RESOURCE_STATUS", "status", "unknown resource status")
	ErrInvalidType          = errs.Validation("INVALID_RESOURCE_TYPE", "type", "unknown resource type")
	ErrEmptyTeamName        = errs.Validation("EMPTY_TEAM_NAME", "name", "team name cannot be empty")
	ErrTeamNameTooLong      = errs.Validation("TEAM_NAME_TOO_LONG", "name", "team name is too long")
	ErrInvalidServiceRadius = errs.Validation("INVALID_SERVICE_RADIUS", "serviceRadiusKm", "service radius must be positive")
	ErrInvalidCapacity      = errs.Validation("INVALID_DAILY_CAPACITY", "dailyCapacity", "daily capacity must be positive")
	ErrStatusUnchanged      = errs.Rule("RESOURCE_STATUS_UNCHANGED", "resource already has this status")
	ErrResourceNotFound     = errs.NotFound("RESOURCE_NOT_FOUND", "resource not found")
)

const (
	MaxTeamNameLength  = 100
	MaxServiceRadiusKm = 200
	MaxDailyCapacity   = 100
)
