package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidVehicleKind = errors.New("invalid vehicle type")
	ErrInvalidTimeRange   = errors.New("trip end must be after trip start")
	ErrInvalidAction      = errors.New("invalid alert action")
	ErrInvalidRoute       = errors.New("route distance must be positive")
	ErrInsufficientFuel   = errors.New("fuel used exceeds fuel level")
	ErrAlertResolved      = errors.New("alert already resolved")
	ErrConflict           = errors.New("vehicle was modified concurrently")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidStatus      = errors.New("invalid vehicle status")
	ErrInvalidPurpose     = errors.New("invalid maintenance purpose")
	ErrInvalidFuel        = errors.New("fuel used must not be negative")
	ErrInvalidInterval    = errors.New("interval end must not be before its start")
)
