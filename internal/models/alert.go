package models

import (
	"strings"
	"time"
)

// AlertKind is the category of a raised alert.
type AlertKind string

const (
	AlertMaintenance AlertKind = "MAINTENANCE"
	AlertRouteStart  AlertKind = "ROUTE_START"
	AlertRouteEnd    AlertKind = "ROUTE_END"
	AlertAccident    AlertKind = "ACCIDENT"
	AlertRefuel      AlertKind = "REFUEL"
)

// ParseAlertKind converts a stored kind back to an AlertKind.
func ParseAlertKind(s string) (AlertKind, bool) {
	switch k := AlertKind(strings.ToUpper(s)); k {
	case AlertMaintenance, AlertRouteStart, AlertRouteEnd, AlertAccident, AlertRefuel:
		return k, true
	default:
		return "", false
	}
}

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	AlertActive       AlertStatus = "ACTIVE"
	AlertAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertResolved     AlertStatus = "RESOLVED"
	AlertEscalated    AlertStatus = "ESCALATED"
)

// Alert is raised by the monitor against a vehicle.
type Alert struct {
	ID        int64       `json:"id" bson:"_id"`
	VehicleID int64       `json:"vehicle_id" bson:"vehicle_id"`
	Kind      AlertKind   `json:"kind" bson:"kind"`
	Reason    string      `json:"reason" bson:"reason"`
	Status    AlertStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
