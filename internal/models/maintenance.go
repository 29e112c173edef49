package models

import "time"

// MaintenancePurpose describes why a vehicle was taken out of service.
type MaintenancePurpose string

const (
	PurposeRefuel      MaintenancePurpose = "REFUEL"
	PurposeRepairs     MaintenancePurpose = "REPAIRS"
	PurposeCleaning    MaintenancePurpose = "CLEANING"
	PurposeInspections MaintenancePurpose = "INSPECTIONS"
)

// IsValidPurpose checks if a maintenance purpose is known
func IsValidPurpose(p MaintenancePurpose) bool {
	switch p {
	case PurposeRefuel, PurposeRepairs, PurposeCleaning, PurposeInspections:
		return true
	default:
		return false
	}
}

// MaintenanceRecord represents a vehicle maintenance record.
// EndTime stays nil while the maintenance is ongoing.
type MaintenanceRecord struct {
	ID        int64              `json:"id" bson:"_id"`
	VehicleID int64              `json:"vehicle_id" bson:"vehicle_id"`
	Purpose   MaintenancePurpose `json:"purpose" bson:"purpose"`
	Cost      float64            `json:"cost" bson:"cost"`
	StartTime time.Time          `json:"start_time" bson:"start_time"`
	EndTime   *time.Time         `json:"end_time,omitempty" bson:"end_time"`
}
