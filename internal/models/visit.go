package models

import "time"

// StationVisit records a vehicle stopping at a station.
type StationVisit struct {
	ID            int64     `json:"id" bson:"_id"`
	VehicleID     int64     `json:"vehicle_id" bson:"vehicle_id"`
	StationID     int64     `json:"station_id" bson:"station_id"`
	ArrivalTime   time.Time `json:"arrival_time" bson:"arrival_time"`
	DepartureTime time.Time `json:"departure_time" bson:"departure_time"`
}

// Break is a rest period taken by an operator.
type Break struct {
	ID         int64     `json:"id" bson:"_id"`
	OperatorID int64     `json:"operator_id" bson:"operator_id"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
}

// VehicleLocation is the last known position of one vehicle.
type VehicleLocation struct {
	VehicleID int64    `json:"vehicle_id"`
	Name      string   `json:"name"`
	Location  Location `json:"location"`
}
