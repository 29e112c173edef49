package models

import "time"

// OnTimeTolerance is how late a trip may finish and still count as on time.
const OnTimeTolerance = 30 * time.Minute

// Station is a stop along a route.
type Station struct {
	ID   int64  `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Route is a fixed path a vehicle runs.
type Route struct {
	ID               int64     `json:"id" bson:"_id"`
	Distance         float64   `json:"distance" bson:"distance"`                   // in kilometers
	ExpectedDuration int       `json:"expected_duration" bson:"expected_duration"` // in minutes
	Stations         []Station `json:"stations" bson:"stations"`
}

// Trip represents one completed run of a vehicle over a route.
type Trip struct {
	ID         int64     `json:"id" bson:"_id"`
	OperatorID int64     `json:"operator_id" bson:"operator_id"`
	VehicleID  int64     `json:"vehicle_id" bson:"vehicle_id"`
	RouteID    int64     `json:"route_id" bson:"route_id"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
	FuelUsed   float64   `json:"fuel_used" bson:"fuel_used"`
	Efficiency float64   `json:"efficiency" bson:"efficiency"`
	OnTime     bool      `json:"on_time" bson:"on_time"`
}

// IsOnTime reports whether a run of actualMinutes fits the route's schedule.
func (r Route) IsOnTime(actualMinutes int) bool {
	return time.Duration(actualMinutes-r.ExpectedDuration)*time.Minute <= OnTimeTolerance
}
