package db

import (
	"context"

	"github.com/ukydev/transit-fleet/internal/models"
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, v models.Vehicle) (int64, error)
	FindVehicleByID(ctx context.Context, id int64) (models.Vehicle, error)
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	// UpdateVehicle writes the common and kind-specific fields in one
	// update. It fails with models.ErrConflict when the stored version no
	// longer matches v's version.
	UpdateVehicle(ctx context.Context, v models.Vehicle) error
	RefreshOilLife(ctx context.Context, id int64) error
	RefreshELRComponents(ctx context.Context, id int64) error
	SetVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) error
	UpdateLocation(ctx context.Context, id int64, loc models.Location) error
}

// RouteCollection defines the interface for route data operations.
type RouteCollection interface {
	InsertRoute(ctx context.Context, r models.Route) (int64, error)
	FindRouteByID(ctx context.Context, id int64) (*models.Route, error)
	FindRoutes(ctx context.Context) ([]models.Route, error)
}

// TripCollection defines the interface for trip data operations.
type TripCollection interface {
	InsertTrip(ctx context.Context, t models.Trip) (int64, error)
	FindTripsByVehicle(ctx context.Context, vehicleID int64) ([]models.Trip, error)
}

// AlertCollection defines the interface for alert data operations.
type AlertCollection interface {
	InsertAlert(ctx context.Context, a models.Alert) (int64, error)
	UpdateAlert(ctx context.Context, a models.Alert) error
	FindAlertByID(ctx context.Context, id int64) (*models.Alert, error)
	FindActiveAlerts(ctx context.Context) ([]models.Alert, error)
	FindAlertsByVehicle(ctx context.Context, vehicleID int64) ([]models.Alert, error)
	FindAlertsByKind(ctx context.Context, kind models.AlertKind) ([]models.Alert, error)
	FindAlerts(ctx context.Context) ([]models.Alert, error)
}

// MaintenanceCollection defines the interface for maintenance data operations.
type MaintenanceCollection interface {
	// StartMaintenance marks the vehicle IN MAINTENANCE and opens a record.
	StartMaintenance(ctx context.Context, rec models.MaintenanceRecord) (int64, error)
	// EndMaintenance reactivates the vehicle, zeroes its common wear and
	// closes its open record.
	EndMaintenance(ctx context.Context, vehicleID int64) error
	// Refuel stores v's fuel level and logs a closed REFUEL record.
	Refuel(ctx context.Context, v models.Vehicle, rec models.MaintenanceRecord) error
	FindOngoingMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error)
}

// StationVisitCollection defines the interface for station visit operations.
type StationVisitCollection interface {
	InsertStationVisit(ctx context.Context, v models.StationVisit) (int64, error)
	FindStationVisitsByVehicle(ctx context.Context, vehicleID int64) ([]models.StationVisit, error)
}

// BreakCollection defines the interface for operator break operations.
type BreakCollection interface {
	InsertBreak(ctx context.Context, b models.Break) (int64, error)
	FindBreaksByOperator(ctx context.Context, operatorID int64) ([]models.Break, error)
}

// OperatorCollection defines the interface for operator data operations.
type OperatorCollection interface {
	InsertOperator(ctx context.Context, o models.Operator) (int64, error)
	FindOperatorByID(ctx context.Context, id int64) (*models.Operator, error)
	FindOperatorByEmail(ctx context.Context, email string) (*models.Operator, error)
}

// FleetStore is everything the fleet engine needs from persistence.
type FleetStore interface {
	VehicleCollection
	RouteCollection
	TripCollection
	MaintenanceCollection
	StationVisitCollection
	BreakCollection
}
