package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/transit-fleet/internal/alert"
	"github.com/ukydev/transit-fleet/internal/fleet"
	"github.com/ukydev/transit-fleet/internal/models"
	"github.com/ukydev/transit-fleet/internal/vehicle"
)

// MockOperatorCollection is a mock implementation of db.OperatorCollection
type MockOperatorCollection struct {
	mock.Mock
}

func (m *MockOperatorCollection) InsertOperator(ctx context.Context, o models.Operator) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOperatorCollection) FindOperatorByID(ctx context.Context, id int64) (*models.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Operator), args.Error(1)
}

func (m *MockOperatorCollection) FindOperatorByEmail(ctx context.Context, email string) (*models.Operator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Operator), args.Error(1)
}

// MockFleetService is a mock implementation of FleetService
type MockFleetService struct {
	mock.Mock
}

func (m *MockFleetService) vehicleResult(args mock.Arguments) (models.Vehicle, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Vehicle), args.Error(1)
}

func (m *MockFleetService) AddVehicle(ctx context.Context, kind models.VehicleKind, attrs vehicle.Attributes) (models.Vehicle, error) {
	return m.vehicleResult(m.Called(ctx, kind, attrs))
}

func (m *MockFleetService) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	return m.vehicleResult(m.Called(ctx, id))
}

func (m *MockFleetService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockFleetService) AddRoute(ctx context.Context, r models.Route) (models.Route, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockFleetService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Route), args.Error(1)
}

func (m *MockFleetService) TripsByVehicle(ctx context.Context, vehicleID int64) ([]models.Trip, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockFleetService) CompleteTrip(ctx context.Context, req fleet.TripRequest) (*fleet.TripResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.TripResult), args.Error(1)
}

func (m *MockFleetService) Refuel(ctx context.Context, id int64, cost float64) (models.Vehicle, error) {
	return m.vehicleResult(m.Called(ctx, id, cost))
}

func (m *MockFleetService) SetStatus(ctx context.Context, id int64, status models.VehicleStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockFleetService) UpdateLocation(ctx context.Context, id int64, loc models.Location) error {
	return m.Called(ctx, id, loc).Error(0)
}

func (m *MockFleetService) StartMaintenance(ctx context.Context, id int64, purpose models.MaintenancePurpose, cost float64) (int64, error) {
	args := m.Called(ctx, id, purpose, cost)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFleetService) EndMaintenance(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFleetService) OngoingMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceRecord), args.Error(1)
}

func (m *MockFleetService) MonitorVehicle(ctx context.Context, id int64) (*alert.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alert.Report), args.Error(1)
}

func (m *MockFleetService) ListStations(ctx context.Context) ([]models.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Station), args.Error(1)
}

func (m *MockFleetService) LogStationVisit(ctx context.Context, visit models.StationVisit) (models.StationVisit, error) {
	args := m.Called(ctx, visit)
	return args.Get(0).(models.StationVisit), args.Error(1)
}

func (m *MockFleetService) StationVisitsByVehicle(ctx context.Context, vehicleID int64) ([]models.StationVisit, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StationVisit), args.Error(1)
}

func (m *MockFleetService) LogBreak(ctx context.Context, b models.Break) (models.Break, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(models.Break), args.Error(1)
}

func (m *MockFleetService) BreaksByOperator(ctx context.Context, operatorID int64) ([]models.Break, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Break), args.Error(1)
}

func (m *MockFleetService) VehicleLocations(ctx context.Context) ([]models.VehicleLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleLocation), args.Error(1)
}

// MockAlertService is a mock implementation of AlertService
type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) list(args mock.Arguments) ([]models.Alert, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alert), args.Error(1)
}

func (m *MockAlertService) ProcessAlert(ctx context.Context, id int64, action string) (*models.Alert, error) {
	args := m.Called(ctx, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *MockAlertService) ActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	return m.list(m.Called(ctx))
}

func (m *MockAlertService) AlertsByVehicle(ctx context.Context, vehicleID int64) ([]models.Alert, error) {
	return m.list(m.Called(ctx, vehicleID))
}

func (m *MockAlertService) AlertsByKind(ctx context.Context, kind models.AlertKind) ([]models.Alert, error) {
	return m.list(m.Called(ctx, kind))
}

func (m *MockAlertService) AllAlerts(ctx context.Context) ([]models.Alert, error) {
	return m.list(m.Called(ctx))
}

var (
	_ FleetService = (*MockFleetService)(nil)
	_ AlertService = (*MockAlertService)(nil)
)
