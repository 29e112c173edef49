// Package fleet coordinates vehicles, trips, refuelling and maintenance on
// top of the store and the alert monitor.
package fleet

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/alert"
	"github.com/ukydev/transit-fleet/internal/db"
	"github.com/ukydev/transit-fleet/internal/fuel"
	"github.com/ukydev/transit-fleet/internal/models"
	"github.com/ukydev/transit-fleet/internal/vehicle"
)

// DefaultMaxAttempts bounds how often a trip is retried after a version
// conflict on the vehicle.
const DefaultMaxAttempts = 3

// RefuelDuration is how long a refuel stop is booked for.
const RefuelDuration = 10 * time.Minute

// Monitor evaluates a vehicle after it changed.
type Monitor interface {
	MonitorVehicle(ctx context.Context, v models.Vehicle) *alert.Report
}

// Service is the fleet engine.
type Service struct {
	store       db.FleetStore
	monitor     Monitor
	locks       *keyedMutex
	maxAttempts int
	now         func() time.Time
}

// NewService creates a fleet service over store. Trip completions are
// reported to monitor.
func NewService(store db.FleetStore, monitor Monitor) *Service {
	return &Service{
		store:       store,
		monitor:     monitor,
		locks:       newKeyedMutex(),
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
}

// AddVehicle builds a vehicle of kind from attrs and stores it. A vehicle
// registered without a status starts ACTIVE.
func (s *Service) AddVehicle(ctx context.Context, kind models.VehicleKind, attrs vehicle.Attributes) (models.Vehicle, error) {
	attrs.ID = 0
	if attrs.Status == "" {
		attrs.Status = models.StatusActive
	}
	v, err := vehicle.Build(kind, attrs)
	if err != nil {
		return nil, err
	}
	id, err := s.store.InsertVehicle(ctx, v)
	if err != nil {
		return nil, err
	}
	v.Common().ID = id

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"kind":       kind,
		"name":       attrs.Name,
	}).Info("Vehicle registered")
	return v, nil
}

// GetVehicle loads one vehicle.
func (s *Service) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	return s.store.FindVehicleByID(ctx, id)
}

// ListVehicles returns the whole fleet.
func (s *Service) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.store.FindVehicles(ctx)
}

// AddRoute stores a route and returns it with its id.
func (s *Service) AddRoute(ctx context.Context, r models.Route) (models.Route, error) {
	if r.Distance <= 0 {
		return models.Route{}, fmt.Errorf("%w: got %v km", models.ErrInvalidRoute, r.Distance)
	}
	id, err := s.store.InsertRoute(ctx, r)
	if err != nil {
		return models.Route{}, err
	}
	r.ID = id
	return r, nil
}

// ListRoutes returns every route.
func (s *Service) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.store.FindRoutes(ctx)
}

// TripsByVehicle returns a vehicle's completed trips, newest first.
func (s *Service) TripsByVehicle(ctx context.Context, vehicleID int64) ([]models.Trip, error) {
	return s.store.FindTripsByVehicle(ctx, vehicleID)
}

// SetStatus changes a vehicle's operational status.
func (s *Service) SetStatus(ctx context.Context, id int64, status models.VehicleStatus) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.store.SetVehicleStatus(ctx, id, status)
}

// UpdateLocation records where a vehicle was last seen.
func (s *Service) UpdateLocation(ctx context.Context, id int64, loc models.Location) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.store.UpdateLocation(ctx, id, loc)
}

// MonitorVehicle loads a vehicle and runs the alert checks against it.
func (s *Service) MonitorVehicle(ctx context.Context, id int64) (*alert.Report, error) {
	v, err := s.store.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.monitor.MonitorVehicle(ctx, v), nil
}

// Refuel tops the vehicle up to its kind's full level and books a closed
// REFUEL maintenance record for cost.
func (s *Service) Refuel(ctx context.Context, id int64, cost float64) (models.Vehicle, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	v, err := s.store.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cmd, err := fuel.CommandFor(v.Kind())
	if err != nil {
		return nil, err
	}
	fuel.NewStation(v).TopUp(cmd)

	start := s.now()
	end := start.Add(RefuelDuration)
	rec := models.MaintenanceRecord{
		VehicleID: id,
		Purpose:   models.PurposeRefuel,
		Cost:      cost,
		StartTime: start,
		EndTime:   &end,
	}
	if err := s.store.Refuel(ctx, v, rec); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"fuel_level": v.Common().FuelLevel,
		"cost":       cost,
	}).Info("Vehicle refuelled")
	return v, nil
}
