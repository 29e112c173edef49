package fleet

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ukydev/transit-fleet/internal/alert"
	"github.com/ukydev/transit-fleet/internal/db"
	"github.com/ukydev/transit-fleet/internal/models"
)

// memStore is an in-memory db.FleetStore with the same version rules as the
// Mongo store.
type memStore struct {
	mu          sync.Mutex
	vehicles    map[int64]models.Vehicle
	routes      map[int64]models.Route
	trips       []models.Trip
	maintenance []models.MaintenanceRecord
	visits      []models.StationVisit
	breaks      []models.Break
	nextID      int64

	conflicts   int
	updateCalls int
	failUpdate  error
	failStatus  error
	failTrip    error
	// beforeUpdate runs once, outside the lock, ahead of the next
	// UpdateVehicle. Tests use it to slip in another writer.
	beforeUpdate func()
}

func newMemStore() *memStore {
	return &memStore{
		vehicles: make(map[int64]models.Vehicle),
		routes:   make(map[int64]models.Route),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) put(v models.Vehicle) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	v.Common().ID = id
	m.vehicles[id] = models.Clone(v)
	return id
}

func (m *memStore) get(id int64) models.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Clone(m.vehicles[id])
}

func (m *memStore) InsertVehicle(_ context.Context, v models.Vehicle) (int64, error) {
	return m.put(v), nil
}

func (m *memStore) FindVehicleByID(_ context.Context, id int64) (models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return models.Clone(v), nil
}

func (m *memStore) FindVehicles(_ context.Context) ([]models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Vehicle{}
	for id := int64(1); id <= m.nextID; id++ {
		if v, ok := m.vehicles[id]; ok {
			out = append(out, models.Clone(v))
		}
	}
	return out, nil
}

func (m *memStore) UpdateVehicle(_ context.Context, v models.Vehicle) error {
	m.mu.Lock()
	hook := m.beforeUpdate
	m.beforeUpdate = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.failUpdate != nil {
		return m.failUpdate
	}
	c := v.Common()
	stored, ok := m.vehicles[c.ID]
	if !ok || stored.Kind() != v.Kind() {
		return models.ErrNotFound
	}
	if m.conflicts > 0 {
		m.conflicts--
		stored.Common().Version++
	}
	if stored.Common().Version != c.Version {
		return models.ErrConflict
	}
	next := models.Clone(v)
	next.Common().Version = c.Version + 1
	m.vehicles[c.ID] = next
	c.Version++
	return nil
}

func (m *memStore) RefreshOilLife(_ context.Context, id int64) error {
	return m.mutate(id, func(v models.Vehicle) { v.(*models.DieselTrain).OilLife = models.FreshOilLife })
}

func (m *memStore) RefreshELRComponents(_ context.Context, id int64) error {
	return m.mutate(id, func(v models.Vehicle) {
		stored := v.(*models.ElectricLightRail)
		stored.Catenary, stored.Pantograph, stored.CircuitBreaker = 0, 0, 0
	})
}

func (m *memStore) mutate(id int64, fn func(models.Vehicle)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return models.ErrNotFound
	}
	fn(v)
	v.Common().Version++
	return nil
}

func (m *memStore) SetVehicleStatus(_ context.Context, id int64, status models.VehicleStatus) error {
	return m.setCommon(id, func(c *models.VehicleBase) { c.Status = status })
}

func (m *memStore) UpdateLocation(_ context.Context, id int64, loc models.Location) error {
	return m.setCommon(id, func(c *models.VehicleBase) { c.Location = loc })
}

func (m *memStore) setCommon(id int64, fn func(*models.VehicleBase)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStatus != nil {
		return m.failStatus
	}
	v, ok := m.vehicles[id]
	if !ok {
		return models.ErrNotFound
	}
	fn(v.Common())
	v.Common().Version++
	return nil
}

func (m *memStore) InsertRoute(_ context.Context, r models.Route) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	m.routes[r.ID] = r
	return r.ID, nil
}

func (m *memStore) FindRouteByID(_ context.Context, id int64) (*models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) FindRoutes(_ context.Context) ([]models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Route{}
	for _, r := range m.routes {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) InsertTrip(_ context.Context, t models.Trip) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTrip != nil {
		return 0, m.failTrip
	}
	t.ID = m.id()
	m.trips = append(m.trips, t)
	return t.ID, nil
}

func (m *memStore) FindTripsByVehicle(_ context.Context, vehicleID int64) ([]models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Trip{}
	for _, t := range m.trips {
		if t.VehicleID == vehicleID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) StartMaintenance(_ context.Context, rec models.MaintenanceRecord) (int64, error) {
	m.mu.Lock()
	rec.ID = m.id()
	m.maintenance = append(m.maintenance, rec)
	m.mu.Unlock()

	if err := m.setCommon(rec.VehicleID, func(c *models.VehicleBase) { c.Status = models.StatusInMaintenance }); err != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, r := range m.maintenance {
			if r.ID == rec.ID {
				m.maintenance = append(m.maintenance[:i], m.maintenance[i+1:]...)
				break
			}
		}
		return 0, err
	}
	return rec.ID, nil
}

func (m *memStore) EndMaintenance(_ context.Context, vehicleID int64) error {
	m.mu.Lock()
	open := -1
	for i, rec := range m.maintenance {
		if rec.VehicleID == vehicleID && rec.EndTime == nil {
			open = i
		}
	}
	if open < 0 {
		m.mu.Unlock()
		return models.ErrNotFound
	}
	now := time.Now()
	m.maintenance[open].EndTime = &now
	m.mu.Unlock()

	return m.setCommon(vehicleID, func(c *models.VehicleBase) {
		c.Status = models.StatusActive
		c.ResetWear()
	})
}

func (m *memStore) Refuel(_ context.Context, v models.Vehicle, rec models.MaintenanceRecord) error {
	level := v.Common().FuelLevel
	if err := m.setCommon(v.Common().ID, func(c *models.VehicleBase) { c.FuelLevel = level }); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.id()
	m.maintenance = append(m.maintenance, rec)
	return nil
}

func (m *memStore) FindOngoingMaintenance(_ context.Context) ([]models.MaintenanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.MaintenanceRecord{}
	for _, rec := range m.maintenance {
		if rec.EndTime == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) InsertStationVisit(_ context.Context, v models.StationVisit) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = m.id()
	m.visits = append(m.visits, v)
	return v.ID, nil
}

func (m *memStore) FindStationVisitsByVehicle(_ context.Context, vehicleID int64) ([]models.StationVisit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.StationVisit{}
	for _, v := range m.visits {
		if v.VehicleID == vehicleID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.After(out[j].DepartureTime) })
	return out, nil
}

func (m *memStore) InsertBreak(_ context.Context, b models.Break) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.id()
	m.breaks = append(m.breaks, b)
	return b.ID, nil
}

func (m *memStore) FindBreaksByOperator(_ context.Context, operatorID int64) ([]models.Break, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Break{}
	for _, b := range m.breaks {
		if b.OperatorID == operatorID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

var _ db.FleetStore = (*memStore)(nil)

// spyMonitor records what it was asked to check.
type spyMonitor struct {
	mu      sync.Mutex
	checked []models.Vehicle
	report  *alert.Report
}

func (s *spyMonitor) MonitorVehicle(_ context.Context, v models.Vehicle) *alert.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checked = append(s.checked, models.Clone(v))
	if s.report != nil {
		return s.report
	}
	return &alert.Report{VehicleID: v.Common().ID}
}

func (s *spyMonitor) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checked)
}
