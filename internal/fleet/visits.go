package fleet

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/models"
)

// ListStations returns every station served by a route, ordered by id.
func (s *Service) ListStations(ctx context.Context) ([]models.Station, error) {
	routes, err := s.store.FindRoutes(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool)
	stations := []models.Station{}
	for _, r := range routes {
		for _, st := range r.Stations {
			if !seen[st.ID] {
				seen[st.ID] = true
				stations = append(stations, st)
			}
		}
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations, nil
}

// LogStationVisit records a vehicle's stop at a known station.
func (s *Service) LogStationVisit(ctx context.Context, visit models.StationVisit) (models.StationVisit, error) {
	if visit.DepartureTime.Before(visit.ArrivalTime) {
		return models.StationVisit{}, fmt.Errorf("station visit: %w", models.ErrInvalidInterval)
	}
	if _, err := s.store.FindVehicleByID(ctx, visit.VehicleID); err != nil {
		return models.StationVisit{}, err
	}
	stations, err := s.ListStations(ctx)
	if err != nil {
		return models.StationVisit{}, err
	}
	known := false
	for _, st := range stations {
		if st.ID == visit.StationID {
			known = true
			break
		}
	}
	if !known {
		return models.StationVisit{}, fmt.Errorf("station %d: %w", visit.StationID, models.ErrNotFound)
	}

	visit.ID = 0
	id, err := s.store.InsertStationVisit(ctx, visit)
	if err != nil {
		return models.StationVisit{}, err
	}
	visit.ID = id

	log.WithFields(log.Fields{
		"vehicle_id": visit.VehicleID,
		"station_id": visit.StationID,
	}).Info("Station visit logged")
	return visit, nil
}

// StationVisitsByVehicle returns a vehicle's visits, latest departure first.
func (s *Service) StationVisitsByVehicle(ctx context.Context, vehicleID int64) ([]models.StationVisit, error) {
	return s.store.FindStationVisitsByVehicle(ctx, vehicleID)
}

// LogBreak records an operator's rest period.
func (s *Service) LogBreak(ctx context.Context, b models.Break) (models.Break, error) {
	if b.EndTime.Before(b.StartTime) {
		return models.Break{}, fmt.Errorf("break: %w", models.ErrInvalidInterval)
	}
	b.ID = 0
	id, err := s.store.InsertBreak(ctx, b)
	if err != nil {
		return models.Break{}, err
	}
	b.ID = id

	log.WithFields(log.Fields{
		"operator_id": b.OperatorID,
		"minutes":     int(b.EndTime.Sub(b.StartTime).Minutes()),
	}).Info("Break logged")
	return b, nil
}

// BreaksByOperator returns an operator's breaks, latest first.
func (s *Service) BreaksByOperator(ctx context.Context, operatorID int64) ([]models.Break, error) {
	return s.store.FindBreaksByOperator(ctx, operatorID)
}

// VehicleLocations returns the last known position of every vehicle,
// ordered by vehicle id.
func (s *Service) VehicleLocations(ctx context.Context) ([]models.VehicleLocation, error) {
	vehicles, err := s.store.FindVehicles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.VehicleLocation, 0, len(vehicles))
	for _, v := range vehicles {
		c := v.Common()
		out = append(out, models.VehicleLocation{VehicleID: c.ID, Name: c.Name, Location: c.Location})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out, nil
}
