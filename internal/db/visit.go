package db

import (
	"context"

	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertStationVisit assigns the next visit id and stores v.
func (s *Store) InsertStationVisit(ctx context.Context, v models.StationVisit) (int64, error) {
	if s.visits == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "station_visits")
	if err != nil {
		return 0, err
	}
	v.ID = id
	if _, err := s.visits.InsertOne(ctx, v); err != nil {
		return 0, persistErr("insert station visit", err)
	}
	return id, nil
}

// FindStationVisitsByVehicle returns a vehicle's visits, latest departure first.
func (s *Store) FindStationVisitsByVehicle(ctx context.Context, vehicleID int64) ([]models.StationVisit, error) {
	if s.visits == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "departure_time", Value: -1}})
	visits, err := findAll[models.StationVisit](ctx, s.visits, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, persistErr("find station visits", err)
	}
	return visits, nil
}

// InsertBreak assigns the next break id and stores b.
func (s *Store) InsertBreak(ctx context.Context, b models.Break) (int64, error) {
	if s.breaks == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "breaks")
	if err != nil {
		return 0, err
	}
	b.ID = id
	if _, err := s.breaks.InsertOne(ctx, b); err != nil {
		return 0, persistErr("insert break", err)
	}
	return id, nil
}

// FindBreaksByOperator returns an operator's breaks, latest start first.
func (s *Store) FindBreaksByOperator(ctx context.Context, operatorID int64) ([]models.Break, error) {
	if s.breaks == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	breaks, err := findAll[models.Break](ctx, s.breaks, bson.M{"operator_id": operatorID}, opts)
	if err != nil {
		return nil, persistErr("find breaks", err)
	}
	return breaks, nil
}
