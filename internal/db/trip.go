package db

import (
	"context"

	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertTrip inserts a trip record into the collection.
func (s *Store) InsertTrip(ctx context.Context, t models.Trip) (int64, error) {
	if s.trips == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "trips")
	if err != nil {
		return 0, err
	}
	t.ID = id
	if _, err := s.trips.InsertOne(ctx, t); err != nil {
		return 0, persistErr("insert trip", err)
	}
	return id, nil
}

// FindTripsByVehicle returns a vehicle's trips, newest first.
func (s *Store) FindTripsByVehicle(ctx context.Context, vehicleID int64) ([]models.Trip, error) {
	if s.trips == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	trips, err := findAll[models.Trip](ctx, s.trips, bson.M{"vehicle_id": vehicleID}, options.Find().SetSort(bson.D{{Key: "end_time", Value: -1}}))
	if err != nil {
		return nil, persistErr("find trips", err)
	}
	return trips, nil
}
