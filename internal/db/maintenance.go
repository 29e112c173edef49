package db

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StartMaintenance opens a record and then takes the vehicle out of service.
// The record is removed again when the status change fails, so a vehicle is
// never IN MAINTENANCE without an open record.
func (s *Store) StartMaintenance(ctx context.Context, rec models.MaintenanceRecord) (int64, error) {
	if s.maintenance == nil || s.vehicles == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "maintenance")
	if err != nil {
		return 0, err
	}
	rec.ID = id
	rec.EndTime = nil
	if _, err := s.maintenance.InsertOne(ctx, rec); err != nil {
		return 0, persistErr("insert maintenance", err)
	}

	if err := s.SetVehicleStatus(ctx, rec.VehicleID, models.StatusInMaintenance); err != nil {
		undoCtx, undoCancel := s.withTimeout(context.WithoutCancel(ctx))
		defer undoCancel()
		if _, derr := s.maintenance.DeleteOne(undoCtx, bson.M{"_id": id}); derr != nil {
			log.WithFields(log.Fields{
				"maintenance_id": id,
				"vehicle_id":     rec.VehicleID,
				"error":          derr,
			}).Error("Failed to remove maintenance record after status change failed")
		}
		return 0, err
	}
	return id, nil
}

// EndMaintenance closes the open record, reactivates the vehicle and zeroes
// its common wear counters.
func (s *Store) EndMaintenance(ctx context.Context, vehicleID int64) error {
	if s.maintenance == nil || s.vehicles == nil {
		return errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	open := bson.M{"vehicle_id": vehicleID, "end_time": nil}
	if err := s.maintenance.FindOne(ctx, open).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound("open maintenance for vehicle", vehicleID)
		}
		return persistErr("find open maintenance", err)
	}

	now := time.Now()
	reset := bson.M{
		"$set": bson.M{
			"status":        models.StatusActive,
			"axle_bearings": 0.0,
			"brakes":        0.0,
			"wheels":        0.0,
			"updated_at":    now,
		},
		"$inc": bson.M{"version": 1},
	}
	result, err := s.vehicles.UpdateOne(ctx, bson.M{"_id": vehicleID}, reset)
	if err != nil {
		return persistErr("reset vehicle wear", err)
	}
	if result.MatchedCount == 0 {
		return notFound("vehicle", vehicleID)
	}

	if _, err := s.maintenance.UpdateMany(ctx, open, bson.M{"$set": bson.M{"end_time": now}}); err != nil {
		return persistErr("close maintenance", err)
	}
	return nil
}

// Refuel stores v's fuel level and logs the refuel as a closed record.
func (s *Store) Refuel(ctx context.Context, v models.Vehicle, rec models.MaintenanceRecord) error {
	if s.maintenance == nil || s.vehicles == nil {
		return errNilCollection
	}
	c := v.Common()
	if err := s.setCommonFields(ctx, c.ID, bson.M{"fuel_level": c.FuelLevel}, "refuel"); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "maintenance")
	if err != nil {
		return err
	}
	rec.ID = id
	if _, err := s.maintenance.InsertOne(ctx, rec); err != nil {
		return persistErr("insert refuel record", err)
	}
	return nil
}

// FindOngoingMaintenance returns records that have not been closed yet.
func (s *Store) FindOngoingMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	if s.maintenance == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	records, err := findAll[models.MaintenanceRecord](ctx, s.maintenance, bson.M{"end_time": nil}, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, persistErr("find ongoing maintenance", err)
	}
	return records, nil
}
