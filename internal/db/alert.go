package db

import (
	"context"
	"errors"

	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertAlert assigns the next alert id and stores a.
func (s *Store) InsertAlert(ctx context.Context, a models.Alert) (int64, error) {
	if s.alerts == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "alerts")
	if err != nil {
		return 0, err
	}
	a.ID = id
	if _, err := s.alerts.InsertOne(ctx, a); err != nil {
		return 0, persistErr("insert alert", err)
	}
	return id, nil
}

// UpdateAlert stores an alert's status.
func (s *Store) UpdateAlert(ctx context.Context, a models.Alert) error {
	if s.alerts == nil {
		return errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.alerts.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{"status": a.Status}})
	if err != nil {
		return persistErr("update alert", err)
	}
	if result.MatchedCount == 0 {
		return notFound("alert", a.ID)
	}
	return nil
}

// FindAlertByID finds an alert by its ID.
func (s *Store) FindAlertByID(ctx context.Context, id int64) (*models.Alert, error) {
	if s.alerts == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var alert models.Alert
	if err := s.alerts.FindOne(ctx, bson.M{"_id": id}).Decode(&alert); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("alert", id)
		}
		return nil, persistErr("find alert", err)
	}
	return &alert, nil
}

// FindActiveAlerts returns alerts still in ACTIVE status, newest first.
func (s *Store) FindActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	return s.findAlerts(ctx, bson.M{"status": models.AlertActive})
}

// FindAlertsByVehicle returns a vehicle's alerts, newest first.
func (s *Store) FindAlertsByVehicle(ctx context.Context, vehicleID int64) ([]models.Alert, error) {
	return s.findAlerts(ctx, bson.M{"vehicle_id": vehicleID})
}

// FindAlertsByKind returns alerts of one kind, newest first.
func (s *Store) FindAlertsByKind(ctx context.Context, kind models.AlertKind) ([]models.Alert, error) {
	return s.findAlerts(ctx, bson.M{"kind": kind})
}

// FindAlerts returns every alert, newest first.
func (s *Store) FindAlerts(ctx context.Context) ([]models.Alert, error) {
	return s.findAlerts(ctx, bson.M{})
}

func (s *Store) findAlerts(ctx context.Context, filter bson.M) ([]models.Alert, error) {
	if s.alerts == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	alerts, err := findAll[models.Alert](ctx, s.alerts, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, persistErr("find alerts", err)
	}
	return alerts, nil
}
