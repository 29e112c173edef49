package db

import (
	"context"
	"errors"

	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertRoute assigns the next route id and stores r.
func (s *Store) InsertRoute(ctx context.Context, r models.Route) (int64, error) {
	if s.routes == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "routes")
	if err != nil {
		return 0, err
	}
	r.ID = id
	if _, err := s.routes.InsertOne(ctx, r); err != nil {
		return 0, persistErr("insert route", err)
	}
	return id, nil
}

// FindRouteByID finds a route by its ID.
func (s *Store) FindRouteByID(ctx context.Context, id int64) (*models.Route, error) {
	if s.routes == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var route models.Route
	if err := s.routes.FindOne(ctx, bson.M{"_id": id}).Decode(&route); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("route", id)
		}
		return nil, persistErr("find route", err)
	}
	return &route, nil
}

// FindRoutes returns every route ordered by id.
func (s *Store) FindRoutes(ctx context.Context) ([]models.Route, error) {
	if s.routes == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	routes, err := findAll[models.Route](ctx, s.routes, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, persistErr("find routes", err)
	}
	return routes, nil
}
