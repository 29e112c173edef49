package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/transit-fleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultTimeout bounds every store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

var errNilCollection = errors.New("mongo collection is nil")

// ConnectMongo connects to MongoDB and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store implements every collection interface on one MongoDB database.
type Store struct {
	vehicles    *mongo.Collection
	routes      *mongo.Collection
	trips       *mongo.Collection
	alerts      *mongo.Collection
	maintenance *mongo.Collection
	operators   *mongo.Collection
	visits      *mongo.Collection
	breaks      *mongo.Collection
	counters    *mongo.Collection
	timeout     time.Duration
}

// NewStore binds a store to database. A zero timeout means DefaultTimeout.
func NewStore(database *mongo.Database, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{
		vehicles:    database.Collection("vehicles"),
		routes:      database.Collection("routes"),
		trips:       database.Collection("trips"),
		alerts:      database.Collection("alerts"),
		maintenance: database.Collection("maintenance"),
		operators:   database.Collection("operators"),
		visits:      database.Collection("station_visits"),
		breaks:      database.Collection("breaks"),
		counters:    database.Collection("counters"),
		timeout:     timeout,
	}
}

// EnsureIndexes creates the indexes the query paths rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	specs := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.alerts, mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "created_at", Value: -1}}}},
		{s.alerts, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}}}},
		{s.trips, mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}}}},
		{s.maintenance, mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "end_time", Value: 1}}}},
		{s.visits, mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "departure_time", Value: -1}}}},
		{s.breaks, mongo.IndexModel{Keys: bson.D{{Key: "operator_id", Value: 1}}}},
		{s.operators, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
	}
	for _, spec := range specs {
		if spec.coll == nil {
			return errNilCollection
		}
		if _, err := spec.coll.Indexes().CreateOne(ctx, spec.model); err != nil {
			return persistErr("create index", err)
		}
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// nextID hands out monotonically increasing ids per sequence name.
func (s *Store) nextID(ctx context.Context, sequence string) (int64, error) {
	if s.counters == nil {
		return 0, errNilCollection
	}
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx, bson.M{"_id": sequence}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&doc)
	if err != nil {
		return 0, persistErr("next "+sequence+" id", err)
	}
	return doc.Seq, nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrPersistence, err)
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, models.ErrNotFound)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	_ VehicleCollection      = (*Store)(nil)
	_ RouteCollection        = (*Store)(nil)
	_ TripCollection         = (*Store)(nil)
	_ AlertCollection        = (*Store)(nil)
	_ MaintenanceCollection  = (*Store)(nil)
	_ OperatorCollection     = (*Store)(nil)
	_ StationVisitCollection = (*Store)(nil)
	_ BreakCollection        = (*Store)(nil)
	_ FleetStore             = (*Store)(nil)
)
