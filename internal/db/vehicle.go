package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/transit-fleet/internal/models"
	"github.com/ukydev/transit-fleet/internal/vehicle"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// vehicleDocument is the stored shape of every vehicle kind. Kind-specific
// fields are pointers so a bus document never carries oil life and so on.
type vehicleDocument struct {
	ID              int64                `bson:"_id"`
	Kind            models.VehicleKind   `bson:"kind"`
	Name            string               `bson:"name"`
	FuelType        models.FuelType      `bson:"fuel_type"`
	ConsumptionRate float64              `bson:"consumption_rate"`
	MaxCapacity     int                  `bson:"max_capacity"`
	CurrentRouteID  int64                `bson:"current_route_id"`
	AxleBearings    float64              `bson:"axle_bearings"`
	Brakes          float64              `bson:"brakes"`
	Wheels          float64              `bson:"wheels"`
	Status          models.VehicleStatus `bson:"status"`
	Location        models.Location      `bson:"location"`
	FuelLevel       float64              `bson:"fuel_level"`
	Version         int64                `bson:"version"`

	EmissionRate   *float64 `bson:"emission_rate,omitempty"`
	OilLife        *float64 `bson:"oil_life,omitempty"`
	Catenary       *float64 `bson:"catenary,omitempty"`
	Pantograph     *float64 `bson:"pantograph,omitempty"`
	CircuitBreaker *float64 `bson:"circuit_breaker,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toVehicleDocument(v models.Vehicle) vehicleDocument {
	a := vehicle.AttributesOf(v)
	d := vehicleDocument{
		ID:              a.ID,
		Kind:            v.Kind(),
		Name:            a.Name,
		FuelType:        a.FuelType,
		ConsumptionRate: a.ConsumptionRate,
		MaxCapacity:     a.MaxCapacity,
		CurrentRouteID:  a.CurrentRouteID,
		AxleBearings:    a.AxleBearings,
		Brakes:          a.Brakes,
		Wheels:          a.Wheels,
		Status:          a.Status,
		Location:        a.Location,
		FuelLevel:       a.FuelLevel,
		Version:         v.Common().Version,
	}
	switch v.Kind() {
	case models.KindBus:
		d.EmissionRate = &a.EmissionRate
	case models.KindDieselTrain:
		d.OilLife = &a.OilLife
	case models.KindElectricLightRail:
		d.Catenary = &a.Catenary
		d.Pantograph = &a.Pantograph
		d.CircuitBreaker = &a.CircuitBreaker
	}
	return d
}

func (d vehicleDocument) vehicle() (models.Vehicle, error) {
	a := vehicle.Attributes{
		ID:              d.ID,
		Name:            d.Name,
		FuelType:        d.FuelType,
		ConsumptionRate: d.ConsumptionRate,
		MaxCapacity:     d.MaxCapacity,
		CurrentRouteID:  d.CurrentRouteID,
		AxleBearings:    d.AxleBearings,
		Brakes:          d.Brakes,
		Wheels:          d.Wheels,
		Status:          d.Status,
		Location:        d.Location,
		FuelLevel:       d.FuelLevel,
		EmissionRate:    deref(d.EmissionRate),
		OilLife:         deref(d.OilLife),
		Catenary:        deref(d.Catenary),
		Pantograph:      deref(d.Pantograph),
		CircuitBreaker:  deref(d.CircuitBreaker),
	}
	v, err := vehicle.Build(d.Kind, a)
	if err != nil {
		return nil, fmt.Errorf("decode vehicle %d: %w", d.ID, err)
	}
	v.Common().Version = d.Version
	return v, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// InsertVehicle assigns the next vehicle id and stores v.
func (s *Store) InsertVehicle(ctx context.Context, v models.Vehicle) (int64, error) {
	if s.vehicles == nil {
		return 0, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.nextID(ctx, "vehicles")
	if err != nil {
		return 0, err
	}
	doc := toVehicleDocument(v)
	doc.ID = id
	doc.Version = 0
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	if _, err := s.vehicles.InsertOne(ctx, doc); err != nil {
		return 0, persistErr("insert vehicle", err)
	}
	return id, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (s *Store) FindVehicleByID(ctx context.Context, id int64) (models.Vehicle, error) {
	if s.vehicles == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc vehicleDocument
	err := s.vehicles.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("vehicle", id)
		}
		return nil, persistErr("find vehicle", err)
	}
	return doc.vehicle()
}

// FindVehicles returns the whole fleet ordered by id.
func (s *Store) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if s.vehicles == nil {
		return nil, errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := findAll[vehicleDocument](ctx, s.vehicles, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, persistErr("find vehicles", err)
	}
	out := make([]models.Vehicle, 0, len(docs))
	for _, d := range docs {
		v, err := d.vehicle()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// UpdateVehicle writes the common and kind-specific fields guarded by the
// stored version and bumps v's version on success.
func (s *Store) UpdateVehicle(ctx context.Context, v models.Vehicle) error {
	if s.vehicles == nil {
		return errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c := v.Common()
	fields := bson.M{
		"name":             c.Name,
		"fuel_type":        c.FuelType,
		"consumption_rate": c.ConsumptionRate,
		"max_capacity":     c.MaxCapacity,
		"current_route_id": c.CurrentRouteID,
		"axle_bearings":    c.AxleBearings,
		"brakes":           c.Brakes,
		"wheels":           c.Wheels,
		"status":           c.Status,
		"location":         c.Location,
		"fuel_level":       c.FuelLevel,
		"updated_at":       time.Now(),
	}
	for k, val := range kindFields(v) {
		fields[k] = val
	}
	filter := bson.M{"_id": c.ID, "kind": v.Kind(), "version": c.Version}
	result, err := s.vehicles.UpdateOne(ctx, filter, bson.M{"$set": fields, "$inc": bson.M{"version": 1}})
	if err != nil {
		return persistErr("update vehicle", err)
	}
	if result.MatchedCount == 0 {
		n, err := s.vehicles.CountDocuments(ctx, bson.M{"_id": c.ID, "kind": v.Kind()})
		if err != nil {
			return persistErr("update vehicle", err)
		}
		if n == 0 {
			return notFound(string(v.Kind()), c.ID)
		}
		return fmt.Errorf("vehicle %d at version %d: %w", c.ID, c.Version, models.ErrConflict)
	}
	c.Version++
	return nil
}

// kindFields returns the stored kind-specific fields of v.
func kindFields(v models.Vehicle) bson.M {
	switch t := v.(type) {
	case *models.Bus:
		return bson.M{"emission_rate": t.EmissionRate}
	case *models.DieselTrain:
		return bson.M{"oil_life": t.OilLife}
	case *models.ElectricLightRail:
		return bson.M{
			"catenary":        t.Catenary,
			"pantograph":      t.Pantograph,
			"circuit_breaker": t.CircuitBreaker,
		}
	default:
		return nil
	}
}

// RefreshOilLife restores a diesel train's oil life after an oil change.
func (s *Store) RefreshOilLife(ctx context.Context, id int64) error {
	return s.setKindFields(ctx, id, models.KindDieselTrain, bson.M{"oil_life": models.FreshOilLife}, "refresh oil life")
}

// RefreshELRComponents zeroes a light rail's electrical wear counters.
func (s *Store) RefreshELRComponents(ctx context.Context, id int64) error {
	return s.setKindFields(ctx, id, models.KindElectricLightRail, bson.M{
		"catenary":        0.0,
		"pantograph":      0.0,
		"circuit_breaker": 0.0,
	}, "refresh light rail components")
}

func (s *Store) setKindFields(ctx context.Context, id int64, kind models.VehicleKind, fields bson.M, op string) error {
	if s.vehicles == nil {
		return errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fields["updated_at"] = time.Now()
	update := bson.M{"$set": fields, "$inc": bson.M{"version": 1}}
	result, err := s.vehicles.UpdateOne(ctx, bson.M{"_id": id, "kind": kind}, update)
	if err != nil {
		return persistErr(op, err)
	}
	if result.MatchedCount == 0 {
		return notFound(string(kind), id)
	}
	return nil
}

// SetVehicleStatus changes a vehicle's operational status.
func (s *Store) SetVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) error {
	return s.setCommonFields(ctx, id, bson.M{"status": status}, "set vehicle status")
}

// UpdateLocation records a vehicle's last known position.
func (s *Store) UpdateLocation(ctx context.Context, id int64, loc models.Location) error {
	return s.setCommonFields(ctx, id, bson.M{"location": loc}, "update location")
}

// setCommonFields writes without a version guard but still bumps the version
// so concurrent read-modify-write callers notice.
func (s *Store) setCommonFields(ctx context.Context, id int64, fields bson.M, op string) error {
	if s.vehicles == nil {
		return errNilCollection
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := s.vehicles.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields, "$inc": bson.M{"version": 1}})
	if err != nil {
		return persistErr(op, err)
	}
	if result.MatchedCount == 0 {
		return notFound("vehicle", id)
	}
	return nil
}
