// Package vehicle builds typed fleet vehicles from registration input.
//
// Each kind has its own fluent builder. The setters for the shared fields come
// from an embedded generic base so they return the concrete builder, which
// keeps kind-specific setters available in the same chain and absent from the
// builders of other kinds.
package vehicle

import "github.com/ukydev/transit-fleet/internal/models"

// Attributes carries every field a vehicle of any kind can be registered with.
// Builders copy the common fields plus the ones their kind understands.
type Attributes struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	FuelType        models.FuelType      `json:"fuel_type"`
	ConsumptionRate float64              `json:"consumption_rate"`
	MaxCapacity     int                  `json:"max_capacity"`
	CurrentRouteID  int64                `json:"current_route_id"`
	AxleBearings    float64              `json:"axle_bearings"`
	Brakes          float64              `json:"brakes"`
	Wheels          float64              `json:"wheels"`
	Status          models.VehicleStatus `json:"status"`
	Location        models.Location      `json:"location"`
	FuelLevel       float64              `json:"fuel_level"`

	EmissionRate   float64 `json:"emission_rate,omitempty"`
	OilLife        float64 `json:"oil_life,omitempty"`
	Catenary       float64 `json:"catenary,omitempty"`
	Pantograph     float64 `json:"pantograph,omitempty"`
	CircuitBreaker float64 `json:"circuit_breaker,omitempty"`
}

// Builder is the kind-agnostic view of a vehicle builder.
type Builder interface {
	Attributes(a Attributes)
	Build() models.Vehicle
}

type common[B any] struct {
	self B
	base models.VehicleBase
}

func (c *common[B]) ID(id int64) B                   { c.base.ID = id; return c.self }
func (c *common[B]) Name(name string) B              { c.base.Name = name; return c.self }
func (c *common[B]) FuelType(f models.FuelType) B    { c.base.FuelType = f; return c.self }
func (c *common[B]) ConsumptionRate(rate float64) B  { c.base.ConsumptionRate = rate; return c.self }
func (c *common[B]) MaxCapacity(n int) B             { c.base.MaxCapacity = n; return c.self }
func (c *common[B]) CurrentRoute(routeID int64) B    { c.base.CurrentRouteID = routeID; return c.self }
func (c *common[B]) AxleBearings(hours float64) B    { c.base.AxleBearings = hours; return c.self }
func (c *common[B]) Brakes(hours float64) B          { c.base.Brakes = hours; return c.self }
func (c *common[B]) Wheels(hours float64) B          { c.base.Wheels = hours; return c.self }
func (c *common[B]) Status(s models.VehicleStatus) B { c.base.Status = s; return c.self }
func (c *common[B]) Latitude(lat float64) B          { c.base.Location.Lat = lat; return c.self }
func (c *common[B]) Longitude(lon float64) B         { c.base.Location.Lon = lon; return c.self }
func (c *common[B]) FuelLevel(level float64) B       { c.base.FuelLevel = level; return c.self }
func (c *common[B]) Location(loc models.Location) B  { c.base.Location = loc; return c.self }

func (c *common[B]) applyCommon(a Attributes) {
	c.base = models.VehicleBase{
		ID:              a.ID,
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
	}
}

// BusBuilder assembles a *models.Bus.
type BusBuilder struct {
	common[*BusBuilder]
	emissionRate float64
}

// NewBusBuilder creates an empty bus builder.
func NewBusBuilder() *BusBuilder {
	b := &BusBuilder{}
	b.self = b
	return b
}

// EmissionRate sets the hours since the last emissions check.
func (b *BusBuilder) EmissionRate(hours float64) *BusBuilder {
	b.emissionRate = hours
	return b
}

func (b *BusBuilder) Attributes(a Attributes) {
	b.applyCommon(a)
	b.emissionRate = a.EmissionRate
}

func (b *BusBuilder) Build() models.Vehicle {
	return &models.Bus{VehicleBase: b.base, EmissionRate: b.emissionRate}
}

// DieselTrainBuilder assembles a *models.DieselTrain.
type DieselTrainBuilder struct {
	common[*DieselTrainBuilder]
	oilLife float64
}

// NewDieselTrainBuilder creates an empty diesel train builder.
func NewDieselTrainBuilder() *DieselTrainBuilder {
	b := &DieselTrainBuilder{}
	b.self = b
	return b
}

// OilLife sets the remaining oil life.
func (b *DieselTrainBuilder) OilLife(life float64) *DieselTrainBuilder {
	b.oilLife = life
	return b
}

func (b *DieselTrainBuilder) Attributes(a Attributes) {
	b.applyCommon(a)
	b.oilLife = a.OilLife
}

func (b *DieselTrainBuilder) Build() models.Vehicle {
	return &models.DieselTrain{VehicleBase: b.base, OilLife: b.oilLife}
}

// ElectricLightRailBuilder assembles a *models.ElectricLightRail.
type ElectricLightRailBuilder struct {
	common[*ElectricLightRailBuilder]
	catenary       float64
	pantograph     float64
	circuitBreaker float64
}

// NewElectricLightRailBuilder creates an empty light rail builder.
func NewElectricLightRailBuilder() *ElectricLightRailBuilder {
	b := &ElectricLightRailBuilder{}
	b.self = b
	return b
}

func (b *ElectricLightRailBuilder) Catenary(hours float64) *ElectricLightRailBuilder {
	b.catenary = hours
	return b
}

func (b *ElectricLightRailBuilder) Pantograph(hours float64) *ElectricLightRailBuilder {
	b.pantograph = hours
	return b
}

func (b *ElectricLightRailBuilder) CircuitBreaker(hours float64) *ElectricLightRailBuilder {
	b.circuitBreaker = hours
	return b
}

func (b *ElectricLightRailBuilder) Attributes(a Attributes) {
	b.applyCommon(a)
	b.catenary = a.Catenary
	b.pantograph = a.Pantograph
	b.circuitBreaker = a.CircuitBreaker
}

func (b *ElectricLightRailBuilder) Build() models.Vehicle {
	return &models.ElectricLightRail{
		VehicleBase:    b.base,
		Catenary:       b.catenary,
		Pantograph:     b.pantograph,
		CircuitBreaker: b.circuitBreaker,
	}
}
