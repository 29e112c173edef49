package vehicle

import (
	"fmt"

	"github.com/ukydev/transit-fleet/internal/models"
)

var builders = map[models.VehicleKind]func() Builder{
	models.KindBus:               func() Builder { return NewBusBuilder() },
	models.KindDieselTrain:       func() Builder { return NewDieselTrainBuilder() },
	models.KindElectricLightRail: func() Builder { return NewElectricLightRailBuilder() },
}

// NewBuilder returns the builder registered for kind.
func NewBuilder(kind models.VehicleKind) (Builder, error) {
	newBuilder, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidVehicleKind, kind)
	}
	return newBuilder(), nil
}

// Build creates a vehicle of the given kind from a.
func Build(kind models.VehicleKind, a Attributes) (models.Vehicle, error) {
	b, err := NewBuilder(kind)
	if err != nil {
		return nil, err
	}
	b.Attributes(a)
	return b.Build(), nil
}

// AttributesOf flattens v back into registration attributes.
func AttributesOf(v models.Vehicle) Attributes {
	c := v.Common()
	a := Attributes{
		ID:              c.ID,
		Name:            c.Name,
		FuelType:        c.FuelType,
		ConsumptionRate: c.ConsumptionRate,
		MaxCapacity:     c.MaxCapacity,
		CurrentRouteID:  c.CurrentRouteID,
		AxleBearings:    c.AxleBearings,
		Brakes:          c.Brakes,
		Wheels:          c.Wheels,
		Status:          c.Status,
		Location:        c.Location,
		FuelLevel:       c.FuelLevel,
	}
	switch t := v.(type) {
	case *models.Bus:
		a.EmissionRate = t.EmissionRate
	case *models.DieselTrain:
		a.OilLife = t.OilLife
	case *models.ElectricLightRail:
		a.Catenary = t.Catenary
		a.Pantograph = t.Pantograph
		a.CircuitBreaker = t.CircuitBreaker
	}
	return a
}
