package fleet

import (
	"context"

	"github.com/ukydev/transit-fleet/internal/db"
	"github.com/ukydev/transit-fleet/internal/models"
)

// OilPerTrip is how much oil life a diesel train loses on every trip.
const OilPerTrip = 5.0

// profile holds the per-kind steps of the trip and maintenance flows.
type profile struct {
	// reservoir is false for kinds drawing from the grid.
	reservoir bool
	// afterTrip advances kind-specific wear in memory. It is written together
	// with the common fields so the version guard covers both.
	afterTrip func(v models.Vehicle, hours float64)
	// afterMaintenance restores kind-specific components.
	afterMaintenance func(ctx context.Context, store db.VehicleCollection, id int64) error
}

var profiles = map[models.VehicleKind]profile{
	models.KindBus: {
		reservoir:        true,
		afterTrip:        func(models.Vehicle, float64) {},
		afterMaintenance: func(context.Context, db.VehicleCollection, int64) error { return nil },
	},
	models.KindDieselTrain: {
		reservoir: true,
		afterTrip: func(v models.Vehicle, _ float64) {
			v.(*models.DieselTrain).OilLife -= OilPerTrip
		},
		afterMaintenance: func(ctx context.Context, store db.VehicleCollection, id int64) error {
			return store.RefreshOilLife(ctx, id)
		},
	},
	models.KindElectricLightRail: {
		reservoir: false,
		afterTrip: func(v models.Vehicle, hours float64) {
			v.(*models.ElectricLightRail).AddElectricalWear(hours)
		},
		afterMaintenance: func(ctx context.Context, store db.VehicleCollection, id int64) error {
			return store.RefreshELRComponents(ctx, id)
		},
	},
}

func profileFor(kind models.VehicleKind) (profile, error) {
	p, ok := profiles[kind]
	if !ok {
		return profile{}, models.ErrInvalidVehicleKind
	}
	return p, nil
}
