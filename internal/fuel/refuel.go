package fuel

import (
	"fmt"

	"github.com/ukydev/transit-fleet/internal/models"
)

// Full tank levels per kind. Light rail draws from the catenary and has no
// onboard reservoir.
const (
	BusFullTank               = 950.0
	DieselTrainFullTank       = 15000.0
	ElectricLightRailFullTank = 0.0
)

// RefuelCommand yields the fuel level a vehicle holds when topped up.
type RefuelCommand interface {
	FullLevel() float64
}

// CommandFunc adapts a plain function to RefuelCommand.
type CommandFunc func() float64

func (f CommandFunc) FullLevel() float64 { return f() }

var commands = map[models.VehicleKind]RefuelCommand{
	models.KindBus:               CommandFunc(func() float64 { return BusFullTank }),
	models.KindDieselTrain:       CommandFunc(func() float64 { return DieselTrainFullTank }),
	models.KindElectricLightRail: CommandFunc(func() float64 { return ElectricLightRailFullTank }),
}

// CommandFor returns the refuel command registered for kind.
func CommandFor(kind models.VehicleKind) (RefuelCommand, error) {
	c, ok := commands[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no refuel command for %q", models.ErrInvalidVehicleKind, kind)
	}
	return c, nil
}

// Station tops up a single vehicle.
type Station struct {
	vehicle models.Vehicle
}

// NewStation binds a station to v.
func NewStation(v models.Vehicle) *Station {
	return &Station{vehicle: v}
}

// TopUp sets the vehicle's fuel level to the command's full level.
func (s *Station) TopUp(cmd RefuelCommand) {
	s.vehicle.Common().FuelLevel = cmd.FullLevel()
}
