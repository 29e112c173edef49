// Package fuel computes trip efficiency and refuel levels per vehicle kind.
package fuel

import (
	"fmt"

	"github.com/ukydev/transit-fleet/internal/models"
)

// ConsumptionStrategy converts what a trip consumed into an efficiency figure.
type ConsumptionStrategy interface {
	Efficiency(distanceKm, consumed, hours float64) float64
}

// BusStrategy reports liters per 100 km.
type BusStrategy struct{}

func (BusStrategy) Efficiency(distanceKm, consumed, _ float64) float64 {
	return consumed / distanceKm * 100
}

// DieselTrainStrategy reports liters per km.
type DieselTrainStrategy struct{}

func (DieselTrainStrategy) Efficiency(distanceKm, consumed, _ float64) float64 {
	return consumed / distanceKm
}

// ElectricLightRailStrategy reports kWh·h per km.
type ElectricLightRailStrategy struct{}

func (ElectricLightRailStrategy) Efficiency(distanceKm, consumed, hours float64) float64 {
	return consumed * hours / distanceKm
}

var strategies = map[models.VehicleKind]ConsumptionStrategy{
	models.KindBus:               BusStrategy{},
	models.KindDieselTrain:       DieselTrainStrategy{},
	models.KindElectricLightRail: ElectricLightRailStrategy{},
}

// StrategyFor returns the consumption strategy registered for kind.
func StrategyFor(kind models.VehicleKind) (ConsumptionStrategy, error) {
	s, ok := strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no consumption strategy for %q", models.ErrInvalidVehicleKind, kind)
	}
	return s, nil
}

// Meter holds the currently selected strategy.
type Meter struct {
	strategy ConsumptionStrategy
}

// Use selects the strategy for subsequent calls.
func (m *Meter) Use(s ConsumptionStrategy) {
	m.strategy = s
}

// Efficiency runs the selected strategy. The distance must be positive.
func (m *Meter) Efficiency(distanceKm, consumed, hours float64) (float64, error) {
	if m.strategy == nil {
		return 0, fmt.Errorf("fuel meter: no strategy selected")
	}
	if distanceKm <= 0 {
		return 0, fmt.Errorf("%w: got %v km", models.ErrInvalidRoute, distanceKm)
	}
	return m.strategy.Efficiency(distanceKm, consumed, hours), nil
}
