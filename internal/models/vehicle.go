package models

import "strings"

// VehicleKind tags the concrete vehicle variant.
type VehicleKind string

const (
	KindBus               VehicleKind = "BUS"
	KindDieselTrain       VehicleKind = "DIESEL TRAIN"
	KindElectricLightRail VehicleKind = "ELECTRIC LIGHT RAIL"
)

// Kinds lists every supported vehicle kind.
var Kinds = []VehicleKind{KindBus, KindDieselTrain, KindElectricLightRail}

// ParseVehicleKind accepts the stored tag in any letter case.
func ParseVehicleKind(s string) (VehicleKind, error) {
	k := VehicleKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", ErrInvalidVehicleKind
}

// VehicleStatus is the operational status of a vehicle.
type VehicleStatus string

const (
	StatusActive        VehicleStatus = "ACTIVE"
	StatusInMaintenance VehicleStatus = "IN MAINTENANCE"
	StatusOutOfService  VehicleStatus = "OUT OF SERVICE"
	// StatusCompleted marks a vehicle that has finished its assigned route.
	StatusCompleted VehicleStatus = "COMPLETED"
)

// ParseVehicleStatus accepts a status in any letter case.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch st := VehicleStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusInMaintenance, StatusOutOfService, StatusCompleted:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FuelType is the fuel or energy source a vehicle runs on.
type FuelType string

const (
	FuelDiesel FuelType = "DIESEL"
	FuelCNG    FuelType = "CNG"
	FuelEnergy FuelType = "ENERGY"
)

// Oil life runs from FreshOilLife down toward zero.
const FreshOilLife = 100.0

// Vehicle is implemented by *Bus, *DieselTrain and *ElectricLightRail only.
type Vehicle interface {
	Kind() VehicleKind
	Common() *VehicleBase
}

// VehicleBase holds the attributes shared by every vehicle kind.
// Wear counters are hours of use since the component was last serviced.
type VehicleBase struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	FuelType        FuelType      `json:"fuel_type"`
	ConsumptionRate float64       `json:"consumption_rate"`
	MaxCapacity     int           `json:"max_capacity"`
	CurrentRouteID  int64         `json:"current_route_id"`
	AxleBearings    float64       `json:"axle_bearings"`
	Brakes          float64       `json:"brakes"`
	Wheels          float64       `json:"wheels"`
	Status          VehicleStatus `json:"status"`
	Location        Location      `json:"location"`
	FuelLevel       float64       `json:"fuel_level"`
	// Version is bumped by the store on every common-field update.
	Version int64 `json:"version"`
}

// Common returns the shared attributes.
func (b *VehicleBase) Common() *VehicleBase { return b }

// AddWear advances the three common wear counters by hours of use.
func (b *VehicleBase) AddWear(hours float64) {
	b.AxleBearings += hours
	b.Brakes += hours
	b.Wheels += hours
}

// ResetWear zeroes the common wear counters after maintenance.
func (b *VehicleBase) ResetWear() {
	b.AxleBearings = 0
	b.Brakes = 0
	b.Wheels = 0
}

// Bus is a road vehicle with an emissions check interval.
type Bus struct {
	VehicleBase
	EmissionRate float64 `json:"emission_rate"`
}

func (*Bus) Kind() VehicleKind { return KindBus }

// DieselTrain tracks remaining oil life, decremented per trip.
type DieselTrain struct {
	VehicleBase
	OilLife float64 `json:"oil_life"`
}

func (*DieselTrain) Kind() VehicleKind { return KindDieselTrain }

// ElectricLightRail tracks wear on its electrical pickup components.
type ElectricLightRail struct {
	VehicleBase
	Catenary       float64 `json:"catenary"`
	Pantograph     float64 `json:"pantograph"`
	CircuitBreaker float64 `json:"circuit_breaker"`
}

func (*ElectricLightRail) Kind() VehicleKind { return KindElectricLightRail }

// AddElectricalWear advances the pickup component counters.
func (e *ElectricLightRail) AddElectricalWear(hours float64) {
	e.Pantograph += hours
	e.Catenary += hours
	e.CircuitBreaker += hours
}

// Clone returns a deep copy of v so callers can mutate it freely.
func Clone(v Vehicle) Vehicle {
	switch t := v.(type) {
	case *Bus:
		c := *t
		return &c
	case *DieselTrain:
		c := *t
		return &c
	case *ElectricLightRail:
		c := *t
		return &c
	default:
		return nil
	}
}
