package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/alert"
	"github.com/ukydev/transit-fleet/internal/fuel"
	"github.com/ukydev/transit-fleet/internal/models"
)

// TripRequest is an operator's report of a finished run.
type TripRequest struct {
	OperatorID int64     `json:"operator_id"`
	VehicleID  int64     `json:"vehicle_id"`
	RouteID    int64     `json:"route_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	FuelUsed   float64   `json:"fuel_used"`
}

// TripResult is the stored trip, the vehicle as written and the outcome of
// the follow-up alert checks.
type TripResult struct {
	Trip    models.Trip
	Vehicle models.Vehicle
	Report  *alert.Report
}

// CompleteTrip applies a finished trip to its vehicle: efficiency, wear, fuel
// and kind-specific components are updated, the trip is recorded and the
// vehicle is checked for alerts. Alert failures are carried on the result's
// report and never fail the call.
func (s *Service) CompleteTrip(ctx context.Context, req TripRequest) (*TripResult, error) {
	unlock := s.locks.Lock(req.VehicleID)
	defer unlock()

	route, err := s.store.FindRouteByID(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}

	if req.FuelUsed < 0 {
		return nil, fmt.Errorf("trip used %.1f: %w", req.FuelUsed, models.ErrInvalidFuel)
	}

	minutes := int(req.EndTime.Sub(req.StartTime) / time.Minute)
	if minutes <= 0 {
		return nil, fmt.Errorf("trip of %d minutes: %w", minutes, models.ErrInvalidTimeRange)
	}
	hours := float64(minutes) / 60.0

	var (
		v          models.Vehicle
		p          profile
		efficiency float64
	)
	for attempt := 1; ; attempt++ {
		v, err = s.store.FindVehicleByID(ctx, req.VehicleID)
		if err != nil {
			return nil, err
		}
		p, err = profileFor(v.Kind())
		if err != nil {
			return nil, err
		}
		efficiency, err = s.efficiency(v.Kind(), route.Distance, req.FuelUsed, hours)
		if err != nil {
			return nil, err
		}

		c := v.Common()
		c.AddWear(hours)
		if p.reservoir {
			if req.FuelUsed > c.FuelLevel {
				return nil, fmt.Errorf("vehicle %d has %.1f, trip used %.1f: %w",
					c.ID, c.FuelLevel, req.FuelUsed, models.ErrInsufficientFuel)
			}
			c.FuelLevel -= req.FuelUsed
		}
		p.afterTrip(v, hours)

		err = s.store.UpdateVehicle(ctx, v)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrConflict) || attempt >= s.maxAttempts {
			return nil, err
		}
		log.WithFields(log.Fields{
			"vehicle_id": req.VehicleID,
			"attempt":    attempt,
		}).Warn("Vehicle changed during trip completion, retrying")
	}

	trip := models.Trip{
		OperatorID: req.OperatorID,
		VehicleID:  req.VehicleID,
		RouteID:    req.RouteID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		FuelUsed:   req.FuelUsed,
		Efficiency: efficiency,
		OnTime:     route.IsOnTime(minutes),
	}
	id, err := s.store.InsertTrip(ctx, trip)
	if err != nil {
		return nil, err
	}
	trip.ID = id

	report := s.monitor.MonitorVehicle(ctx, v)
	if err := report.Err(); err != nil {
		log.WithFields(log.Fields{
			"vehicle_id": req.VehicleID,
			"trip_id":    id,
			"error":      err,
		}).Warn("Alert checks failed after trip")
	}

	log.WithFields(log.Fields{
		"vehicle_id": req.VehicleID,
		"trip_id":    id,
		"minutes":    minutes,
		"on_time":    trip.OnTime,
		"alerts":     len(report.Alerts),
	}).Info("Trip completed")

	return &TripResult{Trip: trip, Vehicle: v, Report: report}, nil
}

func (s *Service) efficiency(kind models.VehicleKind, distance, consumed, hours float64) (float64, error) {
	strategy, err := fuel.StrategyFor(kind)
	if err != nil {
		return 0, err
	}
	var meter fuel.Meter
	meter.Use(strategy)
	return meter.Efficiency(distance, consumed, hours)
}
