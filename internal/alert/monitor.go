package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/db"
	"github.com/ukydev/transit-fleet/internal/models"
)

// Thresholds are the service intervals the monitor compares against.
// Wear and oil values are hours; FuelLevel is in the vehicle's fuel unit.
type Thresholds struct {
	Brakes              float64
	Wheels              float64
	AxleBearings        float64
	FuelLevel           float64
	EmissionCheck       float64
	OilChange           float64
	ElectricalComponent float64
}

// DefaultThresholds returns the stock service intervals.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Brakes:              100,
		Wheels:              100,
		AxleBearings:        100,
		FuelLevel:           100,
		EmissionCheck:       100,
		OilChange:           100,
		ElectricalComponent: 100,
	}
}

// CheckError records one failed check. The remaining checks still ran.
type CheckError struct {
	Check     string
	VehicleID int64
	Err       error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s check for vehicle %d: %v", e.Check, e.VehicleID, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }

// Report is the outcome of monitoring one vehicle.
type Report struct {
	VehicleID int64
	Alerts    []models.Alert
	Errors    []*CheckError
}

// Err joins every check failure, or returns nil when all checks succeeded.
func (r *Report) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// finding is what a check reports when its threshold is crossed.
type finding struct {
	kind   models.AlertKind
	reason string
}

type check struct {
	name string
	eval func(v models.Vehicle, t Thresholds) (finding, bool)
}

var checks = []check{
	{name: "common components", eval: commonComponents},
	{name: "fuel level", eval: fuelLevel},
	{name: "emission", eval: busEmission},
	{name: "oil life", eval: dieselOil},
	{name: "electrical components", eval: electricalComponents},
	{name: "route completion", eval: routeCompletion},
}

// Monitor evaluates vehicles against Thresholds and raises alerts.
type Monitor struct {
	alerts     db.AlertCollection
	notifier   *Notifier
	thresholds Thresholds
	now        func() time.Time
}

// NewMonitor creates a monitor that stores alerts in alerts and announces
// them through notifier.
func NewMonitor(alerts db.AlertCollection, notifier *Notifier, thresholds Thresholds) *Monitor {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &Monitor{
		alerts:     alerts,
		notifier:   notifier,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// Thresholds returns the intervals the monitor is configured with.
func (m *Monitor) Thresholds() Thresholds { return m.thresholds }

// MonitorVehicle runs every check against v. A failing check never stops the
// others; its error is recorded on the report. A nil vehicle yields a report
// carrying a single "vehicle" check error.
func (m *Monitor) MonitorVehicle(ctx context.Context, v models.Vehicle) *Report {
	if isNilVehicle(v) {
		report := &Report{}
		m.fail(report, "vehicle", errNilVehicle)
		return report
	}
	c := v.Common()
	report := &Report{VehicleID: c.ID}

	for _, chk := range checks {
		f, hit := chk.eval(v, m.thresholds)
		if !hit {
			continue
		}

		a := models.Alert{
			VehicleID: c.ID,
			Kind:      f.kind,
			Reason:    f.reason,
			Status:    models.AlertActive,
			CreatedAt: m.now(),
		}
		id, err := m.alerts.InsertAlert(ctx, a)
		if err != nil {
			m.fail(report, chk.name, err)
			continue
		}
		a.ID = id
		report.Alerts = append(report.Alerts, a)

		if err := m.notifier.Notify(ctx, a.Kind, a); err != nil {
			m.fail(report, chk.name, fmt.Errorf("notify: %w", err))
		}
	}
	return report
}

var errNilVehicle = errors.New("no vehicle to check")

func isNilVehicle(v models.Vehicle) bool {
	switch t := v.(type) {
	case nil:
		return true
	case *models.Bus:
		return t == nil
	case *models.DieselTrain:
		return t == nil
	case *models.ElectricLightRail:
		return t == nil
	}
	return false
}

func (m *Monitor) fail(r *Report, name string, err error) {
	log.WithFields(log.Fields{
		"vehicle_id": r.VehicleID,
		"check":      name,
		"error":      err,
	}).Error("Alert check failed")
	r.Errors = append(r.Errors, &CheckError{Check: name, VehicleID: r.VehicleID, Err: err})
}

func commonComponents(v models.Vehicle, t Thresholds) (finding, bool) {
	c := v.Common()
	var reason strings.Builder
	if c.Brakes >= t.Brakes {
		fmt.Fprintf(&reason, "Brakes have reached service interval (%.1f hours). ", c.Brakes)
	}
	if c.Wheels >= t.Wheels {
		fmt.Fprintf(&reason, "Wheels have reached service interval (%.1f hours). ", c.Wheels)
	}
	if c.AxleBearings >= t.AxleBearings {
		fmt.Fprintf(&reason, "Axle bearings have reached service interval (%.1f hours). ", c.AxleBearings)
	}
	if reason.Len() == 0 {
		return finding{}, false
	}
	return finding{kind: models.AlertMaintenance, reason: strings.TrimSpace(reason.String())}, true
}

func fuelLevel(v models.Vehicle, t Thresholds) (finding, bool) {
	level := v.Common().FuelLevel
	if level > t.FuelLevel {
		return finding{}, false
	}
	return finding{
		kind:   models.AlertRefuel,
		reason: fmt.Sprintf("Vehicle needs refuel. Fuel level at %.1f", level),
	}, true
}

func busEmission(v models.Vehicle, t Thresholds) (finding, bool) {
	bus, ok := v.(*models.Bus)
	if !ok || bus.EmissionRate < t.EmissionCheck {
		return finding{}, false
	}
	return finding{
		kind:   models.AlertMaintenance,
		reason: fmt.Sprintf("Emission system check required (%.1f hours since last check)", bus.EmissionRate),
	}, true
}

// dieselOil alerts once oil life reaches the oil-change threshold.
func dieselOil(v models.Vehicle, t Thresholds) (finding, bool) {
	train, ok := v.(*models.DieselTrain)
	if !ok || train.OilLife < t.OilChange {
		return finding{}, false
	}
	return finding{
		kind:   models.AlertMaintenance,
		reason: fmt.Sprintf("Oil change required (%.1f hours since last change)", train.OilLife),
	}, true
}

func electricalComponents(v models.Vehicle, t Thresholds) (finding, bool) {
	elr, ok := v.(*models.ElectricLightRail)
	if !ok {
		return finding{}, false
	}
	parts := []struct {
		name  string
		hours float64
	}{
		{"Catenary", elr.Catenary},
		{"Pantograph", elr.Pantograph},
		{"Circuit breaker", elr.CircuitBreaker},
	}
	var reason strings.Builder
	for _, p := range parts {
		if p.hours >= t.ElectricalComponent {
			fmt.Fprintf(&reason, "%s component has reached service interval (%.1f hours). ", p.name, p.hours)
		}
	}
	if reason.Len() == 0 {
		return finding{}, false
	}
	return finding{
		kind:   models.AlertMaintenance,
		reason: "Electrical system: " + strings.TrimSpace(reason.String()),
	}, true
}

func routeCompletion(v models.Vehicle, _ Thresholds) (finding, bool) {
	c := v.Common()
	if !strings.EqualFold(string(c.Status), string(models.StatusCompleted)) {
		return finding{}, false
	}
	return finding{
		kind:   models.AlertRouteEnd,
		reason: fmt.Sprintf("Vehicle has completed its route %d", c.CurrentRouteID),
	}, true
}
