package alert

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/db"
	"github.com/ukydev/transit-fleet/internal/models"
)

// Action is an operator command against an alert.
type Action string

const (
	ActionAcknowledge Action = "ACKNOWLEDGE"
	ActionResolve     Action = "RESOLVE"
	ActionEscalate    Action = "ESCALATE"
)

var transitions = map[Action]models.AlertStatus{
	ActionAcknowledge: models.AlertAcknowledged,
	ActionResolve:     models.AlertResolved,
	ActionEscalate:    models.AlertEscalated,
}

// ParseAction accepts an action in any letter case.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transitions[a]; !ok {
		return "", fmt.Errorf("%q: %w", s, models.ErrInvalidAction)
	}
	return a, nil
}

// Lifecycle moves stored alerts between statuses.
type Lifecycle struct {
	alerts   db.AlertCollection
	notifier *Notifier
}

func NewLifecycle(alerts db.AlertCollection, notifier *Notifier) *Lifecycle {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &Lifecycle{alerts: alerts, notifier: notifier}
}

// ProcessAlert applies action to the alert with the given id. Resolved alerts
// accept no further actions. Every transition except RESOLVE re-notifies
// listeners with the alert's stored kind.
func (l *Lifecycle) ProcessAlert(ctx context.Context, id int64, action string) (*models.Alert, error) {
	act, err := ParseAction(action)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("alert %d: %w", id, models.ErrNotFound)
	}

	a, err := l.alerts.FindAlertByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == models.AlertResolved {
		return nil, fmt.Errorf("alert %d: %w", id, models.ErrAlertResolved)
	}

	a.Status = transitions[act]
	if err := l.alerts.UpdateAlert(ctx, *a); err != nil {
		return nil, err
	}

	if a.Status == models.AlertResolved {
		return a, nil
	}

	kind, ok := models.ParseAlertKind(string(a.Kind))
	if !ok {
		log.WithFields(log.Fields{"alert_id": a.ID, "kind": a.Kind}).Warn("Stored alert has unknown kind, skipping notification")
		return a, nil
	}
	if err := l.notifier.Notify(ctx, kind, *a); err != nil {
		log.WithFields(log.Fields{
			"alert_id": a.ID,
			"action":   act,
			"error":    err,
		}).Error("Failed to notify listeners")
	}
	return a, nil
}

// ActiveAlerts returns alerts nobody has acted on yet.
func (l *Lifecycle) ActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	return l.alerts.FindActiveAlerts(ctx)
}

// AlertsByVehicle returns a vehicle's alerts, newest first.
func (l *Lifecycle) AlertsByVehicle(ctx context.Context, vehicleID int64) ([]models.Alert, error) {
	return l.alerts.FindAlertsByVehicle(ctx, vehicleID)
}

// AlertsByKind returns alerts of one kind, newest first.
func (l *Lifecycle) AlertsByKind(ctx context.Context, kind models.AlertKind) ([]models.Alert, error) {
	return l.alerts.FindAlertsByKind(ctx, kind)
}

// AllAlerts returns every alert, newest first.
func (l *Lifecycle) AllAlerts(ctx context.Context) ([]models.Alert, error) {
	return l.alerts.FindAlerts(ctx)
}
