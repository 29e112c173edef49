package handlers

import (
	"context"
	"net/http"

	"github.com/ukydev/transit-fleet/internal/models"
)

// AlertService is the part of alert.Lifecycle the HTTP layer drives.
type AlertService interface {
	ProcessAlert(ctx context.Context, id int64, action string) (*models.Alert, error)
	ActiveAlerts(ctx context.Context) ([]models.Alert, error)
	AlertsByVehicle(ctx context.Context, vehicleID int64) ([]models.Alert, error)
	AlertsByKind(ctx context.Context, kind models.AlertKind) ([]models.Alert, error)
	AllAlerts(ctx context.Context) ([]models.Alert, error)
}

// AlertHandler lists alerts and moves them through their lifecycle.
type AlertHandler struct {
	alerts AlertService
}

func NewAlertHandler(alerts AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List handles GET /api/alerts. At most one filter applies, checked in the
// order vehicle_id, kind, status=active.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		alerts []models.Alert
		err    error
	)

	vehicleID, hasVehicle, parseErr := queryInt64(r, "vehicle_id")
	switch {
	case parseErr != nil:
		http.Error(w, "Invalid vehicle_id", http.StatusBadRequest)
		return
	case hasVehicle:
		alerts, err = h.alerts.AlertsByVehicle(r.Context(), vehicleID)
	case q.Get("kind") != "":
		kind, ok := models.ParseAlertKind(q.Get("kind"))
		if !ok {
			http.Error(w, "Invalid alert kind", http.StatusBadRequest)
			return
		}
		alerts, err = h.alerts.AlertsByKind(r.Context(), kind)
	case q.Get("status") == "active":
		alerts, err = h.alerts.ActiveAlerts(r.Context())
	default:
		alerts, err = h.alerts.AllAlerts(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// Process handles POST /api/alerts/{id}/{action}
func (h *AlertHandler) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid alert id", http.StatusBadRequest)
		return
	}
	a, err := h.alerts.ProcessAlert(r.Context(), id, r.PathValue("action"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
