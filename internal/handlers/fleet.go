package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ukydev/transit-fleet/internal/alert"
	"github.com/ukydev/transit-fleet/internal/fleet"
	"github.com/ukydev/transit-fleet/internal/middleware"
	"github.com/ukydev/transit-fleet/internal/models"
	"github.com/ukydev/transit-fleet/internal/vehicle"
)

// FleetService is the part of fleet.Service the HTTP layer drives.
type FleetService interface {
	AddVehicle(ctx context.Context, kind models.VehicleKind, attrs vehicle.Attributes) (models.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	AddRoute(ctx context.Context, r models.Route) (models.Route, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	TripsByVehicle(ctx context.Context, vehicleID int64) ([]models.Trip, error)
	CompleteTrip(ctx context.Context, req fleet.TripRequest) (*fleet.TripResult, error)
	Refuel(ctx context.Context, id int64, cost float64) (models.Vehicle, error)
	SetStatus(ctx context.Context, id int64, status models.VehicleStatus) error
	UpdateLocation(ctx context.Context, id int64, loc models.Location) error
	StartMaintenance(ctx context.Context, id int64, purpose models.MaintenancePurpose, cost float64) (int64, error)
	EndMaintenance(ctx context.Context, id int64) error
	OngoingMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error)
	MonitorVehicle(ctx context.Context, id int64) (*alert.Report, error)
	ListStations(ctx context.Context) ([]models.Station, error)
	LogStationVisit(ctx context.Context, visit models.StationVisit) (models.StationVisit, error)
	StationVisitsByVehicle(ctx context.Context, vehicleID int64) ([]models.StationVisit, error)
	LogBreak(ctx context.Context, b models.Break) (models.Break, error)
	BreaksByOperator(ctx context.Context, operatorID int64) ([]models.Break, error)
	VehicleLocations(ctx context.Context) ([]models.VehicleLocation, error)
}

// FleetHandler serves vehicles, routes, trips and maintenance.
type FleetHandler struct {
	fleet FleetService
}

func NewFleetHandler(fleet FleetService) *FleetHandler {
	return &FleetHandler{fleet: fleet}
}

type kindedBus struct {
	Kind models.VehicleKind `json:"kind"`
	*models.Bus
}

type kindedDieselTrain struct {
	Kind models.VehicleKind `json:"kind"`
	*models.DieselTrain
}

type kindedElectricLightRail struct {
	Kind models.VehicleKind `json:"kind"`
	*models.ElectricLightRail
}

// vehicleView adds the kind tag to a vehicle's JSON.
func vehicleView(v models.Vehicle) any {
	switch t := v.(type) {
	case *models.Bus:
		return kindedBus{t.Kind(), t}
	case *models.DieselTrain:
		return kindedDieselTrain{t.Kind(), t}
	case *models.ElectricLightRail:
		return kindedElectricLightRail{t.Kind(), t}
	default:
		return v
	}
}

type reportView struct {
	Alerts []models.Alert `json:"alerts"`
	Errors []string       `json:"alert_errors,omitempty"`
}

func newReportView(r *alert.Report) reportView {
	view := reportView{Alerts: []models.Alert{}}
	if r == nil {
		return view
	}
	view.Alerts = append(view.Alerts, r.Alerts...)
	for _, e := range r.Errors {
		view.Errors = append(view.Errors, e.Error())
	}
	return view
}

// ListVehicles handles GET /api/vehicles
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.fleet.ListVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]any, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, vehicleView(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetVehicle handles GET /api/vehicles/{id}
func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	v, err := h.fleet.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleView(v))
}

type addVehicleRequest struct {
	Kind string `json:"kind"`
	vehicle.Attributes
}

// AddVehicle handles POST /api/vehicles
func (h *FleetHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var req addVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	kind, err := models.ParseVehicleKind(req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.fleet.AddVehicle(r.Context(), kind, req.Attributes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleView(v))
}

// VehicleTrips handles GET /api/vehicles/{id}/trips
func (h *FleetHandler) VehicleTrips(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	trips, err := h.fleet.TripsByVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// Refuel handles POST /api/vehicles/{id}/refuel
func (h *FleetHandler) Refuel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	var req struct {
		Cost float64 `json:"cost"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Cost < 0 {
		http.Error(w, "Cost must not be negative", http.StatusBadRequest)
		return
	}
	v, err := h.fleet.Refuel(r.Context(), id, req.Cost)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleView(v))
}

// SetStatus handles POST /api/vehicles/{id}/status
func (h *FleetHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	status, err := models.ParseVehicleStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.fleet.SetStatus(r.Context(), id, status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateLocation handles POST /api/vehicles/{id}/location
func (h *FleetHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	var loc models.Location
	if err := decodeJSON(r, &loc); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
		http.Error(w, "Coordinates out of range", http.StatusBadRequest)
		return
	}
	if err := h.fleet.UpdateLocation(r.Context(), id, loc); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Monitor handles POST /api/vehicles/{id}/monitor
func (h *FleetHandler) Monitor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	report, err := h.fleet.MonitorVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReportView(report))
}

// StartMaintenance handles POST /api/vehicles/{id}/maintenance
func (h *FleetHandler) StartMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	var req struct {
		Purpose models.MaintenancePurpose `json:"purpose"`
		Cost    float64                   `json:"cost"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	recID, err := h.fleet.StartMaintenance(r.Context(), id, req.Purpose, req.Cost)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"maintenance_id": recID})
}

// EndMaintenance handles DELETE /api/vehicles/{id}/maintenance
func (h *FleetHandler) EndMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	if err := h.fleet.EndMaintenance(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OngoingMaintenance handles GET /api/maintenance
func (h *FleetHandler) OngoingMaintenance(w http.ResponseWriter, r *http.Request) {
	records, err := h.fleet.OngoingMaintenance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// ListRoutes handles GET /api/routes
func (h *FleetHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.fleet.ListRoutes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

// AddRoute handles POST /api/routes
func (h *FleetHandler) AddRoute(w http.ResponseWriter, r *http.Request) {
	var route models.Route
	if err := decodeJSON(r, &route); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	created, err := h.fleet.AddRoute(r.Context(), route)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type completeTripRequest struct {
	VehicleID int64     `json:"vehicle_id"`
	RouteID   int64     `json:"route_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	FuelUsed  float64   `json:"fuel_used"`
}

type completeTripResponse struct {
	Trip    models.Trip `json:"trip"`
	Vehicle any         `json:"vehicle"`
	reportView
}

// CompleteTrip handles POST /api/trips. The calling operator is recorded as
// the trip's driver.
func (h *FleetHandler) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Operator context not found", http.StatusUnauthorized)
		return
	}
	var req completeTripRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.FuelUsed < 0 {
		http.Error(w, "Fuel used must not be negative", http.StatusBadRequest)
		return
	}

	result, err := h.fleet.CompleteTrip(r.Context(), fleet.TripRequest{
		OperatorID: claims.OperatorID,
		VehicleID:  req.VehicleID,
		RouteID:    req.RouteID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		FuelUsed:   req.FuelUsed,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, completeTripResponse{
		Trip:       result.Trip,
		Vehicle:    vehicleView(result.Vehicle),
		reportView: newReportView(result.Report),
	})
}

func queryInt64(r *http.Request, key string) (int64, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	return n, true, err
}
