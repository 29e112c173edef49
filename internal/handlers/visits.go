package handlers

import (
	"net/http"
	"time"

	"github.com/ukydev/transit-fleet/internal/middleware"
	"github.com/ukydev/transit-fleet/internal/models"
)

// ListStations handles GET /api/stations
func (h *FleetHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.fleet.ListStations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

// VehicleLocations handles GET /api/vehicles/locations
func (h *FleetHandler) VehicleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.fleet.VehicleLocations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

type stationVisitRequest struct {
	StationID     int64     `json:"station_id"`
	ArrivalTime   time.Time `json:"arrival_time"`
	DepartureTime time.Time `json:"departure_time"`
}

// LogStationVisit handles POST /api/vehicles/{id}/station-visits
func (h *FleetHandler) LogStationVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	var req stationVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	visit, err := h.fleet.LogStationVisit(r.Context(), models.StationVisit{
		VehicleID:     id,
		StationID:     req.StationID,
		ArrivalTime:   req.ArrivalTime,
		DepartureTime: req.DepartureTime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, visit)
}

// StationVisits handles GET /api/vehicles/{id}/station-visits
func (h *FleetHandler) StationVisits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	visits, err := h.fleet.StationVisitsByVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visits)
}

type breakRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// LogBreak handles POST /api/breaks. Breaks are always logged against the
// calling operator.
func (h *FleetHandler) LogBreak(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Operator context not found", http.StatusUnauthorized)
		return
	}
	var req breakRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	b, err := h.fleet.LogBreak(r.Context(), models.Break{
		OperatorID: claims.OperatorID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Breaks handles GET /api/breaks for the calling operator.
func (h *FleetHandler) Breaks(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Operator context not found", http.StatusUnauthorized)
		return
	}
	breaks, err := h.fleet.BreaksByOperator(r.Context(), claims.OperatorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, breaks)
}
