package handlers

import (
	"net/http"
	"time"

	"github.com/ukydev/transit-fleet/internal/middleware"
)

// RouterConfig carries the handlers and middleware the router mounts.
type RouterConfig struct {
	Auth            *AuthHandler
	Fleet           *FleetHandler
	Alerts          *AlertHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimitMiddleware
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// NewRouter mounts every endpoint. Vehicle registration, route creation,
// maintenance and alert processing are for transit managers only.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	manager := func(h http.HandlerFunc) http.Handler {
		return cfg.AuthMiddleware.RequireManager(h)
	}

	mux.HandleFunc("GET /health", Health)

	login := http.Handler(http.HandlerFunc(cfg.Auth.Login))
	if cfg.RateLimiter != nil && cfg.LoginRateLimit > 0 {
		login = cfg.RateLimiter.RateLimit(cfg.LoginRateLimit, cfg.LoginRateWindow)(login)
	}
	mux.Handle("POST /api/auth/login", login)
	mux.HandleFunc("POST /api/auth/register", cfg.Auth.Register)
	mux.HandleFunc("GET /api/auth/profile", cfg.Auth.Profile)

	mux.HandleFunc("GET /api/vehicles", cfg.Fleet.ListVehicles)
	mux.Handle("POST /api/vehicles", manager(cfg.Fleet.AddVehicle))
	mux.HandleFunc("GET /api/vehicles/locations", cfg.Fleet.VehicleLocations)
	mux.HandleFunc("GET /api/vehicles/{id}", cfg.Fleet.GetVehicle)
	mux.HandleFunc("GET /api/vehicles/{id}/trips", cfg.Fleet.VehicleTrips)
	mux.HandleFunc("POST /api/vehicles/{id}/refuel", cfg.Fleet.Refuel)
	mux.HandleFunc("POST /api/vehicles/{id}/status", cfg.Fleet.SetStatus)
	mux.HandleFunc("POST /api/vehicles/{id}/location", cfg.Fleet.UpdateLocation)
	mux.HandleFunc("POST /api/vehicles/{id}/monitor", cfg.Fleet.Monitor)
	mux.HandleFunc("GET /api/vehicles/{id}/station-visits", cfg.Fleet.StationVisits)
	mux.HandleFunc("POST /api/vehicles/{id}/station-visits", cfg.Fleet.LogStationVisit)
	mux.Handle("POST /api/vehicles/{id}/maintenance", manager(cfg.Fleet.StartMaintenance))
	mux.Handle("DELETE /api/vehicles/{id}/maintenance", manager(cfg.Fleet.EndMaintenance))
	mux.HandleFunc("GET /api/maintenance", cfg.Fleet.OngoingMaintenance)

	mux.HandleFunc("GET /api/routes", cfg.Fleet.ListRoutes)
	mux.Handle("POST /api/routes", manager(cfg.Fleet.AddRoute))
	mux.HandleFunc("GET /api/stations", cfg.Fleet.ListStations)

	mux.HandleFunc("POST /api/trips", cfg.Fleet.CompleteTrip)
	mux.HandleFunc("GET /api/breaks", cfg.Fleet.Breaks)
	mux.HandleFunc("POST /api/breaks", cfg.Fleet.LogBreak)

	mux.HandleFunc("GET /api/alerts", cfg.Alerts.List)
	mux.Handle("POST /api/alerts/{id}/{action}", manager(cfg.Alerts.Process))

	return middleware.RequestLogger(cfg.AuthMiddleware.Authenticate(mux))
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
