package http

import (
	"net/http"

	"biobank-backend/internal/handlers"
	"biobank-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	sampleHandler *handlers.SampleHandler,
	zoneHandler *handlers.ZoneHandler,
	custodyHandler *handlers.CustodyHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Samples (technicians and admins mutate, auditors read)
	samplesAPI := r.PathPrefix("/api/samples").Subrouter()
	samplesAPI.Use(authMiddleware.Authenticate)
	samplesAPI.HandleFunc("", authMiddleware.RequireRole("technician", "admin")(http.HandlerFunc(sampleHandler.CreateSample)).ServeHTTP).Methods("POST")
	samplesAPI.HandleFunc("/{id}", sampleHandler.GetSample).Methods("GET")
	samplesAPI.HandleFunc("/{id}/history", custodyHandler.History).Methods("GET")
	samplesAPI.HandleFunc("/{id}/custody-report", custodyHandler.CustodyReport).Methods("GET")
	samplesAPI.HandleFunc("/{id}/advance", authMiddleware.RequireRole("technician", "admin")(http.HandlerFunc(sampleHandler.AdvanceState)).ServeHTTP).Methods("POST")
	samplesAPI.HandleFunc("/{id}/assign", authMiddleware.RequireRole("technician", "admin")(http.HandlerFunc(sampleHandler.AssignToZone)).ServeHTTP).Methods("POST")
	samplesAPI.HandleFunc("/{id}/move", authMiddleware.RequireRole("technician", "admin")(http.HandlerFunc(sampleHandler.MoveToZone)).ServeHTTP).Methods("POST")
	samplesAPI.HandleFunc("/{id}/remove", authMiddleware.RequireRole("technician", "admin")(http.HandlerFunc(sampleHandler.RemoveFromZone)).ServeHTTP).Methods("POST")

	// Protected API routes - Barcode scan
	scanAPI := r.PathPrefix("/api/scan").Subrouter()
	scanAPI.Use(authMiddleware.Authenticate)
	scanAPI.HandleFunc("/{barcode}", sampleHandler.ScanBarcode).Methods("GET")

	// Protected API routes - Storage Zones (admin provisions, all can view)
	zonesAPI := r.PathPrefix("/api/zones").Subrouter()
	zonesAPI.Use(authMiddleware.Authenticate)
	zonesAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(zoneHandler.ProvisionZone)).ServeHTTP).Methods("POST")
	zonesAPI.HandleFunc("", zoneHandler.CapacityOverview).Methods("GET")
	zonesAPI.HandleFunc("/{id}/capacity", authMiddleware.RequireRole("admin")(http.HandlerFunc(zoneHandler.AmendCapacity)).ServeHTTP).Methods("PUT")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.Dashboard).Methods("GET")
	dashboardAPI.HandleFunc("/live", dashboardHandler.Live).Methods("GET")

	// Protected API routes - Ledger archive (admin only)
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.HandleFunc("/archive", authMiddleware.RequireRole("admin")(http.HandlerFunc(custodyHandler.Archive)).ServeHTTP).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
