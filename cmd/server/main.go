package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biobank-backend/internal/auth"
	"biobank-backend/internal/cache"
	"biobank-backend/internal/config"
	"biobank-backend/internal/database"
	"biobank-backend/internal/db"
	"biobank-backend/internal/handlers"
	"biobank-backend/internal/health"
	h "biobank-backend/internal/http"
	"biobank-backend/internal/middleware"
	"biobank-backend/internal/repositories"
	"biobank-backend/internal/services"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	// Redis is optional; the capacity cache degrades to direct reads.
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Main] Redis unavailable, capacity cache disabled: %v", err)
	}

	// Repositories
	sampleRepo := repositories.NewSampleRepository(pool)
	zoneRepo := repositories.NewZoneRepository(pool)
	custodyRepo := repositories.NewCustodyRepository(pool)
	lifecycleRepo := repositories.NewLifecycleRepository(pool, cfg.Database.LockTimeoutMS)
	userRepo := repositories.NewUserRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	sampleService := services.NewSampleService(sampleRepo, custodyRepo)
	lifecycleService := services.NewLifecycleService(lifecycleRepo)
	zoneService := services.NewZoneService(zoneRepo)
	userService := services.NewUserService(userRepo, jwtManager)
	reportService := services.NewReportService(sampleRepo, custodyRepo)
	exportService := services.NewExportService(ctx, cfg, custodyRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	sampleHandler := handlers.NewSampleHandler(sampleService, lifecycleService)
	zoneHandler := handlers.NewZoneHandler(zoneService)
	custodyHandler := handlers.NewCustodyHandler(sampleService, reportService, exportService)
	dashboardHandler := handlers.NewDashboardHandler(sampleService, zoneService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		sampleHandler,
		zoneHandler,
		custodyHandler,
		dashboardHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
