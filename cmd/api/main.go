package main

import (
	"log"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/cache"
	"github.com/OTISDav/vehiculesplatform/internal/core/config"
	"github.com/OTISDav/vehiculesplatform/internal/core/database"
	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	"github.com/OTISDav/vehiculesplatform/internal/core/server"
	catalogadapters "github.com/OTISDav/vehiculesplatform/internal/features/catalog/adapters"
	paymentadapters "github.com/OTISDav/vehiculesplatform/internal/features/payments/adapters"
	paymenthandler "github.com/OTISDav/vehiculesplatform/internal/features/payments/handler"
	paymentservice "github.com/OTISDav/vehiculesplatform/internal/features/payments/service"
	tariffadapters "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/adapters"
	tariffhandler "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/handler"
	tariffservice "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/service"
	transportadapters "github.com/OTISDav/vehiculesplatform/internal/features/transport/adapters"
	transporthandler "github.com/OTISDav/vehiculesplatform/internal/features/transport/handler"
	transportservice "github.com/OTISDav/vehiculesplatform/internal/features/transport/service"

	"go.uber.org/zap"
)

// @title Vehicules Platform Logistics API
// @version 1.0
// @description International vehicle transport: tariff zones, cost estimates, transport requests with public tracking, and payments.
// @contact.name API Support
// @contact.email support@vehiculesplatform.tg
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	db, err := database.Connect(cfg)
	if err != nil {
		l.Fatal("Database connection failed", zap.Error(err))
	}
	if err := database.Seed(db, cfg.Database.SeedDemo); err != nil {
		l.Fatal("Database seeding failed", zap.Error(err))
	}

	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Redis initialization failed", zap.Error(err))
	}
	defer store.Close()

	// Repositories
	zoneRepo := tariffadapters.NewGormZoneRepository(db)
	transporterRepo := tariffadapters.NewGormTransporterRepository(db)
	vehicleRepo := catalogadapters.NewGormVehicleRepository(db)
	requestRepo := transportadapters.NewGormRequestRepository(db)
	paymentRepo := paymentadapters.NewGormPaymentRepository(db)

	trackingCache := transportadapters.NewRedisTrackingCache(
		store,
		time.Duration(cfg.Redis.TrackingTTLSeconds)*time.Second,
	)

	// Services
	tariffSvc := tariffservice.NewTariffService(zoneRepo, store, cfg.Logistics.AdvanceRate)
	transportSvc := transportservice.NewTransportService(
		requestRepo, vehicleRepo, transporterRepo, tariffSvc, trackingCache, cfg.Logistics,
	)
	paymentSvc := paymentservice.NewPaymentService(paymentRepo, transportSvc)

	// Handlers
	tariffHdl := tariffhandler.NewTariffHandler(tariffSvc)
	transportHdl := transporthandler.NewTransportHandler(transportSvc)
	paymentHdl := paymenthandler.NewPaymentHandler(paymentSvc)

	srv := server.New(cfg)
	admin := server.AdminOnly(cfg.AdminToken)

	api := srv.App.Group("/api/v1")

	logistics := api.Group("/logistics")
	logistics.Get("/zones", tariffHdl.ListZones)
	logistics.Get("/estimate", tariffHdl.Estimate)
	logistics.Post("/requests", transportHdl.CreatePublic)
	logistics.Post("/requests/internal", admin, transportHdl.CreateInternal)
	logistics.Get("/requests/:id", admin, transportHdl.GetDetail)
	logistics.Patch("/requests/:id/status", admin, transportHdl.UpdateStatus)
	logistics.Patch("/requests/:id/cost", admin, transportHdl.UpdateCost)
	logistics.Patch("/requests/:id/transporter", admin, transportHdl.AssignTransporter)
	logistics.Patch("/requests/:id/notes", admin, transportHdl.UpdateNotes)
	logistics.Get("/track/:id", transportHdl.Track)

	payments := api.Group("/payments")
	payments.Post("/", paymentHdl.Create)
	payments.Get("/:id", admin, paymentHdl.GetByID)
	payments.Post("/:id/confirm", admin, paymentHdl.Confirm)
	payments.Post("/:id/fail", admin, paymentHdl.Fail)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
