package main

import (
	"context"
	"log"

	"github.com/educafric/tracking-backend-go/internal/api"
	"github.com/educafric/tracking-backend-go/internal/config"
	"github.com/educafric/tracking-backend-go/internal/database"
	"github.com/educafric/tracking-backend-go/internal/geocode"
	"github.com/educafric/tracking-backend-go/internal/handler"
	"github.com/educafric/tracking-backend-go/internal/notify"
	"github.com/educafric/tracking-backend-go/internal/repository"
	"github.com/educafric/tracking-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	devices := repository.NewDeviceRepository(db)
	settings := repository.NewSettingsRepository(db)
	zones := repository.NewSafeZoneRepository(db)
	status := repository.NewZoneStatusRepository(db)
	locations := repository.NewLocationRepository(db)
	alerts := repository.NewAlertRepository(db)
	contacts := repository.NewContactRepository(db)

	geocoder := geocode.NewClient(cfg.NominatimURL)
	notifier := notify.NewConsoleNotifier()

	deviceService := service.NewDeviceService(devices, settings, zones, contacts, locations)
	trackingService := service.NewTrackingService(
		devices, settings, zones, status, locations, alerts, contacts, geocoder, notifier,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go trackingService.RunOfflineMonitor(ctx, cfg.OfflineSweep)

	router := api.SetupRouter(cfg, api.Handlers{
		Devices:  handler.NewDeviceHandler(deviceService),
		Tracking: handler.NewTrackingHandler(trackingService),
		Alerts:   handler.NewAlertHandler(trackingService),
		Geocode:  handler.NewGeocodeHandler(geocoder),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
