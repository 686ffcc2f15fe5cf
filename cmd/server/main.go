package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	httpapi "equipment-tracker/internal/api/http"
	"equipment-tracker/internal/config"
	"equipment-tracker/internal/jobs"
	"equipment-tracker/internal/logger"
	"equipment-tracker/internal/metrics"
	"equipment-tracker/internal/repository/postgres"
	"equipment-tracker/internal/scheduler"
	"equipment-tracker/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("scheduler", true, "Run the report jobs in-process")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// run returns before exiting so its deferred cleanup always happens
	if err := run(cfg, *withScheduler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("Equipment Tracker stopped. Goodbye!", "uptime", time.Since(startedAt).Round(time.Second).String())
}

func run(cfg *config.Config, withScheduler bool) error {

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Equipment Tracker...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	dsn := cfg.GetDatabaseConnectionString()
	db, err := postgres.Open(ctx, cfg.Database.Driver, dsn)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	equipmentService := service.NewEquipmentService(store.EquipmentRepository)
	rentalEntryService := service.NewRentalEntryService(store.RentalEntryRepository)
	fleetService := service.NewFleetService(store.EquipmentRepository)

	m := metrics.New()
	broker := httpapi.NewSSEBroker(m)

	// Change subscription: notifications trigger a full re-fetch pushed to stream clients
	if cfg.Database.NotifyChannel != "" {
		listener := postgres.NewChangeListener(dsn, cfg.Database.NotifyChannel)
		refresher := httpapi.NewRefresher(equipmentService, broker, m)
		go refresher.Run(ctx, listener.Changes())
		go func() {
			if err := listener.Run(ctx); err != nil {
				logger.Error("Change listener stopped", "error", err)
			}
		}()
		defer listener.Close()
	} else {
		logger.Info("Change listener disabled")
	}

	// Initialize Scheduler
	if withScheduler {
		jobRunner := jobs.NewJobRunner(fleetService, m, cfg)
		cronScheduler := scheduler.NewScheduler(jobRunner)
		cronScheduler.Start()
		defer cronScheduler.Stop()
		// populate the fleet gauges before the first tick
		go jobRunner.RecordFleetStatus()
	}

	handler := httpapi.NewHandler(httpapi.Dependencies{
		Equipment: equipmentService,
		Rentals:   rentalEntryService,
		Broker:    broker,
		Metrics:   m,
		DB:        store,
		Board:     cfg.Board,
		Server:    cfg.Server,
	})

	if err := serve(ctx, cfg, handler.Routes(), broker.Close); err != nil {
		logger.Error("Server error", "error", err)
		return err
	}
	return nil
}
