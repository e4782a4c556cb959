package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/api"
	"github.com/alumninet/alumninet-be/internal/auth"
	"github.com/alumninet/alumninet-be/internal/config"
	"github.com/alumninet/alumninet-be/internal/database"
	"github.com/alumninet/alumninet-be/internal/logger"
	"github.com/alumninet/alumninet-be/internal/monitoring"
	"github.com/alumninet/alumninet-be/internal/seed"
	"github.com/alumninet/alumninet-be/internal/services"
	"github.com/alumninet/alumninet-be/internal/store"
	"github.com/alumninet/alumninet-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.JWTSecret == "dev-secret-change-me" {
		log.Warn().Msg("JWT_SECRET is not set; using the development default")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the record store and provision it on first start
	recordStore := store.New(db)
	userService := services.NewUserService(db)
	if err := seed.Load(userService, recordStore, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	// Set up the activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokenService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(db, hub)
	profileService := services.NewProfileService(recordStore, eventService)
	jobService := services.NewJobService(recordStore, eventService)
	backupService, err := services.NewBackupService(recordStore, eventService, cfg.BackupPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize backup service")
	}

	// Set up and run the background stat updater
	statUpdater := monitoring.NewStatUpdater(eventService, hub)
	go statUpdater.Run()

	// Set up and run the maintenance scheduler
	scheduler := monitoring.NewScheduler(backupService, jobService)
	if err := scheduler.Start(cfg.BackupSchedule, cfg.SweepSchedule, cfg.JobRetentionDays); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	// Set up router
	router := api.NewRouter(tokenService, userService, profileService, jobService, eventService, statUpdater, hub, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
