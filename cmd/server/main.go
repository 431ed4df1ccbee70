// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/lecturesync/internal/api"
	"github.com/tomtom215/lecturesync/internal/attendance"
	"github.com/tomtom215/lecturesync/internal/config"
	"github.com/tomtom215/lecturesync/internal/database"
	"github.com/tomtom215/lecturesync/internal/download"
	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/portal"
	"github.com/tomtom215/lecturesync/internal/sessioncache"
	"github.com/tomtom215/lecturesync/internal/supervisor"
	"github.com/tomtom215/lecturesync/internal/supervisor/services"
	"github.com/tomtom215/lecturesync/internal/sync"
	"github.com/tomtom215/lecturesync/internal/timeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("app_url", cfg.Portal.AppURL).
		Str("username", logging.RedactUsername(cfg.Portal.Username)).
		Str("period", cfg.Sync.AcademicPeriod).
		Str("storage_dir", cfg.Sync.StorageDir).
		Str("db_path", cfg.Database.Path).
		Bool("sync_enabled", cfg.Sync.Enabled).
		Msg("Configuration loaded")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	client, err := portal.NewClient(&cfg.Portal)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create portal client")
	}
	authenticator := portal.NewAuthenticator(client, portal.Credentials{
		Username: cfg.Portal.Username,
		Password: cfg.Portal.Password,
	})

	downloads, err := download.NewManager(client, client.Endpoint(cfg.Portal.DownloadPath), cfg.Sync.StorageDir, cfg.Portal.DownloadTimeout)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create download manager")
	}

	strategy, err := timeline.ParseStrategy(cfg.Sync.ParserStrategy)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid parser strategy")
	}

	syncManager := sync.NewManager(authenticator, client, downloads, db, sync.Config{
		TimelineURL:  client.Endpoint(cfg.Portal.TimelinePath),
		Period:       cfg.Sync.AcademicPeriod,
		Interval:     cfg.Sync.EffectiveInterval(),
		InitialDelay: cfg.Sync.InitialDelay,
		Parser:       timeline.New(strategy),
	})

	sessions := sessioncache.New(cfg.Session.TTL)
	attendanceSvc := attendance.NewService(client, sessions, attendance.Config{
		AttendanceURL: client.Endpoint(cfg.Portal.AttendancePath),
		DetailsURL:    client.Endpoint(cfg.Portal.AbsenceDetailsPath),
		ProfileURL:    client.Endpoint(cfg.Portal.ProfilePath),
		Timeout:       cfg.Portal.AttendanceTimeout,
	})

	handler := api.NewHandler(cfg, api.Dependencies{
		Sync:       syncManager,
		Store:      db,
		Attendance: attendanceSvc,
		Breaker:    client,
		Sessions:   sessions,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Server))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// sync-now and file downloads outlast the request timeout
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewSessionSweeperService(sessions, cfg.Session.CleanupInterval))
	if cfg.Sync.Enabled {
		tree.AddSyncService(services.NewSyncService(syncManager))
		logging.Info().Dur("interval", cfg.Sync.EffectiveInterval()).Msg("Sync manager added to supervisor tree")
	} else {
		logging.Info().Msg("Scheduled sync disabled (SYNC_ENABLED=false); POST /api/sync-now still works")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly one value and is never closed
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // best effort diagnostics
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("LectureSync stopped")
}
