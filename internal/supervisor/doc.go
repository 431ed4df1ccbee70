// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package supervisor runs the long-lived parts of LectureSync under suture v4.

The tree isolates failures by layer:

	RootSupervisor ("lecturesync")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── SessionSweeperService
	├── SyncSupervisor ("sync-layer")
	│   └── SyncService (if SYNC_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed sync loop is restarted with backoff while the API keeps serving
files and attendance requests. Supervisor events are logged through
sutureslog into the zerolog stream:

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	tree.AddSyncService(services.NewSyncService(syncManager))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
