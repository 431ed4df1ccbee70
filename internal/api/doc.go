// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package api provides the HTTP layer of LectureSync.

Routes:

	GET  /health                      liveness plus last sync time
	POST /api/sync-now                run one sync cycle and report new files
	GET  /api/status                  loop state and last result
	GET  /api/files                   mirrored files grouped by subject
	GET  /files/*                     mirrored files themselves
	POST /api/attendance/login        portal login, returns a session token
	GET  /api/attendance              raw attendance page for the student
	GET  /api/attendance/details      absence rows for one class
	GET  /api/attendance/profile      student name from the profile page
	POST /api/attendance/logout       drop the session token
	GET  /metrics                     Prometheus

Every JSON response uses the models.APIResponse envelope. Attendance
requests carry the session token in X-Session-Token or as a Bearer
Authorization header.

Usage Example:

	handler := api.NewHandler(cfg, api.Dependencies{
	    Sync:       syncMgr,
	    Store:      db,
	    Attendance: attendanceSvc,
	    Breaker:    portalClient,
	    Sessions:   sessionCache,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Server))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
