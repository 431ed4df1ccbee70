// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package main is the entry point for the LectureSync server.
//
// LectureSync logs in to an academic portal through its OpenID Connect
// identity provider, reads the lecture timeline of the configured academic
// period and mirrors every new file into a local directory. The same
// portal client backs a small attendance API for students.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config file, environment (Koanf v2)
//  2. Database: DuckDB dedup store of synced file ids
//  3. Portal client: paced, circuit-breaker guarded HTTP client
//  4. Sync manager: timeline parser, download manager, dedup store
//  5. Attendance: session cache and attendance service
//  6. HTTP server: chi router with the REST API and mirrored files
//  7. Supervisor tree: runs the sync loop, session sweeper and HTTP server
//
// # Configuration
//
// Portal (defaults point at the production portal):
//   - APP_BASE_URL, IDENTITY_BASE_URL
//   - PORTAL_USERNAME, PORTAL_PASSWORD (sync loop credentials)
//
// Common:
//   - SYNC_INTERVAL_SECONDS (default: 3600)
//   - ACADEMIC_PERIOD (default: 2025-2026)
//   - STORAGE_DIR (default: lectures_storage)
//   - DUCKDB_PATH (default: data/lecture_sync.duckdb)
//   - HTTP_PORT (default: 8000)
//   - CORS_ORIGINS (default: *)
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests, the sync loop finishes the cycle in progress and the
// database is checkpointed and closed.
//
// # Example Usage
//
//	export APP_BASE_URL=https://portal.example.edu
//	export IDENTITY_BASE_URL=https://identity.example.edu
//	export PORTAL_USERNAME=student01
//	export PORTAL_PASSWORD=secret
//	./lecturesync
package main
