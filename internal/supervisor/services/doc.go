// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package services adapts LectureSync components to suture.Service.

  - SyncService: sync.Manager Start/Stop lifecycle
  - HTTPServerService: *http.Server with graceful shutdown
  - SessionSweeperService: periodic eviction of expired attendance sessions

Each wrapper implements fmt.Stringer so suture logs a readable name.
*/
package services
