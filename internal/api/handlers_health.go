// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/lecturesync/internal/models"
)

// Health reports liveness, database reachability and the last sync time.
// It always answers 200.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	status := "ok"
	if !dbConnected {
		status = "degraded"
	}

	var lastSyncPtr *time.Time
	if h.sync != nil {
		if lastSync := h.sync.Status().LastSync; !lastSync.IsZero() {
			lastSyncPtr = &lastSync
		}
	}

	respondSuccess(w, r, models.HealthResponse{
		Status:   status,
		LastSync: lastSyncPtr,
		Database: dbConnected,
	}, start)
}
