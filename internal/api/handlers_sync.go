// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/models"
)

// SyncNow runs one sync cycle and reports the files it downloaded.
//
// The cycle runs on the request context; a client that disconnects cancels
// the remaining downloads.
func (h *Handler) SyncNow(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.sync.SyncOnce(r.Context())
	if err != nil {
		f := classifySyncError(err)
		respondError(w, r, f.status, f.code, f.message, err)
		return
	}

	files := make([]string, 0, len(result.Paths))
	for _, p := range result.Paths {
		files = append(files, filepath.Base(p))
	}

	logging.Ctx(r.Context()).Info().
		Int("new_files", result.Count).
		Int("failed", result.Failed).
		Msg("Manual sync completed")

	respondSuccess(w, r, models.SyncNowResponse{
		Count:      result.Count,
		Files:      files,
		Message:    fmt.Sprintf("Synced %d new file(s)", result.Count),
		DurationMS: result.Duration.Milliseconds(),
	}, start)
}

// SyncStatus reports the loop state and the outcome of the last cycle.
func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	st := h.sync.Status()
	resp := models.SyncStatusResponse{
		Enabled:         h.config.Sync.Enabled,
		Running:         st.Running,
		Syncing:         st.Syncing,
		IntervalSeconds: int64(st.Interval / time.Second),
		AcademicPeriod:  h.config.Sync.AcademicPeriod,
		LastError:       st.LastError,
		CircuitBreaker:  "unknown",
	}
	if !st.LastSync.IsZero() {
		lastSync := st.LastSync
		resp.LastSync = &lastSync
	}
	if st.LastResult != nil {
		resp.LastCount = st.LastResult.Count
	}
	if h.breaker != nil {
		resp.CircuitBreaker = h.breaker.BreakerState()
	}
	if h.sessions != nil {
		resp.Sessions = h.sessions.Len()
	}
	if h.store != nil {
		total, err := h.store.CountSyncedItems(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to count synced items")
		}
		resp.TotalFiles = total
	}

	respondSuccess(w, r, resp, start)
}
