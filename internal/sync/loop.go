// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package sync

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/metrics"
	"github.com/tomtom215/lecturesync/internal/portal"
)

// SyncForever waits the initial delay, then runs a cycle every interval
// until ctx is cancelled.
func (m *Manager) SyncForever(ctx context.Context) {
	if m.cfg.InitialDelay > 0 {
		timer := time.NewTimer(m.cfg.InitialDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		m.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick runs one scheduled cycle unless an on-demand cycle holds the lock.
func (m *Manager) tick(ctx context.Context) {
	if !m.syncMu.TryLock() {
		metrics.RecordSyncCycle("skipped", 0)
		logging.Info().Msg("Scheduled sync skipped: a sync is already running")
		return
	}
	defer m.syncMu.Unlock()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	_, err := m.runCycle(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	if portal.IsAuthError(err) {
		m.auth.Invalidate()
		if _, lerr := m.auth.Login(ctx); lerr != nil {
			logging.Ctx(ctx).Error().Err(lerr).Msg("Re-login after sync failure failed")
		}
	}
}
