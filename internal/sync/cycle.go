// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/lecturesync/internal/database"
	"github.com/tomtom215/lecturesync/internal/download"
	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/metrics"
	"github.com/tomtom215/lecturesync/internal/portal"
	"github.com/tomtom215/lecturesync/internal/timeline"
)

const timelineEndpoint = "timeline"

// errAbort marks an error that ends the whole cycle.
type errAbort struct{ err error }

func (e *errAbort) Error() string { return e.err.Error() }
func (e *errAbort) Unwrap() error { return e.err }

// cycle carries the session through one run; it may be replaced on re-login.
type cycle struct {
	m    *Manager
	sess *portal.Session
}

// runCycle performs one sync. syncMu must be held.
func (m *Manager) runCycle(ctx context.Context) (*Result, error) {
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	log := logging.Ctx(ctx)

	m.syncing.Store(true)
	defer m.syncing.Store(false)

	start := time.Now()
	result, err := m.cycle(ctx)
	if result != nil {
		result.Duration = time.Since(start)
	}

	switch {
	case err == nil:
		metrics.RecordSyncCycle("success", time.Since(start))
		log.Info().
			Int("new_files", result.Count).
			Int("skipped", result.Skipped).
			Int("failed", result.Failed).
			Dur("duration", result.Duration).
			Msg("Sync cycle completed")
	case portal.IsAuthError(err):
		metrics.RecordSyncCycle("auth_error", time.Since(start))
		log.Error().Err(err).Str("kind", string(portal.AuthErrorKindOf(err))).Msg("Sync cycle failed: authentication")
	default:
		metrics.RecordSyncCycle("error", time.Since(start))
		log.Error().Err(err).Msg("Sync cycle failed")
	}

	m.recordOutcome(result, err)
	return result, err
}

func (m *Manager) cycle(ctx context.Context) (*Result, error) {
	sess, err := m.auth.Session(ctx)
	if err != nil {
		return nil, err
	}
	c := &cycle{m: m, sess: sess}

	var page []byte
	err = c.withSession(ctx, func(s *portal.Session) error {
		var ferr error
		page, ferr = m.fetcher.Fetch(ctx, s, timelineEndpoint, m.cfg.TimelineURL)
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timeline: %w", unwrapAbort(err))
	}

	entries := m.entries(ctx, page)
	logging.Ctx(ctx).Debug().Int("files", len(entries)).Str("period", m.cfg.Period).Msg("Timeline parsed")

	result := &Result{Paths: []string{}}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			result.Count = len(result.Paths)
			return result, err
		}
		path, err := c.syncItem(ctx, entry)
		var abort *errAbort
		switch {
		case errors.As(err, &abort):
			result.Count = len(result.Paths)
			return result, abort.err
		case err != nil:
			result.Failed++
			logging.Ctx(ctx).Warn().Err(err).
				Str("file_id", entry.FileID).
				Str("subject", entry.Subject).
				Msg("Failed to sync file")
		case path == "":
			result.Skipped++
		default:
			result.Paths = append(result.Paths, path)
		}
	}
	result.Count = len(result.Paths)
	return result, nil
}

// entries parses the page, degrading to subject-less ids on a parse error.
func (m *Manager) entries(ctx context.Context, page []byte) []timeline.Entry {
	tl, err := m.cfg.Parser.Parse(page, m.cfg.Period)
	if err == nil {
		return tl.Entries()
	}

	logging.Ctx(ctx).Warn().Err(err).Str("parser", m.cfg.Parser.Name()).Msg("Timeline parse failed, using flat file list")
	ids, ferr := timeline.FlatIDs(page, m.cfg.Period)
	if ferr != nil {
		logging.Ctx(ctx).Error().Err(ferr).Msg("Flat timeline parse failed")
		return nil
	}
	out := make([]timeline.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, timeline.Entry{FileID: id})
	}
	return out
}

// syncItem downloads and records one file. It returns "" for a file
// already seen.
func (c *cycle) syncItem(ctx context.Context, entry timeline.Entry) (string, error) {
	seen, err := c.m.store.Seen(ctx, entry.FileID)
	if err != nil {
		return "", err
	}
	if seen {
		return "", nil
	}

	var file *download.File
	err = c.withSession(ctx, func(s *portal.Session) error {
		var derr error
		file, derr = c.m.downloader.Download(ctx, s, entry.FileID)
		return derr
	})
	if err != nil {
		return "", err
	}

	if _, err := c.m.store.MarkSeen(ctx, database.SyncedItem{
		ID:           entry.FileID,
		Subject:      entry.Subject,
		Filename:     file.Filename,
		UploadDate:   file.UploadDate,
		DownloadedAt: c.m.now(),
	}); err != nil {
		return "", fmt.Errorf("record %s: %w", entry.FileID, err)
	}

	logging.Ctx(ctx).Info().
		Str("file_id", entry.FileID).
		Str("subject", entry.Subject).
		Str("filename", file.Filename).
		Msg("New file synced")
	return file.Path, nil
}

// withSession runs fn with the cycle's session. On an auth error the session
// is dropped, a fresh login made and fn retried once. Failing to log in, or
// a second rejection, ends the cycle.
func (c *cycle) withSession(ctx context.Context, fn func(*portal.Session) error) error {
	err := fn(c.sess)
	if !portal.IsAuthError(err) {
		return err
	}

	logging.Ctx(ctx).Warn().Err(err).Msg("Session rejected, logging in again")
	c.m.auth.Invalidate()
	sess, lerr := c.m.auth.Login(ctx)
	if lerr != nil {
		return &errAbort{err: lerr}
	}
	c.sess = sess

	if err := fn(sess); err != nil {
		if portal.IsAuthError(err) {
			return &errAbort{err: err}
		}
		return err
	}
	return nil
}

func unwrapAbort(err error) error {
	var abort *errAbort
	if errors.As(err, &abort) {
		return abort.err
	}
	return err
}
