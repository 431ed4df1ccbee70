// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/lecturesync/internal/database/query"
	"github.com/tomtom215/lecturesync/internal/metrics"
)

// SyncedItem is one downloaded portal file. Subject is empty when the file
// was found without subject attribution.
type SyncedItem struct {
	ID           string
	Subject      string
	Filename     string
	UploadDate   time.Time
	DownloadedAt time.Time
}

// ListFilter narrows ListSyncedItems. Zero values mean no filter.
type ListFilter struct {
	Subject string
	Since   *time.Time
	Limit   int
}

// Seen reports whether the file id has already been downloaded.
func (db *DB) Seen(ctx context.Context, id string) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM synced_items WHERE id = ?)`, id).Scan(&exists)
	metrics.RecordDBQuery("seen", syncedItemsTable, time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to check synced item %s: %w", id, err)
	}
	return exists, nil
}

// MarkSeen records a downloaded file. Recording an id twice is a no-op;
// inserted reports whether a row was written. DownloadedAt defaults to now.
func (db *DB) MarkSeen(ctx context.Context, item SyncedItem) (bool, error) {
	if item.ID == "" {
		return false, ErrInvalidItem
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	downloadedAt := item.DownloadedAt
	if downloadedAt.IsZero() {
		downloadedAt = time.Now()
	}

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO synced_items (id, subject, filename, upload_date, downloaded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		item.ID,
		nullString(item.Subject),
		nullString(item.Filename),
		nullTime(item.UploadDate),
		downloadedAt.UTC(),
	)
	metrics.RecordDBQuery("mark_seen", syncedItemsTable, time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to record synced item %s: %w", item.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// ListSyncedItems returns recorded files, most recently downloaded first.
func (db *DB) ListSyncedItems(ctx context.Context, filter ListFilter) ([]SyncedItem, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().
		AddEquals("subject", filter.Subject).
		AddSince("downloaded_at", filter.Since).
		Build()

	q := `SELECT id, subject, filename, upload_date, downloaded_at FROM synced_items ` +
		where + ` ORDER BY downloaded_at DESC, id`
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, q, args...)
	metrics.RecordDBQuery("list", syncedItemsTable, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list synced items: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var items []SyncedItem
	for rows.Next() {
		var (
			item                     SyncedItem
			subject, filename        sql.NullString
			uploadDate, downloadedAt sql.NullTime
		)
		if err := rows.Scan(&item.ID, &subject, &filename, &uploadDate, &downloadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan synced item: %w", err)
		}
		item.Subject = subject.String
		item.Filename = filename.String
		item.UploadDate = uploadDate.Time
		item.DownloadedAt = downloadedAt.Time
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate synced items: %w", err)
	}
	return items, nil
}

// SubjectsByFilename maps stored filenames to their subject. Files recorded
// without a subject are omitted.
func (db *DB) SubjectsByFilename(ctx context.Context) (map[string]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT filename, subject FROM synced_items
		WHERE filename IS NOT NULL AND subject IS NOT NULL
		ORDER BY downloaded_at`)
	metrics.RecordDBQuery("subjects_by_filename", syncedItemsTable, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer closeWithLog(rows, "rows")

	subjects := make(map[string]string)
	for rows.Next() {
		var filename, subject string
		if err := rows.Scan(&filename, &subject); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects[filename] = subject
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}
	return subjects, nil
}

// CountSyncedItems returns the number of recorded files.
func (db *DB) CountSyncedItems(ctx context.Context) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var n int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM synced_items`).Scan(&n)
	metrics.RecordDBQuery("count", syncedItemsTable, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count synced items: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
