// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package database

import (
	"context"
	"fmt"
	"time"
)

const syncedItemsTable = "synced_items"

var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS synced_items (
		id TEXT PRIMARY KEY,
		subject TEXT,
		filename TEXT,
		upload_date TIMESTAMP,
		downloaded_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_synced_items_filename ON synced_items(filename)`,
}

// createTables creates the schema if it does not exist.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, q := range schemaQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
