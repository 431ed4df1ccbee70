// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package database is the dedup store of LectureSync, backed by DuckDB.
//
// # Overview
//
// Every file the sync loop has downloaded is recorded in one table,
// synced_items, keyed by the portal file id. The sync loop consults the
// store before each download and writes to it only after the file is
// safely on disk, so a crash between the two steps leads to a repeated
// download rather than a lost file.
//
// # Files
//
//   - database.go: connection lifecycle (open, pool, ping, close)
//   - schema.go: table creation
//   - synced_items.go: Seen, MarkSeen and the listing queries used by the API
//   - errors.go: close helpers
//
// # Database Technology
//
// DuckDB through the CGO driver github.com/duckdb/duckdb-go/v2. Tests run
// against ":memory:" databases.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	seen, err := db.Seen(ctx, fileID)
//	inserted, err := db.MarkSeen(ctx, database.SyncedItem{ID: fileID, ...})
//
// # Thread Safety
//
// *DB is safe for concurrent use; database/sql pools the connections.
package database
