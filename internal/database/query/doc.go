// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package query provides SQL query building utilities for the database package.
//
// WhereBuilder assembles parameterized WHERE clauses so filter values are
// always bound as arguments and never interpolated into SQL:
//
//	wb := query.NewWhereBuilder().
//	    AddEquals("subject", "Linear Algebra").
//	    AddSince("downloaded_at", &since)
//	where, args := wb.Build()
//	// WHERE subject = ? AND downloaded_at >= ?
package query
