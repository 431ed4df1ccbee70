// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package download streams lecture files from the portal into the storage
// directory.
//
// Each file is written to a temporary file next to its destination and
// renamed once complete, so a partially downloaded file is never visible
// under its final name.
package download
