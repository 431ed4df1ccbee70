// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package models defines the JSON shapes served by the HTTP API.
//
// Every response is wrapped in APIResponse:
//
//	{"status": "success", "data": {...}, "metadata": {"timestamp": "..."}}
//	{"status": "error", "error": {"code": "SYNC_IN_PROGRESS", "message": "..."}, "metadata": {...}}
package models
