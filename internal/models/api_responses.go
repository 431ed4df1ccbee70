// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package models

import (
	"time"
)

// APIResponse is the envelope of every API response.
//
// Status is "success" (see Data) or "error" (see Error).
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable error code with a message.
//
// Codes:
//   - VALIDATION_ERROR: malformed or invalid input
//   - AUTH_FAILED: portal login failed or was rejected
//   - SESSION_EXPIRED: attendance session unknown, expired or rejected
//   - SYNC_IN_PROGRESS: a sync cycle is already running
//   - PORTAL_UNAVAILABLE: portal unreachable or circuit open
//   - SYNC_FAILED: the cycle failed for another reason
//   - NOT_FOUND, INTERNAL_ERROR, RATE_LIMIT_EXCEEDED
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string     `json:"status"`
	LastSync *time.Time `json:"last_sync,omitempty"`
	Database bool       `json:"database"`
}

// SyncNowResponse is returned by POST /api/sync-now.
type SyncNowResponse struct {
	Count      int      `json:"count"`
	Files      []string `json:"files"`
	Message    string   `json:"message"`
	DurationMS int64    `json:"duration_ms"`
}

// SyncStatusResponse is returned by GET /api/status.
type SyncStatusResponse struct {
	Enabled         bool       `json:"enabled"`
	Running         bool       `json:"running"`
	Syncing         bool       `json:"syncing"`
	IntervalSeconds int64      `json:"interval_seconds"`
	AcademicPeriod  string     `json:"academic_period"`
	LastSync        *time.Time `json:"last_sync,omitempty"`
	LastCount       int        `json:"last_count"`
	LastError       string     `json:"last_error,omitempty"`
	TotalFiles      int64      `json:"total_files"`
	CircuitBreaker  string     `json:"circuit_breaker"`
	Sessions        int        `json:"attendance_sessions"`
}

// FileInfo describes one mirrored file.
type FileInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
	URL       string    `json:"url"`
}

// FilesResponse is returned by GET /api/files, grouped by subject.
type FilesResponse struct {
	Subjects map[string][]FileInfo `json:"subjects"`
	Total    int                   `json:"total"`
}

// AttendanceLoginResponse is returned by POST /api/attendance/login.
type AttendanceLoginResponse struct {
	SessionToken string `json:"session_token"`
	StudentID    string `json:"student_id"`
	Username     string `json:"username"`
}

// AttendanceResponse is returned by GET /api/attendance.
type AttendanceResponse struct {
	HTML          string `json:"html"`
	StudentID     string `json:"student_id"`
	Username      string `json:"username"`
	ExtractedName string `json:"extracted_name,omitempty"`
}

// AbsenceDetailsResponse is returned by GET /api/attendance/details.
type AbsenceDetailsResponse struct {
	Details []string `json:"details"`
}

// ProfileResponse is returned by GET /api/attendance/profile.
type ProfileResponse struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
}

// LogoutResponse is returned by POST /api/attendance/logout.
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}
