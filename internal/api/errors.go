// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/tomtom215/lecturesync/internal/attendance"
	"github.com/tomtom215/lecturesync/internal/portal"
	syncpkg "github.com/tomtom215/lecturesync/internal/sync"
)

// API error codes
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeAuthFailed        = "AUTH_FAILED"
	CodeSessionExpired    = "SESSION_EXPIRED"
	CodeSyncInProgress    = "SYNC_IN_PROGRESS"
	CodePortalUnavailable = "PORTAL_UNAVAILABLE"
	CodeSyncFailed        = "SYNC_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
)

// apiFailure is the client-facing form of an internal error.
type apiFailure struct {
	status  int
	code    string
	message string
}

// portalUnavailable reports whether err means the portal could not be reached
// or is failing on its side.
func portalUnavailable(err error) bool {
	if errors.Is(err, portal.ErrCircuitOpen) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var statusErr *portal.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// classifySyncError maps a SyncOnce error to a response.
func classifySyncError(err error) apiFailure {
	switch {
	case errors.Is(err, syncpkg.ErrSyncInProgress):
		return apiFailure{http.StatusConflict, CodeSyncInProgress, "A sync is already running"}
	case portal.IsAuthError(err):
		return apiFailure{http.StatusUnauthorized, CodeAuthFailed, "Portal authentication failed"}
	case portalUnavailable(err):
		return apiFailure{http.StatusServiceUnavailable, CodePortalUnavailable, "Portal is unavailable, try again later"}
	default:
		return apiFailure{http.StatusInternalServerError, CodeSyncFailed, "Sync failed"}
	}
}

// classifyAttendanceError maps an attendance service error to a response.
func classifyAttendanceError(err error) apiFailure {
	switch {
	case errors.Is(err, attendance.ErrInvalidToken), errors.Is(err, attendance.ErrSessionExpired):
		return apiFailure{http.StatusUnauthorized, CodeSessionExpired, "Session expired or invalid, please login again"}
	case errors.Is(err, attendance.ErrProfileNotFound):
		return apiFailure{http.StatusNotFound, CodeNotFound, "Student profile not found"}
	case portal.IsAuthError(err):
		return apiFailure{http.StatusUnauthorized, CodeAuthFailed, "Invalid username or password"}
	case portalUnavailable(err):
		return apiFailure{http.StatusServiceUnavailable, CodePortalUnavailable, "Portal is unavailable, try again later"}
	default:
		return apiFailure{http.StatusInternalServerError, CodeInternal, "Attendance request failed"}
	}
}
