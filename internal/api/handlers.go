// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package api

import (
	"context"
	"time"

	"github.com/tomtom215/lecturesync/internal/attendance"
	"github.com/tomtom215/lecturesync/internal/config"
	syncpkg "github.com/tomtom215/lecturesync/internal/sync"
)

// Syncer runs sync cycles. Implemented by sync.Manager.
type Syncer interface {
	SyncOnce(ctx context.Context) (*syncpkg.Result, error)
	Status() syncpkg.Status
}

// SyncedItemStore is the read side of the dedup store. Implemented by database.DB.
type SyncedItemStore interface {
	Ping(ctx context.Context) error
	SubjectsByFilename(ctx context.Context) (map[string]string, error)
	CountSyncedItems(ctx context.Context) (int64, error)
}

// AttendanceService is implemented by attendance.Service.
type AttendanceService interface {
	Login(ctx context.Context, username, password string) (*attendance.LoginResult, error)
	Attendance(ctx context.Context, token string) (*attendance.Report, error)
	AbsenceDetails(ctx context.Context, token, studentClassID string) ([]string, error)
	Profile(ctx context.Context, token string) (*attendance.Profile, error)
	Logout(token string) bool
}

// BreakerStater reports the portal circuit breaker state. Implemented by portal.Client.
type BreakerStater interface {
	BreakerState() string
}

// SessionCounter reports live attendance sessions. Implemented by sessioncache.Cache.
type SessionCounter interface {
	Len() int
}

// Dependencies are the services behind the handlers. Breaker and Sessions
// are optional.
type Dependencies struct {
	Sync       Syncer
	Store      SyncedItemStore
	Attendance AttendanceService
	Breaker    BreakerStater
	Sessions   SessionCounter
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: GET /health
//   - handlers_sync.go: sync trigger and status
//   - handlers_files.go: mirrored file listing and static files
//   - handlers_attendance.go: attendance login, report, details, profile, logout
type Handler struct {
	config     *config.Config
	sync       Syncer
	store      SyncedItemStore
	attendance AttendanceService
	breaker    BreakerStater
	sessions   SessionCounter
	startTime  time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, deps Dependencies) *Handler {
	return &Handler{
		config:     cfg,
		sync:       deps.Sync,
		store:      deps.Store,
		attendance: deps.Attendance,
		breaker:    deps.Breaker,
		sessions:   deps.Sessions,
		startTime:  time.Now(),
	}
}

func (h *Handler) storageDir() string {
	return h.config.Sync.StorageDir
}
