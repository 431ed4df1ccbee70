// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package services

import (
	"context"
	"time"
)

// defaultSweepInterval applies when no interval is configured.
const defaultSweepInterval = 5 * time.Minute

// SessionRunner is satisfied by *sessioncache.Cache.
type SessionRunner interface {
	Run(ctx context.Context, interval time.Duration) error
}

// SessionSweeperService evicts expired attendance sessions on an interval.
type SessionSweeperService struct {
	cache    SessionRunner
	interval time.Duration
	name     string
}

// NewSessionSweeperService creates a sweeper. A non-positive interval
// defaults to 5 minutes.
func NewSessionSweeperService(cache SessionRunner, interval time.Duration) *SessionSweeperService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SessionSweeperService{
		cache:    cache,
		interval: interval,
		name:     "session-sweeper",
	}
}

// Serve implements suture.Service.
func (s *SessionSweeperService) Serve(ctx context.Context) error {
	return s.cache.Run(ctx, s.interval)
}

// String implements fmt.Stringer for suture logs.
func (s *SessionSweeperService) String() string {
	return s.name
}
