// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/lecturesync/internal/database"
	"github.com/tomtom215/lecturesync/internal/download"
	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/portal"
	"github.com/tomtom215/lecturesync/internal/timeline"
)

// ErrSyncInProgress is returned when a cycle is already running.
var ErrSyncInProgress = errors.New("sync already in progress")

// SessionProvider hands out portal sessions. *portal.Authenticator implements it.
type SessionProvider interface {
	Session(ctx context.Context) (*portal.Session, error)
	Login(ctx context.Context) (*portal.Session, error)
	Invalidate()
}

// PageFetcher reads a portal page with a session. *portal.Client implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, sess *portal.Session, endpoint, rawURL string) ([]byte, error)
}

// Downloader fetches one file by id. *download.Manager implements it.
type Downloader interface {
	Download(ctx context.Context, sess *portal.Session, fileID string) (*download.File, error)
}

// Store is the dedup store. *database.DB implements it.
type Store interface {
	Seen(ctx context.Context, id string) (bool, error)
	MarkSeen(ctx context.Context, item database.SyncedItem) (bool, error)
}

// Config holds the cycle and loop settings.
type Config struct {
	TimelineURL  string
	Period       string
	Interval     time.Duration
	InitialDelay time.Duration
	Parser       timeline.Parser
}

// Result summarizes one cycle.
type Result struct {
	Count    int
	Paths    []string
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Status is a snapshot of the manager for the status endpoint.
type Status struct {
	Running    bool
	Syncing    bool
	Interval   time.Duration
	LastSync   time.Time
	LastResult *Result
	LastError  string
}

// Manager runs sync cycles on demand and on a schedule.
type Manager struct {
	auth       SessionProvider
	fetcher    PageFetcher
	downloader Downloader
	store      Store
	cfg        Config
	now        func() time.Time

	mu         sync.RWMutex
	running    bool
	cancel     context.CancelFunc
	lastSync   time.Time
	lastResult *Result
	lastErr    error

	syncMu  sync.Mutex // one cycle at a time
	syncing atomic.Bool
	wg      sync.WaitGroup
}

// NewManager creates a sync manager. A nil Parser selects the structured chain.
func NewManager(auth SessionProvider, fetcher PageFetcher, downloader Downloader, store Store, cfg Config) *Manager {
	if cfg.Parser == nil {
		cfg.Parser = timeline.New(timeline.StrategyStructured)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Manager{
		auth:       auth,
		fetcher:    fetcher,
		downloader: downloader,
		store:      store,
		cfg:        cfg,
		now:        time.Now,
	}
}

// SyncOnce runs one cycle, or returns ErrSyncInProgress if one is running.
func (m *Manager) SyncOnce(ctx context.Context) (*Result, error) {
	if !m.syncMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer m.syncMu.Unlock()

	return m.runCycle(ctx)
}

// TriggerSync runs an on-demand cycle on the caller's goroutine.
func (m *Manager) TriggerSync(ctx context.Context) (*Result, error) {
	logging.Ctx(ctx).Info().Msg("Manual sync triggered")
	return m.SyncOnce(ctx)
}

// Start launches SyncForever in the background.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync manager is already running")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	m.running = true
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	logging.Info().
		Dur("interval", m.cfg.Interval).
		Dur("initial_delay", m.cfg.InitialDelay).
		Str("period", m.cfg.Period).
		Msg("Starting sync manager")

	go func() {
		defer m.wg.Done()
		m.SyncForever(loopCtx)
	}()
	return nil
}

// Stop cancels the loop and waits for it, including a cycle in flight.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync manager is not running")
	}
	m.running = false
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	logging.Info().Msg("Stopping sync manager...")
	cancel()
	m.wg.Wait()
	logging.Info().Msg("Sync manager stopped")
	return nil
}

// LastSyncTime returns the end time of the last successful cycle.
func (m *Manager) LastSyncTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSync
}

// LastResult returns the result of the last successful cycle, or nil.
func (m *Manager) LastResult() *Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastResult
}

// Status returns a snapshot of the manager state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Status{
		Running:    m.running,
		Syncing:    m.syncing.Load(),
		Interval:   m.cfg.Interval,
		LastSync:   m.lastSync,
		LastResult: m.lastResult,
	}
	if m.lastErr != nil {
		s.LastError = m.lastErr.Error()
	}
	return s
}

func (m *Manager) recordOutcome(result *Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = err
	if err == nil {
		m.lastSync = m.now()
		m.lastResult = result
	}
}
