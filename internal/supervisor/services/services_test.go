// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/lecturesync/internal/sessioncache"
)

var (
	_ suture.Service = (*SyncService)(nil)
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*SessionSweeperService)(nil)
)

// =====================================================
// SyncService
// =====================================================

type mockSyncManager struct {
	started    atomic.Bool
	stopped    atomic.Bool
	startError error
	stopError  error
}

func (m *mockSyncManager) Start(context.Context) error {
	if m.startError != nil {
		return m.startError
	}
	m.started.Store(true)
	return nil
}

func (m *mockSyncManager) Stop() error {
	m.stopped.Store(true)
	return m.stopError
}

func TestSyncService(t *testing.T) {
	t.Run("starts and stops manager", func(t *testing.T) {
		mgr := &mockSyncManager{}
		svc := NewSyncService(mgr)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		for i := 0; i < 50 && !mgr.started.Load(); i++ {
			time.Sleep(10 * time.Millisecond)
		}
		if !mgr.started.Load() {
			t.Fatal("sync manager was not started")
		}

		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if !mgr.stopped.Load() {
			t.Error("sync manager was not stopped")
		}
	})

	t.Run("returns start error", func(t *testing.T) {
		mgr := &mockSyncManager{startError: errors.New("already running")}
		err := NewSyncService(mgr).Serve(context.Background())
		if err == nil || mgr.stopped.Load() {
			t.Errorf("Serve() = %v, stopped = %v", err, mgr.stopped.Load())
		}
	})

	t.Run("returns stop error", func(t *testing.T) {
		mgr := &mockSyncManager{stopError: errors.New("not running")}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := NewSyncService(mgr).Serve(ctx); err == nil || errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want stop failure", err)
		}
	})

	if got := NewSyncService(&mockSyncManager{}).String(); got != "sync-manager" {
		t.Errorf("String() = %q", got)
	}
}

// =====================================================
// HTTPServerService
// =====================================================

type mockHTTPServer struct {
	listenErr error
	shutdown  atomic.Bool
	closed    chan struct{}
}

func newMockHTTPServer(listenErr error) *mockHTTPServer {
	return &mockHTTPServer{listenErr: listenErr, closed: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.closed
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	if m.shutdown.CompareAndSwap(false, true) {
		close(m.closed)
	}
	return nil
}

func TestHTTPServerService(t *testing.T) {
	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		srv := newMockHTTPServer(nil)
		svc := NewHTTPServerService(srv, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
		if !srv.shutdown.Load() {
			t.Error("Shutdown was not called")
		}
	})

	t.Run("listen failure is returned", func(t *testing.T) {
		svc := NewHTTPServerService(newMockHTTPServer(errors.New("address in use")), time.Second)
		err := svc.Serve(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("default shutdown timeout", func(t *testing.T) {
		svc := NewHTTPServerService(newMockHTTPServer(nil), 0)
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
		}
	})
}

// =====================================================
// SessionSweeperService
// =====================================================

func TestSessionSweeperService(t *testing.T) {
	now := time.Now()
	var offset atomic.Int64
	cache := sessioncache.New(time.Minute, sessioncache.WithClock(func() time.Time {
		return now.Add(time.Duration(offset.Load()))
	}))
	if _, err := cache.Create("student01", "student01", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	offset.Store(int64(2 * time.Minute))

	svc := NewSessionSweeperService(cache, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	for i := 0; i < 100 && cache.Len() > 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want expired session swept", cache.Len())
	}
	if got := NewSessionSweeperService(cache, 0).interval; got != defaultSweepInterval {
		t.Errorf("default interval = %v", got)
	}
}
