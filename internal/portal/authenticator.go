// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"context"
	"sync"

	"github.com/tomtom215/lecturesync/internal/logging"
)

// Loginer performs a portal login.
type Loginer interface {
	Login(ctx context.Context, creds Credentials) (*Session, error)
}

// Authenticator holds the session used by the sync loop. Concurrent callers
// share one session and never run two logins at once.
type Authenticator struct {
	client Loginer
	creds  Credentials

	mu   sync.Mutex
	sess *Session
}

// NewAuthenticator creates a session holder for the given credentials.
func NewAuthenticator(client Loginer, creds Credentials) *Authenticator {
	return &Authenticator{client: client, creds: creds}
}

// Session returns the cached session if it is still live, otherwise logs in.
func (a *Authenticator) Session(ctx context.Context) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sess != nil && a.sess.IsLive() {
		return a.sess, nil
	}
	return a.loginLocked(ctx)
}

// Login forces a fresh login and caches the result.
func (a *Authenticator) Login(ctx context.Context) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loginLocked(ctx)
}

// Invalidate drops the cached session.
func (a *Authenticator) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sess != nil {
		a.sess.Invalidate()
		a.sess = nil
		logging.Debug().Str("component", "portal").Msg("Portal session invalidated")
	}
}

// HasSession reports whether a live session is cached.
func (a *Authenticator) HasSession() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sess != nil && a.sess.IsLive()
}

func (a *Authenticator) loginLocked(ctx context.Context) (*Session, error) {
	if a.sess != nil {
		a.sess.Invalidate()
		a.sess = nil
	}
	sess, err := a.client.Login(ctx, a.creds)
	if err != nil {
		return nil, err
	}
	a.sess = sess
	return sess, nil
}
