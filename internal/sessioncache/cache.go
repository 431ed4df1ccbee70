// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package sessioncache holds short-lived attendance sessions in memory,
// addressed by an opaque random token.
//
// Expiry is absolute: an entry lives for TTL from its creation no matter
// how often it is read. Expired entries are removed lazily by Get and in
// bulk by Cleanup, which Run calls on a ticker.
package sessioncache

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/metrics"
)

const tokenBytes = 32

// Eviction reasons reported to metrics.
const (
	ReasonExpired  = "expired"
	ReasonLogout   = "logout"
	ReasonRejected = "rejected"
)

// ErrEmptyOwner is returned by Create when no owner id is given.
var ErrEmptyOwner = errors.New("session owner id is required")

// Entry is one cached session. Values returned by the cache are copies.
type Entry struct {
	Token          string
	OwnerID        string
	Username       string
	Cookies        []*http.Cookie
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Stats tracks cache activity.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// Cache is a mutex-guarded token to Entry map with absolute TTL.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache.
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Create stores a new session and returns its token.
func (c *Cache) Create(ownerID, username string, cookies []*http.Cookie) (string, error) {
	if ownerID == "" {
		return "", ErrEmptyOwner
	}
	token, err := newToken()
	if err != nil {
		return "", err
	}

	now := c.now()
	c.mu.Lock()
	c.entries[token] = &Entry{
		Token:          token,
		OwnerID:        ownerID,
		Username:       username,
		Cookies:        copyCookies(cookies),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	n := len(c.entries)
	c.mu.Unlock()

	metrics.SessionCacheEntries.Set(float64(n))
	return token, nil
}

// Get returns a copy of the entry for token. An expired entry is removed
// and reported absent. A hit updates LastAccessedAt only.
func (c *Cache) Get(token string) (*Entry, bool) {
	now := c.now()

	c.mu.Lock()
	e, ok := c.entries[token]
	if !ok {
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}
	if c.expired(e, now) {
		delete(c.entries, token)
		c.stats.Misses++
		c.stats.Evictions++
		n := len(c.entries)
		c.mu.Unlock()

		metrics.RecordSessionEviction(ReasonExpired, 1)
		metrics.SessionCacheEntries.Set(float64(n))
		return nil, false
	}
	e.LastAccessedAt = now
	c.stats.Hits++
	out := e.clone()
	c.mu.Unlock()
	return out, true
}

// Delete removes the entry for token, reporting whether it existed.
func (c *Cache) Delete(token string) bool {
	return c.Remove(token, ReasonLogout)
}

// Remove deletes the entry for token and records reason.
func (c *Cache) Remove(token, reason string) bool {
	c.mu.Lock()
	_, ok := c.entries[token]
	if ok {
		delete(c.entries, token)
		c.stats.Evictions++
	}
	n := len(c.entries)
	c.mu.Unlock()

	if ok {
		metrics.RecordSessionEviction(reason, 1)
		metrics.SessionCacheEntries.Set(float64(n))
	}
	return ok
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for token, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, token)
			removed++
		}
	}
	c.stats.Evictions += int64(removed)
	n := len(c.entries)
	c.mu.Unlock()

	metrics.RecordSessionEviction(ReasonExpired, removed)
	metrics.SessionCacheEntries.Set(float64(n))
	return removed
}

// Len returns the number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache activity.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Run calls Cleanup every interval until ctx is cancelled.
func (c *Cache) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := c.Cleanup(); n > 0 {
				logging.Debug().
					Str("component", "sessioncache").
					Int("removed", n).
					Int("remaining", c.Len()).
					Msg("Expired sessions removed")
			}
		}
	}
}

// expired reports whether e is past its deadline. Must be called with mu held.
func (c *Cache) expired(e *Entry, now time.Time) bool {
	return now.Sub(e.CreatedAt) > c.ttl
}

func (e *Entry) clone() *Entry {
	out := *e
	out.Cookies = copyCookies(e.Cookies)
	return &out
}

func copyCookies(in []*http.Cookie) []*http.Cookie {
	if in == nil {
		return nil
	}
	out := make([]*http.Cookie, len(in))
	for i, ck := range in {
		cp := *ck
		out[i] = &cp
	}
	return out
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
