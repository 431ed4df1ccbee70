// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Cookie names issued by ASP.NET Core authentication.
const (
	cookieAppSession      = ".AspNetCore.Cookies"
	cookieIdentitySession = ".AspNetCore.Identity.Application"
)

// Credentials are the portal username (student id) and password.
type Credentials struct {
	Username string
	Password string
}

// Complete reports whether both fields are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// Session is an authenticated portal session backed by a private cookie jar.
// A Session is safe for concurrent use.
type Session struct {
	client      *http.Client
	jar         http.CookieJar
	appURL      *url.URL
	identityURL *url.URL
	username    string
	createdAt   time.Time
	invalidated atomic.Bool
}

func newSession(transport http.RoundTripper, appURL, identityURL *url.URL, username string) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Session{
		client: &http.Client{
			Transport: transport,
			Jar:       jar,
		},
		jar:         jar,
		appURL:      appURL,
		identityURL: identityURL,
		username:    username,
		createdAt:   time.Now(),
	}, nil
}

// Username returns the account the session belongs to.
func (s *Session) Username() string {
	return s.username
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// AppCookies returns the cookies the jar would send to the application host.
func (s *Session) AppCookies() []*http.Cookie {
	return s.jar.Cookies(s.appURL)
}

// IdentityCookies returns the cookies the jar would send to the identity provider.
func (s *Session) IdentityCookies() []*http.Cookie {
	return s.jar.Cookies(s.identityURL)
}

// Invalidate marks the session unusable. It is never reported live again.
func (s *Session) Invalidate() {
	s.invalidated.Store(true)
}

// IsLive reports whether the jar holds what looks like a portal session:
// a known ASP.NET Core auth cookie, an application cookie whose name contains
// "AspNetCore", or failing those any cookie at all for either host.
func (s *Session) IsLive() bool {
	if s.invalidated.Load() {
		return false
	}

	appCookies := s.AppCookies()
	identityCookies := s.IdentityCookies()

	for _, c := range appCookies {
		if c.Name == cookieAppSession || c.Name == cookieIdentitySession {
			return true
		}
	}
	for _, c := range identityCookies {
		if c.Name == cookieAppSession || c.Name == cookieIdentitySession {
			return true
		}
	}
	for _, c := range appCookies {
		if strings.Contains(c.Name, "AspNetCore") {
			return true
		}
	}

	return len(appCookies) > 0 || len(identityCookies) > 0
}
