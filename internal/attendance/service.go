// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package attendance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/portal"
	"github.com/tomtom215/lecturesync/internal/sessioncache"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrInvalidToken is returned when no session token is supplied.
	ErrInvalidToken = errors.New("session token is required")

	// ErrSessionExpired is returned when the token is unknown, expired or
	// was rejected by the portal.
	ErrSessionExpired = errors.New("session expired or invalid, please login again")

	// ErrProfileNotFound is returned when the profile page has no name row.
	ErrProfileNotFound = errors.New("student profile not found")
)

// Portal is the subset of *portal.Client the service uses.
type Portal interface {
	Login(ctx context.Context, creds portal.Credentials) (*portal.Session, error)
	RestoreSession(username string, cookies []*http.Cookie) (*portal.Session, error)
	FetchWithTimeout(ctx context.Context, sess *portal.Session, endpoint, rawURL string, timeout time.Duration) ([]byte, error)
}

// Config holds the portal endpoints and the read timeout.
type Config struct {
	AttendanceURL string
	DetailsURL    string
	ProfileURL    string
	Timeout       time.Duration
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	SessionToken string
	StudentID    string
	Username     string
}

// Report is the student's attendance page.
type Report struct {
	HTML        string
	StudentID   string
	Username    string
	StudentName string
}

// Profile is the student's name split into parts.
type Profile struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// Service implements the attendance feature.
type Service struct {
	portal Portal
	cache  *sessioncache.Cache
	cfg    Config
}

// NewService creates an attendance service.
func NewService(p Portal, cache *sessioncache.Cache, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Service{portal: p, cache: cache, cfg: cfg}
}

// Login authenticates username against the portal and caches the session.
// The student id is the username.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	sess, err := s.portal.Login(ctx, portal.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	token, err := s.cache.Create(username, username, sess.AppCookies())
	if err != nil {
		return nil, fmt.Errorf("create attendance session: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("username", logging.RedactUsername(username)).
		Str("token", logging.RedactToken(token)).
		Msg("Attendance session created")

	return &LoginResult{SessionToken: token, StudentID: username, Username: username}, nil
}

// Attendance returns the raw attendance page for the session's student.
func (s *Service) Attendance(ctx context.Context, token string) (*Report, error) {
	entry, body, err := s.fetch(ctx, token, "attendance", s.cfg.AttendanceURL, "studentId", "")
	if err != nil {
		return nil, err
	}
	return &Report{
		HTML:        string(body),
		StudentID:   entry.OwnerID,
		Username:    entry.Username,
		StudentName: extractStudentName(body),
	}, nil
}

// AbsenceDetails returns "<date> at <time>" for each absence of one class.
func (s *Service) AbsenceDetails(ctx context.Context, token, studentClassID string) ([]string, error) {
	_, body, err := s.fetch(ctx, token, "absence_details", s.cfg.DetailsURL, "studentClassId", studentClassID)
	if err != nil {
		return nil, err
	}
	return parseAbsenceDetails(body)
}

// Profile returns the student's name from the portal profile page.
func (s *Service) Profile(ctx context.Context, token string) (*Profile, error) {
	_, body, err := s.fetch(ctx, token, "profile", s.cfg.ProfileURL, "", "")
	if err != nil {
		return nil, err
	}
	return parseProfile(body)
}

// Logout deletes the cached session, reporting whether it existed.
func (s *Service) Logout(token string) bool {
	return s.cache.Delete(token)
}

// fetch resolves token, rebuilds its portal session and reads rawURL with
// one optional query parameter. An empty value means the owner's id.
func (s *Service) fetch(ctx context.Context, token, endpoint, rawURL, param, value string) (*sessioncache.Entry, []byte, error) {
	if token == "" {
		return nil, nil, ErrInvalidToken
	}
	entry, ok := s.cache.Get(token)
	if !ok {
		return nil, nil, ErrSessionExpired
	}

	sess, err := s.portal.RestoreSession(entry.Username, entry.Cookies)
	if err != nil {
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}

	target, err := withQuery(rawURL, param, value, entry.OwnerID)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.portal.FetchWithTimeout(ctx, sess, endpoint, target, s.cfg.Timeout)
	if err != nil {
		if portal.AuthErrorKindOf(err) == portal.KindSessionRejected {
			s.cache.Remove(token, sessioncache.ReasonRejected)
			logging.Ctx(ctx).Info().
				Str("token", logging.RedactToken(token)).
				Str("endpoint", endpoint).
				Msg("Portal rejected attendance session")
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, err
	}
	return entry, body, nil
}

func withQuery(rawURL, param, value, ownerID string) (string, error) {
	if param == "" {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if value == "" {
		value = ownerID
	}
	q := u.Query()
	q.Set(param, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
