// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// AuthErrorKind classifies authentication failures.
type AuthErrorKind string

const (
	// KindMissingCredentials means username or password was empty. No request was sent.
	KindMissingCredentials AuthErrorKind = "missing_credentials"
	// KindRedirectNotFound means the login entry point did not land on the identity provider.
	KindRedirectNotFound AuthErrorKind = "redirect_not_found"
	// KindTokenNotFound means the login page carried no anti-forgery token.
	KindTokenNotFound AuthErrorKind = "token_not_found"
	// KindOIDCRejected means the form_post page carried an error field.
	KindOIDCRejected AuthErrorKind = "oidc_rejected"
	// KindAuthFailed means the flow completed without an application session.
	KindAuthFailed AuthErrorKind = "auth_failed"
	// KindSessionRejected means a data endpoint answered 401 or 403.
	KindSessionRejected AuthErrorKind = "session_rejected"
)

// AuthError reports a failure to obtain or use an authenticated session.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("portal auth %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("portal auth %s: %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(kind AuthErrorKind, msg string, err error) *AuthError {
	return &AuthError{Kind: kind, Message: msg, Err: err}
}

// IsAuthError reports whether err wraps an *AuthError of any kind.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// AuthErrorKindOf returns the kind of the wrapped *AuthError, or "" if there is none.
func AuthErrorKindOf(err error) AuthErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}

// StatusError is returned for non-2xx responses other than 401 and 403.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("portal returned HTTP %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether the failure is on the portal's side.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ErrCircuitOpen is returned when the portal circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("portal circuit breaker is open")

// maxErrorBodySize limits how much of an error response is kept.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most 64KB of the body for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
