// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClient_FetchWithSession(t *testing.T) {
	fp := newFakePortal(t)
	c := fp.client(t)

	sess, err := c.Login(t.Context(), validCreds)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	body, err := c.Fetch(t.Context(), sess, "timeline", c.Endpoint(fp.config().TimelinePath))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(string(body), "timeline") {
		t.Errorf("unexpected body %q", body)
	}
}

func TestClient_UnauthenticatedIsSessionRejected(t *testing.T) {
	fp := newFakePortal(t)
	c := fp.client(t)

	sess, err := c.newSession("anon")
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}

	_, err = c.Fetch(t.Context(), sess, "timeline", c.Endpoint(fp.config().TimelinePath))
	if AuthErrorKindOf(err) != KindSessionRejected {
		t.Errorf("kind = %q, want %q (err: %v)", AuthErrorKindOf(err), KindSessionRejected, err)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		status    int
		auth      bool
		temporary bool
	}{
		{http.StatusForbidden, true, false},
		{http.StatusNotFound, false, false},
		{http.StatusTooManyRequests, false, true},
		{http.StatusBadGateway, false, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			fp := newFakePortal(t)
			fp.dataStatus = tt.status
			c := fp.client(t)
			sess, err := c.newSession("anon")
			if err != nil {
				t.Fatalf("newSession: %v", err)
			}

			_, err = c.Get(t.Context(), sess, "timeline", c.Endpoint(fp.config().TimelinePath))
			if tt.auth {
				if AuthErrorKindOf(err) != KindSessionRejected {
					t.Errorf("expected SessionRejected, got %v", err)
				}
				return
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.status)
			}
			if statusErr.Temporary() != tt.temporary {
				t.Errorf("Temporary() = %v, want %v", statusErr.Temporary(), tt.temporary)
			}
			if tt.status != http.StatusNotFound && !strings.Contains(statusErr.Body, "portal error page") {
				t.Errorf("Body = %q", statusErr.Body)
			}
		})
	}
}

func TestClient_RestoreSession(t *testing.T) {
	fp := newFakePortal(t)
	c := fp.client(t)

	sess, err := c.Login(t.Context(), validCreds)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	restored, err := c.RestoreSession(testUsername, sess.AppCookies())
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	if _, err := c.Fetch(t.Context(), restored, "timeline", c.Endpoint(fp.config().TimelinePath)); err != nil {
		t.Errorf("Fetch with restored session: %v", err)
	}
}

func TestIsBreakerSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"auth", newAuthError(KindSessionRejected, "401", nil), true},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), true},
		{"not found", &StatusError{StatusCode: 404}, true},
		{"server error", &StatusError{StatusCode: 503}, false},
		{"transport", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBreakerSuccess(tt.err); got != tt.want {
				t.Errorf("isBreakerSuccess(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestReadBodyForError_Truncates(t *testing.T) {
	big := strings.Repeat("x", maxErrorBodySize+100)
	got := readBodyForError(strings.NewReader(big))
	if !strings.HasSuffix(string(got), "(truncated)") {
		t.Error("expected truncation marker")
	}
}
