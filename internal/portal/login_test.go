// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"errors"
	"strings"
	"testing"
)

var validCreds = Credentials{Username: testUsername, Password: testPassword}

func TestLogin_Success(t *testing.T) {
	fp := newFakePortal(t)
	c := fp.client(t)

	sess, err := c.Login(t.Context(), validCreds)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !sess.IsLive() {
		t.Error("expected live session after login")
	}
	if fp.callbackCalls.Load() != 1 {
		t.Errorf("callback calls = %d, want 1", fp.callbackCalls.Load())
	}

	found := false
	for _, ck := range sess.AppCookies() {
		if ck.Name == ".AspNetCore.Cookies" {
			found = true
		}
	}
	if !found {
		t.Error("expected .AspNetCore.Cookies in app cookies")
	}
	if sess.Username() != testUsername {
		t.Errorf("Username = %q", sess.Username())
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	fp := newFakePortal(t)
	c := fp.client(t)

	tests := []Credentials{
		{},
		{Username: testUsername},
		{Password: testPassword},
	}
	for _, creds := range tests {
		_, err := c.Login(t.Context(), creds)
		if AuthErrorKindOf(err) != KindMissingCredentials {
			t.Errorf("Login(%+v) kind = %q, want %q", creds, AuthErrorKindOf(err), KindMissingCredentials)
		}
	}
	if got := fp.requests.Load(); got != 0 {
		t.Errorf("expected no requests, got %d", got)
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakePortal)
		creds Credentials
		want  AuthErrorKind
	}{
		{"no redirect", func(fp *fakePortal) { fp.skipRedirect = true }, validCreds, KindRedirectNotFound},
		{"no token", func(fp *fakePortal) { fp.omitToken = true }, validCreds, KindTokenNotFound},
		{"rejected", func(fp *fakePortal) { fp.rejectWith = "access_denied" }, validCreds, KindOIDCRejected},
		{
			"wrong password without cookies",
			func(fp *fakePortal) { fp.idpSetsCookies = false },
			Credentials{Username: testUsername, Password: "wrong"},
			KindAuthFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := newFakePortal(t)
			tt.setup(fp)
			c := fp.client(t)

			sess, err := c.Login(t.Context(), tt.creds)
			if sess != nil {
				t.Error("expected nil session on failure")
			}
			if !IsAuthError(err) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if got := AuthErrorKindOf(err); got != tt.want {
				t.Errorf("kind = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestLogin_OIDCRejectedCarriesErrorCode(t *testing.T) {
	fp := newFakePortal(t)
	fp.rejectWith = "access_denied"
	fp.rejectDesc = "The user denied the request"
	c := fp.client(t)

	_, err := c.Login(t.Context(), validCreds)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if !strings.Contains(authErr.Error(), "access_denied") {
		t.Errorf("error %q does not contain access_denied", authErr.Error())
	}
	if !strings.Contains(authErr.Error(), "The user denied the request") {
		t.Errorf("error %q does not contain the description", authErr.Error())
	}
	if fp.callbackCalls.Load() != 0 {
		t.Error("callback must not be posted after a rejection")
	}
}

// A plain page after the credential POST still passes the liveness check
// when the identity provider left cookies behind.
func TestLogin_NoFormPostFallsThroughToLiveness(t *testing.T) {
	fp := newFakePortal(t)
	fp.noFormPost = true
	c := fp.client(t)

	sess, err := c.Login(t.Context(), validCreds)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !sess.IsLive() {
		t.Error("expected session to be reported live")
	}
	if fp.callbackCalls.Load() != 0 {
		t.Error("expected no callback without a form_post page")
	}
}
