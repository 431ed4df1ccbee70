// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/metrics"
)

// Login replays the identity provider login and returns a fresh session.
func (c *Client) Login(ctx context.Context, creds Credentials) (sess *Session, err error) {
	defer func() {
		metrics.RecordPortalLogin(loginResult(err))
	}()

	if !creds.Complete() {
		return nil, newAuthError(KindMissingCredentials, "username and password are required", nil)
	}

	log := logging.Ctx(ctx).With().
		Str("component", "portal").
		Str("username", logging.RedactUsername(creds.Username)).
		Logger()

	sess, err = c.newSession(creds.Username)
	if err != nil {
		return nil, err
	}

	loginPage, err := c.fetchPage(ctx, sess, "login", http.MethodGet, c.Endpoint(c.cfg.LoginPath), nil)
	if err != nil {
		return nil, fmt.Errorf("open login page: %w", err)
	}
	if !strings.EqualFold(loginPage.URL.Host, c.identityURL.Host) {
		return nil, newAuthError(KindRedirectNotFound,
			fmt.Sprintf("login entry point landed on %s instead of %s", loginPage.URL.Host, c.identityURL.Host), nil)
	}

	token, err := extractVerificationToken(loginPage.Body)
	if err != nil {
		return nil, err
	}

	credentials := url.Values{}
	credentials.Set("Username", creds.Username)
	credentials.Set("Password", creds.Password)
	credentials.Set("RememberLogin", "false")
	credentials.Set(verificationTokenField, token)
	credentials.Set("button", "login")

	authPage, err := c.fetchPage(ctx, sess, "login_submit", http.MethodPost, loginPage.URL.String(), credentials)
	if err != nil {
		return nil, fmt.Errorf("submit credentials: %w", err)
	}

	if strings.Contains(authPage.ContentType, "text/html") {
		fields, found, parseErr := extractFormPost(authPage.Body)
		if parseErr != nil {
			return nil, parseErr
		}
		if found {
			if fields.Has("error") {
				return nil, oidcRejection(fields)
			}
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			log.Debug().Strs("fields", names).Msg("Posting OIDC form_post to callback")

			if _, err = c.fetchPage(ctx, sess, "oidc_callback", http.MethodPost, c.Endpoint(c.cfg.CallbackPath), fields); err != nil {
				return nil, fmt.Errorf("post OIDC callback: %w", err)
			}
		} else {
			log.Debug().Msg("No form_post form after credential submit")
		}
	}

	if !sess.IsLive() {
		return nil, newAuthError(KindAuthFailed, "no session cookie after login; check the portal credentials", nil)
	}

	log.Info().
		Strs("app_cookies", logging.CookieNames(sess.AppCookies())).
		Msg("Portal login succeeded")
	return sess, nil
}

func loginResult(err error) string {
	if err == nil {
		return ""
	}
	if kind := AuthErrorKindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
