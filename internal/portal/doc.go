// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package portal talks to the academic portal and its identity provider.

The portal has no API. Logging in means replaying the browser flow of an
IdentityServer login that answers with an OIDC form_post page:

 1. GET {app}/Account/Login, which redirects to the identity provider
 2. scrape __RequestVerificationToken from the login page
 3. POST the credentials back to the login URL (it carries returnUrl)
 4. collect the hidden fields of the form_post page and POST them to the
    application's OIDC callback
 5. check the cookie jar for an application session

The resulting Session wraps an *http.Client with a private cookie jar.

Every request goes through Client, which paces calls with a token bucket
(golang.org/x/time/rate) and guards the portal with a circuit breaker
(sony/gobreaker). Responses are classified before they are returned:

  - 2xx: returned to the caller
  - 401, 403: *AuthError with KindSessionRejected
  - anything else: *StatusError

Authenticator holds the one Session used by the sync loop:

	auth := portal.NewAuthenticator(client, portal.Credentials{Username: u, Password: p})
	sess, err := auth.Session(ctx)
	if portal.IsAuthError(err) {
	    ...
	}
*/
package portal
