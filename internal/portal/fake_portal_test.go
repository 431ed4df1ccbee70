// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/lecturesync/internal/config"
)

const (
	testUsername = "20231234"
	testPassword = "correct-horse"
	testToken    = "CfDJ8-antiforgery-token"
	testCode     = "auth-code-123"
)

// fakePortal runs an application server and an identity provider on two
// httptest servers and replays the form_post login flow.
type fakePortal struct {
	app *httptest.Server
	idp *httptest.Server

	// Knobs set before the flow runs.
	skipRedirect   bool   // app login does not redirect to the IdP
	omitToken      bool   // IdP login page has no verification token
	rejectWith     string // IdP answers form_post with error=<rejectWith>
	rejectDesc     string
	noFormPost     bool // IdP answers the credential POST with a plain page
	dataStatus     int  // status for the timeline endpoint when set
	idpSetsCookies bool

	requests      atomic.Int32
	callbackCalls atomic.Int32
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()
	fp := &fakePortal{idpSetsCookies: true}

	idpMux := http.NewServeMux()
	idpMux.HandleFunc("/Account/Login", fp.handleIdPLogin)
	fp.idp = httptest.NewServer(fp.count(idpMux))
	t.Cleanup(fp.idp.Close)

	appMux := http.NewServeMux()
	appMux.HandleFunc("/Account/Login", fp.handleAppLogin)
	appMux.HandleFunc("/erp-web-signin-oidc", fp.handleCallback)
	appMux.HandleFunc("/Home", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>home</body></html>")
	})
	appMux.HandleFunc("/University/ClassSession/GetStudentClassSessionsList", fp.handleData)
	fp.app = httptest.NewServer(fp.count(appMux))
	t.Cleanup(fp.app.Close)

	return fp
}

func (fp *fakePortal) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (fp *fakePortal) config() *config.PortalConfig {
	return &config.PortalConfig{
		AppURL:            fp.app.URL,
		IdentityURL:       fp.idp.URL,
		LoginPath:         "/Account/Login",
		CallbackPath:      "/erp-web-signin-oidc",
		TimelinePath:      "/University/ClassSession/GetStudentClassSessionsList",
		DownloadPath:      "/University/ClassSessionFile/DownloadClassSessionFile",
		RequestTimeout:    5 * time.Second,
		DownloadTimeout:   5 * time.Second,
		AttendanceTimeout: 5 * time.Second,
		RateLimit:         1000,
		RateBurst:         100,
	}
}

func (fp *fakePortal) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(fp.config())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func (fp *fakePortal) handleAppLogin(w http.ResponseWriter, r *http.Request) {
	if fp.skipRedirect {
		fmt.Fprint(w, "<html><body>maintenance</body></html>")
		return
	}
	http.Redirect(w, r, fp.idp.URL+"/Account/Login?ReturnUrl=%2Fconnect%2Fauthorize%2Fcallback", http.StatusFound)
}

func (fp *fakePortal) handleIdPLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if r.Method == http.MethodGet {
		if fp.idpSetsCookies {
			http.SetCookie(w, &http.Cookie{Name: ".AspNetCore.Antiforgery.abc", Value: "af", Path: "/"})
		}
		token := ""
		if !fp.omitToken {
			token = `<input name="__RequestVerificationToken" type="hidden" value="` + testToken + `" />`
		}
		fmt.Fprintf(w, `<html><body><form method="post">
<input name="Username" type="text" />
<input name="Password" type="password" />
<input name="RememberLogin" type="hidden" value="false" />
%s
<button name="button" value="login">Login</button>
</form></body></html>`, token)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("ReturnUrl") == "" || r.PostForm.Get("__RequestVerificationToken") != testToken ||
		r.PostForm.Get("RememberLogin") != "false" || r.PostForm.Get("button") != "login" {
		http.Error(w, "bad login post", http.StatusBadRequest)
		return
	}

	if fp.noFormPost || r.PostForm.Get("Username") != testUsername || r.PostForm.Get("Password") != testPassword {
		fmt.Fprint(w, `<html><body><form method="post"><input name="Username" type="text" /></form>Invalid username or password</body></html>`)
		return
	}

	if fp.rejectWith != "" {
		desc := ""
		if fp.rejectDesc != "" {
			desc = `<input type="hidden" name="error_description" value="` + fp.rejectDesc + `" />`
		}
		fmt.Fprintf(w, `<html><body><form method="post" action="%s/erp-web-signin-oidc">
<input type="hidden" name="error" value="%s" />%s
<input type="hidden" name="state" value="st" />
</form></body></html>`, fp.app.URL, fp.rejectWith, desc)
		return
	}

	fmt.Fprintf(w, `<html><body onload="document.forms[0].submit()"><form method="post" action="%s/erp-web-signin-oidc">
<input type="hidden" name="code" value="%s" />
<input type="hidden" name="id_token" value="eyJhbGciOi" />
<input type="hidden" name="scope" value="openid profile" />
<input type="hidden" name="state" value="st" />
<input type="hidden" name="session_state" value="ss" />
<noscript><button>Continue</button></noscript>
</form></body></html>`, fp.app.URL, testCode)
}

func (fp *fakePortal) handleCallback(w http.ResponseWriter, r *http.Request) {
	fp.callbackCalls.Add(1)
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != testCode {
		http.Error(w, "bad callback", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: ".AspNetCore.Cookies", Value: "app-session", Path: "/"})
	http.Redirect(w, r, "/Home", http.StatusFound)
}

func (fp *fakePortal) handleData(w http.ResponseWriter, r *http.Request) {
	if fp.dataStatus != 0 {
		w.WriteHeader(fp.dataStatus)
		fmt.Fprint(w, "portal error page")
		return
	}
	if c, err := r.Cookie(".AspNetCore.Cookies"); err != nil || c.Value != "app-session" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if r.Header.Get("User-Agent") != userAgent {
		http.Error(w, "unexpected user agent", http.StatusBadRequest)
		return
	}
	fmt.Fprint(w, "<html><body>timeline</body></html>")
}
