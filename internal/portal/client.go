// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/lecturesync/internal/config"
	"github.com/tomtom215/lecturesync/internal/metrics"
)

// Browser headers sent with every portal request.
const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// maxPageSize bounds HTML pages read into memory.
const maxPageSize = 32 << 20

// Client issues paced, breaker-guarded requests to the portal.
type Client struct {
	cfg         config.PortalConfig
	appURL      *url.URL
	identityURL *url.URL
	transport   http.RoundTripper
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	breakerName string
}

// NewClient creates a portal client from configuration.
func NewClient(cfg *config.PortalConfig) (*Client, error) {
	appURL, err := url.Parse(cfg.AppURL)
	if err != nil {
		return nil, fmt.Errorf("parse app URL: %w", err)
	}
	identityURL, err := url.Parse(cfg.IdentityURL)
	if err != nil {
		return nil, fmt.Errorf("parse identity URL: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		//nolint:gosec // opt-in for portals with broken certificate chains
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		cfg:         *cfg,
		appURL:      appURL,
		identityURL: identityURL,
		transport:   transport,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		breaker:     newCircuitBreaker(breakerName),
		breakerName: breakerName,
	}, nil
}

// Endpoint joins the application base URL with path.
func (c *Client) Endpoint(path string) string {
	return c.cfg.Endpoint(path)
}

// Config returns a copy of the portal configuration.
func (c *Client) Config() config.PortalConfig {
	return c.cfg
}

func (c *Client) newSession(username string) (*Session, error) {
	return newSession(c.transport, c.appURL, c.identityURL, username)
}

// RestoreSession rebuilds a session from application cookies captured earlier.
func (c *Client) RestoreSession(username string, cookies []*http.Cookie) (*Session, error) {
	sess, err := c.newSession(username)
	if err != nil {
		return nil, err
	}
	sess.jar.SetCookies(c.appURL, cookies)
	return sess, nil
}

// Get issues a GET with the session and returns the response for streaming.
// Only 2xx responses are returned; the caller closes the body. The caller's
// context bounds the whole exchange including the body read.
func (c *Client) Get(ctx context.Context, sess *Session, endpoint, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(ctx, sess, endpoint, req)
}

// Fetch GETs rawURL and reads the whole body within the configured request timeout.
func (c *Client) Fetch(ctx context.Context, sess *Session, endpoint, rawURL string) ([]byte, error) {
	p, err := c.fetchPage(ctx, sess, endpoint, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return p.Body, nil
}

// FetchWithTimeout is Fetch with an explicit timeout.
func (c *Client) FetchWithTimeout(ctx context.Context, sess *Session, endpoint, rawURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	p, err := c.readPage(ctx, sess, endpoint, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return p.Body, nil
}

// page is a fully read response.
type page struct {
	URL         *url.URL
	ContentType string
	Body        []byte
}

func (c *Client) fetchPage(ctx context.Context, sess *Session, endpoint, method, rawURL string, form url.Values) (*page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	return c.readPage(ctx, sess, endpoint, method, rawURL, form)
}

func (c *Client) readPage(ctx context.Context, sess *Session, endpoint, method, rawURL string, form url.Values) (*page, error) {
	var body io.Reader = http.NoBody
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.do(ctx, sess, endpoint, req)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return &page{
		URL:         resp.Request.URL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// do paces, guards and classifies one request.
func (c *Client) do(ctx context.Context, sess *Session, endpoint string, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", endpoint, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	return c.execute(func() (*http.Response, error) {
		resp, err := sess.client.Do(req)
		if err != nil {
			metrics.RecordPortalRequest(endpoint, 0)
			return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
		}
		metrics.RecordPortalRequest(endpoint, resp.StatusCode)
		return classifyResponse(resp)
	})
}

// classifyResponse returns 2xx responses and converts everything else to an
// error, closing the body.
func classifyResponse(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer closeQuietly(resp.Body)

	target := resp.Request.URL.Redacted()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, newAuthError(KindSessionRejected,
			fmt.Sprintf("portal answered %d for %s", resp.StatusCode, target), nil)
	}
	return nil, &StatusError{
		StatusCode: resp.StatusCode,
		URL:        target,
		Body:       string(readBodyForError(resp.Body)),
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close() //nolint:errcheck // best effort
}
