// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/metrics"
	"github.com/tomtom215/lecturesync/internal/portal"
)

const (
	endpointName = "download"
	bufferSize   = 32 * 1024
)

// Getter performs an authenticated streaming GET. *portal.Client implements it.
type Getter interface {
	Get(ctx context.Context, sess *portal.Session, endpoint, rawURL string) (*http.Response, error)
}

// File describes a file written to the storage directory.
type File struct {
	Path       string
	Size       int64
	Filename   string
	UploadDate time.Time
}

// Manager downloads files by id into one directory.
type Manager struct {
	client      Getter
	downloadURL string
	dir         string
	timeout     time.Duration
	now         func() time.Time
}

// NewManager creates the storage directory if needed.
func NewManager(client Getter, downloadURL, dir string, timeout time.Duration) (*Manager, error) {
	if _, err := url.Parse(downloadURL); err != nil {
		return nil, fmt.Errorf("invalid download URL: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Manager{
		client:      client,
		downloadURL: downloadURL,
		dir:         dir,
		timeout:     timeout,
		now:         time.Now,
	}, nil
}

// Dir returns the storage directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Download fetches one file. A 401/403 yields a *portal.AuthError and any
// other non-2xx status a *portal.StatusError.
func (m *Manager) Download(ctx context.Context, sess *portal.Session, fileID string) (*File, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	resp, err := m.client.Get(ctx, sess, endpointName, m.fileURL(fileID))
	if err != nil {
		metrics.RecordDownloadError(errorReason(err))
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer closeWithLog(resp.Body, fileID)

	filename := ResolveFilename(resp.Header.Get("Content-Disposition"), fileID)
	uploadDate := ResolveUploadDate(resp.Header.Get("Last-Modified"), m.now())

	target := m.targetPath(filename, fileID)
	size, err := m.writeAtomically(target, resp.Body)
	if err != nil {
		metrics.RecordDownloadError(errorReason(err))
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	metrics.RecordDownload(size)

	logging.Ctx(ctx).Debug().
		Str("file_id", fileID).
		Str("path", target).
		Int64("bytes", size).
		Msg("File downloaded")

	return &File{
		Path:       target,
		Size:       size,
		Filename:   filepath.Base(target),
		UploadDate: uploadDate,
	}, nil
}

func (m *Manager) fileURL(fileID string) string {
	u, err := url.Parse(m.downloadURL)
	if err != nil {
		return m.downloadURL + "?id=" + url.QueryEscape(fileID)
	}
	q := u.Query()
	q.Set("id", fileID)
	u.RawQuery = q.Encode()
	return u.String()
}

// targetPath returns a path in the storage directory not already in use.
func (m *Manager) targetPath(filename, fileID string) string {
	target := filepath.Join(m.dir, filename)
	if !exists(target) {
		return target
	}
	candidate := filepath.Join(m.dir, withSuffix(filename, idPrefix(fileID)))
	for i := 2; exists(candidate); i++ {
		candidate = filepath.Join(m.dir, withSuffix(filename, idPrefix(fileID)+"-"+strconv.Itoa(i)))
	}
	return candidate
}

func (m *Manager) writeAtomically(target string, body io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(m.dir, ".download-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName) //nolint:errcheck // cleanup on failure
		}
	}()

	buf := make([]byte, bufferSize)
	n, err := io.CopyBuffer(tmp, body, buf)
	if err != nil {
		_ = tmp.Close() //nolint:errcheck // already failing
		return 0, fmt.Errorf("write body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return 0, fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return n, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func errorReason(err error) string {
	var statusErr *portal.StatusError
	switch {
	case portal.IsAuthError(err):
		return "auth"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, portal.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "io"
	}
}

func closeWithLog(c io.Closer, fileID string) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("file_id", fileID).Msg("Failed to close download body")
	}
}
