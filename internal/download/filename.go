// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package download

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// FallbackFilename is the name used when the portal sends no usable filename.
func FallbackFilename(fileID string) string {
	return "material-" + fileID
}

// ResolveFilename extracts the plain filename= parameter of a
// Content-Disposition header, quoted or bare. The extended filename*= form
// is ignored. The result is reduced to a base name so it cannot escape the
// storage directory.
func ResolveFilename(disposition, fileID string) string {
	if !strings.Contains(disposition, "filename=") {
		return FallbackFilename(fileID)
	}
	for _, part := range strings.Split(disposition, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "filename=") {
			continue
		}
		name := strings.Trim(strings.TrimSpace(part[len("filename="):]), `"'`)
		return sanitizeFilename(name, fileID)
	}
	return FallbackFilename(fileID)
}

func sanitizeFilename(name, fileID string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(filepath.Clean("/" + name))
	// Dot-files are hidden from the listing and refused by the file server.
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "/" {
		return FallbackFilename(fileID)
	}
	return name
}

// ResolveUploadDate parses a Last-Modified header, falling back to now.
// The result is UTC.
func ResolveUploadDate(lastModified string, now time.Time) time.Time {
	if lastModified == "" {
		return now.UTC()
	}
	t, err := http.ParseTime(lastModified)
	if err != nil {
		return now.UTC()
	}
	return t.UTC()
}

// idPrefix returns the first segment of a file id for collision suffixes.
func idPrefix(fileID string) string {
	prefix, _, _ := strings.Cut(fileID, "-")
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	if prefix == "" {
		return fileID
	}
	return prefix
}

// withSuffix inserts suffix before the extension of name.
func withSuffix(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + suffix + ext
}
