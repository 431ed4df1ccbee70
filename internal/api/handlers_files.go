// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package api

import (
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/models"
)

// DefaultSubject groups files with no recorded subject.
const DefaultSubject = "Other"

// filesURLPrefix is where mirrored files are served.
const filesURLPrefix = "/files/"

// Files lists the storage directory grouped by the subject recorded when
// each file was downloaded. Files within a subject are ordered by name.
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entries, err := os.ReadDir(h.storageDir())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to list files", err)
		return
	}

	subjects := map[string]string{}
	if h.store != nil {
		if s, serr := h.store.SubjectsByFilename(r.Context()); serr != nil {
			logging.Ctx(r.Context()).Warn().Err(serr).Msg("Failed to load subjects, grouping all files under default")
		} else {
			subjects = s
		}
	}

	resp := models.FilesResponse{Subjects: map[string][]models.FileInfo{}}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || hiddenName(entry.Name()) {
			continue
		}
		info, ierr := entry.Info()
		if ierr != nil {
			// removed between ReadDir and Info
			continue
		}

		subject := subjects[entry.Name()]
		if subject == "" {
			subject = DefaultSubject
		}
		resp.Subjects[subject] = append(resp.Subjects[subject], models.FileInfo{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			Modified:  info.ModTime().UTC(),
			URL:       filesURLPrefix + url.PathEscape(entry.Name()),
		})
		resp.Total++
	}

	respondSuccess(w, r, resp, start)
}

// StaticFiles serves mirrored files. Directory listings and dot files, which
// include in-flight downloads, are not served.
func (h *Handler) StaticFiles() http.Handler {
	fileServer := http.StripPrefix(filesURLPrefix, http.FileServer(http.Dir(h.storageDir())))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, filesURLPrefix)
		if name == "" || strings.Contains(name, "/") || hiddenName(name) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "File not found", nil)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

func hiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}
