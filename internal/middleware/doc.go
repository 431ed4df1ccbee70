// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package middleware provides the HTTP middleware shared by the API router.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count and latency per chi route pattern
  - Compression: gzip for JSON responses

The router applies them in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.Compression).Get("/api/files", h.Files)

Routes are labeled by pattern ("/api/attendance/details"), never by raw
path, so file names under /files/ do not create new metric series.
*/
package middleware
