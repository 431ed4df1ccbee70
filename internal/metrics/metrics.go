// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Portal Metrics
	PortalLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Total number of portal login attempts by result",
		},
		[]string{"result"}, // "success" or the auth error kind
	)

	PortalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_requests_total",
			Help: "Total number of requests sent to the portal",
		},
		[]string{"endpoint", "status"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Sync Metrics
	SyncCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_cycles_total",
			Help: "Total number of sync cycles by result",
		},
		[]string{"result"}, // "success", "auth_error", "error", "skipped"
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of sync cycles in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	SyncFilesDownloaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_files_downloaded_total",
			Help: "Total number of files downloaded from the portal",
		},
	)

	SyncDownloadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_download_bytes_total",
			Help: "Total number of bytes written to the storage directory",
		},
	)

	SyncDownloadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_download_errors_total",
			Help: "Total number of failed item downloads",
		},
		[]string{"reason"}, // "auth", "http_status", "io", "store", "other"
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync cycle",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Session Cache Metrics
	SessionCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_cache_entries",
			Help: "Current number of attendance sessions held in memory",
		},
	)

	SessionCacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_cache_evictions_total",
			Help: "Total number of attendance sessions removed from the cache",
		},
		[]string{"reason"}, // "expired", "logout", "rejected"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordPortalLogin records a login attempt. An empty result means success.
func RecordPortalLogin(result string) {
	if result == "" {
		result = "success"
	}
	PortalLogins.WithLabelValues(result).Inc()
}

// RecordPortalRequest records one HTTP exchange with the portal.
// A status of 0 means the request never produced a response.
func RecordPortalRequest(endpoint string, status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	PortalRequests.WithLabelValues(endpoint, label).Inc()
}

// RecordSyncCycle records the outcome of a sync cycle
func RecordSyncCycle(result string, duration time.Duration) {
	SyncCycles.WithLabelValues(result).Inc()
	if result == "skipped" {
		return
	}
	SyncDuration.Observe(duration.Seconds())
	if result == "success" {
		SyncLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordDownload records a completed file download
func RecordDownload(bytes int64) {
	SyncFilesDownloaded.Inc()
	SyncDownloadBytes.Add(float64(bytes))
}

// RecordDownloadError records a failed item download
func RecordDownloadError(reason string) {
	SyncDownloadErrors.WithLabelValues(reason).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordSessionEviction records a session removed from the cache
func RecordSessionEviction(reason string, count int) {
	if count <= 0 {
		return
	}
	SessionCacheEvictions.WithLabelValues(reason).Add(float64(count))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
