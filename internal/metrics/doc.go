// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package metrics provides Prometheus metrics for LectureSync.

Metrics are registered with promauto on the default registry and exposed at
/metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

Portal:
  - portal_logins_total{result}
  - portal_requests_total{endpoint,status}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Sync:
  - sync_cycles_total{result}
  - sync_duration_seconds
  - sync_files_downloaded_total, sync_download_bytes_total
  - sync_download_errors_total{reason}
  - sync_last_success_timestamp

Dedup store:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table}

Session cache:
  - session_cache_entries
  - session_cache_evictions_total{reason}

HTTP API:
  - api_requests_total{method,route,status}
  - api_request_duration_seconds{method,route}
*/
package metrics
