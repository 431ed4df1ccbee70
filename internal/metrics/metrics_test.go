// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPortalLogin(t *testing.T) {
	before := testutil.ToFloat64(PortalLogins.WithLabelValues("success"))
	RecordPortalLogin("")
	if got := testutil.ToFloat64(PortalLogins.WithLabelValues("success")); got != before+1 {
		t.Errorf("success logins = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(PortalLogins.WithLabelValues("oidc_rejected"))
	RecordPortalLogin("oidc_rejected")
	if got := testutil.ToFloat64(PortalLogins.WithLabelValues("oidc_rejected")); got != before+1 {
		t.Errorf("oidc_rejected logins = %v, want %v", got, before+1)
	}
}

func TestRecordPortalRequest(t *testing.T) {
	tests := []struct {
		name   string
		status int
		label  string
	}{
		{"ok", 200, "200"},
		{"forbidden", 403, "403"},
		{"transport error", 0, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PortalRequests.WithLabelValues("timeline", tt.label)
			before := testutil.ToFloat64(c)
			RecordPortalRequest("timeline", tt.status)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordSyncCycle(t *testing.T) {
	beforeSuccess := testutil.ToFloat64(SyncCycles.WithLabelValues("success"))
	RecordSyncCycle("success", 2*time.Second)
	if got := testutil.ToFloat64(SyncCycles.WithLabelValues("success")); got != beforeSuccess+1 {
		t.Errorf("success cycles = %v, want %v", got, beforeSuccess+1)
	}
	if testutil.ToFloat64(SyncLastSuccess) == 0 {
		t.Error("expected last success timestamp to be set")
	}

	beforeSkipped := testutil.ToFloat64(SyncCycles.WithLabelValues("skipped"))
	RecordSyncCycle("skipped", 0)
	if got := testutil.ToFloat64(SyncCycles.WithLabelValues("skipped")); got != beforeSkipped+1 {
		t.Errorf("skipped cycles = %v, want %v", got, beforeSkipped+1)
	}
}

func TestRecordDownload(t *testing.T) {
	beforeFiles := testutil.ToFloat64(SyncFilesDownloaded)
	beforeBytes := testutil.ToFloat64(SyncDownloadBytes)

	RecordDownload(1024)

	if got := testutil.ToFloat64(SyncFilesDownloaded); got != beforeFiles+1 {
		t.Errorf("files = %v, want %v", got, beforeFiles+1)
	}
	if got := testutil.ToFloat64(SyncDownloadBytes); got != beforeBytes+1024 {
		t.Errorf("bytes = %v, want %v", got, beforeBytes+1024)
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "synced_items"))
	RecordDBQuery("INSERT", "synced_items", time.Millisecond, nil)
	RecordDBQuery("INSERT", "synced_items", time.Millisecond, errors.New("constraint"))
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "synced_items")); got != before+1 {
		t.Errorf("query errors = %v, want %v", got, before+1)
	}
}

func TestRecordSessionEviction(t *testing.T) {
	c := SessionCacheEvictions.WithLabelValues("expired")
	before := testutil.ToFloat64(c)

	RecordSessionEviction("expired", 3)
	RecordSessionEviction("expired", 0)

	if got := testutil.ToFloat64(c); got != before+3 {
		t.Errorf("evictions = %v, want %v", got, before+3)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("POST", "/api/sync-now", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("POST", "/api/sync-now", "200", 10*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("api requests = %v, want %v", got, before+1)
	}
}
