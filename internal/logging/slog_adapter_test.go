// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	originalLevel := GetLevel()
	defer func() {
		SetLogger(original)
		SetLevel(originalLevel)
	}()
	SetLogger(NewTestLogger(&buf))
	SetLevel(zerolog.InfoLevel)

	logger := NewSlogLogger().With("supervisor", "root").WithGroup("svc")
	logger.Warn("service restarted", "name", "sync", "attempt", 2)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"supervisor":"root"`,
		`"svc.name":"sync"`,
		`"svc.attempt":2`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestSlogLogger_AttrsKeepTheirGroups(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	originalLevel := GetLevel()
	defer func() {
		SetLogger(original)
		SetLevel(originalLevel)
	}()
	SetLogger(NewTestLogger(&buf))
	SetLevel(zerolog.InfoLevel)

	logger := NewSlogLogger().
		With("tree", "lecturesync").
		WithGroup("layer").
		With("name", "sync-layer").
		WithGroup("svc")
	logger.Info("service started", "name", "sync-manager")

	output := buf.String()
	for _, want := range []string{
		`"tree":"lecturesync"`,
		`"layer.name":"sync-layer"`,
		`"layer.svc.name":"sync-manager"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
	for _, unwanted := range []string{`"layer.tree"`, `"layer.svc.tree"`, `"layer.svc.layer.name"`} {
		if strings.Contains(output, unwanted) {
			t.Errorf("unexpected key %s in output: %s", unwanted, output)
		}
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	originalLevel := GetLevel()
	defer SetLevel(originalLevel)
	SetLevel(zerolog.WarnLevel)

	h := NewSlogHandler()
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
