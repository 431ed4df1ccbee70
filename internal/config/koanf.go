// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lecturesync/config.yaml",
	"/etc/lecturesync/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultAcademicPeriod is the timeline section mirrored when none is configured.
const DefaultAcademicPeriod = "2025-2026"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Portal: PortalConfig{
			AppURL:             "https://tempapp-su.awrosoft.com",
			IdentityURL:        "https://tempids-su.awrosoft.com",
			LoginPath:          "/Account/Login",
			CallbackPath:       "/erp-web-signin-oidc",
			TimelinePath:       "/University/ClassSession/GetStudentClassSessionsList",
			DownloadPath:       "/University/ClassSessionFile/DownloadClassSessionFile",
			AttendancePath:     "/University/ClassAttendance/GetAbsencesList",
			AbsenceDetailsPath: "/University/ClassAttendance/GetStudentAbsenceDetails",
			ProfilePath:        "/University/Student/GetCurrentStudentInfo",
			RequestTimeout:     30 * time.Second,
			DownloadTimeout:    5 * time.Minute,
			AttendanceTimeout:  15 * time.Second,
			RateLimit:          2,
			RateBurst:          4,
		},
		Sync: SyncConfig{
			Enabled:        true,
			Interval:       time.Hour,
			InitialDelay:   5 * time.Second,
			AcademicPeriod: DefaultAcademicPeriod,
			StorageDir:     "lectures_storage",
			ParserStrategy: "structured",
		},
		Database: DatabaseConfig{
			Path:      "data/lecture_sync.duckdb",
			MaxMemory: "256MB",
			Threads:   0,
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			LoginRateLimit:  5,
			LoginRateWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Portal
	"app_base_url":              "portal.app_url",
	"identity_base_url":         "portal.identity_url",
	"portal_login_path":         "portal.login_path",
	"portal_callback_path":      "portal.callback_path",
	"portal_timeline_path":      "portal.timeline_path",
	"portal_download_path":      "portal.download_path",
	"portal_attendance_path":    "portal.attendance_path",
	"portal_absence_path":       "portal.absence_details_path",
	"portal_profile_path":       "portal.profile_path",
	"portal_username":           "portal.username",
	"portal_password":           "portal.password",
	"portal_request_timeout":    "portal.request_timeout",
	"portal_download_timeout":   "portal.download_timeout",
	"portal_attendance_timeout": "portal.attendance_timeout",
	"portal_rate_limit":         "portal.rate_limit",
	"portal_rate_burst":         "portal.rate_burst",
	"portal_insecure_tls":       "portal.insecure_skip_verify",

	// Sync
	"sync_enabled":          "sync.enabled",
	"sync_interval":         "sync.interval",
	"sync_interval_seconds": "sync.interval_seconds",
	"sync_initial_delay":    "sync.initial_delay",
	"academic_period":       "sync.academic_period",
	"storage_dir":           "sync.storage_dir",
	"parser_strategy":       "sync.parser_strategy",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Session cache
	"session_ttl":              "session.ttl",
	"session_cleanup_interval": "session.cleanup_interval",

	// Server
	"http_host":                  "server.host",
	"http_port":                  "server.port",
	"http_timeout":               "server.timeout",
	"http_shutdown_timeout":      "server.shutdown_timeout",
	"cors_origins":               "server.cors_origins",
	"attendance_login_rate":      "server.login_rate_limit",
	"attendance_login_rate_span": "server.login_rate_window",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - PORTAL_USERNAME -> portal.username
//   - SYNC_INTERVAL_SECONDS -> sync.interval_seconds
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated variables never pollute config.
	return ""
}
