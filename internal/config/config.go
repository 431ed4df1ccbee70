// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Portal   PortalConfig   `koanf:"portal"`
	Sync     SyncConfig     `koanf:"sync"`
	Database DatabaseConfig `koanf:"database"`
	Session  SessionConfig  `koanf:"session"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// PortalConfig describes the academic portal and its identity provider.
type PortalConfig struct {
	AppURL      string `koanf:"app_url"`
	IdentityURL string `koanf:"identity_url"`

	LoginPath          string `koanf:"login_path"`
	CallbackPath       string `koanf:"callback_path"`
	TimelinePath       string `koanf:"timeline_path"`
	DownloadPath       string `koanf:"download_path"`
	AttendancePath     string `koanf:"attendance_path"`
	AbsenceDetailsPath string `koanf:"absence_details_path"`
	ProfilePath        string `koanf:"profile_path"`

	// Credentials used by the background sync loop.
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	RequestTimeout    time.Duration `koanf:"request_timeout"`
	DownloadTimeout   time.Duration `koanf:"download_timeout"`
	AttendanceTimeout time.Duration `koanf:"attendance_timeout"`

	// RateLimit is the sustained request rate against the portal, per second.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`
}

// Endpoint joins the application base URL with path.
func (p *PortalConfig) Endpoint(path string) string {
	return strings.TrimRight(p.AppURL, "/") + path
}

// HasCredentials reports whether both username and password are set.
func (p *PortalConfig) HasCredentials() bool {
	return p.Username != "" && p.Password != ""
}

// SyncConfig holds the mirror loop settings.
type SyncConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	// IntervalSeconds overrides Interval when positive.
	IntervalSeconds int           `koanf:"interval_seconds"`
	InitialDelay    time.Duration `koanf:"initial_delay"`
	AcademicPeriod  string        `koanf:"academic_period"`
	StorageDir      string        `koanf:"storage_dir"`
	// ParserStrategy is "structured" (with flat fallback) or "flat".
	ParserStrategy string `koanf:"parser_strategy"`
}

// EffectiveInterval returns the cycle interval after applying IntervalSeconds.
func (s *SyncConfig) EffectiveInterval() time.Duration {
	if s.IntervalSeconds > 0 {
		return time.Duration(s.IntervalSeconds) * time.Second
	}
	return s.Interval
}

// DatabaseConfig holds DuckDB settings for the dedup store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// SessionConfig controls the attendance session cache.
type SessionConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`

	// LoginRateLimit is the number of attendance logins allowed per client IP
	// within LoginRateWindow.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
