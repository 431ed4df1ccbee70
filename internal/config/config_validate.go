// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tomtom215/lecturesync/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validatePortal(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validatePortal() error {
	if err := validateHTTPURL(c.Portal.AppURL, "APP_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Portal.IdentityURL, "IDENTITY_BASE_URL"); err != nil {
		return err
	}
	if err := c.validatePortalPaths(); err != nil {
		return err
	}
	if err := c.validatePortalCredentials(); err != nil {
		return err
	}
	return c.validatePortalLimits()
}

func (c *Config) validatePortalPaths() error {
	paths := []struct {
		value string
		name  string
	}{
		{c.Portal.LoginPath, "PORTAL_LOGIN_PATH"},
		{c.Portal.CallbackPath, "PORTAL_CALLBACK_PATH"},
		{c.Portal.TimelinePath, "PORTAL_TIMELINE_PATH"},
		{c.Portal.DownloadPath, "PORTAL_DOWNLOAD_PATH"},
		{c.Portal.AttendancePath, "PORTAL_ATTENDANCE_PATH"},
		{c.Portal.AbsenceDetailsPath, "PORTAL_ABSENCE_PATH"},
		{c.Portal.ProfilePath, "PORTAL_PROFILE_PATH"},
	}
	for _, p := range paths {
		if err := validateEndpointPath(p.value, p.name); err != nil {
			return err
		}
	}
	return nil
}

// validatePortalCredentials rejects a half-configured pair. Missing credentials
// are allowed so the attendance API can run on its own; sync cycles then fail
// with a MissingCredentials auth error.
func (c *Config) validatePortalCredentials() error {
	hasUser := c.Portal.Username != ""
	hasPass := c.Portal.Password != ""
	if hasUser != hasPass {
		return fmt.Errorf("PORTAL_USERNAME and PORTAL_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) validatePortalLimits() error {
	if c.Portal.RequestTimeout <= 0 {
		return fmt.Errorf("PORTAL_REQUEST_TIMEOUT must be positive, got %v", c.Portal.RequestTimeout)
	}
	if c.Portal.DownloadTimeout <= 0 {
		return fmt.Errorf("PORTAL_DOWNLOAD_TIMEOUT must be positive, got %v", c.Portal.DownloadTimeout)
	}
	if c.Portal.AttendanceTimeout <= 0 {
		return fmt.Errorf("PORTAL_ATTENDANCE_TIMEOUT must be positive, got %v", c.Portal.AttendanceTimeout)
	}
	if c.Portal.RateLimit <= 0 {
		return fmt.Errorf("PORTAL_RATE_LIMIT must be positive, got %v", c.Portal.RateLimit)
	}
	if c.Portal.RateBurst < 1 {
		return fmt.Errorf("PORTAL_RATE_BURST must be at least 1, got %d", c.Portal.RateBurst)
	}
	return nil
}

const (
	minSyncInterval = time.Minute
	maxSyncInterval = 7 * 24 * time.Hour
)

var academicPeriodPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

func (c *Config) validateSync() error {
	if !c.Sync.Enabled {
		return nil
	}
	if err := c.validateSyncInterval(); err != nil {
		return err
	}
	if c.Sync.InitialDelay < 0 {
		return fmt.Errorf("SYNC_INITIAL_DELAY must not be negative, got %v", c.Sync.InitialDelay)
	}
	if err := c.validateAcademicPeriod(); err != nil {
		return err
	}
	if c.Sync.StorageDir == "" {
		return fmt.Errorf("STORAGE_DIR is required")
	}
	return c.validateParserStrategy()
}

func (c *Config) validateSyncInterval() error {
	interval := c.Sync.EffectiveInterval()
	if interval < minSyncInterval || interval > maxSyncInterval {
		return fmt.Errorf("sync interval must be between %v and %v, got %v", minSyncInterval, maxSyncInterval, interval)
	}
	return nil
}

func (c *Config) validateAcademicPeriod() error {
	if !academicPeriodPattern.MatchString(c.Sync.AcademicPeriod) {
		return fmt.Errorf("ACADEMIC_PERIOD must look like 2025-2026, got %q", c.Sync.AcademicPeriod)
	}
	return nil
}

func (c *Config) validateParserStrategy() error {
	switch c.Sync.ParserStrategy {
	case "structured", "flat":
		return nil
	default:
		return fmt.Errorf("PARSER_STRATEGY must be 'structured' or 'flat', got %q", c.Sync.ParserStrategy)
	}
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.Session.TTL)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive, got %v", c.Session.CleanupInterval)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.LoginRateLimit < 1 {
		return fmt.Errorf("ATTENDANCE_LOGIN_RATE must be at least 1, got %d", c.Server.LoginRateLimit)
	}
	if c.Server.LoginRateWindow <= 0 {
		return fmt.Errorf("ATTENDANCE_LOGIN_RATE_SPAN must be positive, got %v", c.Server.LoginRateWindow)
	}
	return nil
}

// ShouldWarnAboutCORS reports whether CORS allows any origin.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
