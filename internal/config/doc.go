// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package config loads LectureSync configuration with Koanf v2.

Configuration is layered, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/lecturesync/config.yaml
 3. Environment variables, mapped explicitly in envTransformFunc

Unmapped environment variables are ignored.

Common environment variables:

	PORTAL_USERNAME, PORTAL_PASSWORD   portal credentials used by the sync loop
	APP_BASE_URL, IDENTITY_BASE_URL    portal and identity provider base URLs
	SYNC_INTERVAL                      duration between cycles (e.g. 30m)
	SYNC_INTERVAL_SECONDS              same, in whole seconds; wins over SYNC_INTERVAL
	ACADEMIC_PERIOD                    timeline section to mirror (default 2025-2026)
	STORAGE_DIR                        directory receiving downloaded files
	DUCKDB_PATH                        dedup store location
	SESSION_TTL                        attendance session lifetime (default 30m)
	HTTP_HOST, HTTP_PORT               API listen address
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER  logging

Example:

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	client, err := portal.NewClient(cfg.Portal)
*/
package config
