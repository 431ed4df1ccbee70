// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package logging

import (
	"net/http"
	"strings"
)

// RedactToken masks a session token or cookie value.
// Example: "Zm9vYmFyYmF6cXV4eHl6" -> "Zm9v...eHl6"
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactUsername masks a username, keeping the first 2 characters.
// Example: "20231234" -> "20***"
func RedactUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

// sensitiveKeys are form field and header names whose values never reach a log line.
var sensitiveKeys = map[string]bool{
	"password":                   true,
	"username":                   true,
	"token":                      true,
	"session_token":              true,
	"__requestverificationtoken": true,
	"code":                       true,
	"id_token":                   true,
	"access_token":               true,
	"state":                      true,
	"session_state":              true,
	"authorization":              true,
	"cookie":                     true,
	"set-cookie":                 true,
	"x-session-token":            true,
}

// RedactValue masks value when key names a credential-bearing field.
// Other values are returned truncated to 200 characters.
func RedactValue(key, value string) string {
	lowerKey := strings.ToLower(key)
	if lowerKey == "username" {
		return RedactUsername(value)
	}
	if sensitiveKeys[lowerKey] {
		return RedactToken(value)
	}
	return truncateString(value, 200)
}

// CookieNames returns the names of cookies without their values.
func CookieNames(cookies []*http.Cookie) []string {
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	return names
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
