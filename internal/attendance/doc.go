// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

// Package attendance lets a student log in with their own portal account and
// read their attendance, absence details and profile.
//
// Login replays the same portal flow as the sync loop but with per-request
// credentials. The resulting application cookies are kept in a
// sessioncache.Cache under an opaque token; later reads rebuild a session
// from those cookies. Nothing here touches the dedup store.
package attendance
