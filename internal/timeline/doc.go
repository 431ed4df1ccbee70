// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package timeline turns the portal's class session page into a mapping of
subject to downloadable file ids for one academic period.

The page is server-rendered HTML. Each academic period is a Bootstrap card
whose title span holds the period ("2025-2026"); inside it, subject names
are paragraph headers and files are links to DownloadClassSessionFile?id=...

Two strategies are available:

  - Structured: walks each period card in document order and attributes
    every file id to the subject header above it. A card with no usable
    header contributes its files to "All Lectures".
  - Flat: collects every file id of the period under "All Lectures".

New(StrategyStructured) returns a Chain that runs Structured and falls back
to Flat when no subject yields any file. Parsing is pure; the same input
always produces the same Timeline.
*/
package timeline
