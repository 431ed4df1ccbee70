// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package timeline

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// FlatSubject is the bucket used by the flat strategy.
const FlatSubject = "All Lectures"

// ErrNoSubjects is returned by the structured strategy when the period
// exists but no subject header has any file below it.
var ErrNoSubjects = errors.New("timeline: no subject with files in period")

// downloadIDPattern extracts file ids from download links.
var downloadIDPattern = regexp.MustCompile(`DownloadClassSessionFile\?id=([a-f0-9\-]+)`)

// Timeline maps a subject to its file ids in document order. A file id
// appears under at most one subject.
type Timeline map[string][]string

// Entry is one file of a Timeline.
type Entry struct {
	Subject string
	FileID  string
}

// Entries returns every file, subjects in lexical order and ids in document order.
func (t Timeline) Entries() []Entry {
	subjects := make([]string, 0, len(t))
	for s := range t {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	entries := make([]Entry, 0, t.Len())
	for _, s := range subjects {
		for _, id := range t[s] {
			entries = append(entries, Entry{Subject: s, FileID: id})
		}
	}
	return entries
}

// Len returns the number of file ids.
func (t Timeline) Len() int {
	n := 0
	for _, ids := range t {
		n += len(ids)
	}
	return n
}

// Parser extracts a Timeline for one academic period from the session page.
type Parser interface {
	Parse(html []byte, period string) (Timeline, error)
	Name() string
}

// Strategy selects a Parser.
type Strategy string

const (
	// StrategyStructured attributes files to subjects, falling back to flat.
	StrategyStructured Strategy = "structured"
	// StrategyFlat puts every file under FlatSubject.
	StrategyFlat Strategy = "flat"
)

// ParseStrategy converts a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStructured, StrategyFlat:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown timeline strategy %q", s)
	}
}

// New returns the parser for strategy. Unknown strategies get the default chain.
func New(strategy Strategy) Parser {
	if strategy == StrategyFlat {
		return Flat{}
	}
	return Chain{Parsers: []Parser{Structured{}, Flat{}}}
}
