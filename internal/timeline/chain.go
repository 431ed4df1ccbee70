// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package timeline

import (
	"errors"
	"strings"

	"github.com/tomtom215/lecturesync/internal/logging"
)

// Chain tries each parser in turn, moving on only when one reports ErrNoSubjects.
type Chain struct {
	Parsers []Parser
}

// Name implements Parser.
func (c Chain) Name() string {
	names := make([]string, 0, len(c.Parsers))
	for _, p := range c.Parsers {
		names = append(names, p.Name())
	}
	return strings.Join(names, ">")
}

// Parse implements Parser.
func (c Chain) Parse(page []byte, period string) (Timeline, error) {
	for i, p := range c.Parsers {
		tl, err := p.Parse(page, period)
		if err == nil {
			return tl, nil
		}
		if !errors.Is(err, ErrNoSubjects) || i == len(c.Parsers)-1 {
			return nil, err
		}
		logging.Debug().
			Str("component", "timeline").
			Str("parser", p.Name()).
			Str("period", period).
			Msg("No subjects found, trying next strategy")
	}
	return Timeline{}, nil
}
