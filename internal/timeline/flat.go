// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package timeline

import "golang.org/x/net/html"

// Flat collects every file id of the period under FlatSubject.
type Flat struct{}

// Name implements Parser.
func (Flat) Name() string { return string(StrategyFlat) }

// Parse implements Parser.
func (Flat) Parse(page []byte, period string) (Timeline, error) {
	ids, err := FlatIDs(page, period)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return Timeline{}, nil
	}
	return Timeline{FlatSubject: ids}, nil
}

// FlatIDs returns the distinct file ids of the period in document order.
func FlatIDs(page []byte, period string) ([]string, error) {
	sections, err := periodSections(page, period)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]bool)
	for _, section := range sections {
		walk(section, func(n *html.Node) {
			for _, id := range idsIn(n) {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		})
	}
	return ids, nil
}
