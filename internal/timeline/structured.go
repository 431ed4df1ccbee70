// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package timeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// minSubjectLength filters out short labels that are not subject names.
const minSubjectLength = 5

var semesterHeaders = map[string]bool{
	"Fall Semester":   true,
	"Spring Semester": true,
	"Summer Semester": true,
}

// Structured attributes each file to the nearest subject header above it.
// Files of a period card that has no usable header go under FlatSubject.
type Structured struct{}

// Name implements Parser.
func (Structured) Name() string { return string(StrategyStructured) }

// Parse implements Parser.
func (Structured) Parse(page []byte, period string) (Timeline, error) {
	sections, err := periodSections(page, period)
	if err != nil {
		return nil, err
	}
	tl := Timeline{}
	if len(sections) == 0 {
		return tl, nil
	}

	assigned := make(map[string]bool)
	attributed := false
	for _, section := range sections {
		subject := ""
		sectionAttributed := false
		var unattributed []string
		walk(section, func(n *html.Node) {
			if isSubjectHeader(n) {
				if name := textOf(n); isValidSubject(name) {
					subject = name
				}
				return
			}
			for _, id := range idsIn(n) {
				if subject == "" {
					unattributed = append(unattributed, id)
					continue
				}
				sectionAttributed = true
				if assigned[id] {
					continue
				}
				assigned[id] = true
				tl[subject] = append(tl[subject], id)
			}
		})

		if sectionAttributed {
			attributed = true
			continue
		}
		// A card without usable headers keeps its files under FlatSubject.
		for _, id := range unattributed {
			if assigned[id] {
				continue
			}
			assigned[id] = true
			tl[FlatSubject] = append(tl[FlatSubject], id)
		}
	}

	if !attributed {
		return nil, ErrNoSubjects
	}
	return tl, nil
}

func isSubjectHeader(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.P &&
		hasClasses(n, "m-0", "float-left", "font-weight-bold")
}

// isValidSubject rejects semester labels and short strings. Rejected headers
// do not end the current subject region.
func isValidSubject(name string) bool {
	return !semesterHeaders[name] && len(name) >= minSubjectLength
}
