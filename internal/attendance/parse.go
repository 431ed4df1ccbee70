// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package attendance

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minNameLength filters labels that are too short to be a name.
const minNameLength = 4

// maxLabelLength skips container elements whose text merely includes a label.
const maxLabelLength = 64

var nameLabels = []string{"student name", "full name", "student:", "name:"}

var titleStopWords = map[string]bool{"attendance": true, "portal": true, "home": true}

func parseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse portal page: %w", err)
	}
	return doc, nil
}

// parseAbsenceDetails reads the first table, skipping the header row. Rows
// with a non-empty date and time become "<date> at <time>".
func parseAbsenceDetails(body []byte) ([]string, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}

	details := []string{}
	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		date := strings.TrimSpace(cells.Eq(0).Text())
		at := strings.TrimSpace(cells.Eq(1).Text())
		if date != "" && at != "" {
			details = append(details, date+" at "+at)
		}
	})
	return details, nil
}

// parseProfile splits the first cell of the first table row into name parts.
func parseProfile(body []byte) (*Profile, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}

	cell := doc.Find("table").First().Find("tr").First().Find("td").First()
	parts := strings.Fields(cell.Text())
	switch len(parts) {
	case 0:
		return nil, ErrProfileNotFound
	case 1:
		return &Profile{FirstName: parts[0]}, nil
	case 2:
		return &Profile{FirstName: parts[0], LastName: parts[1]}, nil
	default:
		return &Profile{
			FirstName:  parts[0],
			MiddleName: strings.Join(parts[1:len(parts)-1], " "),
			LastName:   parts[len(parts)-1],
		}, nil
	}
}

// extractStudentName looks for a labelled name on the attendance page, then
// for a "Attendance - Name" style title. It returns "" when nothing fits.
func extractStudentName(body []byte) string {
	doc, err := parseDocument(body)
	if err != nil {
		return ""
	}

	var name string
	for _, label := range nameLabels {
		doc.Find("label, span, div, td, th, p").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if len(text) > maxLabelLength || !strings.Contains(strings.ToLower(text), label) {
				return true
			}
			if next := el.Next(); next.Length() > 0 {
				if candidate := strings.TrimSpace(next.Text()); len(candidate) >= minNameLength {
					name = candidate
					return false
				}
				return true
			}
			if _, after, ok := strings.Cut(text, ":"); ok {
				if candidate := strings.TrimSpace(after); len(candidate) >= minNameLength {
					name = candidate
					return false
				}
			}
			return true
		})
		if name != "" {
			return name
		}
	}

	title := doc.Find("title").First().Text()
	if !strings.Contains(title, "-") {
		return ""
	}
	for _, part := range strings.Split(title, "-") {
		part = strings.TrimSpace(part)
		if len(part) >= minNameLength && !titleStopWords[strings.ToLower(part)] {
			return part
		}
	}
	return ""
}
