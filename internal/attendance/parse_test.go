// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package attendance

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name string
		html string
		want *Profile
	}{
		{"one part", `<table><tr><td>Jane</td></tr></table>`, &Profile{FirstName: "Jane"}},
		{"two parts", `<table><tr><td>Jane Doe</td></tr></table>`, &Profile{FirstName: "Jane", LastName: "Doe"}},
		{"three parts", `<table><tr><td>Jane Q Doe</td><td>ignored</td></tr></table>`,
			&Profile{FirstName: "Jane", MiddleName: "Q", LastName: "Doe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProfile([]byte(tt.html))
			if err != nil {
				t.Fatalf("parseProfile: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseProfile_NoTable(t *testing.T) {
	if _, err := parseProfile([]byte(`<p>nothing</p>`)); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestParseAbsenceDetails_NoTable(t *testing.T) {
	details, err := parseAbsenceDetails([]byte(`<p>no absences</p>`))
	if err != nil {
		t.Fatalf("parseAbsenceDetails: %v", err)
	}
	if details == nil || len(details) != 0 {
		t.Errorf("details = %#v, want empty slice", details)
	}
}

func TestExtractStudentName(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"label sibling", `<div><label>Student Name</label><span>Jane Doe</span></div>`, "Jane Doe"},
		{"inline colon", `<p>Name: John Smith</p>`, "John Smith"},
		{"title", `<title>Attendance - Ali Hassan</title>`, "Ali Hassan"},
		{"title without dash", `<title>Portal Home</title>`, ""},
		{"nothing", `<p>hello</p>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractStudentName([]byte(tt.html)); got != tt.want {
				t.Errorf("extractStudentName = %q, want %q", got, tt.want)
			}
		})
	}
}
