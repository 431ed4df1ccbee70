// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/lecturesync/internal/attendance"
	"github.com/tomtom215/lecturesync/internal/logging"
	"github.com/tomtom215/lecturesync/internal/models"
	"github.com/tomtom215/lecturesync/internal/validation"
)

// AttendanceLogin authenticates the student against the portal and returns
// a session token for the other attendance routes.
func (h *Handler) AttendanceLogin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req validation.LoginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	result, err := h.attendance.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondAttendanceError(w, r, err)
		return
	}

	respondSuccess(w, r, models.AttendanceLoginResponse{
		SessionToken: result.SessionToken,
		StudentID:    result.StudentID,
		Username:     result.Username,
	}, start)
}

// Attendance returns the raw attendance page of the session's student.
func (h *Handler) Attendance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	report, err := h.attendance.Attendance(r.Context(), sessionToken(r))
	if err != nil {
		h.respondAttendanceError(w, r, err)
		return
	}

	respondSuccess(w, r, models.AttendanceResponse{
		HTML:          report.HTML,
		StudentID:     report.StudentID,
		Username:      report.Username,
		ExtractedName: report.StudentName,
	}, start)
}

// AbsenceDetails returns the absence rows of one class as "<date> at <time>".
func (h *Handler) AbsenceDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := validation.AbsenceDetailsRequest{StudentClassID: r.URL.Query().Get("student_class_id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	details, err := h.attendance.AbsenceDetails(r.Context(), sessionToken(r), req.StudentClassID)
	if err != nil {
		h.respondAttendanceError(w, r, err)
		return
	}

	respondSuccess(w, r, models.AbsenceDetailsResponse{Details: details}, start)
}

// AttendanceProfile returns the student's name parts.
func (h *Handler) AttendanceProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	profile, err := h.attendance.Profile(r.Context(), sessionToken(r))
	if err != nil {
		h.respondAttendanceError(w, r, err)
		return
	}

	respondSuccess(w, r, models.ProfileResponse{
		FirstName:  profile.FirstName,
		MiddleName: profile.MiddleName,
		LastName:   profile.LastName,
	}, start)
}

// AttendanceLogout drops the session token. Unknown tokens are not an error.
func (h *Handler) AttendanceLogout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	token := sessionToken(r)
	if token == "" {
		h.respondAttendanceError(w, r, attendance.ErrInvalidToken)
		return
	}

	respondSuccess(w, r, models.LogoutResponse{LoggedOut: h.attendance.Logout(token)}, start)
}

func (h *Handler) respondAttendanceError(w http.ResponseWriter, r *http.Request, err error) {
	f := classifyAttendanceError(err)
	if f.status == http.StatusUnauthorized {
		logging.Ctx(r.Context()).Debug().Err(err).Str("code", f.code).Msg("Attendance request rejected")
		respondError(w, r, f.status, f.code, f.message, nil)
		return
	}
	respondError(w, r, f.status, f.code, f.message, err)
}
