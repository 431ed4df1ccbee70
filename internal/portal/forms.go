// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package portal

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const verificationTokenField = "__RequestVerificationToken"

// extractVerificationToken returns the anti-forgery token of the login page.
func extractVerificationToken(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse login page: %w", err)
	}

	var token string
	doc.Find("input").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if name, _ := s.Attr("name"); name != verificationTokenField {
			return true
		}
		if v, _ := s.Attr("value"); v != "" {
			token = v
			return false
		}
		return true
	})
	if token == "" {
		return "", newAuthError(KindTokenNotFound, "login page has no "+verificationTokenField, nil)
	}
	return token, nil
}

// extractFormPost returns the fields of the first form whose inputs are all
// hidden, which is how an OIDC form_post response looks. ok is false when the
// page has no such form.
func extractFormPost(body []byte) (fields url.Values, ok bool, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("parse form_post page: %w", err)
	}

	doc.Find("form").EachWithBreak(func(_ int, form *goquery.Selection) bool {
		inputs := form.Find("input")
		if inputs.Length() == 0 {
			return true
		}

		values := url.Values{}
		allHidden := true
		inputs.EachWithBreak(func(_ int, in *goquery.Selection) bool {
			typ, _ := in.Attr("type")
			if !strings.EqualFold(typ, "hidden") {
				allHidden = false
				return false
			}
			if name, _ := in.Attr("name"); name != "" {
				v, _ := in.Attr("value")
				values.Set(name, v)
			}
			return true
		})
		if !allHidden || len(values) == 0 {
			return true
		}

		fields, ok = values, true
		return false
	})
	return fields, ok, nil
}

// oidcRejection builds the error for a form_post page that carries an error
// field. The message always contains the error code.
func oidcRejection(fields url.Values) *AuthError {
	code := fields.Get("error")
	msg := "identity provider rejected login: " + code
	if desc := fields.Get("error_description"); desc != "" && desc != code {
		msg += " (" + desc + ")"
	}
	return newAuthError(KindOIDCRejected, msg, nil)
}
