// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/votebooth/auth"
	"github.com/danielhkuo/votebooth/metrics"
)

// newTestMetrics returns metrics backed by a private registry
func newTestMetrics() (*metrics.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.New(reg), reg
}

// assertMetric compares one metric family against its text exposition
func assertMetric(t *testing.T, reg *prometheus.Registry, name, help, typ, samples string) {
	t.Helper()
	expected := "# HELP " + name + " " + help + "\n# TYPE " + name + " " + typ + "\n" + samples
	if err := promtestutil.GatherAndCompare(reg, strings.NewReader(expected), name); err != nil {
		t.Error(err)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func asVoter(req *http.Request, voterID int64) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), auth.VoterIdentity(voterID)))
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), auth.AdminIdentity()))
}

type upload struct {
	filename string
	content  string
}

// registerRequest builds a multipart POST /register
func registerRequest(t *testing.T, fields map[string]string, doc *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	if doc != nil {
		part, err := mw.CreateFormFile("document", doc.filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write([]byte(doc.content))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func adultFields(voterID string) map[string]string {
	return map[string]string{
		"voter_id": voterID,
		"name":     "Voter " + voterID,
		"dob":      "1990-05-17",
		"password": "pa55word",
	}
}

// sessionCookie returns the session cookie set on a response
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "votebooth_session" {
			return c
		}
	}
	t.Fatal("Expected a session cookie")
	return nil
}
