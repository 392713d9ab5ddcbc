// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/votebooth/models"
	"github.com/danielhkuo/votebooth/testutil"
)

func TestAdminLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	m, reg := newTestMetrics()
	handler := NewAdminHandler(db, cfg, m)

	tests := []struct {
		name           string
		body           models.AdminLoginRequest
		expectedStatus int
	}{
		{"valid credentials", models.AdminLoginRequest{Username: cfg.AdminUsername, Password: cfg.AdminPassword}, http.StatusOK},
		{"wrong password", models.AdminLoginRequest{Username: cfg.AdminUsername, Password: "guess"}, http.StatusUnauthorized},
		{"wrong username", models.AdminLoginRequest{Username: "root", Password: cfg.AdminPassword}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/login", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
					t.Errorf("Expected Location /admin/dashboard, got %q", loc)
				}
				sessionCookie(t, w)
			}
		})
	}

	assertMetric(t, reg, "votebooth_logins_total", "Login attempts by role and outcome", "counter", `
votebooth_logins_total{result="failure",role="admin"} 2
votebooth_logins_total{result="success",role="admin"} 1
`)
}

func TestDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAdminHandler(db, testutil.GetTestConfig(t), nil)

	testutil.CreateTestVoter(t, db, "V1")
	testutil.CreateTestVoter(t, db, "V2")
	testutil.CreateTestCandidate(t, db, "Alice")

	w := httptest.NewRecorder()
	handler.Dashboard(w, asAdmin(httptest.NewRequest("GET", "/admin/dashboard", nil)))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.DashboardResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Voters) != 2 || len(resp.Candidates) != 1 {
		t.Errorf("Expected 2 voters and 1 candidate, got %d and %d", len(resp.Voters), len(resp.Candidates))
	}
	if resp.Voters[0].VoterID != "V1" {
		t.Errorf("Expected voters in id order, got %+v", resp.Voters)
	}
}

func TestAddCandidateHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAdminHandler(db, testutil.GetTestConfig(t), nil)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.Candidate)
	}{
		{
			name:           "with party",
			body:           models.AddCandidateRequest{Name: "Alice", Party: "Green"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Candidate) {
				if resp.ID == 0 || resp.Party == nil || *resp.Party != "Green" {
					t.Errorf("Unexpected candidate: %+v", resp)
				}
			},
		},
		{
			name:           "without party",
			body:           models.AddCandidateRequest{Name: "Bob"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Candidate) {
				if resp.Party != nil {
					t.Errorf("Expected no party, got %q", *resp.Party)
				}
			},
		},
		{
			name:           "empty name",
			body:           models.AddCandidateRequest{Name: "  ", Party: "Green"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/add_candidate", tt.body, nil)
			w := httptest.NewRecorder()

			handler.AddCandidate(w, asAdmin(req))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var resp models.Candidate
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}

	if n := testutil.CountRows(t, db, "candidates", ""); n != 2 {
		t.Errorf("Expected 2 candidates, got %d", n)
	}
}

func TestResultsAndExport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAdminHandler(db, testutil.GetTestConfig(t), nil)

	v1 := testutil.CreateTestVoter(t, db, "V1")
	alice := testutil.CreateTestCandidate(t, db, "Alice")
	testutil.CreateTestCandidate(t, db, "Smith, Jane")

	if _, err := db.Exec(`INSERT INTO votes (voter_id, candidate_id) VALUES ($1, $2)`, v1, alice); err != nil {
		t.Fatal(err)
	}

	t.Run("results", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Results(w, asAdmin(httptest.NewRequest("GET", "/admin/results", nil)))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ResultsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.TotalVotes != 1 || len(resp.Results) != 2 {
			t.Fatalf("Unexpected results: %+v", resp)
		}
		if resp.Results[0].Total != 1 || resp.Results[1].Total != 0 {
			t.Errorf("Unexpected totals: %+v", resp.Results)
		}
	})

	t.Run("export", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Export(w, asAdmin(httptest.NewRequest("GET", "/admin/export", nil)))

		testutil.AssertStatus(t, w, http.StatusOK)
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("Expected text/csv, got %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=results.csv" {
			t.Errorf("Unexpected Content-Disposition %q", cd)
		}

		records, err := csv.NewReader(w.Body).ReadAll()
		if err != nil {
			t.Fatalf("Export is not valid CSV: %v", err)
		}
		want := [][]string{{"candidate", "total"}, {"Alice", "1"}, {"Smith, Jane", "0"}}
		if len(records) != len(want) {
			t.Fatalf("Expected %d records, got %v", len(want), records)
		}
		for i := range want {
			if records[i][0] != want[i][0] || records[i][1] != want[i][1] {
				t.Errorf("record %d = %v, want %v", i, records[i], want[i])
			}
		}
	})
}
