// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/votebooth/models"
	"github.com/danielhkuo/votebooth/testutil"
)

func TestGetBallot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewBallotHandler(db, testutil.GetTestConfig(t), nil)

	voterID := testutil.CreateTestVoter(t, db, "V1")
	alice := testutil.CreateTestCandidate(t, db, "Alice")
	testutil.CreateTestCandidate(t, db, "Bob")

	t.Run("not logged in", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetBallot(w, httptest.NewRequest("GET", "/vote", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown voter in session", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetBallot(w, asVoter(httptest.NewRequest("GET", "/vote", nil), 9999))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("candidate list before voting", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetBallot(w, asVoter(httptest.NewRequest("GET", "/vote", nil), voterID))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Voted {
			t.Error("Expected voted=false")
		}
		if len(resp.Candidates) != 2 {
			t.Errorf("Expected 2 candidates, got %d", len(resp.Candidates))
		}
	})

	if _, err := db.Exec(`INSERT INTO votes (voter_id, candidate_id) VALUES ($1, $2)`, voterID, alice); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE voters SET has_voted = TRUE WHERE id = $1`, voterID); err != nil {
		t.Fatal(err)
	}

	t.Run("already voted", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetBallot(w, asVoter(httptest.NewRequest("GET", "/vote", nil), voterID))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Voted {
			t.Error("Expected voted=true")
		}
		if len(resp.Candidates) != 0 {
			t.Error("Voted ballot should not list candidates")
		}
	})
}

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m, reg := newTestMetrics()
	handler := NewBallotHandler(db, testutil.GetTestConfig(t), m)

	voterID := testutil.CreateTestVoter(t, db, "V1")
	otherID := testutil.CreateTestVoter(t, db, "V2")
	alice := testutil.CreateTestCandidate(t, db, "Alice")
	bob := testutil.CreateTestCandidate(t, db, "Bob")

	tests := []struct {
		name           string
		voterID        int64
		body           string
		expectedStatus int
		checkResponse  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:           "not logged in",
			voterID:        0,
			body:           `{"candidate_id":1}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid json",
			voterID:        voterID,
			body:           `{"candidate_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing candidate",
			voterID:        voterID,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown candidate",
			voterID:        voterID,
			body:           `{"candidate_id":9999}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "valid vote",
			voterID:        voterID,
			body:           `{"candidate_id":` + itoa(alice) + `}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.CastVoteResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Vote.CandidateID != alice || resp.Candidate.Name != "Alice" {
					t.Errorf("Unexpected response: %+v", resp)
				}
				if resp.Message == "" {
					t.Error("Expected a thank-you message")
				}
			},
		},
		{
			name:           "second vote",
			voterID:        voterID,
			body:           `{"candidate_id":` + itoa(bob) + `}`,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "other voter",
			voterID:        otherID,
			body:           `{"candidate_id":` + itoa(bob) + `}`,
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/vote", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.voterID != 0 {
				req = asVoter(req, tt.voterID)
			}
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}

	if n := testutil.CountRows(t, db, "votes", ""); n != 2 {
		t.Errorf("Expected 2 vote rows, got %d", n)
	}

	assertMetric(t, reg, "votebooth_votes_cast_total", "Total number of ballots recorded", "counter", `
votebooth_votes_cast_total 2
`)
	assertMetric(t, reg, "votebooth_vote_rejections_total", "Ballots refused, by reason", "counter", `
votebooth_vote_rejections_total{reason="already_voted"} 1
votebooth_vote_rejections_total{reason="unknown_candidate"} 1
`)
}

func TestCastVoteAsAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewBallotHandler(db, testutil.GetTestConfig(t), nil)
	alice := testutil.CreateTestCandidate(t, db, "Alice")

	req := httptest.NewRequest("POST", "/vote", strings.NewReader(`{"candidate_id":`+itoa(alice)+`}`))
	w := httptest.NewRecorder()

	handler.CastVote(w, asAdmin(req))

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
