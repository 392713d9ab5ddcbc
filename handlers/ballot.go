// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votebooth/auth"
	"github.com/danielhkuo/votebooth/cliparse"
	"github.com/danielhkuo/votebooth/metrics"
	"github.com/danielhkuo/votebooth/middleware"
	"github.com/danielhkuo/votebooth/models"
	"github.com/danielhkuo/votebooth/voting"
)

type BallotHandler struct {
	identity *voting.IdentityService
	ballot   *voting.BallotService
	metrics  *metrics.Metrics
}

func NewBallotHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *BallotHandler {
	return &BallotHandler{
		identity: voting.NewIdentityService(db, nil),
		ballot:   voting.NewBallotService(db),
		metrics:  m,
	}
}

// voterID returns the voter attached by middleware.RequireVoter
func voterID(r *http.Request) (int64, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok || !id.IsVoter() {
		return 0, false
	}
	return id.VoterID, true
}

// GetBallot handles GET /vote
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	id, ok := voterID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	voter, err := h.identity.Voter(r.Context(), id)
	if err != nil {
		if errors.Is(err, voting.ErrNotAuthenticated) {
			middleware.ClearSessionCookie(w)
		}
		writeServiceError(w, "failed to load voter", err)
		return
	}

	if voter.HasVoted {
		middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
			Voted: true,
			Voter: &voter,
		})
		return
	}

	candidates, err := h.ballot.ListCandidates(r.Context())
	if err != nil {
		writeServiceError(w, "failed to list candidates", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		Voted:      false,
		Voter:      &voter,
		Candidates: candidates,
	})
}

// CastVote handles POST /vote
func (h *BallotHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, ok := voterID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	vote, err := h.ballot.CastVote(r.Context(), id, req.CandidateID)
	if err != nil {
		h.metrics.IncVoteRejected(rejectionReason(err))
		writeServiceError(w, "failed to cast vote", err)
		return
	}
	h.metrics.IncVoteCast()

	slog.Info("vote cast", "voter", id, "vote", vote.ID)

	resp := models.CastVoteResponse{
		Vote:    vote,
		Message: "Thank you for voting!",
	}

	// The vote is committed; a failed lookup only thins the response
	candidate, err := h.ballot.Candidate(r.Context(), vote.CandidateID)
	if err != nil {
		slog.Warn("failed to load voted candidate", "candidate", vote.CandidateID, "error", err)
		candidate = models.Candidate{ID: vote.CandidateID}
	}
	resp.Candidate = candidate

	middleware.JSONResponse(w, http.StatusCreated, resp)
}
