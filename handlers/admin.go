// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votebooth/auth"
	"github.com/danielhkuo/votebooth/cliparse"
	"github.com/danielhkuo/votebooth/metrics"
	"github.com/danielhkuo/votebooth/middleware"
	"github.com/danielhkuo/votebooth/models"
	"github.com/danielhkuo/votebooth/voting"
)

type AdminHandler struct {
	admin    *voting.AdminService
	identity *voting.IdentityService
	ballot   *voting.BallotService
	tally    *voting.TallyService
	sessions *auth.Sessions
	metrics  *metrics.Metrics
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{
		admin:    voting.NewAdminService(db, cfg.AdminUsername, cfg.AdminPassword),
		identity: voting.NewIdentityService(db, nil),
		ballot:   voting.NewBallotService(db),
		tally:    voting.NewTallyService(db),
		sessions: auth.NewSessions(cfg.SessionSecret, auth.DefaultSessionTTL),
		metrics:  m,
	}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.admin.Authenticate(req.Username, req.Password)
	if err != nil {
		h.metrics.IncLogin(models.RoleAdmin, metrics.ResultFailure)
		slog.Warn("admin login failed", "remote", middleware.GetClientIP(r))
		writeServiceError(w, "failed to authenticate admin", err)
		return
	}

	token, err := h.sessions.Issue(id)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	h.metrics.IncLogin(models.RoleAdmin, metrics.ResultSuccess)

	middleware.SetSessionCookie(w, r, token, h.sessions.TTL())
	w.Header().Set("Location", "/admin/dashboard")
	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Redirect: "/admin/dashboard",
	})
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	voters, err := h.identity.ListVoters(r.Context())
	if err != nil {
		writeServiceError(w, "failed to list voters", err)
		return
	}

	candidates, err := h.ballot.ListCandidates(r.Context())
	if err != nil {
		writeServiceError(w, "failed to list candidates", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		Voters:     voters,
		Candidates: candidates,
	})
}

// AddCandidate handles POST /admin/add_candidate
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.admin.AddCandidate(r.Context(), req.Name, req.Party)
	if err != nil {
		writeServiceError(w, "failed to add candidate", err)
		return
	}

	slog.Info("candidate added", "candidate", candidate.ID, "name", candidate.Name)

	w.Header().Set("Location", "/admin/dashboard")
	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// Results handles GET /admin/results
func (h *AdminHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.tally.Results(r.Context())
	if err != nil {
		writeServiceError(w, "failed to compute results", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results:    results,
		TotalVotes: voting.TotalVotes(results),
	})
}

// Export handles GET /admin/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.tally.ExportCSV(r.Context())
	if err != nil {
		writeServiceError(w, "failed to export results", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=results.csv")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
