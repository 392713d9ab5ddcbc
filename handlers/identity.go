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

const (
	// maxRegisterBody caps the registration form including the document
	maxRegisterBody = 10 << 20
	// multipartMemory is how much of a form is buffered before spilling to disk
	multipartMemory = 1 << 20
)

type IdentityHandler struct {
	identity *voting.IdentityService
	sessions *auth.Sessions
	metrics  *metrics.Metrics
}

func NewIdentityHandler(db *sql.DB, cfg cliparse.Config, docs voting.DocumentStore, m *metrics.Metrics) *IdentityHandler {
	return &IdentityHandler{
		identity: voting.NewIdentityService(db, docs),
		sessions: auth.NewSessions(cfg.SessionSecret, auth.DefaultSessionTTL),
		metrics:  m,
	}
}

// Register handles POST /register
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBody)

	// Accepts multipart (with optional document) or urlencoded forms
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	params := voting.RegisterParams{
		VoterID:     r.FormValue("voter_id"),
		Name:        r.FormValue("name"),
		DateOfBirth: r.FormValue("dob"),
		Password:    r.FormValue("password"),
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile("document")
		switch {
		case err == nil:
			defer file.Close()
			params.Document = &voting.Document{Filename: header.Filename, Content: file}
		case !errors.Is(err, http.ErrMissingFile):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid document upload")
			return
		}
	}

	voter, err := h.identity.Register(r.Context(), params)
	if err != nil {
		h.metrics.IncRegistration(rejectionReason(err))
		writeServiceError(w, "failed to register voter", err)
		return
	}
	h.metrics.IncRegistration(metrics.ResultSuccess)

	slog.Info("voter registered", "voter", voter.ID, "has_document", voter.Document != nil)

	w.Header().Set("Location", "/login")
	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Voter:   voter,
		Message: "Registration successful. Please log in.",
	})
}

// Login handles POST /login
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := h.identity.Authenticate(r.Context(), req.VoterID, req.Password)
	if err != nil {
		h.metrics.IncLogin(models.RoleVoter, metrics.ResultFailure)
		writeServiceError(w, "failed to authenticate voter", err)
		return
	}

	token, err := h.sessions.Issue(auth.VoterIdentity(voter.ID))
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	h.metrics.IncLogin(models.RoleVoter, metrics.ResultSuccess)

	middleware.SetSessionCookie(w, r, token, h.sessions.TTL())
	w.Header().Set("Location", "/vote")
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Voter:    voter,
		Redirect: "/vote",
	})
}

// Logout handles GET /logout. It works for voters and admins alike.
func (h *IdentityHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}
