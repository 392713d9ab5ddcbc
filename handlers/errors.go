// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votebooth/middleware"
	"github.com/danielhkuo/votebooth/voting"
)

// statusFor maps a service error to an HTTP status and client message
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, voting.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, voting.ErrUnderage):
		return http.StatusForbidden, "You must be at least 18 years old to register"
	case errors.Is(err, voting.ErrDuplicateVoter):
		return http.StatusConflict, "Voter ID already registered"
	case errors.Is(err, voting.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid voter ID or password"
	case errors.Is(err, voting.ErrInvalidAdminCredentials):
		return http.StatusUnauthorized, "Invalid admin credentials"
	case errors.Is(err, voting.ErrNotAuthenticated):
		return http.StatusUnauthorized, "Login required"
	case errors.Is(err, voting.ErrAlreadyVoted):
		return http.StatusConflict, "You have already voted"
	case errors.Is(err, voting.ErrUnknownCandidate):
		return http.StatusNotFound, "Candidate not found"
	case errors.Is(err, voting.ErrStorageConflict), errors.Is(err, voting.ErrStorageUnavailable):
		return http.StatusInternalServerError, "Database error"
	}
	return http.StatusInternalServerError, "Internal error"
}

// writeServiceError writes the response for err. Server-side failures are
// logged under op.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op, "error", err)
	}
	middleware.ErrorResponse(w, status, message)
}

// rejectionReason is the metrics label for a failed operation
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, voting.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, voting.ErrUnderage):
		return "underage"
	case errors.Is(err, voting.ErrDuplicateVoter):
		return "duplicate"
	case errors.Is(err, voting.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, voting.ErrUnknownCandidate):
		return "unknown_candidate"
	case errors.Is(err, voting.ErrNotAuthenticated):
		return "not_authenticated"
	}
	return "error"
}
