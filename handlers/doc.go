// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the votebooth server.

# Handler Types

Each handler is a struct built from the database, config and metrics:

  - IdentityHandler: Register, Login, Logout
  - BallotHandler: GetBallot, CastVote
  - AdminHandler: Login, Dashboard, AddCandidate, Results, Export

	identityHandler := handlers.NewIdentityHandler(db, cfg, docs, m)

Handlers hold no election logic of their own; they decode the request,
call the voting services and translate the outcome.

# Sessions

Login handlers issue a session cookie. Handlers behind
middleware.RequireVoter or middleware.RequireAdmin read the caller from
auth.IdentityFrom(r.Context()).

# Error Mapping

Service errors map to status codes in one place (errors.go):

	ErrInvalidInput            400
	ErrInvalidCredentials      401
	ErrInvalidAdminCredentials 401
	ErrNotAuthenticated        401
	ErrUnderage                403
	ErrUnknownCandidate        404
	ErrDuplicateVoter          409
	ErrAlreadyVoted            409
	storage failures           500 "Database error"
*/
package handlers
