// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the votebooth server.

# Route Table

	GET  /health                 Health check, returns "OK"
	GET  /metrics                Prometheus metrics
	POST /register               Voter registration (multipart form)
	POST /login                  Voter login, sets session cookie
	GET  /logout                 Clears the session cookie
	GET  /vote                   Ballot or "already voted" status (voter)
	POST /vote                   Cast the single vote (voter)
	POST /admin/login            Admin login, sets session cookie
	GET  /admin/dashboard        Voters and candidates (admin)
	POST /admin/add_candidate    Create a candidate (admin)
	GET  /admin/results          Vote totals (admin)
	GET  /admin/export           Vote totals as CSV (admin)

Every route except /health and /metrics is wrapped with
middleware.WithLogging. Voter and admin routes are additionally wrapped
with middleware.RequireVoter or middleware.RequireAdmin.

# Usage

	registry := prometheus.NewRegistry()
	mux := router.NewRouter(db, cfg, docs, registry)
	http.ListenAndServe(":3318", mux)
*/
package router
