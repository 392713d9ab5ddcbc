// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets a UUID, returned in the X-Request-ID header and attached
to the start (method, path, remote) and completion (status, duration_ms)
log lines.

# Sessions

Logins store a signed token in the votebooth_session cookie:

	middleware.SetSessionCookie(w, r, token, sessions.TTL())
	middleware.ClearSessionCookie(w)

Protected routes are wrapped with RequireVoter or RequireAdmin. A missing,
forged, expired or wrong-role session gets a 401 JSON error; otherwise the
identity is placed in the request context:

	id, _ := auth.IdentityFrom(r.Context())

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
