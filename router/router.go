// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/votebooth/auth"
	"github.com/danielhkuo/votebooth/cliparse"
	"github.com/danielhkuo/votebooth/handlers"
	"github.com/danielhkuo/votebooth/metrics"
	"github.com/danielhkuo/votebooth/middleware"
	"github.com/danielhkuo/votebooth/voting"
)

// NewRouter wires every route. The application counters are registered
// with registry, which is also what /metrics serves; a registry must only
// be passed to one router.
func NewRouter(db *sql.DB, cfg cliparse.Config, docs voting.DocumentStore, registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	m := metrics.New(registry)
	sessions := auth.NewSessions(cfg.SessionSecret, auth.DefaultSessionTTL)

	// Initialize handlers
	identityHandler := handlers.NewIdentityHandler(db, cfg, docs, m)
	ballotHandler := handlers.NewBallotHandler(db, cfg, m)
	adminHandler := handlers.NewAdminHandler(db, cfg, m)

	voter := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireVoter(sessions, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// Registration and sessions (public)
	mux.HandleFunc("POST /register", middleware.WithLogging(identityHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(identityHandler.Login))
	mux.HandleFunc("GET /logout", middleware.WithLogging(identityHandler.Logout))

	// Voting (voter session)
	mux.HandleFunc("GET /vote", voter(ballotHandler.GetBallot))
	mux.HandleFunc("POST /vote", voter(ballotHandler.CastVote))

	// Administration (admin session)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/dashboard", admin(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/add_candidate", admin(adminHandler.AddCandidate))
	mux.HandleFunc("GET /admin/results", admin(adminHandler.Results))
	mux.HandleFunc("GET /admin/export", admin(adminHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("votebooth API v1"))
	})

	return mux
}
