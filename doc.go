// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the votebooth server.

votebooth runs a single election: voters register with a date of birth and
an optional identity document, log in, and cast exactly one vote. An
administrator manages candidates and reads or exports the tally.

# Starting the Server

The server reads a .env file if present, then environment variables, then
CLI flags:

	DATABASE_URL=votebooth.db SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - SESSION_SECRET (-session-secret): HMAC key for session cookies

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - UPLOAD_DIR (-upload-dir): Identity document directory (default: uploads)
  - ADMIN_USERNAME (-admin-user): Admin login (default: admin)
  - ADMIN_PASSWORD (-admin-password): Admin password (default: admin123)

A warning is logged at startup while the default admin credentials are in
use.

# Architecture

  - voting: registration, ballot, tally and admin rules
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, sessions, JSON helpers
  - auth: password hashing, session tokens
  - documents: identity document storage
  - metrics: Prometheus counters
  - db: connections, schema, constraint classification
  - models: Request/response and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
