// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, applies the schema, and classifies
constraint errors.

# Connecting

Open supports PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):

	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")
	conn, err := db.Open(ctx, db.TypeSQLite, "votebooth.db")

SQLite connections enable foreign keys and a busy timeout, and are capped
at a single open connection.

# Migration

Migrate is called once at startup, before the server accepts requests:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - voters: registered voters, unique voter_id, has_voted flag
  - candidates: ballot options
  - votes: one row per voter (UNIQUE voter_id)

# Relationships

	voters     1──0..1 votes
	candidates 1──*    votes

# Constraint Errors

Services rely on constraints rather than read-then-write checks:

	if db.IsUniqueViolation(err) { ... }
	if db.IsForeignKeyViolation(err) { ... }

Both understand *pq.Error SQLSTATE codes and SQLite extended result codes.
*/
package db
