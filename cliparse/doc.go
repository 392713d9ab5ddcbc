// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv reads an optional .env file into the process environment before
flags are parsed. Variables already set in the environment are not replaced.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SessionSecret: HMAC key for session cookies (required)
  - AdminUsername, AdminPassword: the shared admin credential pair
    (default: admin / admin123)
  - UploadDir: where identity documents are written (default: uploads)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-session-secret  Session signing secret
	-admin-user      Admin username
	-admin-password  Admin password
	-upload-dir      Document directory

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → -session-secret
	ADMIN_USERNAME → -admin-user
	ADMIN_PASSWORD → -admin-password
	UPLOAD_DIR     → -upload-dir

CLI flags take precedence over environment variables.

# Admin Credentials

The admin pair is compared in plain text. UsesDefaultAdmin reports when the
built-in pair is still active so main can warn about it at startup.
*/
package cliparse
