// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and the admin
credential check.

# Passwords

Voter passwords are stored as salted bcrypt hashes:

	hash, err := auth.HashPassword(raw, bcrypt.DefaultCost)
	err := auth.CheckPassword(hash, raw) // ErrPasswordMismatch on failure

BurnPasswordCheck performs a comparison against a throwaway hash so that a
login for an unknown voter takes as long as one with a wrong password.

# Sessions

Sessions are HS256 JWTs carrying a role and, for voters, the voter's
primary key as the subject:

	sessions := auth.NewSessions(cfg.SessionSecret, auth.DefaultSessionTTL)
	token, err := sessions.Issue(auth.VoterIdentity(voter.ID))
	id, err := sessions.Parse(token) // ErrInvalidSession on failure

The resolved Identity travels in the request context:

	ctx = auth.WithIdentity(ctx, id)
	id, ok := auth.IdentityFrom(ctx)

# Admin Credentials

CheckAdminCredentials compares the submitted pair with the configured pair
by plain equality in constant time. The admin password is not hashed at
rest, which is a known weakness.
*/
package auth
