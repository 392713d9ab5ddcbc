// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/votebooth/models"
)

var ErrInvalidSession = errors.New("invalid session")

const (
	sessionIssuer = "votebooth"

	// DefaultSessionTTL is how long a login stays valid.
	DefaultSessionTTL = 12 * time.Hour
)

// Identity is the authenticated principal for one request.
// VoterID is the voter's primary key and is zero for admins.
type Identity struct {
	Role    string
	VoterID int64
}

func (id Identity) IsVoter() bool { return id.Role == models.RoleVoter && id.VoterID > 0 }
func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

// VoterIdentity returns the identity for a logged-in voter
func VoterIdentity(voterID int64) Identity {
	return Identity{Role: models.RoleVoter, VoterID: voterID}
}

// AdminIdentity returns the identity for the administrator
func AdminIdentity() Identity {
	return Identity{Role: models.RoleAdmin}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Sessions issues and verifies HMAC-signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of tokens issued by s.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue signs a token for id.
func (s *Sessions) Issue(id Identity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: id.Role,
	}
	if id.VoterID > 0 {
		claims.Subject = strconv.FormatInt(id.VoterID, 10)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return token, nil
}

// Parse verifies a token and returns the identity it carries.
func (s *Sessions) Parse(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidSession
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	switch claims.Role {
	case models.RoleAdmin:
		return AdminIdentity(), nil
	case models.RoleVoter:
		voterID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || voterID <= 0 {
			return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidSession)
		}
		return VoterIdentity(voterID), nil
	}
	return Identity{}, fmt.Errorf("%w: unknown role %q", ErrInvalidSession, claims.Role)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity, if any
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
