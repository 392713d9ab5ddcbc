// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"strings"

	"github.com/danielhkuo/votebooth/auth"
	"github.com/danielhkuo/votebooth/models"
)

// AdminService guards the single administrator account and manages
// candidates.
type AdminService struct {
	db       *sql.DB
	username string
	password string
}

func NewAdminService(db *sql.DB, username, password string) *AdminService {
	return &AdminService{db: db, username: username, password: password}
}

// Authenticate checks the shared admin credential pair. The comparison is
// plain equality against configuration; the password is not hashed.
func (s *AdminService) Authenticate(username, password string) (auth.Identity, error) {
	if !auth.CheckAdminCredentials(username, password, s.username, s.password) {
		return auth.Identity{}, ErrInvalidAdminCredentials
	}
	return auth.AdminIdentity(), nil
}

// AddCandidate creates a candidate. An empty party is stored as NULL.
func (s *AdminService) AddCandidate(ctx context.Context, name, party string) (models.Candidate, error) {
	name = strings.TrimSpace(name)
	party = strings.TrimSpace(party)
	if name == "" {
		return models.Candidate{}, invalidInput("name is required")
	}

	c := models.Candidate{Name: name}
	if party != "" {
		c.Party = &party
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO candidates (name, party)
		VALUES ($1, $2)
		RETURNING id
	`, c.Name, c.Party).Scan(&c.ID)
	if err != nil {
		return models.Candidate{}, storageError("insert candidate", err)
	}

	return c, nil
}
