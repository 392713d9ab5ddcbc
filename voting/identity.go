// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/votebooth/auth"
	"github.com/danielhkuo/votebooth/db"
	"github.com/danielhkuo/votebooth/models"
)

// MinimumAge is the voting age.
const MinimumAge = 18

// DocumentStore persists uploaded identity documents.
type DocumentStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Document is an optional upload attached to a registration.
type Document struct {
	Filename string
	Content  io.Reader
}

type RegisterParams struct {
	VoterID     string
	Name        string
	DateOfBirth string // YYYY-MM-DD
	Password    string
	Document    *Document
}

// IdentityService registers voters and checks their credentials.
type IdentityService struct {
	db   *sql.DB
	docs DocumentStore

	// HashCost is the bcrypt cost for new passwords; zero means the default.
	HashCost int
	Now      func() time.Time
}

// NewIdentityService returns an IdentityService. docs may be nil, in which
// case uploaded documents are rejected.
func NewIdentityService(db *sql.DB, docs DocumentStore) *IdentityService {
	return &IdentityService{db: db, docs: docs, Now: time.Now}
}

// ParseDateOfBirth parses a YYYY-MM-DD date.
func ParseDateOfBirth(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidInput("dob must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// Age returns the number of whole years between dob and now. Only the
// calendar date of each is considered.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// Register creates a new voter with has_voted = false.
func (s *IdentityService) Register(ctx context.Context, p RegisterParams) (models.Voter, error) {
	voterID := strings.TrimSpace(p.VoterID)
	name := strings.TrimSpace(p.Name)

	if voterID == "" {
		return models.Voter{}, invalidInput("voter_id is required")
	}
	if name == "" {
		return models.Voter{}, invalidInput("name is required")
	}
	if p.Password == "" {
		return models.Voter{}, invalidInput("password is required")
	}

	dob, err := ParseDateOfBirth(p.DateOfBirth)
	if err != nil {
		return models.Voter{}, err
	}

	now := s.Now()
	if Age(dob, now) < MinimumAge {
		return models.Voter{}, ErrUnderage
	}

	// Fast path only; the UNIQUE constraint below is what actually decides
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voters WHERE voter_id = $1)
	`, voterID).Scan(&exists)
	if err != nil {
		return models.Voter{}, storageError("check voter", err)
	}
	if exists {
		return models.Voter{}, ErrDuplicateVoter
	}

	hash, err := auth.HashPassword(p.Password, s.HashCost)
	if err != nil {
		return models.Voter{}, err
	}

	voter := models.Voter{
		VoterID:      voterID,
		Name:         name,
		DateOfBirth:  dob,
		PasswordHash: hash,
		CreatedAt:    now.UTC(),
	}

	if p.Document != nil {
		if s.docs == nil {
			return models.Voter{}, invalidInput("document uploads are not enabled")
		}
		ref, err := s.docs.Save(ctx, p.Document.Filename, p.Document.Content)
		if err != nil {
			return models.Voter{}, err
		}
		voter.Document = &ref
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO voters (voter_id, name, dob, password_hash, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, voter.VoterID, voter.Name, voter.DateOfBirth, voter.PasswordHash, voter.Document, voter.CreatedAt).Scan(&voter.ID)
	if err != nil {
		s.discardDocument(voter.Document)
		if db.IsUniqueViolation(err) {
			return models.Voter{}, ErrDuplicateVoter
		}
		return models.Voter{}, storageError("insert voter", err)
	}

	return voter, nil
}

func (s *IdentityService) discardDocument(ref *string) {
	if ref == nil {
		return
	}
	// The request context may already be done; cleanup should still run
	if err := s.docs.Remove(context.Background(), *ref); err != nil {
		slog.Warn("failed to remove orphaned document", "document", *ref, "error", err)
	}
}

// Authenticate checks a voter's credentials. Unknown voter IDs and wrong
// passwords both return ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, voterID, password string) (models.Voter, error) {
	voter, err := scanVoter(s.db.QueryRowContext(ctx, `
		SELECT `+voterColumns+` FROM voters WHERE voter_id = $1
	`, strings.TrimSpace(voterID)))
	if errors.Is(err, sql.ErrNoRows) {
		auth.BurnPasswordCheck(password)
		return models.Voter{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Voter{}, storageError("load voter", err)
	}

	if err := auth.CheckPassword(voter.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			slog.Error("stored password hash unusable", "voter", voter.ID, "error", err)
		}
		return models.Voter{}, ErrInvalidCredentials
	}

	return voter, nil
}

// Voter loads a voter by primary key. A missing voter means the session
// refers to someone who no longer exists, so it reports ErrNotAuthenticated.
func (s *IdentityService) Voter(ctx context.Context, id int64) (models.Voter, error) {
	voter, err := scanVoter(s.db.QueryRowContext(ctx, `
		SELECT `+voterColumns+` FROM voters WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.Voter{}, storageError("load voter", err)
	}
	return voter, nil
}

// ListVoters returns all voters in registration order.
func (s *IdentityService) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+voterColumns+` FROM voters ORDER BY id`)
	if err != nil {
		return nil, storageError("list voters", err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		voter, err := scanVoter(rows)
		if err != nil {
			return nil, storageError("scan voter", err)
		}
		voters = append(voters, voter)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list voters", err)
	}
	return voters, nil
}

const voterColumns = `id, voter_id, name, dob, password_hash, has_voted, document, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVoter(row rowScanner) (models.Voter, error) {
	var (
		v        models.Voter
		document sql.NullString
	)
	err := row.Scan(&v.ID, &v.VoterID, &v.Name, &v.DateOfBirth, &v.PasswordHash, &v.HasVoted, &document, &v.CreatedAt)
	if err != nil {
		return models.Voter{}, err
	}
	if document.Valid {
		v.Document = &document.String
	}
	return v, nil
}
