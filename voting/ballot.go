// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/danielhkuo/votebooth/db"
	"github.com/danielhkuo/votebooth/models"
)

// BallotService records votes and lists the candidates on the ballot.
type BallotService struct {
	db  *sql.DB
	Now func() time.Time
}

func NewBallotService(db *sql.DB) *BallotService {
	return &BallotService{db: db, Now: time.Now}
}

// CastVote records voterID's vote for candidateID.
//
// The vote insert and the has_voted update commit together or not at all.
// A voter moves from not-voted to voted exactly once: a second call, even a
// concurrent one, fails with ErrAlreadyVoted.
func (s *BallotService) CastVote(ctx context.Context, voterID, candidateID int64) (models.Vote, error) {
	if voterID <= 0 {
		return models.Vote{}, ErrNotAuthenticated
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Vote{}, storageError("begin vote", err)
	}
	defer tx.Rollback()

	var hasVoted bool
	err = tx.QueryRowContext(ctx, `SELECT has_voted FROM voters WHERE id = $1`, voterID).Scan(&hasVoted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.Vote{}, storageError("load voter", err)
	}
	if hasVoted {
		return models.Vote{}, ErrAlreadyVoted
	}

	var candidateExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)
	`, candidateID).Scan(&candidateExists)
	if err != nil {
		return models.Vote{}, storageError("check candidate", err)
	}
	if !candidateExists {
		return models.Vote{}, ErrUnknownCandidate
	}

	vote := models.Vote{
		VoterID:     voterID,
		CandidateID: candidateID,
		CreatedAt:   s.Now().UTC(),
	}

	// UNIQUE (voter_id) on votes turns a lost race into a constraint error
	err = tx.QueryRowContext(ctx, `
		INSERT INTO votes (voter_id, candidate_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, vote.VoterID, vote.CandidateID, vote.CreatedAt).Scan(&vote.ID)
	if err != nil {
		return models.Vote{}, voteError("insert vote", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE voters SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, voterID)
	if err != nil {
		return models.Vote{}, storageError("mark voter", err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return models.Vote{}, storageError("mark voter", err)
	}
	if updated != 1 {
		return models.Vote{}, ErrAlreadyVoted
	}

	if err := tx.Commit(); err != nil {
		return models.Vote{}, voteError("commit vote", err)
	}

	return vote, nil
}

func voteError(op string, err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return ErrAlreadyVoted
	case db.IsForeignKeyViolation(err):
		return ErrUnknownCandidate
	}
	return storageError(op, err)
}

// Candidate loads one candidate.
func (s *BallotService) Candidate(ctx context.Context, id int64) (models.Candidate, error) {
	c, err := scanCandidate(s.db.QueryRowContext(ctx, `
		SELECT id, name, party FROM candidates WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrUnknownCandidate
	}
	if err != nil {
		return models.Candidate{}, storageError("load candidate", err)
	}
	return c, nil
}

// ListCandidates returns every candidate in creation order.
func (s *BallotService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, party FROM candidates ORDER BY id`)
	if err != nil {
		return nil, storageError("list candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, storageError("scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list candidates", err)
	}
	return candidates, nil
}

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var (
		c     models.Candidate
		party sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &party); err != nil {
		return models.Candidate{}, err
	}
	if party.Valid {
		c.Party = &party.String
	}
	return c, nil
}
