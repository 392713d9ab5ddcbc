// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/danielhkuo/votebooth/models"
)

// TallyService aggregates votes per candidate.
type TallyService struct {
	db *sql.DB
}

func NewTallyService(db *sql.DB) *TallyService {
	return &TallyService{db: db}
}

// Results returns one row per candidate, in candidate id order, including
// candidates nobody voted for.
func (s *TallyService) Results(ctx context.Context) ([]models.CandidateTally, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.party, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id
		GROUP BY c.id, c.name, c.party
		ORDER BY c.id
	`)
	if err != nil {
		return nil, storageError("tally votes", err)
	}
	defer rows.Close()

	results := []models.CandidateTally{}
	for rows.Next() {
		var (
			t     models.CandidateTally
			party sql.NullString
		)
		if err := rows.Scan(&t.Candidate.ID, &t.Candidate.Name, &party, &t.Total); err != nil {
			return nil, storageError("scan tally", err)
		}
		if party.Valid {
			t.Candidate.Party = &party.String
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("tally votes", err)
	}
	return results, nil
}

// ExportCSV renders Results as a "candidate,total" table.
func (s *TallyService) ExportCSV(ctx context.Context) ([]byte, error) {
	results, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes the header line and one name,total line per result.
// Names are quoted only when they contain a comma, quote or line break.
func WriteCSV(w io.Writer, results []models.CandidateTally) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"candidate", "total"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Candidate.Name, strconv.Itoa(r.Total)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TotalVotes sums the totals of results.
func TotalVotes(results []models.CandidateTally) int {
	total := 0
	for _, r := range results {
		total += r.Total
	}
	return total
}
