// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting holds the election rules: who may register, who may vote,
and how votes are counted.

# Services

Each concern is a small service over *sql.DB:

  - IdentityService: Register, Authenticate, Voter, ListVoters
  - BallotService: CastVote, Candidate, ListCandidates
  - TallyService: Results, ExportCSV
  - AdminService: Authenticate, AddCandidate

# One Vote Per Voter

CastVote runs in a single transaction. The votes table carries a UNIQUE
constraint on voter_id and the voter row is flipped with

	UPDATE voters SET has_voted = TRUE WHERE id = $1 AND has_voted = FALSE

so two concurrent ballots from one voter produce one vote row and one
ErrAlreadyVoted, whichever check catches the loser.

# Errors

Every failure is one of the package's sentinel errors, wrapped with %w.
Callers branch with errors.Is. Database failures that are not a known
constraint violation wrap ErrStorageUnavailable.
*/
package voting
