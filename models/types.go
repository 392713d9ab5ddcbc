package models

import "time"

// Session roles
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// DateLayout is the wire format for dates of birth.
const DateLayout = "2006-01-02"

// Request types

type LoginRequest struct {
	VoterID  string `json:"voter_id"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	CandidateID int64 `json:"candidate_id"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// Response types

type RegisterResponse struct {
	Voter   Voter  `json:"voter"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Voter    Voter  `json:"voter"`
	Redirect string `json:"redirect"`
}

type BallotResponse struct {
	Voted      bool        `json:"voted"`
	Voter      *Voter      `json:"voter,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

type CastVoteResponse struct {
	Vote      Vote      `json:"vote"`
	Candidate Candidate `json:"candidate"`
	Message   string    `json:"message"`
}

type AdminLoginResponse struct {
	Redirect string `json:"redirect"`
}

type DashboardResponse struct {
	Voters     []Voter     `json:"voters"`
	Candidates []Candidate `json:"candidates"`
}

type ResultsResponse struct {
	Results    []CandidateTally `json:"results"`
	TotalVotes int              `json:"total_votes"`
}

// Domain types

type Voter struct {
	ID           int64     `json:"id"`
	VoterID      string    `json:"voter_id"`
	Name         string    `json:"name"`
	DateOfBirth  time.Time `json:"dob"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	HasVoted     bool      `json:"has_voted"`
	Document     *string   `json:"document,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Party *string `json:"party,omitempty"`
}

type Vote struct {
	ID          int64     `json:"id"`
	VoterID     int64     `json:"voter_id"`
	CandidateID int64     `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CandidateTally is one row of the results table.
type CandidateTally struct {
	Candidate Candidate `json:"candidate"`
	Total     int       `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
