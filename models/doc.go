// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: voter_id, password
  - CastVoteRequest: candidate_id
  - AdminLoginRequest: username, password
  - AddCandidateRequest: name, party

Registration is a multipart form (it may carry a document upload) and has
no JSON request type.

# Response Types

  - RegisterResponse, LoginResponse, AdminLoginResponse
  - BallotResponse: voting status or the candidate list
  - CastVoteResponse: stored vote and chosen candidate
  - DashboardResponse: voters and candidates
  - ResultsResponse: per-candidate tallies
  - ErrorResponse: error, message

# Domain Types

  - Voter: registered voter; PasswordHash is never serialized
  - Candidate: ballot option with optional party
  - Vote: one voter's ballot
  - CandidateTally: candidate with vote total
*/
package models
