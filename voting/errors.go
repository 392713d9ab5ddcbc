// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/votebooth/db"
)

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnderage                = errors.New("voter must be at least 18 years old")
	ErrDuplicateVoter          = errors.New("voter already exists")
	ErrInvalidCredentials      = errors.New("invalid voter id or password")
	ErrAlreadyVoted            = errors.New("voter has already voted")
	ErrUnknownCandidate        = errors.New("unknown candidate")
	ErrNotAuthenticated        = errors.New("not authenticated")
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")

	// ErrStorageConflict is a uniqueness violation the service could not
	// attribute to a domain rule.
	ErrStorageConflict = errors.New("storage conflict")

	// ErrStorageUnavailable wraps every other database failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// storageError classifies a raw database error from op.
func storageError(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrStorageConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
