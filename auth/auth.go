// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrEmptyPassword    = errors.New("password is empty")
)

// HashPassword returns a salted bcrypt hash of raw.
// A cost below bcrypt.MinCost is replaced by bcrypt.DefaultCost.
func HashPassword(raw string, cost int) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares raw against a hash produced by HashPassword
func CheckPassword(hash, raw string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("votebooth-dummy-password"), bcrypt.DefaultCost)
	return h
})

// BurnPasswordCheck runs a bcrypt comparison against a throwaway hash.
// Login calls it for unknown voter IDs so both failure paths take as long
// as a real check.
func BurnPasswordCheck(raw string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(raw))
}

// CheckAdminCredentials compares the submitted pair with the configured
// pair by plain equality. The admin password is not hashed.
func CheckAdminCredentials(username, password, wantUsername, wantPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword)) == 1
	return userOK && passOK
}
