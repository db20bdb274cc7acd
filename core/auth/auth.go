// Package auth implements the shared-password gate protecting destructive
// archive operations. It is deliberately the only place that knows how the
// password is checked, so it can be swapped for real authentication without
// touching handlers or stores.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword is returned when a gated operation presents the wrong
// shared password.
var ErrWrongPassword = errors.New("wrong password")

// Gate verifies the shared static password for destructive operations. The
// plaintext from configuration is hashed once at startup so it never sits in
// memory longer than needed.
type Gate struct {
	hash []byte
}

// NewGate creates a gate for the configured shared password.
func NewGate(password string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash gate password: %w", err)
	}
	return &Gate{hash: hash}, nil
}

// Verify checks a presented password against the gate. Returns
// ErrWrongPassword on mismatch.
func (g *Gate) Verify(password string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
