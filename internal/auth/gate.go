package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadPassword is returned when the submitted password does not match.
var ErrBadPassword = errors.New("password does not match")

// maxPasswordBytes is the longest input bcrypt looks at. Anything after it
// would be ignored by the comparison.
const maxPasswordBytes = 72

// Gate checks submitted passwords against the single configured admin secret.
type Gate struct {
	hash []byte
}

// NewGate builds a gate from a bcrypt hash.
func NewGate(passwordHash string) (*Gate, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &Gate{hash: []byte(passwordHash)}, nil
}

// NewGateFromPassword hashes a plaintext secret and builds a gate from it.
func NewGateFromPassword(password string) (*Gate, error) {
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("admin password longer than %d bytes", maxPasswordBytes)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return NewGate(hash)
}

// Authenticate promotes s when password matches. A mismatch leaves s as it
// was, so an already privileged session stays privileged.
func (g *Gate) Authenticate(s *Session, password string) error {
	if len(password) > maxPasswordBytes {
		return ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrBadPassword
	}
	s.privileged.Store(true)
	return nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hash), nil
}
