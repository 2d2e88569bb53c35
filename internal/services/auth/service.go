package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrEmptyAccessCode   = errors.New("access code must not be empty")
)

// Config holds configuration for the access gate
type Config struct {
	// AccessCode is the shared secret for the admin pages
	AccessCode string
	// Cost is the bcrypt cost used to hash the code at startup
	Cost int
}

// DefaultConfig returns default gate configuration
func DefaultConfig() Config {
	return Config{
		AccessCode: "BADAN2025",
		Cost:       bcrypt.DefaultCost,
	}
}

// Gate checks the shared admin access code. Only a bcrypt hash of the code's
// SHA-256 digest is kept in memory, so every byte of the code counts.
type Gate struct {
	hash []byte
}

// New creates a Gate for cfg.AccessCode
func New(cfg Config) (*Gate, error) {
	if cfg.AccessCode == "" {
		return nil, ErrEmptyAccessCode
	}
	if cfg.Cost == 0 {
		cfg.Cost = DefaultConfig().Cost
	}

	hash, err := bcrypt.GenerateFromPassword(digest(cfg.AccessCode), cfg.Cost)
	if err != nil {
		return nil, fmt.Errorf("hash access code: %w", err)
	}
	return &Gate{hash: hash}, nil
}

// Check returns nil only when supplied is exactly the configured code
func (g *Gate) Check(supplied string) error {
	if supplied == "" {
		return ErrInvalidAccessCode
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, digest(supplied)); err != nil {
		return ErrInvalidAccessCode
	}
	return nil
}

// digest keeps bcrypt input under its 72 byte limit
func digest(code string) []byte {
	sum := sha256.Sum256([]byte(code))
	return []byte(hex.EncodeToString(sum[:]))
}
