// Package service provides the credential primitives of the identity context: password
// hashing with Argon2id and signed bearer tokens.
package service

import (
	"time"

	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// SecretService hashes and verifies user passwords.
type SecretService interface {
	// GenerateSecret creates a random password and returns it with its hash.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// HashSecret hashes a plain text password.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService signs and parses bearer tokens.
type TokenService interface {
	// Sign returns a token carrying the principal that expires at expiresAt.
	Sign(principal *domain.Principal, issuedAt, expiresAt time.Time) (string, error)

	// Parse verifies the signature, issuer and expiry of token and returns its principal.
	Parse(token string) (*domain.Principal, error)
}
