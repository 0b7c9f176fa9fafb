package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

const alphanumericChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type alphanumericGenerator struct {
	length int
}

// NewAlphanumericGenerator creates a generator of cryptographically secure [A-Za-z0-9]
// values. length must be within 1..domain.MaxValueLength.
func NewAlphanumericGenerator(length int) (ValueGenerator, error) {
	if length < 1 || length > domain.MaxValueLength {
		return nil, domain.ErrInvalidValueLength
	}
	return &alphanumericGenerator{length: length}, nil
}

// Generate creates a random alphanumeric value of the configured length.
func (g *alphanumericGenerator) Generate() (string, error) {
	value := make([]byte, g.length)
	charsLen := big.NewInt(int64(len(alphanumericChars)))

	for i := range value {
		n, err := rand.Int(rand.Reader, charsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		value[i] = alphanumericChars[n.Int64()]
	}

	return string(value), nil
}
