package service

import (
	"github.com/google/uuid"
)

type uuidGenerator struct{}

// NewUUIDGenerator creates a generator returning random (version 4) UUID strings.
func NewUUIDGenerator() ValueGenerator {
	return &uuidGenerator{}
}

// Generate returns a new random UUID in canonical form.
func (g *uuidGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
