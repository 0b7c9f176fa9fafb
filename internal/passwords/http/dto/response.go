// Package dto provides data transfer objects for the generated password endpoints.
package dto

import (
	"time"

	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

// GeneratedPasswordResponse represents a generated password in API responses.
// The owner is never exposed.
type GeneratedPasswordResponse struct {
	ID        string    `json:"id"`
	Password  string    `json:"password"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapGeneratedPasswordToResponse converts a generated password read model to an API response.
func MapGeneratedPasswordToResponse(output *domain.GeneratedPasswordOutput) GeneratedPasswordResponse {
	return GeneratedPasswordResponse{
		ID:        output.ID.String(),
		Password:  output.Value,
		ExpiresAt: output.ExpiresAt,
		CreatedAt: output.CreatedAt,
	}
}

// MapGeneratedPasswordsToResponse converts read models to a JSON array. An empty input
// yields an empty array, never null.
func MapGeneratedPasswordsToResponse(outputs []*domain.GeneratedPasswordOutput) []GeneratedPasswordResponse {
	data := make([]GeneratedPasswordResponse, 0, len(outputs))
	for _, output := range outputs {
		data = append(data, MapGeneratedPasswordToResponse(output))
	}
	return data
}
