// Package dto provides data transfer objects for the identity HTTP endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/onetimepassgen/internal/validation"
)

// IssueTokenRequest contains the credentials exchanged for a bearer token.
type IssueTokenRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// IssueTokenResponse contains the result of issuing a token.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
