// Package domain defines the identity entities: users, their roles and the principal
// attached to an authenticated request.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account able to obtain bearer tokens. Roles are matched case-insensitively.
type User struct {
	ID           uuid.UUID
	UserName     string
	PasswordHash string
	Roles        []string
	IsActive     bool
	CreatedAt    time.Time
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u *User) HasAnyRole(roles []string) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// CreateUserInput holds the data to register a user. An empty Password makes the use
// case generate one.
type CreateUserInput struct {
	UserName string   `json:"user_name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
	IsActive bool     `json:"is_active"`
}

// CreateUserOutput is returned once after user creation. PlainPassword is only set when
// the password was generated.
type CreateUserOutput struct {
	ID            uuid.UUID
	UserName      string
	Roles         []string
	PlainPassword string
}

// IssueTokenInput holds the credentials exchanged for a bearer token.
type IssueTokenInput struct {
	UserName string
	Password string
}

// IssueTokenOutput holds an issued bearer token.
type IssueTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

// EncodeRoles joins roles for storage in a single column.
func EncodeRoles(roles []string) string {
	return strings.Join(NormalizeRoles(roles), ",")
}

// DecodeRoles splits a stored roles column.
func DecodeRoles(value string) []string {
	return NormalizeRoles(strings.Split(value, ","))
}

// NormalizeRoles trims roles, drops empty entries and removes case-insensitive duplicates.
func NormalizeRoles(roles []string) []string {
	result := make([]string, 0, len(roles))
	seen := map[string]bool{}

	for _, role := range roles {
		role = strings.TrimSpace(role)
		key := strings.ToLower(role)
		if role == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, role)
	}

	return result
}
