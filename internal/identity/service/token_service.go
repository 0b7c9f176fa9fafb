package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// Claims is the JWT payload of a bearer token. The subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
}

// tokenService implements TokenService with HMAC-SHA256 signed JWTs.
type tokenService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

// Sign creates an HS256 token for principal.
func (s *tokenService) Sign(principal *domain.Principal, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name:  principal.UserName,
		Roles: principal.Roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse validates token and extracts its principal. Any failure is reported as
// domain.ErrInvalidToken.
func (s *tokenService) Parse(tokenString string) (*domain.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{
		UserID:   claims.Subject,
		UserName: claims.Name,
		Roles:    claims.Roles,
	}, nil
}

// NewTokenService creates a TokenService signing with key and stamping issuer.
// now supplies the validation time; nil means time.Now.
func NewTokenService(key string, issuer string, now func() time.Time) TokenService {
	if now == nil {
		now = time.Now
	}
	return &tokenService{
		signingKey: []byte(key),
		issuer:     issuer,
		now:        now,
	}
}
