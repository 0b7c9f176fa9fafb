// Package http provides the identity HTTP surface: bearer authentication, rate limiting
// and the token endpoint.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/httputil"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
	identityUseCase "github.com/allisson/onetimepassgen/internal/identity/usecase"
)

// AuthenticationMiddleware attaches the principal of a valid bearer token to the request
// context.
//
// A request without an Authorization header continues anonymously, leaving the decision
// to the request pipeline's authorization stage. A header that is present but malformed,
// or a token that fails validation, ends the request with 401 (or 403 for an inactive
// user).
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
func AuthenticationMiddleware(
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := tokenUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(domain.WithPrincipal(c.Request.Context(), principal))

		logger.Debug("authentication successful",
			slog.String("user_id", principal.UserID),
			slog.String("user_name", principal.UserName))

		c.Next()
	}
}
