// Package http provides HTTP handlers for the current user's generated passwords.
// Authentication, ownership and validation are enforced by the request pipeline behind
// the use case; handlers only translate HTTP to use case calls.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/onetimepassgen/internal/httputil"
	"github.com/allisson/onetimepassgen/internal/passwords/http/dto"
	passwordsUseCase "github.com/allisson/onetimepassgen/internal/passwords/usecase"
)

// ResourcePath is the base path of the generated password endpoints.
const ResourcePath = "/api/user-generated-passwords"

const includeExpiredParam = "includeExpiredPasswords"

// GeneratedPasswordHandler handles HTTP requests for generated passwords.
type GeneratedPasswordHandler struct {
	useCase passwordsUseCase.GeneratedPasswordUseCase
	logger  *slog.Logger
}

// NewGeneratedPasswordHandler creates a new generated password handler.
func NewGeneratedPasswordHandler(
	useCase passwordsUseCase.GeneratedPasswordUseCase,
	logger *slog.Logger,
) *GeneratedPasswordHandler {
	return &GeneratedPasswordHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHandler generates a password for the current user.
// POST /api/user-generated-passwords - Requires authentication. Returns 201 Created with
// a Location header pointing at the new entry.
func (h *GeneratedPasswordHandler) CreateHandler(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.useCase.Create(ctx)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.useCase.Get(ctx, id.String(), true)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Location", ResourcePath+"/"+id.String())
	c.JSON(http.StatusCreated, dto.MapGeneratedPasswordToResponse(output))
}

// GetHandler retrieves one of the current user's passwords.
// GET /api/user-generated-passwords/:id?includeExpiredPasswords=bool - Requires
// authentication. Returns 404 for unknown ids and for entries of other users.
func (h *GeneratedPasswordHandler) GetHandler(c *gin.Context) {
	includeExpired, err := httputil.ParseBoolQuery(c, includeExpiredParam, false)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.useCase.Get(c.Request.Context(), c.Param("id"), includeExpired)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGeneratedPasswordToResponse(output))
}

// ListHandler retrieves the current user's passwords, newest first.
// GET /api/user-generated-passwords?includeExpiredPasswords=bool - Requires authentication.
func (h *GeneratedPasswordHandler) ListHandler(c *gin.Context) {
	includeExpired, err := httputil.ParseBoolQuery(c, includeExpiredParam, false)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	outputs, err := h.useCase.List(c.Request.Context(), includeExpired)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGeneratedPasswordsToResponse(outputs))
}

// RegisterRoutes mounts the generated password endpoints on group.
func (h *GeneratedPasswordHandler) RegisterRoutes(group gin.IRoutes) {
	group.POST("", h.CreateHandler)
	group.GET("", h.ListHandler)
	group.GET("/:id", h.GetHandler)
}
