package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	identityUseCase "github.com/allisson/onetimepassgen/internal/identity/usecase"
)

// RunUpdateUserRoles replaces the roles of the named user. An empty roles list
// removes every role.
func RunUpdateUserRoles(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userName string,
	roles string,
) error {
	logger.Info("updating user roles", slog.String("user_name", userName))

	user, err := userUseCase.UpdateRoles(ctx, userName, parseRoles(roles))
	if err != nil {
		return fmt.Errorf("failed to update user roles: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Roles of %s: %v\n", user.UserName, user.Roles)

	logger.Info("user roles updated",
		slog.String("user_id", user.ID.String()),
		slog.Any("roles", user.Roles),
	)

	return nil
}
