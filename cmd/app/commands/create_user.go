package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	identityDomain "github.com/allisson/onetimepassgen/internal/identity/domain"
	identityUseCase "github.com/allisson/onetimepassgen/internal/identity/usecase"
)

// RunCreateUser registers a user. When password is empty a random one is generated
// and printed once, in text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userName string,
	password string,
	roles string,
	isActive bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating new user", slog.String("user_name", userName))

	output, err := userUseCase.Create(ctx, &identityDomain.CreateUserInput{
		UserName: userName,
		Password: password,
		Roles:    parseRoles(roles),
		IsActive: isActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		result := map[string]any{
			"id":        output.ID.String(),
			"user_name": output.UserName,
			"roles":     output.Roles,
		}
		if output.PlainPassword != "" {
			result["password"] = output.PlainPassword
		}
		if err := writeJSON(writer, result); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
		_, _ = fmt.Fprintf(writer, "User ID: %s\n", output.ID.String())
		_, _ = fmt.Fprintf(writer, "User name: %s\n", output.UserName)
		_, _ = fmt.Fprintf(writer, "Roles: %v\n", output.Roles)
		if output.PlainPassword != "" {
			_, _ = fmt.Fprintf(writer, "Password: %s\n", output.PlainPassword)
			_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The password is shown only once. Store it securely.")
		}
	}

	logger.Info("user created successfully",
		slog.String("user_id", output.ID.String()),
		slog.String("user_name", output.UserName),
		slog.Bool("is_active", isActive),
	)

	return nil
}
