package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	identityDomain "github.com/allisson/onetimepassgen/internal/identity/domain"
	identityUseCase "github.com/allisson/onetimepassgen/internal/identity/usecase"
)

// RunIssueToken exchanges credentials for a bearer token and prints it.
func RunIssueToken(
	ctx context.Context,
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userName string,
	password string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	output, err := tokenUseCase.Issue(ctx, &identityDomain.IssueTokenInput{
		UserName: userName,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]string{
			"token":      output.Token,
			"expires_at": output.ExpiresAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Token: %s\n", output.Token)
		_, _ = fmt.Fprintf(writer, "Expires at: %s\n", output.ExpiresAt.UTC().Format(time.RFC3339))
	}

	logger.Info("token issued", slog.String("user_name", userName))
	return nil
}
