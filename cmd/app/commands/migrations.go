package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/allisson/onetimepassgen/internal/database"
)

// RunMigrations applies the embedded migrations for driver on db. Running it on an
// up to date schema is a no-op.
func RunMigrations(db *sql.DB, driver string, logger *slog.Logger) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	if err := database.Migrate(db, driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
