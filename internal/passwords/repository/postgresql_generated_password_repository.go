// Package repository implements generated password persistence for PostgreSQL, MySQL and
// SQLite.
//
// Reads are always scoped to an owner. A non-nil activeAt restricts results to entries
// with expires_at strictly after it; nil includes expired entries.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/database"
	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

// PostgreSQLGeneratedPasswordRepository handles generated password persistence for PostgreSQL.
type PostgreSQLGeneratedPasswordRepository struct {
	db *sql.DB
}

// NewPostgreSQLGeneratedPasswordRepository creates a new PostgreSQL repository.
func NewPostgreSQLGeneratedPasswordRepository(db *sql.DB) *PostgreSQLGeneratedPasswordRepository {
	return &PostgreSQLGeneratedPasswordRepository{db: db}
}

// Create inserts a new entry.
func (r *PostgreSQLGeneratedPasswordRepository) Create(
	ctx context.Context,
	entry *domain.GeneratedPassword,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO generated_passwords (id, owner_id, value, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.OwnerID,
		entry.Value,
		entry.CreatedAt.UTC(),
		entry.ExpiresAt.UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create generated password")
	}
	return nil
}

// GetByIDAndOwner retrieves the entry with id owned by ownerID.
func (r *PostgreSQLGeneratedPasswordRepository) GetByIDAndOwner(
	ctx context.Context,
	id uuid.UUID,
	ownerID string,
	activeAt *time.Time,
) (*domain.GeneratedPassword, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, value, created_at, expires_at
			  FROM generated_passwords
			  WHERE id = $1 AND owner_id = $2`
	args := []any{id, ownerID}

	if activeAt != nil {
		query += ` AND expires_at > $3`
		args = append(args, activeAt.UTC())
	}

	var entry domain.GeneratedPassword
	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Value,
		&entry.CreatedAt,
		&entry.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGeneratedPasswordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get generated password")
	}

	normalizeTimes(&entry)
	return &entry, nil
}

// ListByOwner retrieves the entries owned by ownerID, newest first.
func (r *PostgreSQLGeneratedPasswordRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	activeAt *time.Time,
) ([]*domain.GeneratedPassword, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, value, created_at, expires_at
			  FROM generated_passwords
			  WHERE owner_id = $1`
	args := []any{ownerID}

	if activeAt != nil {
		query += ` AND expires_at > $2`
		args = append(args, activeAt.UTC())
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list generated passwords")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*domain.GeneratedPassword, 0)
	for rows.Next() {
		var entry domain.GeneratedPassword
		if err := rows.Scan(
			&entry.ID,
			&entry.OwnerID,
			&entry.Value,
			&entry.CreatedAt,
			&entry.ExpiresAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan generated password")
		}
		normalizeTimes(&entry)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate generated passwords")
	}

	return entries, nil
}

func normalizeTimes(entry *domain.GeneratedPassword) {
	entry.CreatedAt = entry.CreatedAt.UTC()
	entry.ExpiresAt = entry.ExpiresAt.UTC()
}
