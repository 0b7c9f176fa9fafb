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

// MySQLGeneratedPasswordRepository handles generated password persistence for MySQL
// using BINARY(16) ids.
type MySQLGeneratedPasswordRepository struct {
	db *sql.DB
}

// NewMySQLGeneratedPasswordRepository creates a new MySQL repository.
func NewMySQLGeneratedPasswordRepository(db *sql.DB) *MySQLGeneratedPasswordRepository {
	return &MySQLGeneratedPasswordRepository{db: db}
}

// Create inserts a new entry.
func (r *MySQLGeneratedPasswordRepository) Create(ctx context.Context, entry *domain.GeneratedPassword) error {
	querier := database.GetTx(ctx, r.db)

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal generated password id")
	}

	query := `INSERT INTO generated_passwords (id, owner_id, value, created_at, expires_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (r *MySQLGeneratedPasswordRepository) GetByIDAndOwner(
	ctx context.Context,
	id uuid.UUID,
	ownerID string,
	activeAt *time.Time,
) (*domain.GeneratedPassword, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal generated password id")
	}

	query := `SELECT id, owner_id, value, created_at, expires_at
			  FROM generated_passwords
			  WHERE id = ? AND owner_id = ?`
	args := []any{idBytes, ownerID}

	if activeAt != nil {
		query += ` AND expires_at > ?`
		args = append(args, activeAt.UTC())
	}

	entry, err := scanMySQLEntry(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGeneratedPasswordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get generated password")
	}

	return entry, nil
}

// ListByOwner retrieves the entries owned by ownerID, newest first.
func (r *MySQLGeneratedPasswordRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	activeAt *time.Time,
) ([]*domain.GeneratedPassword, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, value, created_at, expires_at
			  FROM generated_passwords
			  WHERE owner_id = ?`
	args := []any{ownerID}

	if activeAt != nil {
		query += ` AND expires_at > ?`
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
		entry, err := scanMySQLEntry(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan generated password")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate generated passwords")
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMySQLEntry(row scanner) (*domain.GeneratedPassword, error) {
	var entry domain.GeneratedPassword
	var idBytes []byte

	if err := row.Scan(
		&idBytes,
		&entry.OwnerID,
		&entry.Value,
		&entry.CreatedAt,
		&entry.ExpiresAt,
	); err != nil {
		return nil, err
	}

	if err := entry.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal generated password id")
	}

	normalizeTimes(&entry)
	return &entry, nil
}
