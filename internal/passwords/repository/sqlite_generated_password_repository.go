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

// SQLiteGeneratedPasswordRepository handles generated password persistence for SQLite.
// Ids are TEXT and timestamps fixed-width UTC TEXT, so comparisons are lexical.
type SQLiteGeneratedPasswordRepository struct {
	db *sql.DB
}

// NewSQLiteGeneratedPasswordRepository creates a new SQLite repository.
func NewSQLiteGeneratedPasswordRepository(db *sql.DB) *SQLiteGeneratedPasswordRepository {
	return &SQLiteGeneratedPasswordRepository{db: db}
}

// Create inserts a new entry.
func (r *SQLiteGeneratedPasswordRepository) Create(ctx context.Context, entry *domain.GeneratedPassword) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO generated_passwords (id, owner_id, value, created_at, expires_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID.String(),
		entry.OwnerID,
		entry.Value,
		database.FormatSQLiteTime(entry.CreatedAt),
		database.FormatSQLiteTime(entry.ExpiresAt),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create generated password")
	}
	return nil
}

// GetByIDAndOwner retrieves the entry with id owned by ownerID.
func (r *SQLiteGeneratedPasswordRepository) GetByIDAndOwner(
	ctx context.Context,
	id uuid.UUID,
	ownerID string,
	activeAt *time.Time,
) (*domain.GeneratedPassword, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, value, created_at, expires_at
			  FROM generated_passwords
			  WHERE id = ? AND owner_id = ?`
	args := []any{id.String(), ownerID}

	if activeAt != nil {
		query += ` AND expires_at > ?`
		args = append(args, database.FormatSQLiteTime(*activeAt))
	}

	entry, err := scanSQLiteEntry(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGeneratedPasswordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get generated password")
	}

	return entry, nil
}

// ListByOwner retrieves the entries owned by ownerID, newest first.
func (r *SQLiteGeneratedPasswordRepository) ListByOwner(
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
		args = append(args, database.FormatSQLiteTime(*activeAt))
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
		entry, err := scanSQLiteEntry(rows)
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

func scanSQLiteEntry(row scanner) (*domain.GeneratedPassword, error) {
	var entry domain.GeneratedPassword
	var id, createdAt, expiresAt string

	if err := row.Scan(&id, &entry.OwnerID, &entry.Value, &createdAt, &expiresAt); err != nil {
		return nil, err
	}

	var err error
	if entry.ID, err = uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse generated password id")
	}
	if entry.CreatedAt, err = database.ParseSQLiteTime(createdAt); err != nil {
		return nil, err
	}
	if entry.ExpiresAt, err = database.ParseSQLiteTime(expiresAt); err != nil {
		return nil, err
	}

	return &entry, nil
}
