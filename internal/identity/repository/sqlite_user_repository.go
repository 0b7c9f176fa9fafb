package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/database"
	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// SQLiteUserRepository handles user persistence for SQLite. Ids and timestamps are TEXT.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, user_name, password_hash, roles, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID.String(),
		user.UserName,
		user.PasswordHash,
		domain.EncodeRoles(user.Roles),
		user.IsActive,
		database.FormatSQLiteTime(user.CreatedAt),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update persists the mutable fields of user.
func (r *SQLiteUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET password_hash = ?,
				  roles = ?,
				  is_active = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.PasswordHash,
		domain.EncodeRoles(user.Roles),
		user.IsActive,
		user.ID.String(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	return checkAffected(result)
}

// GetByID retrieves a user by ID.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, user_name, password_hash, roles, is_active, created_at
			  FROM users WHERE id = ?`

	return r.get(ctx, query, id.String())
}

// GetByUserName retrieves a user by user name.
func (r *SQLiteUserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT id, user_name, password_hash, roles, is_active, created_at
			  FROM users WHERE user_name = ?`

	return r.get(ctx, query, userName)
}

func (r *SQLiteUserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user domain.User
	var id, roles, createdAt string

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&id,
		&user.UserName,
		&user.PasswordHash,
		&roles,
		&user.IsActive,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}
	if user.CreatedAt, err = database.ParseSQLiteTime(createdAt); err != nil {
		return nil, err
	}

	user.Roles = domain.DecodeRoles(roles)
	return &user, nil
}

// isSQLiteUniqueViolation reports a UNIQUE constraint failure.
func isSQLiteUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
