// Package repository implements user persistence for PostgreSQL, MySQL and SQLite.
//
// All implementations pick up an ambient transaction through database.GetTx. PostgreSQL
// uses native UUID columns, MySQL stores ids as BINARY(16) and SQLite as TEXT.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/onetimepassgen/internal/database"
	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new user.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, user_name, password_hash, roles, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.UserName,
		user.PasswordHash,
		domain.EncodeRoles(user.Roles),
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update persists the mutable fields of user.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET password_hash = $1,
				  roles = $2,
				  is_active = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.PasswordHash,
		domain.EncodeRoles(user.Roles),
		user.IsActive,
		user.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	return checkAffected(result)
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, user_name, password_hash, roles, is_active, created_at
			  FROM users WHERE id = $1`

	return r.get(ctx, query, id)
}

// GetByUserName retrieves a user by user name.
func (r *PostgreSQLUserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT id, user_name, password_hash, roles, is_active, created_at
			  FROM users WHERE user_name = $1`

	return r.get(ctx, query, userName)
}

func (r *PostgreSQLUserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user domain.User
	var roles string

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.UserName,
		&user.PasswordHash,
		&roles,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	user.Roles = domain.DecodeRoles(roles)
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

// isPostgreSQLUniqueViolation reports a unique_violation (SQLSTATE 23505).
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// checkAffected maps an update that matched no row to ErrUserNotFound.
func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
