package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/onetimepassgen/internal/database"
	apperrors "github.com/allisson/onetimepassgen/internal/errors"
	"github.com/allisson/onetimepassgen/internal/identity/domain"
)

// MySQLUserRepository handles user persistence for MySQL using BINARY(16) ids.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO users (id, user_name, password_hash, roles, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.UserName,
		user.PasswordHash,
		domain.EncodeRoles(user.Roles),
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update persists the mutable fields of user.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

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
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	// MySQL reports zero affected rows when the values did not change, so confirm the
	// user exists before reporting not found.
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, user.ID); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, user_name, password_hash, roles, is_active, created_at
			  FROM users WHERE id = ?`

	return r.get(ctx, query, idBytes)
}

// GetByUserName retrieves a user by user name.
func (r *MySQLUserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT id, user_name, password_hash, roles, is_active, created_at
			  FROM users WHERE user_name = ?`

	return r.get(ctx, query, userName)
}

func (r *MySQLUserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user domain.User
	var idBytes []byte
	var roles string

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	user.Roles = domain.DecodeRoles(roles)
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

// isMySQLUniqueViolation reports a duplicate entry error (1062).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
