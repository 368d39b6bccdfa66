package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-vault/pkg/utils"
)

// PostgresUserRepository implements Repository using PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		pool: pool,
	}
}

// FindActiveByUsername returns the active user with the given username, nil when absent
func (r *PostgresUserRepository) FindActiveByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password_hash, totp_secret, active, last_login, created_at
		FROM users
		WHERE username = $1 AND active = true AND deleted_at IS NULL
	`

	u := &User{}
	var name, email, totpSecret sql.NullString
	var lastLogin sql.NullTime

	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&name,
		&email,
		&u.PasswordHash,
		&totpSecret,
		&u.Active,
		&lastLogin,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	u.Name = name.String
	u.Email = email.String
	u.TotpSecret = totpSecret.String
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// Save persists updates to an existing user record
func (r *PostgresUserRepository) Save(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, totp_secret = $5,
		    active = $6, last_login = $7, last_modified_at = NOW()
		WHERE username = $1 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query,
		u.Username,
		utils.ToNullString(u.Name),
		utils.ToNullString(u.Email),
		u.PasswordHash,
		utils.ToNullString(u.TotpSecret),
		u.Active,
		utils.ToNullTime(u.LastLogin),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	query := `
		INSERT INTO users (username, name, email, password_hash, totp_secret, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, name, email, password_hash, totp_secret, active, last_login, created_at
	`

	u := User{}
	var name, email, totpSecret sql.NullString
	var lastLogin sql.NullTime

	err := r.pool.QueryRow(ctx, query,
		params.Username,
		utils.ToNullString(params.Name),
		utils.ToNullString(params.Email),
		params.PasswordHash,
		utils.ToNullString(params.TotpSecret),
		params.Active,
	).Scan(
		&u.ID,
		&u.Username,
		&name,
		&email,
		&u.PasswordHash,
		&totpSecret,
		&u.Active,
		&lastLogin,
		&u.CreatedAt,
	)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	u.Name = name.String
	u.Email = email.String
	u.TotpSecret = totpSecret.String
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// FindPasswordHash returns the stored password hash for an active username
func (r *PostgresUserRepository) FindPasswordHash(ctx context.Context, username string) (string, error) {
	query := `
		SELECT password_hash FROM users
		WHERE username = $1 AND active = true AND deleted_at IS NULL
	`

	var hash string
	err := r.pool.QueryRow(ctx, query, username).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to find password hash: %w", err)
	}
	return hash, nil
}

// FindTotpSecret returns the TOTP secret for an active username
func (r *PostgresUserRepository) FindTotpSecret(ctx context.Context, username string) (string, error) {
	query := `
		SELECT totp_secret FROM users
		WHERE username = $1 AND active = true AND deleted_at IS NULL
	`

	var secret sql.NullString
	err := r.pool.QueryRow(ctx, query, username).Scan(&secret)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to find totp secret: %w", err)
	}
	return secret.String, nil
}

// AnyUserExists checks if any user exists in the system
func (r *PostgresUserRepository) AnyUserExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE deleted_at IS NULL)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check users: %w", err)
	}
	return exists, nil
}
