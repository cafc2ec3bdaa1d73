// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// PostgreSQL implementation of the credential store.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types via [dberr.Wrap] to avoid leaking
// storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamduchieu/talkio/internal/platform/apperr"
	"github.com/phamduchieu/talkio/internal/platform/dberr"
)

// userColumns is the canonical SELECT list for users.account.
const userColumns = `
	id, email, passwordhash, fullname, bio, profilepic,
	nativelanguage, learninglanguage, location, isonboarded, createdat, updatedat`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Inserts the account row. Emails arrive normalized from the
service layer and the unique index on email is the single arbiter of
uniqueness, so a concurrent duplicate signup surfaces here as a Conflict.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, email, passwordhash, fullname, bio, profilepic,
			nativelanguage, learninglanguage, location, isonboarded, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Bio,
		user.ProfilePic,
		user.NativeLanguage,
		user.LearningLanguage,
		user.Location,
		user.IsOnboarded,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Email is already registered")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - ctx: context.Context
  - email: string (already normalized by the service layer)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT` + userColumns + `
		FROM users.account
		WHERE email = $1`

	user, err := repository.scanOne(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - ctx: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT` + userColumns + `
		FROM users.account
		WHERE id = $1`

	user, err := repository.scanOne(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Onboard sets the profile fields and activates the account in one statement.

Description: isonboarded only ever moves FALSE → TRUE here; there is no
statement anywhere that writes FALSE after creation, which keeps the
transition one-way by construction.

Parameters:
  - ctx: context.Context
  - userID: string
  - fields: OnboardFields

Returns:
  - *User: Updated entity
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresUserRepository) Onboard(ctx context.Context, userID string, fields OnboardFields) (*User, error) {
	const query = `
		UPDATE users.account
		SET fullname = $2, bio = $3, nativelanguage = $4, learninglanguage = $5,
		    location = $6, isonboarded = TRUE, updatedat = $7
		WHERE id = $1
		RETURNING` + userColumns

	user, err := repository.scanOne(repository.pool.QueryRow(ctx, query,
		userID,
		fields.FullName,
		fields.Bio,
		fields.NativeLanguage,
		fields.LearningLanguage,
		fields.Location,
		time.Now(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_onboard_failed: %w", err)
	}

	return user, nil
}

// scanOne hydrates a single account row in userColumns order.
func (repository *PostgresUserRepository) scanOne(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Bio,
		&user.ProfilePic,
		&user.NativeLanguage,
		&user.LearningLanguage,
		&user.Location,
		&user.IsOnboarded,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
