// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// PostgreSQL implementation of the friend graph repository.

package friend

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

// profileColumns is the canonical SELECT list for public profile projections.
const profileColumns = `
	a.id, a.fullname, a.profilepic, a.bio, a.nativelanguage, a.learninglanguage, a.location`

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the friend Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ListRecommended returns onboarded members who are neither the given user nor
already their friends.

Description: The NOT EXISTS guard walks the friendship table from the
viewer's side only; rows are symmetric so one direction suffices.
*/
func (repository *PostgresRepository) ListRecommended(ctx context.Context, userID string, limit int) ([]Profile, error) {
	const query = `
		SELECT` + profileColumns + `
		FROM users.account a
		WHERE a.id <> $1
		  AND a.isonboarded = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM users.friendship f
			WHERE f.userid = $1 AND f.friendid = a.id
		  )
		ORDER BY a.id
		LIMIT $2`

	rows, err := repository.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_friend_repo_list_recommended_failed: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

/*
ListFriends returns the profiles of all friends of the given user.
*/
func (repository *PostgresRepository) ListFriends(ctx context.Context, userID string) ([]Profile, error) {
	const query = `
		SELECT` + profileColumns + `
		FROM users.friendship f
		JOIN users.account a ON a.id = f.friendid
		WHERE f.userid = $1
		ORDER BY a.fullname`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_friend_repo_list_friends_failed: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

/*
AreFriends reports whether a friendship row links the pair.
*/
func (repository *PostgresRepository) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users.friendship
			WHERE userid = $1 AND friendid = $2
		)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID, otherID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_friend_repo_are_friends_failed: %w", err)
	}

	return exists, nil
}

/*
FindProfile returns the public profile of a single member.
*/
func (repository *PostgresRepository) FindProfile(ctx context.Context, userID string) (*Profile, error) {
	const query = `
		SELECT` + profileColumns + `
		FROM users.account a
		WHERE a.id = $1`

	profile := &Profile{}
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.ProfilePic,
		&profile.Bio,
		&profile.NativeLanguage,
		&profile.LearningLanguage,
		&profile.Location,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_friend_repo_find_profile_failed: %w", err)
	}

	return profile, nil
}

/*
FindRequestByID returns a friend request by primary key.
*/
func (repository *PostgresRepository) FindRequestByID(ctx context.Context, requestID string) (*FriendRequest, error) {
	const query = `
		SELECT id, senderid, recipientid, status, createdat, updatedat
		FROM users.friendrequest
		WHERE id = $1`

	request := &FriendRequest{}
	err := repository.pool.QueryRow(ctx, query, requestID).Scan(
		&request.ID,
		&request.SenderID,
		&request.RecipientID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Friend request")
		}
		return nil, fmt.Errorf("postgres_friend_repo_find_request_failed: %w", err)
	}

	return request, nil
}

/*
RequestExistsBetween reports whether any request links the pair in either
direction, regardless of status.
*/
func (repository *PostgresRepository) RequestExistsBetween(ctx context.Context, userID, otherID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users.friendrequest
			WHERE (senderid = $1 AND recipientid = $2)
			   OR (senderid = $2 AND recipientid = $1)
		)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID, otherID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_friend_repo_request_exists_failed: %w", err)
	}

	return exists, nil
}

/*
CreateRequest persists a new pending friend request.

Description: The unique index on (senderid, recipientid) backstops the
service-level duplicate check under concurrency.
*/
func (repository *PostgresRepository) CreateRequest(ctx context.Context, request *FriendRequest) error {
	const query = `
		INSERT INTO users.friendrequest (
			id, senderid, recipientid, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		request.ID,
		request.SenderID,
		request.RecipientID,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "A friend request already exists between these users")
	}

	return nil
}

/*
AcceptRequest transitions the request to accepted and inserts the symmetric
friendship pair in a single transaction.

Description: ON CONFLICT DO NOTHING makes re-acceptance idempotent rather
than a constraint violation.
*/
func (repository *PostgresRepository) AcceptRequest(ctx context.Context, request *FriendRequest) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_friend_repo_accept_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	const updateQuery = `
		UPDATE users.friendrequest
		SET status = $2, updatedat = $3
		WHERE id = $1`

	if _, err := transaction.Exec(ctx, updateQuery, request.ID, StatusAccepted, time.Now()); err != nil {
		return fmt.Errorf("postgres_friend_repo_accept_update_failed: %w", err)
	}

	const friendshipQuery = `
		INSERT INTO users.friendship (userid, friendid, createdat)
		VALUES ($1, $2, $3), ($2, $1, $3)
		ON CONFLICT DO NOTHING`

	if _, err := transaction.Exec(ctx, friendshipQuery, request.SenderID, request.RecipientID, time.Now()); err != nil {
		return fmt.Errorf("postgres_friend_repo_accept_insert_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_friend_repo_accept_commit_failed: %w", err)
	}

	return nil
}

/*
ListIncoming returns pending requests addressed to the user, joined with each
sender's profile.
*/
func (repository *PostgresRepository) ListIncoming(ctx context.Context, userID string) ([]RequestView, error) {
	const query = `
		SELECT r.id, r.status, r.createdat,` + profileColumns + `
		FROM users.friendrequest r
		JOIN users.account a ON a.id = r.senderid
		WHERE r.recipientid = $1 AND r.status = $2
		ORDER BY r.createdat DESC`

	return repository.queryRequestViews(ctx, query, true, userID, StatusPending)
}

/*
ListAcceptedSent returns the user's sent requests that were accepted, joined
with each recipient's profile.
*/
func (repository *PostgresRepository) ListAcceptedSent(ctx context.Context, userID string) ([]RequestView, error) {
	const query = `
		SELECT r.id, r.status, r.createdat,` + profileColumns + `
		FROM users.friendrequest r
		JOIN users.account a ON a.id = r.recipientid
		WHERE r.senderid = $1 AND r.status = $2
		ORDER BY r.updatedat DESC`

	return repository.queryRequestViews(ctx, query, false, userID, StatusAccepted)
}

/*
ListOutgoing returns the user's pending outgoing requests, joined with each
recipient's profile.
*/
func (repository *PostgresRepository) ListOutgoing(ctx context.Context, userID string) ([]RequestView, error) {
	const query = `
		SELECT r.id, r.status, r.createdat,` + profileColumns + `
		FROM users.friendrequest r
		JOIN users.account a ON a.id = r.recipientid
		WHERE r.senderid = $1 AND r.status = $2
		ORDER BY r.createdat DESC`

	return repository.queryRequestViews(ctx, query, false, userID, StatusPending)
}

// queryRequestViews runs a request+profile join and hydrates the views.
// counterpartIsSender controls which side of the view the profile lands on.
func (repository *PostgresRepository) queryRequestViews(ctx context.Context, query string, counterpartIsSender bool, args ...any) ([]RequestView, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_friend_repo_list_requests_failed: %w", err)
	}
	defer rows.Close()

	views := make([]RequestView, 0)
	for rows.Next() {
		var view RequestView
		profile := &Profile{}

		err := rows.Scan(
			&view.ID,
			&view.Status,
			&view.CreatedAt,
			&profile.ID,
			&profile.FullName,
			&profile.ProfilePic,
			&profile.Bio,
			&profile.NativeLanguage,
			&profile.LearningLanguage,
			&profile.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_friend_repo_scan_request_failed: %w", err)
		}

		if counterpartIsSender {
			view.Sender = profile
		} else {
			view.Recipient = profile
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_friend_repo_iterate_requests_failed: %w", err)
	}

	return views, nil
}

// scanProfiles hydrates profile rows in profileColumns order.
func scanProfiles(rows pgx.Rows) ([]Profile, error) {
	profiles := make([]Profile, 0)
	for rows.Next() {
		var profile Profile
		err := rows.Scan(
			&profile.ID,
			&profile.FullName,
			&profile.ProfilePic,
			&profile.Bio,
			&profile.NativeLanguage,
			&profile.LearningLanguage,
			&profile.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_friend_repo_scan_profile_failed: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_friend_repo_iterate_profiles_failed: %w", err)
	}

	return profiles, nil
}
