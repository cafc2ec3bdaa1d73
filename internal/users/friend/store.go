// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package friend

import (
	"context"
	"time"
)

// # Friend Graph Data Access

// Repository defines the data access contract for the friend graph.
type Repository interface {

	/*
		ListRecommended returns onboarded members who are neither the given
		user nor already their friends.

		Parameters:
		  - ctx: context.Context
		  - userID: string
		  - limit: int

		Returns:
		  - []Profile: Candidate partners
		  - error: Database retrieval failures
	*/
	ListRecommended(ctx context.Context, userID string, limit int) ([]Profile, error)

	/*
		ListFriends returns the profiles of all friends of the given user.

		Parameters:
		  - ctx: context.Context
		  - userID: string

		Returns:
		  - []Profile: Friends
		  - error: Database retrieval failures
	*/
	ListFriends(ctx context.Context, userID string) ([]Profile, error)

	/*
		AreFriends reports whether a symmetric friendship row links the pair.

		Parameters:
		  - ctx: context.Context
		  - userID, otherID: string

		Returns:
		  - bool: True if already friends
		  - error: Database retrieval failures
	*/
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)

	/*
		FindProfile returns the public profile of a single member.

		Parameters:
		  - ctx: context.Context
		  - userID: string

		Returns:
		  - *Profile: Hydrated profile
		  - error: apperr.NotFound or database failures
	*/
	FindProfile(ctx context.Context, userID string) (*Profile, error)

	/*
		FindRequestByID returns a friend request by primary key.

		Parameters:
		  - ctx: context.Context
		  - requestID: string

		Returns:
		  - *FriendRequest: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindRequestByID(ctx context.Context, requestID string) (*FriendRequest, error)

	/*
		RequestExistsBetween reports whether any request links the pair in
		either direction, regardless of status.

		Parameters:
		  - ctx: context.Context
		  - userID, otherID: string

		Returns:
		  - bool: True if a request already exists
		  - error: Database retrieval failures
	*/
	RequestExistsBetween(ctx context.Context, userID, otherID string) (bool, error)

	/*
		CreateRequest persists a new pending friend request.

		Parameters:
		  - ctx: context.Context
		  - request: *FriendRequest

		Returns:
		  - error: apperr.Conflict on a duplicate pair, or persistence failures
	*/
	CreateRequest(ctx context.Context, request *FriendRequest) error

	/*
		AcceptRequest transitions the request to accepted and inserts the
		symmetric friendship pair in a single transaction.

		Parameters:
		  - ctx: context.Context
		  - request: *FriendRequest (already authorized by the service)

		Returns:
		  - error: Persistence failures
	*/
	AcceptRequest(ctx context.Context, request *FriendRequest) error

	/*
		ListIncoming returns pending requests addressed to the user, joined
		with each sender's profile.
	*/
	ListIncoming(ctx context.Context, userID string) ([]RequestView, error)

	/*
		ListAcceptedSent returns the user's sent requests that were accepted,
		joined with each recipient's profile (for "X accepted your request"
		notifications).
	*/
	ListAcceptedSent(ctx context.Context, userID string) ([]RequestView, error)

	/*
		ListOutgoing returns the user's pending outgoing requests, joined
		with each recipient's profile.
	*/
	ListOutgoing(ctx context.Context, userID string) ([]RequestView, error)
}

// # Volatile Data Access

// RecommendationCache stores per-user discovery results with a short TTL.
//
// A cache miss (or any cache failure) falls through to the primary store, so
// implementations may be lossy.
type RecommendationCache interface {

	/*
		Get retrieves the cached recommendation list for a user.

		Returns:
		  - []Profile: Cached profiles, nil on miss
		  - bool: True on a hit
	*/
	Get(ctx context.Context, userID string) ([]Profile, bool)

	/*
		Set stores a recommendation list for a limited duration.
	*/
	Set(ctx context.Context, userID string, profiles []Profile, ttl time.Duration)

	/*
		Invalidate drops the cached lists for the given users.
	*/
	Invalidate(ctx context.Context, userIDs ...string)
}
