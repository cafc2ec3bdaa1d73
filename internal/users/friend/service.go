// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package friend

import (
	"context"
	"fmt"
	"time"

	"github.com/phamduchieu/talkio/internal/platform/apperr"
	"github.com/phamduchieu/talkio/pkg/uuidv7"
)

const (
	// recommendedLimit caps how many partner suggestions a single call returns.
	recommendedLimit = 20

	// recommendationTTL bounds staleness of cached suggestion lists.
	recommendationTTL = 5 * time.Minute
)

// Service implements the friend-graph use cases on top of a Repository
// and an optional RecommendationCache.
type Service struct {
	repository Repository
	cache      RecommendationCache
}

/*
NewService creates a friend Service.

Parameters:
  - repository: the persistent friend-graph store.
  - cache: recommendation cache; may be nil, in which case every
    Recommended call hits the store.
*/
func NewService(repository Repository, cache RecommendationCache) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
	}
}

/*
Recommended returns onboarded users the caller is not yet friends with.

The list is served from the cache when a fresh entry exists; otherwise it is
computed from the store and cached for a short period.
*/
func (s *Service) Recommended(ctx context.Context, userID string) ([]Profile, error) {
	if s.cache != nil {
		if profiles, ok := s.cache.Get(ctx, userID); ok {
			return profiles, nil
		}
	}

	profiles, err := s.repository.ListRecommended(ctx, userID, recommendedLimit)
	if err != nil {
		return nil, fmt.Errorf("list recommended: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, profiles, recommendationTTL)
	}

	return profiles, nil
}

// Friends returns the caller's current friends as profiles.
func (s *Service) Friends(ctx context.Context, userID string) ([]Profile, error) {
	profiles, err := s.repository.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return profiles, nil
}

/*
SendRequest creates a pending friend request from sender to recipient.

Rejections:
  - sending to yourself is a validation error.
  - an unknown recipient is a not-found error.
  - an existing friendship, or a request in either direction, is a conflict.
*/
func (s *Service) SendRequest(ctx context.Context, senderID, recipientID string) (*FriendRequest, error) {
	// 1. You cannot befriend yourself.
	if senderID == recipientID {
		return nil, apperr.ValidationError("You cannot send a friend request to yourself")
	}

	// 2. The recipient must exist.
	if _, err := s.repository.FindProfile(ctx, recipientID); err != nil {
		return nil, err
	}

	// 3. Existing friends need no request.
	alreadyFriends, err := s.repository.AreFriends(ctx, senderID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if alreadyFriends {
		return nil, apperr.Conflict("You are already friends with this user")
	}

	// 4. At most one request may exist between two users, in either direction.
	exists, err := s.repository.RequestExistsBetween(ctx, senderID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("check existing request: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("A friend request already exists between you and this user")
	}

	now := time.Now().UTC()
	request := &FriendRequest{
		ID:          uuidv7.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

/*
Accept marks a friend request as accepted and records the friendship.

Only the recipient of the request may accept it. Accepting an
already-accepted request is a no-op that reports success.
*/
func (s *Service) Accept(ctx context.Context, userID, requestID string) (*FriendRequest, error) {
	request, err := s.repository.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RecipientID != userID {
		return nil, apperr.Forbidden("You are not authorized to accept this request")
	}

	// Repeated accepts settle on the same end state.
	if request.Status == StatusAccepted {
		return request, nil
	}

	if err := s.repository.AcceptRequest(ctx, request); err != nil {
		return nil, err
	}
	request.Status = StatusAccepted

	// Both parties' suggestion lists are now stale.
	if s.cache != nil {
		s.cache.Invalidate(ctx, request.SenderID, request.RecipientID)
	}

	return request, nil
}

/*
Incoming returns the caller's pending incoming requests together with the
caller's own requests that were recently accepted by the other side.
*/
func (s *Service) Incoming(ctx context.Context, userID string) (pending, accepted []RequestView, err error) {
	pending, err = s.repository.ListIncoming(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list incoming: %w", err)
	}

	accepted, err = s.repository.ListAcceptedSent(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list accepted: %w", err)
	}

	return pending, accepted, nil
}

// Outgoing returns the caller's pending outgoing requests.
func (s *Service) Outgoing(ctx context.Context, userID string) ([]RequestView, error) {
	views, err := s.repository.ListOutgoing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list outgoing: %w", err)
	}
	return views, nil
}
