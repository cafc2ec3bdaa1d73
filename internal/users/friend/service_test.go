// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package friend_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduchieu/talkio/internal/platform/apperr"
	"github.com/phamduchieu/talkio/internal/users/friend"
)

// # Test Doubles

// fakeRepository is an in-memory friend graph. Friendships are stored as
// symmetric pairs, the same shape the SQL store maintains.
type fakeRepository struct {
	profiles    map[string]*friend.Profile
	friendships map[[2]string]bool
	requests    map[string]*friend.FriendRequest
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles:    map[string]*friend.Profile{},
		friendships: map[[2]string]bool{},
		requests:    map[string]*friend.FriendRequest{},
	}
}

func (repo *fakeRepository) addProfile(id, name string) {
	repo.profiles[id] = &friend.Profile{ID: id, FullName: name}
}

func (repo *fakeRepository) ListRecommended(ctx context.Context, userID string, limit int) ([]friend.Profile, error) {
	var out []friend.Profile
	for id, profile := range repo.profiles {
		if id == userID || repo.friendships[[2]string{userID, id}] {
			continue
		}
		out = append(out, *profile)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (repo *fakeRepository) ListFriends(ctx context.Context, userID string) ([]friend.Profile, error) {
	var out []friend.Profile
	for pair := range repo.friendships {
		if pair[0] == userID {
			out = append(out, *repo.profiles[pair[1]])
		}
	}
	return out, nil
}

func (repo *fakeRepository) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	return repo.friendships[[2]string{userID, otherID}], nil
}

func (repo *fakeRepository) FindProfile(ctx context.Context, userID string) (*friend.Profile, error) {
	profile, ok := repo.profiles[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *profile
	return &clone, nil
}

func (repo *fakeRepository) FindRequestByID(ctx context.Context, requestID string) (*friend.FriendRequest, error) {
	request, ok := repo.requests[requestID]
	if !ok {
		return nil, apperr.NotFound("Friend request")
	}
	clone := *request
	return &clone, nil
}

func (repo *fakeRepository) RequestExistsBetween(ctx context.Context, userID, otherID string) (bool, error) {
	for _, request := range repo.requests {
		sameDirection := request.SenderID == userID && request.RecipientID == otherID
		reversed := request.SenderID == otherID && request.RecipientID == userID
		if sameDirection || reversed {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) CreateRequest(ctx context.Context, request *friend.FriendRequest) error {
	clone := *request
	repo.requests[request.ID] = &clone
	return nil
}

func (repo *fakeRepository) AcceptRequest(ctx context.Context, request *friend.FriendRequest) error {
	stored, ok := repo.requests[request.ID]
	if !ok {
		return apperr.NotFound("Friend request")
	}
	stored.Status = friend.StatusAccepted
	repo.friendships[[2]string{stored.SenderID, stored.RecipientID}] = true
	repo.friendships[[2]string{stored.RecipientID, stored.SenderID}] = true
	return nil
}

func (repo *fakeRepository) ListIncoming(ctx context.Context, userID string) ([]friend.RequestView, error) {
	return repo.views(func(r *friend.FriendRequest) bool {
		return r.RecipientID == userID && r.Status == friend.StatusPending
	}), nil
}

func (repo *fakeRepository) ListAcceptedSent(ctx context.Context, userID string) ([]friend.RequestView, error) {
	return repo.views(func(r *friend.FriendRequest) bool {
		return r.SenderID == userID && r.Status == friend.StatusAccepted
	}), nil
}

func (repo *fakeRepository) ListOutgoing(ctx context.Context, userID string) ([]friend.RequestView, error) {
	return repo.views(func(r *friend.FriendRequest) bool {
		return r.SenderID == userID && r.Status == friend.StatusPending
	}), nil
}

func (repo *fakeRepository) views(match func(*friend.FriendRequest) bool) []friend.RequestView {
	var out []friend.RequestView
	for _, request := range repo.requests {
		if !match(request) {
			continue
		}
		out = append(out, friend.RequestView{
			ID:        request.ID,
			Status:    request.Status,
			CreatedAt: request.CreatedAt,
			Sender:    repo.profiles[request.SenderID],
			Recipient: repo.profiles[request.RecipientID],
		})
	}
	return out
}

// fakeCache records cache traffic for assertions.
type fakeCache struct {
	entries     map[string][]friend.Profile
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]friend.Profile{}}
}

func (cache *fakeCache) Get(ctx context.Context, userID string) ([]friend.Profile, bool) {
	profiles, ok := cache.entries[userID]
	return profiles, ok
}

func (cache *fakeCache) Set(ctx context.Context, userID string, profiles []friend.Profile, ttl time.Duration) {
	cache.entries[userID] = profiles
}

func (cache *fakeCache) Invalidate(ctx context.Context, userIDs ...string) {
	for _, id := range userIDs {
		delete(cache.entries, id)
		cache.invalidated = append(cache.invalidated, id)
	}
}

// # Tests

/*
TestService_SendRequest covers every rejection branch plus the happy path.
*/
func TestService_SendRequest(t *testing.T) {
	ctx := context.Background()

	setup := func() (*friend.Service, *fakeRepository) {
		repo := newFakeRepository()
		repo.addProfile("alice", "Alice")
		repo.addProfile("bob", "Bob")
		return friend.NewService(repo, nil), repo
	}

	t.Run("creates_pending_request", func(t *testing.T) {
		service, repo := setup()

		created, err := service.SendRequest(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, friend.StatusPending, created.Status)
		assert.Equal(t, "alice", created.SenderID)
		assert.Equal(t, "bob", created.RecipientID)
		assert.Len(t, repo.requests, 1)
	})

	t.Run("rejects_self_request", func(t *testing.T) {
		service, _ := setup()

		_, err := service.SendRequest(ctx, "alice", "alice")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 400, ae.HTTPStatus)
	})

	t.Run("rejects_unknown_recipient", func(t *testing.T) {
		service, _ := setup()

		_, err := service.SendRequest(ctx, "alice", "ghost")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
	})

	t.Run("rejects_existing_friends", func(t *testing.T) {
		service, repo := setup()
		repo.friendships[[2]string{"alice", "bob"}] = true
		repo.friendships[[2]string{"bob", "alice"}] = true

		_, err := service.SendRequest(ctx, "alice", "bob")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 409, ae.HTTPStatus)
	})

	t.Run("rejects_duplicate_in_either_direction", func(t *testing.T) {
		service, _ := setup()

		_, err := service.SendRequest(ctx, "alice", "bob")
		require.NoError(t, err)

		_, err = service.SendRequest(ctx, "alice", "bob")
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)

		// The reverse direction collides with the same pending request.
		_, err = service.SendRequest(ctx, "bob", "alice")
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Accept verifies recipient-only acceptance, the symmetric
friendship write, idempotent repeats, and cache invalidation.
*/
func TestService_Accept(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	repo.addProfile("alice", "Alice")
	repo.addProfile("bob", "Bob")
	cache := newFakeCache()
	service := friend.NewService(repo, cache)

	created, err := service.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	t.Run("sender_cannot_accept", func(t *testing.T) {
		_, err := service.Accept(ctx, "alice", created.ID)
		require.Error(t, err)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown_request", func(t *testing.T) {
		_, err := service.Accept(ctx, "bob", "missing-id")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("recipient_accepts", func(t *testing.T) {
		accepted, err := service.Accept(ctx, "bob", created.ID)
		require.NoError(t, err)
		assert.Equal(t, friend.StatusAccepted, accepted.Status)

		// Friendship is symmetric: both sides see each other.
		aliceFriends, err := service.Friends(ctx, "alice")
		require.NoError(t, err)
		bobFriends, err := service.Friends(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, aliceFriends, 1)
		require.Len(t, bobFriends, 1)
		assert.Equal(t, "bob", aliceFriends[0].ID)
		assert.Equal(t, "alice", bobFriends[0].ID)

		// Both parties' recommendation caches were dropped.
		assert.ElementsMatch(t, []string{"alice", "bob"}, cache.invalidated)
	})

	t.Run("repeat_accept_is_noop", func(t *testing.T) {
		again, err := service.Accept(ctx, "bob", created.ID)
		require.NoError(t, err)
		assert.Equal(t, friend.StatusAccepted, again.Status)
	})
}

/*
TestService_Recommended checks the cache-aside read path.
*/
func TestService_Recommended(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	repo.addProfile("alice", "Alice")
	repo.addProfile("bob", "Bob")
	repo.addProfile("carol", "Carol")
	cache := newFakeCache()
	service := friend.NewService(repo, cache)

	// First call misses the cache and fills it.
	first, err := service.Recommended(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Contains(t, cache.entries, "alice")

	// A cached entry short-circuits the store even when the graph changed.
	repo.addProfile("dave", "Dave")
	second, err := service.Recommended(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, second, 2)

	// After invalidation the fresh profile shows up.
	cache.Invalidate(ctx, "alice")
	third, err := service.Recommended(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, third, 3)
}

/*
TestService_RequestLists verifies the incoming/accepted/outgoing views.
*/
func TestService_RequestLists(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	repo.addProfile("alice", "Alice")
	repo.addProfile("bob", "Bob")
	repo.addProfile("carol", "Carol")
	service := friend.NewService(repo, nil)

	// alice → bob stays pending; alice → carol gets accepted.
	_, err := service.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	toCarol, err := service.SendRequest(ctx, "alice", "carol")
	require.NoError(t, err)
	_, err = service.Accept(ctx, "carol", toCarol.ID)
	require.NoError(t, err)

	// bob sees one pending incoming request from alice.
	pending, accepted, err := service.Incoming(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].Sender.ID)
	assert.Empty(t, accepted)

	// alice sees her accepted request and one still outgoing.
	_, aliceAccepted, err := service.Incoming(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceAccepted, 1)
	assert.Equal(t, "carol", aliceAccepted[0].Recipient.ID)

	outgoing, err := service.Outgoing(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, "bob", outgoing[0].Recipient.ID)
}
