// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduchieu/talkio/internal/platform/apperr"
	"github.com/phamduchieu/talkio/internal/platform/sec"
	"github.com/phamduchieu/talkio/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository with store-level email
// uniqueness, mirroring the unique index in PostgreSQL.
type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    map[string]*auth.User{},
		byEmail: map[string]*auth.User{},
	}
}

func (repo *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	clone := *user
	repo.byID[user.ID] = &clone
	repo.byEmail[user.Email] = &clone
	return nil
}

func (repo *fakeUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUserRepository) Onboard(ctx context.Context, userID string, fields auth.OnboardFields) (*auth.User, error) {
	user, ok := repo.byID[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.FullName = fields.FullName
	user.Bio = fields.Bio
	user.NativeLanguage = fields.NativeLanguage
	user.LearningLanguage = fields.LearningLanguage
	user.Location = fields.Location
	user.IsOnboarded = true
	clone := *user
	return &clone, nil
}

// fakeTokenProvider mints predictable tokens.
type fakeTokenProvider struct {
	counter int
}

func (provider *fakeTokenProvider) GenerateSessionToken(userID string) (string, error) {
	provider.counter++
	return fmt.Sprintf("token-%s-%d", userID, provider.counter), nil
}

func (provider *fakeTokenProvider) TTL() time.Duration {
	return time.Hour
}

func newTestService() (*auth.Service, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return auth.NewService(repo, &fakeTokenProvider{}, nil), repo
}

// # Tests

/*
TestService_Signup covers the registration happy path: hashed password,
default avatar, onboarding pending, session established.
*/
func TestService_Signup(t *testing.T) {
	service, _ := newTestService()

	session, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "New.Member@Example.COM",
		Password: "hunter2x",
		FullName: "  New Member  ",
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "new.member@example.com", session.User.Email)
	assert.Equal(t, "New Member", session.User.FullName)
	assert.False(t, session.User.IsOnboarded)

	// The plaintext never survives; the hash verifies it.
	assert.NotEqual(t, "hunter2x", session.User.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter2x", session.User.PasswordHash))

	// Deterministic default avatar in the provider's numbered range.
	assert.Contains(t, session.User.ProfilePic, "avatar.iran.liara.run/public/")
}

/*
TestService_Signup_DuplicateEmail checks the uniqueness conflict, including
addresses that differ only by case.
*/
func TestService_Signup_DuplicateEmail(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "taken@example.com",
		Password: "password1",
		FullName: "First",
	})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Email:    "TAKEN@example.com",
		Password: "password2",
		FullName: "Second",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
}

/*
TestService_Login verifies credential checking and that failures are
indistinguishable between unknown emails and wrong passwords.
*/
func TestService_Login(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "member@example.com",
		Password: "correct-horse",
		FullName: "Member",
	})
	require.NoError(t, err)

	t.Run("valid_credentials", func(t *testing.T) {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "member@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, created.User.ID, session.User.ID)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("case_insensitive_email", func(t *testing.T) {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "MEMBER@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, created.User.ID, session.User.ID)
	})

	t.Run("wrong_password_matches_unknown_email", func(t *testing.T) {
		_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{
			Email:    "member@example.com",
			Password: "wrong",
		})
		_, unknownEmailErr := service.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})

		require.Error(t, wrongPassErr)
		require.Error(t, unknownEmailErr)

		wrongAE := apperr.As(wrongPassErr)
		unknownAE := apperr.As(unknownEmailErr)
		require.NotNil(t, wrongAE)
		require.NotNil(t, unknownAE)

		// Same status, same message: no account enumeration signal.
		assert.Equal(t, 401, wrongAE.HTTPStatus)
		assert.Equal(t, wrongAE.Message, unknownAE.Message)
	})
}

/*
TestService_Onboard verifies the one-time profile completion flips the flag
and is safe to repeat.
*/
func TestService_Onboard(t *testing.T) {
	service, _ := newTestService()

	session, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "learner@example.com",
		Password: "password1",
		FullName: "Learner",
	})
	require.NoError(t, err)
	require.False(t, session.User.IsOnboarded)

	input := auth.OnboardInput{
		FullName:         "Learner Nguyen",
		Bio:              "Practicing every day",
		NativeLanguage:   "vietnamese",
		LearningLanguage: "english",
		Location:         "Da Nang, VN",
	}

	user, err := service.Onboard(context.Background(), session.User.ID, input)
	require.NoError(t, err)
	assert.True(t, user.IsOnboarded)
	assert.Equal(t, "Learner Nguyen", user.FullName)
	assert.Equal(t, "english", user.LearningLanguage)

	// Re-running is not an error and stays onboarded.
	again, err := service.Onboard(context.Background(), session.User.ID, input)
	require.NoError(t, err)
	assert.True(t, again.IsOnboarded)

	// Profile re-reads reflect the onboarded state.
	profile, err := service.Profile(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsOnboarded)
}

/*
TestService_ResolveIdentity checks the gate resolver contract: live accounts
resolve, deleted ones report NotFound.
*/
func TestService_ResolveIdentity(t *testing.T) {
	service, repo := newTestService()

	session, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "resolver@example.com",
		Password: "password1",
		FullName: "Resolver",
	})
	require.NoError(t, err)

	identity, err := service.ResolveIdentity(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, identity.ID)
	assert.Equal(t, "resolver@example.com", identity.Email)

	// Simulate account deletion after token issuance.
	delete(repo.byID, session.User.ID)

	_, err = service.ResolveIdentity(context.Background(), session.User.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)
}
