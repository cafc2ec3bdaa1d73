// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

/*
Package auth implements the core identity and access management for Talkio.

It handles user registration, secure password hashing, stateless session
tokens, and the one-time onboarding step that gates the main application.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Onboard).
  - Repository: Abstracted interface over PostgreSQL (users.account).
  - Security: bcrypt password hashes and HMAC-signed session JWTs.

The session token is stateless: logout clears the client cookie but the
server keeps no revocation list, so a leaked token remains valid until its
expiry. This is a documented trade-off, not an oversight — true revocation
would require a server-side denylist.
*/
package auth

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/phamduchieu/talkio/internal/platform/apperr"
	"github.com/phamduchieu/talkio/internal/platform/ctxutil"
	"github.com/phamduchieu/talkio/internal/platform/sec"
	"github.com/phamduchieu/talkio/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for minting session tokens.
type TokenProvider interface {
	// GenerateSessionToken creates a signed JWT string for the given user.
	GenerateSessionToken(userID string) (string, error)

	// TTL reports the token validity window (drives the cookie MaxAge).
	TTL() time.Duration
}

// DirectoryUpserter mirrors account identity into the external chat/video
// provider's user directory.
//
// Failures are logged and swallowed: the provider directory is eventually
// consistent and must never block signup or onboarding.
type DirectoryUpserter interface {
	UpsertUser(ctx context.Context, identity *sec.Identity) error
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, signup, or
// login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	directory      DirectoryUpserter
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, directory DirectoryUpserter) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		directory:      directory,
	}
}

// SessionTTL exposes the token validity window for the transport layer.
func (service *Service) SessionTTL() time.Duration {
	return service.tokenProvider.TTL()
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Email    string
	Password string
	FullName string
}

// AuthSession pairs a sanitized user with a freshly minted session token.
type AuthSession struct {
	Token string
	User  *User
}

/*
Signup validates, hashes, and persists a brand new user account, then
establishes a session for it.

Parameters:
  - ctx: context.Context
  - input: SignupInput

Returns:
  - *AuthSession: Token plus the created user (isOnboarded=false)
  - error: Conflict (email taken), or storage/signing errors
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*AuthSession, error) {
	email := NormalizeEmail(input.Email)

	// Friendly pre-check for email uniqueness. The unique index remains the
	// real arbiter: two racing signups both pass this check and the store
	// rejects the second insert with a Conflict.
	if _, err := service.userRepository.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     strings.TrimSpace(input.FullName),
		IsOnboarded:  false,
	}

	// Deterministic default avatar: same account always renders the same face.
	user.ProfilePic = defaultAvatarURL(user.ID)

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := service.tokenProvider.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Mirror the new account into the chat provider directory. Best effort.
	service.upsertDirectory(ctx, user)

	return &AuthSession{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: The failure message is identical whether the email is unknown or
the password is wrong, preventing account enumeration. bcrypt's comparison is
constant-time, resisting timing probes on the password itself.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Token plus the sanitized user
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*AuthSession, error) {
	user, err := service.userRepository.FindByEmail(ctx, NormalizeEmail(input.Email))

	// Unknown email: generic message to prevent enumeration.
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == 404 {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, err := service.tokenProvider.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user}, nil
}

// # Onboarding Flow

// OnboardInput carries the one-time profile-completion fields.
type OnboardInput struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}

/*
Onboard completes the member's profile and activates the account.

Description: Sets the profile fields and isOnboarded=true in one store call.
Safe to repeat: a second call re-applies the fields and is not an error, but
a single call fully onboards.

Parameters:
  - ctx: context.Context
  - userID: string (gate-resolved identity)
  - input: OnboardInput

Returns:
  - *User: Updated sanitized user with IsOnboarded=true
  - error: NotFound or persistence failures
*/
func (service *Service) Onboard(ctx context.Context, userID string, input OnboardInput) (*User, error) {
	user, err := service.userRepository.Onboard(ctx, userID, OnboardFields{
		FullName:         strings.TrimSpace(input.FullName),
		Bio:              input.Bio,
		NativeLanguage:   input.NativeLanguage,
		LearningLanguage: input.LearningLanguage,
		Location:         input.Location,
	})
	if err != nil {
		return nil, err
	}

	// Keep the chat provider directory in sync with the new display fields.
	service.upsertDirectory(ctx, user)

	return user, nil
}

// # Identity Resolution

/*
Profile returns the full (sanitized) account for the given user ID.

Used by GET /auth/me so the response always reflects the freshest onboarding
state rather than the snapshot resolved by the gate.
*/
func (service *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

/*
ResolveIdentity implements the authorization gate's resolver contract.

Description: Re-reads the account on every protected request. A NotFound here
means the token outlived its account (deleted after issuance) and the gate
converts it to Unauthorized; any other failure stays an internal fault.
*/
func (service *Service) ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// # Helpers

// NormalizeEmail lowercases and trims an email address so uniqueness is
// insensitive to case and padding.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// defaultAvatarURL derives a stable avatar index in [1, defaultAvatarCount]
// from the account ID.
func defaultAvatarURL(userID string) string {
	digest := fnv.New32a()
	_, _ = digest.Write([]byte(userID))
	index := int(digest.Sum32()%defaultAvatarCount) + 1
	return fmt.Sprintf(defaultAvatarPattern, index)
}

// upsertDirectory pushes the account into the chat provider directory,
// logging (never propagating) failures.
func (service *Service) upsertDirectory(ctx context.Context, user *User) {
	if service.directory == nil {
		return
	}
	if err := service.directory.UpsertUser(ctx, user.Identity()); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "chat_directory_upsert_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
