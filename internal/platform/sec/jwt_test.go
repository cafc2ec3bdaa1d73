// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduchieu/talkio/internal/platform/sec"
)

const testSecret = "test-secret-0123456789abcdef"

/*
TestNewTokenService_Validation checks constructor guard rails.
*/
func TestNewTokenService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{"valid", testSecret, time.Hour, false},
		{"short_secret", "too-short", time.Hour, true},
		{"empty_secret", "", time.Hour, true},
		{"zero_ttl", testSecret, 0, true},
		{"negative_ttl", testSecret, -time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := sec.NewTokenService(tt.secret, "talkio.app", tt.ttl)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				require.NoError(t, err)
				require.NotNil(t, service)
				assert.Equal(t, tt.ttl, service.TTL())
			}
		})
	}
}

/*
TestTokenService_RoundTrip issues a token and verifies it resolves back to
the same user.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "talkio.app", time.Hour)
	require.NoError(t, err)

	userID := "0192d7a0-0000-7000-8000-000000000001"

	token, err := service.GenerateSessionToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifySessionToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "talkio.app", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

/*
TestTokenService_Expired verifies that an elapsed token resolves to
ErrTokenExpired, not a generic failure.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "talkio.app", time.Millisecond)
	require.NoError(t, err)

	token, err := service.GenerateSessionToken("user-1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	claims, err := service.VerifySessionToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Invalid covers garbage, tampered, and wrong-key tokens.
All must resolve to ErrTokenInvalid without panicking.
*/
func TestTokenService_Invalid(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "talkio.app", time.Hour)
	require.NoError(t, err)

	valid, err := service.GenerateSessionToken("user-1")
	require.NoError(t, err)

	otherService, err := sec.NewTokenService("another-secret-0123456789", "talkio.app", time.Hour)
	require.NoError(t, err)

	foreign, err := otherService.GenerateSessionToken("user-1")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := valid[:len(valid)-2] + "xx"

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"tampered_signature", tampered},
		{"wrong_key", foreign},
		{"missing_segments", strings.Split(valid, ".")[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.VerifySessionToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, sec.ErrTokenInvalid)
		})
	}
}
