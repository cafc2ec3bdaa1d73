// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Typed verification failures. The authorization gate treats both as a 401,
// but callers and tests can distinguish a stale token from a forged one.
var (
	// ErrTokenExpired marks a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid marks a malformed, tampered, or wrongly-signed token.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// SessionClaims is the payload embedded inside a session JWT.
//
// The token is stateless: validity is fully determined by the HMAC signature
// and the embedded expiry. There is no server-side session row, so logout
// only clears the client cookie and a leaked token stays valid until expiry.
type SessionClaims struct {
	jwt.RegisteredClaims

	// UserID is abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
}

// TokenService issues and verifies session JWTs using HS256.
//
// The signing secret is process-wide immutable state: loaded once from
// configuration at startup and never logged.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a TokenService.
//
// The secret should be at least 32 bytes of random data in production;
// anything under 16 is rejected outright.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("sec: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token TTL must be positive")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token validity window.
//
// The session cookie's MaxAge is derived from this value so that cookie and
// token always expire together.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// GenerateSessionToken creates a signed session JWT for the given user.
func (service *TokenService) GenerateSessionToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifySessionToken checks the signature and validity of a session JWT.
//
// It never panics on attacker-controlled input: any malformed or tampered
// token resolves to [ErrTokenInvalid], an elapsed one to [ErrTokenExpired].
func (service *TokenService) VerifySessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
