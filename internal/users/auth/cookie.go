// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/phamduchieu/talkio/internal/platform/constants"
)

// # Session Transport

// CookiePolicy captures the environment-dependent flags of the session cookie.
//
// The cookie is the only place the session token lives on the client: it is
// httpOnly so the SPA can never read it, and its MaxAge always equals the
// token TTL so cookie and token expire together.
type CookiePolicy struct {
	// Secure is true outside local development (cookie only sent over TLS).
	Secure bool

	// SameSite is Strict by default; Lax when the SPA is served from a
	// different origin during development.
	SameSite http.SameSite

	// MaxAge mirrors the session token TTL.
	MaxAge time.Duration
}

// NewCookiePolicy derives the session cookie flags from the environment.
func NewCookiePolicy(isDevelopment, crossOriginDev bool, tokenTTL time.Duration) CookiePolicy {
	sameSite := http.SameSiteStrictMode
	if crossOriginDev {
		sameSite = http.SameSiteLaxMode
	}

	return CookiePolicy{
		Secure:   !isDevelopment,
		SameSite: sameSite,
		MaxAge:   tokenTTL,
	}
}

// Attach sets the session cookie carrying the token.
func (policy CookiePolicy) Attach(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(policy.MaxAge.Seconds()),
		Secure:   policy.Secure,
		HttpOnly: true,
		SameSite: policy.SameSite,
	})
}

// Clear expires the session cookie immediately (logout).
func (policy CookiePolicy) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   policy.Secure,
		HttpOnly: true,
		SameSite: policy.SameSite,
	})
}
