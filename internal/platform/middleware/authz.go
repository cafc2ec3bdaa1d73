// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// Authorization gate: turns the session cookie into a resolved identity and
// blocks anonymous requests from protected routes.

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/phamduchieu/talkio/internal/platform/apperr"
	"github.com/phamduchieu/talkio/internal/platform/constants"
	"github.com/phamduchieu/talkio/internal/platform/ctxutil"
	"github.com/phamduchieu/talkio/internal/platform/respond"
	"github.com/phamduchieu/talkio/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifySessionToken(tokenStr string) (*sec.SessionClaims, error)
}

// IdentityResolver resolves a verified user ID to a live account.
//
// The credential store implements this. Resolution happens on every protected
// request so that an account deleted after token issuance loses access
// immediately, even though its token is still cryptographically valid.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Authenticate turns the session cookie into a resolved identity.
//
// # Flow
//  1. Extract the session cookie. If absent, the request proceeds as anonymous.
//  2. Verify the JWT via [TokenVerifier]. Invalid or expired → 401.
//  3. Resolve the embedded user ID via [IdentityResolver]. Unknown user → 401.
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// A store fault during step 3 is an internal failure, not an authorization
// failure: it surfaces as 500 and is never silently downgraded to 401.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifySessionToken(cookie.Value)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session token"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), claims.UserID)
			if err != nil {
				ae := apperr.As(err)
				if ae != nil && ae.HTTPStatus == http.StatusNotFound {
					// Token outlived its account.
					respond.Error(writer, request, apperr.Unauthorized("User not found"))
					return
				}
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if identity == nil {
				respond.Error(writer, request, apperr.Internal(errors.New("identity resolver returned nil")))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetIdentity retrieves the [*sec.Identity] from the [context.Context].
//
// # Returns
//   - The resolved identity if the user is authenticated.
//   - nil if the user is anonymous.
func GetIdentity(ctx context.Context) *sec.Identity {
	return ctxutil.GetIdentity(ctx)
}
