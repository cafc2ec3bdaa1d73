// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduchieu/talkio/internal/platform/middleware"
	requestutil "github.com/phamduchieu/talkio/internal/platform/request"
	"github.com/phamduchieu/talkio/internal/platform/respond"
)

// # Definitions & Constructors

// Handler exposes chat provider credentials over HTTP.
type Handler struct {
	provider *Provider
}

// NewHandler constructs a new [Handler].
func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// Routes returns a [chi.Router] for the chat endpoints. Authentication is
// mandatory: a chat token is only ever issued for the session's own user.
//
// # Endpoints
//   - GET /token : Mint a provider access token for the caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/token", handler.token)

	return router
}

const (
	fieldToken  = "token"
	fieldAPIKey = "api_key"
)

/*
Token mints a chat access token for the authenticated user.

GET /api/v1/chat/token

Response:
  - 200: {token, api_key}
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.provider.UserToken(userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		fieldToken:  token,
		fieldAPIKey: handler.provider.APIKey(),
	})
}
