// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package friend

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduchieu/talkio/internal/platform/middleware"
	requestutil "github.com/phamduchieu/talkio/internal/platform/request"
	"github.com/phamduchieu/talkio/internal/platform/respond"
	"github.com/phamduchieu/talkio/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the friend-graph HTTP endpoints.
type Handler struct {
	friendService *Service
}

// NewHandler constructs a new [Handler] wrapping the friend service.
func NewHandler(service *Service) *Handler {
	return &Handler{friendService: service}
}

// Routes returns a [chi.Router] with the friend-graph routes. Every endpoint
// requires an authenticated session.
//
// # Endpoints
//   - GET /                                : Recommended partners.
//   - GET /friends                         : Current friends.
//   - POST /friend-request/{id}            : Send a request to user {id}.
//   - PUT  /friend-request/{id}/accept     : Accept request {id}.
//   - GET /friend-requests                 : Incoming pending + accepted sent.
//   - GET /outgoing-friend-requests        : Outgoing pending.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.recommended)
	router.Get("/friends", handler.friends)
	router.Post("/friend-request/{id}", handler.sendRequest)
	router.Put("/friend-request/{id}/accept", handler.acceptRequest)
	router.Get("/friend-requests", handler.incomingRequests)
	router.Get("/outgoing-friend-requests", handler.outgoingRequests)

	return router
}

// # Response Field Identifiers

const (
	fieldUsers    = "users"
	fieldFriends  = "friends"
	fieldRequest  = "request"
	fieldIncoming = "incoming"
	fieldAccepted = "accepted"
	fieldOutgoing = "outgoing"
	paramID       = "id"
)

/*
Recommended returns onboarded users the caller could partner with.

GET /api/v1/users

Description: Excludes the caller and every existing friend. Results may be a
few minutes stale when served from the cache.

Response:
  - 200: List of recommended profiles
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) recommended(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profiles, err := handler.friendService.Recommended(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		fieldUsers: profiles,
	})
}

/*
Friends returns the caller's current friends.

GET /api/v1/users/friends

Response:
  - 200: List of friend profiles
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) friends(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profiles, err := handler.friendService.Friends(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		fieldFriends: profiles,
	})
}

/*
SendRequest creates a pending friend request to another user.

POST /api/v1/users/friend-request/{id}

Response:
  - 201: The created request
  - 400: ErrInvalidJSON: Malformed recipient id, or recipient is the caller
  - 404: ErrNotFound: Recipient does not exist
  - 409: ErrConflict: Already friends, or a request already exists
*/
func (handler *Handler) sendRequest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipientID := requestutil.Param(request, paramID)

	validator := &validate.Validator{}
	validator.UUID(paramID, recipientID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.friendService.SendRequest(request.Context(), userID, recipientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		fieldRequest: created,
	})
}

/*
AcceptRequest accepts a pending friend request addressed to the caller.

PUT /api/v1/users/friend-request/{id}/accept

Description: Records the friendship for both users atomically. Repeating the
call after success changes nothing and still reports success.

Response:
  - 200: The accepted request
  - 403: ErrForbidden: Caller is not the recipient
  - 404: ErrNotFound: No such request
*/
func (handler *Handler) acceptRequest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	requestID := requestutil.Param(request, paramID)

	validator := &validate.Validator{}
	validator.UUID(paramID, requestID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	accepted, err := handler.friendService.Accept(request.Context(), userID, requestID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		fieldRequest: accepted,
	})
}

/*
IncomingRequests lists requests awaiting the caller's decision, plus the
caller's own requests that the other side accepted.

GET /api/v1/users/friend-requests

Response:
  - 200: {incoming: [...], accepted: [...]}
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) incomingRequests(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pending, accepted, err := handler.friendService.Incoming(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		fieldIncoming: pending,
		fieldAccepted: accepted,
	})
}

/*
OutgoingRequests lists the caller's pending outgoing requests.

GET /api/v1/users/outgoing-friend-requests

Response:
  - 200: List of pending request views
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) outgoingRequests(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.friendService.Outgoing(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		fieldOutgoing: views,
	})
}
