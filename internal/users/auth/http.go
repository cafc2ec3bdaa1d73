// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// HTTP delivery layer for the authentication lifecycle: account creation,
// session establishment via the httpOnly cookie, and the one-time
// onboarding step. Strictly transport concerns — status codes, headers,
// JSON — with validation enforced before anything reaches [Service].

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduchieu/talkio/internal/platform/middleware"
	requestutil "github.com/phamduchieu/talkio/internal/platform/request"
	"github.com/phamduchieu/talkio/internal/platform/respond"
	"github.com/phamduchieu/talkio/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	cookies     CookiePolicy
}

// NewHandler constructs a new [Handler] with its service and cookie policy.
func NewHandler(service *Service, cookies CookiePolicy) *Handler {
	return &Handler{authService: service, cookies: cookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup     : Creates a new account and starts a session.
//   - POST /login      : Authenticates and starts a session.
//   - POST /logout     : Clears the session cookie. Never fails.
//   - GET  /me         : Returns the authenticated user's profile.
//   - POST /onboarding : Completes the one-time profile setup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Post("/onboarding", handler.onboarding)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type onboardingRequest struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Description: Validates input, persists a new user profile, and establishes a
session via the httpOnly cookie.

Request:
  - Body: signupRequest (FullName, Email, Password)

Response:
  - 201: User: Created profile (isOnboarded=false, no password hash) + session cookie
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, FullNameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Attach(writer, session.Token)

	respond.Created(writer, map[string]any{
		FieldUser: session.User,
	})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials and injects the session cookie. The 401
body is byte-identical for unknown emails and wrong passwords.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: User profile + session cookie
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Attach(writer, session.Token)

	respond.OK(writer, map[string]any{
		FieldUser: session.User,
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

Description: Clears the session cookie. Idempotent and unconditionally
successful, even when no session existed. The server holds no revocation
list, so the token itself stays valid until its expiry.

Response:
  - 200: Success message + cleared cookie
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.cookies.Clear(writer)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged out successfully",
	})
}

/*
Me returns the authenticated user's full profile.

GET /api/v1/auth/me

Description: Re-reads the account so the response reflects any onboarding
completed after the session token was minted.

Response:
  - 200: User profile
  - 401: ErrUnauthorized: Missing, invalid, or expired session
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser: user,
	})
}

/*
Onboarding completes the one-time profile setup.

POST /api/v1/auth/onboarding

Description: Requires every profile field; persists them and flips
isOnboarded to true. Re-running the call is not an error.

Request:
  - Body: onboardingRequest (FullName, Bio, NativeLanguage, LearningLanguage, Location)

Response:
  - 200: Updated user with isOnboarded=true
  - 400: ErrInvalidJSON: Missing profile fields
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) onboarding(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input onboardingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, FullNameMaxLength).
		Required(FieldBio, input.Bio).
		MaxLen(FieldBio, input.Bio, BioMaxLength).
		Required(FieldNativeLanguage, input.NativeLanguage).
		Required(FieldLearningLanguage, input.LearningLanguage).
		Required(FieldLocation, input.Location)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Onboard(request.Context(), userID, OnboardInput{
		FullName:         input.FullName,
		Bio:              input.Bio,
		NativeLanguage:   input.NativeLanguage,
		LearningLanguage: input.LearningLanguage,
		Location:         input.Location,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser: user,
	})
}
