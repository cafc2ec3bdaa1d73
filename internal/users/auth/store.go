// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package auth

import "context"

// # Credential Data Access

// OnboardFields carries the profile fields set during onboarding.
type OnboardFields struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}

// UserRepository defines the data access contract for user accounts.
//
// Uniqueness of email is enforced by the store itself (unique index), not by
// application-level coordination: a race between two concurrent signups is
// resolved by the store rejecting the second insert.
type UserRepository interface {

	/*
		Create persists a brand-new user account.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		Onboard sets the profile fields and flips isonboarded to TRUE.

		The flip is one-way: the store never resets the flag, and calling
		Onboard on an already-onboarded account simply re-applies the fields.

		Parameters:
		  - ctx: context.Context
		  - userID: string
		  - fields: OnboardFields

		Returns:
		  - *User: Updated entity
		  - error: apperr.NotFound or persistence failures
	*/
	Onboard(ctx context.Context, userID string, fields OnboardFields) (*User, error)
}
