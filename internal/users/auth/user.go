// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

// Domain entity for a registered member. Defined transport-free: business
// rules about identity and profile completion live with the entity.

package auth

import (
	"time"

	"github.com/phamduchieu/talkio/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Talkio platform.
//
// PasswordHash never crosses the package boundary in a serialized form: the
// json tag removes it from every response, and callers outside this package
// only ever see the struct after the service layer has produced it.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // Explicitly omitted from JSON for security.
	FullName         string    `json:"full_name"`
	Bio              string    `json:"bio,omitempty"`
	ProfilePic       string    `json:"profile_pic,omitempty"`
	NativeLanguage   string    `json:"native_language,omitempty"`
	LearningLanguage string    `json:"learning_language,omitempty"`
	Location         string    `json:"location,omitempty"`
	IsOnboarded      bool      `json:"is_onboarded"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Identity projects the user into the sanitized form the authorization gate
// attaches to request contexts.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		ProfilePic:  u.ProfilePic,
		IsOnboarded: u.IsOnboarded,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldFullName         = "full_name"
	FieldBio              = "bio"
	FieldNativeLanguage   = "native_language"
	FieldLearningLanguage = "learning_language"
	FieldLocation         = "location"
	FieldUser             = "user"
	FieldMessage          = "message"
)
