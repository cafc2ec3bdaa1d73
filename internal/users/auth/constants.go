// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package auth

// # Authentication Constraints

const (
	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 6

	// FullNameMaxLength bounds the display name.
	FullNameMaxLength = 100

	// BioMaxLength bounds the onboarding bio field.
	BioMaxLength = 300
)

// # Default Avatars

const (
	// defaultAvatarPattern is the public avatar service the client also uses.
	// The %d slot takes an index in [1, defaultAvatarCount].
	defaultAvatarPattern = "https://avatar.iran.liara.run/public/%d.png"

	// defaultAvatarCount is the number of avatars the service provides.
	defaultAvatarCount = 100
)
