// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package sec

// # Resolved Identity

// Identity is the sanitized view of an account attached to the request
// context by the authorization gate.
//
// # Why a separate type?
//
// The gate re-resolves the account from the credential store on every
// protected request (so a deleted account invalidates live tokens), but the
// middleware layer must not depend on the users domain package. Identity is
// the minimal, hash-free projection both layers can share.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	ProfilePic  string `json:"profile_pic,omitempty"`
	IsOnboarded bool   `json:"is_onboarded"`
}
