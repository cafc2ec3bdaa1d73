// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

/*
Package friend implements partner discovery and the friend-request lifecycle.

A friend request moves pending → accepted, and acceptance writes the
symmetric friendship pair: if A is a friend of B, B is a friend of A, always.
Only the acceptance flow mutates the friendship table.

# Architecture

  - Service: Orchestrates discovery, request creation, and acceptance.
  - Repository: PostgreSQL for the graph, Redis for the discovery cache.
  - Delivery: Thin chi handlers mounted under /api/v1/users.
*/
package friend

import "time"

// # Request States

const (
	// StatusPending marks a request awaiting the recipient's decision.
	StatusPending = "pending"

	// StatusAccepted marks a request the recipient accepted. Terminal.
	StatusAccepted = "accepted"
)

// # Domain Entities

// FriendRequest represents one member inviting another to connect.
type FriendRequest struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile is the public projection of an account used in discovery and
// friend listings. It never contains credentials.
type Profile struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	ProfilePic       string `json:"profile_pic,omitempty"`
	Bio              string `json:"bio,omitempty"`
	NativeLanguage   string `json:"native_language,omitempty"`
	LearningLanguage string `json:"learning_language,omitempty"`
	Location         string `json:"location,omitempty"`
}

// RequestView is a friend request joined with the counterpart's profile for
// notification-style listings.
type RequestView struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Sender is populated for incoming listings.
	Sender *Profile `json:"sender,omitempty"`

	// Recipient is populated for outgoing and accepted listings.
	Recipient *Profile `json:"recipient,omitempty"`
}
