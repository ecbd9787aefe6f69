package testmodels

import "github.com/go-openapi/strfmt"

// User is a sample entity used across package tests.
type User struct {

	// Unique identifier, zero until stored.
	ID int64 `json:"Id"`

	// Login handle.
	// Required: true
	Handle string `json:"Handle"`

	// Contact email.
	Email string `json:"Email,omitempty"`

	// Timestamp when the user was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt,omitempty"`
}

// Tweet is a second sample entity, for multi-collection scenarios.
type Tweet struct {

	// Unique identifier, zero until stored.
	ID int64 `json:"Id"`

	// Author user id.
	// Required: true
	AuthorID int64 `json:"AuthorId"`

	// Message body.
	// Required: true
	Body string `json:"Body"`
}
