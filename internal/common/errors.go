// Package common defines sentinel errors and tiny helpers shared by the
// client layers. Callers match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Validation errors.
	ErrInvalidFocus      = errors.New("invalid focus")
	ErrInvalidSkillLevel = errors.New("invalid skill level")
	ErrEmptyPath         = errors.New("page path is empty")
)
