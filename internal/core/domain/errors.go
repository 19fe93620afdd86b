package domain

import "errors"

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrMediaNotFound = errors.New("media not found")
	ErrInvalidID     = errors.New("invalid id")

	// ErrUnauthenticated is a policy denial for an anonymous actor.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAuthRequired is raised by the beforeChange guard, before any
	// mutation is attempted, when a write arrives without an actor.
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("access forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrValidation = errors.New("validation failed")
)
