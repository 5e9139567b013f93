// Package common defines shared constants and sentinel errors used across
// client and server layers of ExamDesk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")
	ErrRateLimited    = errors.New("too many requests")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Wizard errors.
	ErrInvalidTransition = errors.New("action not allowed at this step")
	ErrSessionExpired    = errors.New("registration session expired")

	// Payment errors. Initiation and verification failures are reported
	// separately to the candidate.
	ErrPaymentInitiation   = errors.New("payment could not be initiated")
	ErrPaymentVerification = errors.New("payment verification failed")
	ErrSuperUserExpired    = errors.New("super user subscription expired")
	ErrSuperUserNotAllowed = errors.New("super user bypass is not available for this item")

	// Document errors.
	ErrDocumentGeneration = errors.New("document generation failed")
)
