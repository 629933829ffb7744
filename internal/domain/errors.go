package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrCodeInvalid covers wrong code, unknown email and expired code alike.
	// Callers must not be able to tell which of the three happened.
	ErrCodeInvalid = errors.New("invalid or expired code")

	// ErrDeliveryFailed means a verification code was stored but the email
	// carrying it could not be sent. The stored code stays valid.
	ErrDeliveryFailed = errors.New("delivery failed")
)
