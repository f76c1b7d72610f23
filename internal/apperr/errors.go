package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the payment and account flows. Handlers map
// these onto HTTP statuses in the server's error handler.
var (
	// validation (400, terminal)
	ErrAmountTooSmall = errors.New("amount below gateway minimum")
	ErrAmountTooLarge = errors.New("amount exceeds gateway maximum")
	ErrAmountMismatch = errors.New("amount does not match course price")
	ErrCourseNotFound = errors.New("course not found")

	// auth (401/409)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")

	// payment verification (400, logged, never retried)
	ErrSignatureMismatch = errors.New("invalid signature")

	// server-side misconfiguration (500)
	ErrMissingSecret = errors.New("gateway key secret not configured")
)

// InputError carries a user-facing message for malformed request input.
// Always a 400.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// GatewayError wraps a payment-gateway failure. Retryable from the client's
// perspective, surfaced as 502.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// PersistenceError wraps a purchase-record write failure observed after a
// payment was already verified. The service retries these internally before
// giving up.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record purchase: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
