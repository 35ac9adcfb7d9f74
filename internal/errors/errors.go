package errors

import (
	"errors"
	"fmt"
)

// Common error types for the GoBarber client
var (
	// Session errors
	ErrNoSession      = errors.New("no active session")
	ErrInvalidSession = errors.New("invalid stored session")
	ErrSignInRequired = errors.New("sign in to continue")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Request errors
	ErrValidation  = errors.New("validation failed")
	ErrBadRequest  = errors.New("bad request")
	ErrNotFound    = errors.New("not found")
	ErrServer      = errors.New("server error")
	ErrUnavailable = errors.New("service unavailable")

	// Booking errors
	ErrInvalidHour      = errors.New("select a valid hour")
	ErrBookingBlocked   = errors.New("appointment already submitted")
	ErrProviderNotFound = errors.New("provider not found")

	// Storage errors
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted store")
	ErrUnknownStorage  = errors.New("unknown storage backend")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
