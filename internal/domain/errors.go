package domain

import (
	"errors"
	"fmt"
)

var (
	// Money errors
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to same account")

	// Application errors
	ErrLoanNotFound     = errors.New("loan application not found")
	ErrPolicyNotFound   = errors.New("insurance application not found")
	ErrAlreadyProcessed = errors.New("application already processed")
	ErrInvalidDecision  = errors.New("decision must be approve or reject")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// ErrTransient marks failures of the underlying unit of work (lock
	// timeout, lost connection). Nothing was committed; the whole
	// operation is safe to retry.
	ErrTransient = errors.New("transient storage failure")
)

// MarkTransient wraps a storage-level failure so callers can detect it
// with errors.Is(err, ErrTransient) while keeping the cause in the chain.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrTransient, err)
}
