package core

import (
	"errors"
	"fmt"

	"github.com/bankportal/payment-portal/internal/core/validation"
)

// Error kinds shared by the services and adapters. Adapters wrap storage
// failures with ErrStorage so callers can tell them apart from rule violations.
var (
	ErrForbidden     = errors.New("you do not have permission to perform this action")
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status transition")
	ErrStorage       = errors.New("storage failure")
	ErrConflict      = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ErrInvalidCredentials is the single failure reported for any bad login
var ErrInvalidCredentials = fmt.Errorf("%w: invalid account number or password", ErrUnauthorized)

// ValidationError lists every field that failed its format rule.
type ValidationError = validation.ValidationError

// IsValidation reports whether err carries field validation failures.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
