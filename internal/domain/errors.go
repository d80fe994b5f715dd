package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the booking engine and query layer. The HTTP
// layer maps these to status codes and user-facing failure envelopes.
var (
	ErrInvalidInput       = errors.New("missing required booking fields")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemUnavailable    = errors.New("item is not available")
	ErrSelfBooking        = errors.New("you cannot borrow your own item")
	ErrBorrowerNotFound   = errors.New("borrower not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("booking status transition not allowed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// InsufficientCreditsError reports how short the borrower is. The message is
// shown to the user verbatim, so it must carry both amounts.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("Insufficient credits. You need %d credits but have %d.", e.Required, e.Available)
}

// IsInsufficientCredits reports whether err is an InsufficientCreditsError.
func IsInsufficientCredits(err error) bool {
	var ic *InsufficientCreditsError
	return errors.As(err, &ic)
}
