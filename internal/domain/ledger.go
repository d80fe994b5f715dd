package domain

import "time"

type TransactionType string

const (
	TransactionTypeBookingDebit  TransactionType = "BOOKING_DEBIT"
	TransactionTypeRefund        TransactionType = "REFUND"
	TransactionTypeLendingCredit TransactionType = "LENDING_CREDIT"
	TransactionTypeSignupGrant   TransactionType = "SIGNUP_GRANT"
)

// CreditTransaction is one row of the credits audit trail. The balance source
// of truth is users.credits; every mutation of it writes one of these in the
// same database transaction.
type CreditTransaction struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Amount           int             `json:"amount"` // positive for credit, negative for debit
	Type             TransactionType `json:"type"`
	RelatedBookingID *string         `json:"related_booking_id,omitempty"`
	Description      string          `json:"description"`
	CreatedOn        time.Time       `json:"created_on"`
}
