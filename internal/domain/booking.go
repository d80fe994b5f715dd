package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusReturned BookingStatus = "returned"
	BookingStatusRejected BookingStatus = "rejected"
)

// ValidStatus reports whether s is one of the four booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusReturned, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is expected from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusReturned || s == BookingStatusRejected
}

type Booking struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	BorrowerID string    `json:"borrower_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	// TotalPrice is snapshotted at creation time. All credit movement for
	// this booking uses the snapshot, never the item's live price.
	TotalPrice int           `json:"total_price"`
	Status     BookingStatus `json:"status"`
	CreatedOn  time.Time     `json:"created_on"`
	UpdatedOn  time.Time     `json:"updated_on"`
}

// BookingDetail is a booking joined with the item and counterparty identity
// needed for display. Built by the query layer via SQL joins, not stored.
type BookingDetail struct {
	Booking
	ItemTitle     string      `json:"item_title"`
	ItemPrice     int         `json:"item_price"`
	ItemOwnerID   string      `json:"item_owner_id"`
	Owner         UserSummary `json:"owner"`
	Borrower      UserSummary `json:"borrower"`
}

// UserBookings is the two-sided dashboard view for one user.
type UserBookings struct {
	Borrowed []BookingDetail `json:"borrowed"`
	Lent     []BookingDetail `json:"lent"`
}

// ProfileStats are the public profile counters. Lending and borrowing only
// count bookings that actually went through (approved or returned).
type ProfileStats struct {
	LendingCount   int `json:"lending_count"`
	BorrowingCount int `json:"borrowing_count"`
	ItemsCount     int `json:"items_count"`
}
