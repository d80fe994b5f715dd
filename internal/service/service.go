package service

import (
	"context"
	"time"

	"lendloop-backend/internal/domain"
)

// BookingService is the booking/credits engine. Every write runs as one
// database transaction: credits, booking row, and item availability commit
// or roll back together.
type BookingService interface {
	// CreateBooking validates the request, debits the borrower, records a
	// pending booking with a frozen total price, and marks the item
	// unavailable. Credits stay in escrow until the item is returned.
	CreateBooking(ctx context.Context, borrowerID, itemID string, start, end time.Time) (*domain.Booking, error)

	// UpdateStatus applies one transition of the booking state machine.
	// actorID must be the item's owner. Transitions not in the table
	// (including anything out of a terminal status) fail with
	// domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, actorID, bookingID string, newStatus domain.BookingStatus) error

	// ExpireStalePending rejects (with refund) pending bookings whose start
	// date has passed. Called by the nightly maintenance job. Returns the
	// number of bookings expired.
	ExpireStalePending(ctx context.Context) (int, error)
}

// QueryService is the read-only aggregation layer over bookings. It never
// mutates state; storage faults on these dashboard paths degrade to empty
// results rather than failing the caller.
type QueryService interface {
	BookingsByUser(ctx context.Context, userID string) *domain.UserBookings
	PendingLenderCount(ctx context.Context, userID string) int
	UserHistory(ctx context.Context, authUserID string) *domain.UserBookings
	UserProfileStats(ctx context.Context, userID string) domain.ProfileStats
	CreditHistory(ctx context.Context, userID string, page, pageSize int) []domain.CreditTransaction
}

type ItemService interface {
	AddItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	UpdateItem(ctx context.Context, actorID string, item *domain.Item) error
	DeleteItem(ctx context.Context, actorID, itemID string) error
	SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error)
}

type UserService interface {
	// GetProfile returns the public view of a user plus their lending,
	// borrowing, and item counters.
	GetProfile(ctx context.Context, userID string) (*domain.User, domain.ProfileStats, error)
	UpdateProfile(ctx context.Context, userID, name, image string) error
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, ownerEmail, borrowerName, itemTitle string) error
	SendBookingApproved(ctx context.Context, borrowerEmail, itemTitle, ownerName string) error
	SendBookingRejected(ctx context.Context, borrowerEmail, itemTitle, ownerName string) error
	SendBookingReturned(ctx context.Context, ownerEmail, borrowerName, itemTitle string, credits int) error
}
