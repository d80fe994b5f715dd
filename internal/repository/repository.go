package repository

import (
	"context"
	"time"

	"lendloop-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetForUpdate locks the user row for the duration of the enclosing
	// transaction. Only meaningful inside ExecTx.
	GetForUpdate(ctx context.Context, id string) (*domain.User, error)
	// AdjustCredits applies delta (negative for debit) to the balance.
	// Callers validate sufficiency before debiting.
	AdjustCredits(ctx context.Context, id string, delta int) error
	Update(ctx context.Context, user *domain.User) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	// GetForUpdate locks the item row so availability check-then-set is
	// race-free per item. Only meaningful inside ExecTx.
	GetForUpdate(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	SetAvailable(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// GetForUpdate locks the booking row so the status captured before a
	// transition cannot change underneath it. Only meaningful inside ExecTx.
	GetForUpdate(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// ListByBorrower and ListByOwner return denormalized rows, newest first.
	ListByBorrower(ctx context.Context, borrowerID string) ([]domain.BookingDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error)
	CountPendingByOwner(ctx context.Context, ownerID string) (int, error)
	CountByBorrowerInStatuses(ctx context.Context, borrowerID string, statuses []domain.BookingStatus) (int, error)
	CountByOwnerInStatuses(ctx context.Context, ownerID string, statuses []domain.BookingStatus) (int, error)
	// ListStalePending returns pending bookings whose start date is before
	// the cutoff. Used by the nightly expiry job.
	ListStalePending(ctx context.Context, before time.Time) ([]domain.Booking, error)
}

type CreditTransactionRepository interface {
	Create(ctx context.Context, tx *domain.CreditTransaction) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

// Repos bundles every repository. The booking engine receives one bound to a
// single database transaction inside Store.ExecTx, so a whole unit of work
// commits or rolls back together.
type Repos struct {
	Users         UserRepository
	Items         ItemRepository
	Bookings      BookingRepository
	Credits       CreditTransactionRepository
	Notifications NotificationRepository
}

// Transactor runs fn against a transaction-bound Repos. If fn returns an
// error the transaction is rolled back and nothing is persisted.
type Transactor interface {
	ExecTx(ctx context.Context, fn func(Repos) error) error
}
