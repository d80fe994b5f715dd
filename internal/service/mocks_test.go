package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetForUpdate(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) AdjustCredits(ctx context.Context, id string, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockItemRepo struct{ mock.Mock }

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetForUpdate(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}

func (m *MockItemRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockItemRepo) Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepo) CountPendingByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) CountByBorrowerInStatuses(ctx context.Context, borrowerID string, statuses []domain.BookingStatus) (int, error) {
	args := m.Called(ctx, borrowerID, statuses)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) CountByOwnerInStatuses(ctx context.Context, ownerID string, statuses []domain.BookingStatus) (int, error) {
	args := m.Called(ctx, ownerID, statuses)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) ListStalePending(ctx context.Context, before time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCreditRepo struct{ mock.Mock }

func (m *MockCreditRepo) Create(ctx context.Context, tx *domain.CreditTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockCreditRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendBookingRequested(ctx context.Context, ownerEmail, borrowerName, itemTitle string) error {
	return m.Called(ctx, ownerEmail, borrowerName, itemTitle).Error(0)
}

func (m *MockEmailService) SendBookingApproved(ctx context.Context, borrowerEmail, itemTitle, ownerName string) error {
	return m.Called(ctx, borrowerEmail, itemTitle, ownerName).Error(0)
}

func (m *MockEmailService) SendBookingRejected(ctx context.Context, borrowerEmail, itemTitle, ownerName string) error {
	return m.Called(ctx, borrowerEmail, itemTitle, ownerName).Error(0)
}

func (m *MockEmailService) SendBookingReturned(ctx context.Context, ownerEmail, borrowerName, itemTitle string, credits int) error {
	return m.Called(ctx, ownerEmail, borrowerName, itemTitle, credits).Error(0)
}

// fakeTransactor runs the unit of work against the mock repositories without
// a real transaction. Rollback behavior is covered by repository tests.
type fakeTransactor struct {
	repos repository.Repos
}

func (f *fakeTransactor) ExecTx(ctx context.Context, fn func(repository.Repos) error) error {
	return fn(f.repos)
}

// testRepos builds a full mock repository set plus the matching Repos bundle.
type testRepos struct {
	users    *MockUserRepo
	items    *MockItemRepo
	bookings *MockBookingRepo
	credits  *MockCreditRepo
	notes    *MockNotificationRepo
}

func newTestRepos() (testRepos, repository.Repos) {
	tr := testRepos{
		users:    new(MockUserRepo),
		items:    new(MockItemRepo),
		bookings: new(MockBookingRepo),
		credits:  new(MockCreditRepo),
		notes:    new(MockNotificationRepo),
	}
	return tr, repository.Repos{
		Users:         tr.users,
		Items:         tr.items,
		Bookings:      tr.bookings,
		Credits:       tr.credits,
		Notifications: tr.notes,
	}
}
