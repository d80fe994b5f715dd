package service

import (
	"context"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/logger"
	"lendloop-backend/internal/repository"
)

// queryService is the read-only aggregation layer for dashboards and
// profiles. Storage faults here degrade to empty results (logged) instead of
// failing the page; the write path never does this.
type queryService struct {
	repos repository.Repos
}

func NewQueryService(repos repository.Repos) QueryService {
	return &queryService{repos: repos}
}

func (s *queryService) BookingsByUser(ctx context.Context, userID string) *domain.UserBookings {
	result := &domain.UserBookings{
		Borrowed: []domain.BookingDetail{},
		Lent:     []domain.BookingDetail{},
	}

	borrowed, err := s.repos.Bookings.ListByBorrower(ctx, userID)
	if err != nil {
		logger.Error("Failed to list borrowed bookings", "user_id", userID, "error", err)
		return result
	}
	lent, err := s.repos.Bookings.ListByOwner(ctx, userID)
	if err != nil {
		logger.Error("Failed to list lent bookings", "user_id", userID, "error", err)
		return result
	}

	if borrowed != nil {
		result.Borrowed = borrowed
	}
	if lent != nil {
		result.Lent = lent
	}
	return result
}

func (s *queryService) PendingLenderCount(ctx context.Context, userID string) int {
	count, err := s.repos.Bookings.CountPendingByOwner(ctx, userID)
	if err != nil {
		logger.Error("Failed to count pending bookings", "user_id", userID, "error", err)
		return 0
	}
	return count
}

// UserHistory is BookingsByUser keyed off the authenticated identity; the
// handler resolves authUserID from the verified token, never from input.
func (s *queryService) UserHistory(ctx context.Context, authUserID string) *domain.UserBookings {
	return s.BookingsByUser(ctx, authUserID)
}

var completedStatuses = []domain.BookingStatus{
	domain.BookingStatusApproved,
	domain.BookingStatusReturned,
}

func (s *queryService) UserProfileStats(ctx context.Context, userID string) domain.ProfileStats {
	var stats domain.ProfileStats

	lending, err := s.repos.Bookings.CountByOwnerInStatuses(ctx, userID, completedStatuses)
	if err != nil {
		logger.Error("Failed to count lendings", "user_id", userID, "error", err)
		return stats
	}
	borrowing, err := s.repos.Bookings.CountByBorrowerInStatuses(ctx, userID, completedStatuses)
	if err != nil {
		logger.Error("Failed to count borrowings", "user_id", userID, "error", err)
		return stats
	}
	items, err := s.repos.Items.CountByOwner(ctx, userID)
	if err != nil {
		logger.Error("Failed to count items", "user_id", userID, "error", err)
		return stats
	}

	stats.LendingCount = lending
	stats.BorrowingCount = borrowing
	stats.ItemsCount = items
	return stats
}

func (s *queryService) CreditHistory(ctx context.Context, userID string, page, pageSize int) []domain.CreditTransaction {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	txs, err := s.repos.Credits.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Error("Failed to list credit transactions", "user_id", userID, "error", err)
		return []domain.CreditTransaction{}
	}
	if txs == nil {
		return []domain.CreditTransaction{}
	}
	return txs
}
