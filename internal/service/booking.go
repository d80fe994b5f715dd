package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/logger"
	"lendloop-backend/internal/repository"
	"lendloop-backend/internal/utils"
)

type bookingService struct {
	repos    repository.Repos
	tx       repository.Transactor
	emailSvc EmailService
}

func NewBookingService(repos repository.Repos, tx repository.Transactor, emailSvc EmailService) BookingService {
	return &bookingService{
		repos:    repos,
		tx:       tx,
		emailSvc: emailSvc,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, borrowerID, itemID string, start, end time.Time) (*domain.Booking, error) {
	if borrowerID == "" || itemID == "" || start.IsZero() || end.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidDateRange
	}

	var booking *domain.Booking
	err := s.tx.ExecTx(ctx, func(r repository.Repos) error {
		// Lock the item row so availability check-then-set is race-free:
		// a concurrent create blocks here, re-reads available=false, and
		// fails with ErrItemUnavailable instead of double-booking.
		item, err := r.Items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Available {
			return domain.ErrItemUnavailable
		}
		if item.OwnerID == borrowerID {
			return domain.ErrSelfBooking
		}

		borrower, err := r.Users.GetForUpdate(ctx, borrowerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrBorrowerNotFound
			}
			return err
		}

		totalPrice := utils.TotalPrice(start, end, item.PricePerDay)
		if borrower.Credits < totalPrice {
			return &domain.InsufficientCreditsError{Required: totalPrice, Available: borrower.Credits}
		}

		if err := r.Users.AdjustCredits(ctx, borrowerID, -totalPrice); err != nil {
			return err
		}

		booking = &domain.Booking{
			ItemID:     itemID,
			BorrowerID: borrowerID,
			StartDate:  start,
			EndDate:    end,
			TotalPrice: totalPrice,
			Status:     domain.BookingStatusPending,
		}
		if err := r.Bookings.Create(ctx, booking); err != nil {
			return err
		}

		debit := &domain.CreditTransaction{
			UserID:           borrowerID,
			Amount:           -totalPrice,
			Type:             domain.TransactionTypeBookingDebit,
			RelatedBookingID: &booking.ID,
			Description:      fmt.Sprintf("Booking payment for %q", item.Title),
		}
		if err := r.Credits.Create(ctx, debit); err != nil {
			return err
		}

		return r.Items.SetAvailable(ctx, itemID, false)
	})
	if err != nil {
		return nil, err
	}

	s.notifyBookingEvent(ctx, booking, domain.BookingStatusPending)
	return booking, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, actorID, bookingID string, newStatus domain.BookingStatus) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	booking, err := s.applyTransition(ctx, ownerOnly(actorID), bookingID, newStatus)
	if err != nil {
		return err
	}
	s.notifyBookingEvent(ctx, booking, newStatus)
	return nil
}

// transition identifies one edge of the booking state machine.
type transition struct {
	from, to domain.BookingStatus
}

// creditEffect moves credits for a transition, using the price frozen on the
// booking. It runs inside the same transaction as the status write.
type creditEffect func(ctx context.Context, r repository.Repos, b *domain.Booking, item *domain.Item) error

func noCreditEffect(context.Context, repository.Repos, *domain.Booking, *domain.Item) error {
	return nil
}

func refundBorrower(ctx context.Context, r repository.Repos, b *domain.Booking, item *domain.Item) error {
	if err := r.Users.AdjustCredits(ctx, b.BorrowerID, b.TotalPrice); err != nil {
		return err
	}
	return r.Credits.Create(ctx, &domain.CreditTransaction{
		UserID:           b.BorrowerID,
		Amount:           b.TotalPrice,
		Type:             domain.TransactionTypeRefund,
		RelatedBookingID: &b.ID,
		Description:      fmt.Sprintf("Refund for rejected booking of %q", item.Title),
	})
}

func payOwner(ctx context.Context, r repository.Repos, b *domain.Booking, item *domain.Item) error {
	if err := r.Users.AdjustCredits(ctx, item.OwnerID, b.TotalPrice); err != nil {
		return err
	}
	return r.Credits.Create(ctx, &domain.CreditTransaction{
		UserID:           item.OwnerID,
		Amount:           b.TotalPrice,
		Type:             domain.TransactionTypeLendingCredit,
		RelatedBookingID: &b.ID,
		Description:      fmt.Sprintf("Earnings from lending %q", item.Title),
	})
}

// transitions is the explicit state machine. Anything not listed here,
// including every transition out of a terminal status and same-status
// re-application, is rejected, so a credit effect can never fire twice for
// one booking edge. The approved->rejected edge intentionally moves no
// credits, preserving observed marketplace behavior.
var transitions = map[transition]creditEffect{
	{domain.BookingStatusPending, domain.BookingStatusApproved}:  noCreditEffect,
	{domain.BookingStatusPending, domain.BookingStatusRejected}:  refundBorrower,
	{domain.BookingStatusApproved, domain.BookingStatusReturned}: payOwner,
	{domain.BookingStatusApproved, domain.BookingStatusRejected}: noCreditEffect,
}

// transitionAuth decides whether the caller may transition a booking on the
// given item. It runs inside the transaction, on the locked item row.
type transitionAuth func(item *domain.Item) error

func ownerOnly(actorID string) transitionAuth {
	return func(item *domain.Item) error {
		if item.OwnerID != actorID {
			return domain.ErrUnauthorized
		}
		return nil
	}
}

// asSystem authorizes maintenance jobs, which act on bookings they did not
// originate and have no owner identity.
func asSystem(*domain.Item) error { return nil }

// applyTransition runs one status transition as a single atomic unit.
func (s *bookingService) applyTransition(ctx context.Context, auth transitionAuth, bookingID string, newStatus domain.BookingStatus) (*domain.Booking, error) {
	if bookingID == "" || !domain.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	var booking *domain.Booking
	err := s.tx.ExecTx(ctx, func(r repository.Repos) error {
		b, err := r.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		item, err := r.Items.GetForUpdate(ctx, b.ItemID)
		if err != nil {
			return err
		}
		if err := auth(item); err != nil {
			return err
		}

		// The credit effect is keyed on the status captured before the
		// overwrite.
		effect, ok := transitions[transition{from: b.Status, to: newStatus}]
		if !ok {
			return domain.ErrInvalidTransition
		}
		if err := effect(ctx, r, b, item); err != nil {
			return err
		}

		// Update persists total_price explicitly, so a legacy NULL read
		// as 0 is written back as 0 rather than staying NULL.
		b.Status = newStatus
		if err := r.Bookings.Update(ctx, b); err != nil {
			return err
		}

		if newStatus.Terminal() {
			if err := r.Items.SetAvailable(ctx, item.ID, true); err != nil {
				return err
			}
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ExpireStalePending(ctx context.Context) (int, error) {
	stale, err := s.repos.Bookings.ListStalePending(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("list stale pending bookings: %w", err)
	}

	expired := 0
	for _, b := range stale {
		rejected, err := s.applyTransition(ctx, asSystem, b.ID, domain.BookingStatusRejected)
		if err != nil {
			logger.Error("Failed to expire pending booking", "booking_id", b.ID, "error", err)
			continue
		}
		// The borrower learns about an expiry the same way they learn about
		// a lender rejection.
		s.notifyBookingEvent(ctx, rejected, domain.BookingStatusRejected)
		expired++
	}
	return expired, nil
}

// notifyBookingEvent sends the email and in-app notification for a booking
// event. Best effort: failures are logged, never bubbled into the caller's
// result, and never part of the booking transaction.
func (s *bookingService) notifyBookingEvent(ctx context.Context, b *domain.Booking, status domain.BookingStatus) {
	if b == nil {
		return
	}
	item, err := s.repos.Items.GetByID(ctx, b.ItemID)
	if err != nil {
		logger.Warn("Booking notification skipped: item lookup failed", "booking_id", b.ID, "error", err)
		return
	}
	owner, err := s.repos.Users.GetByID(ctx, item.OwnerID)
	if err != nil {
		logger.Warn("Booking notification skipped: owner lookup failed", "booking_id", b.ID, "error", err)
		return
	}
	borrower, err := s.repos.Users.GetByID(ctx, b.BorrowerID)
	if err != nil {
		logger.Warn("Booking notification skipped: borrower lookup failed", "booking_id", b.ID, "error", err)
		return
	}

	var (
		recipient *domain.User
		title     string
		message   string
	)
	switch status {
	case domain.BookingStatusPending:
		recipient = owner
		title = "New Booking Request"
		message = fmt.Sprintf("%s requested to borrow %s", borrower.Name, item.Title)
		if s.emailSvc != nil {
			if err := s.emailSvc.SendBookingRequested(ctx, owner.Email, borrower.Name, item.Title); err != nil {
				logger.Warn("Failed to send booking request email", "booking_id", b.ID, "error", err)
			}
		}
	case domain.BookingStatusApproved:
		recipient = borrower
		title = "Booking Approved"
		message = fmt.Sprintf("Your booking for %s was approved by %s", item.Title, owner.Name)
		if s.emailSvc != nil {
			if err := s.emailSvc.SendBookingApproved(ctx, borrower.Email, item.Title, owner.Name); err != nil {
				logger.Warn("Failed to send booking approval email", "booking_id", b.ID, "error", err)
			}
		}
	case domain.BookingStatusRejected:
		recipient = borrower
		title = "Booking Rejected"
		message = fmt.Sprintf("Your booking for %s was rejected by %s", item.Title, owner.Name)
		if s.emailSvc != nil {
			if err := s.emailSvc.SendBookingRejected(ctx, borrower.Email, item.Title, owner.Name); err != nil {
				logger.Warn("Failed to send booking rejection email", "booking_id", b.ID, "error", err)
			}
		}
	case domain.BookingStatusReturned:
		recipient = owner
		title = "Item Returned"
		message = fmt.Sprintf("%s returned %s. %d credits were added to your balance.", borrower.Name, item.Title, b.TotalPrice)
		if s.emailSvc != nil {
			if err := s.emailSvc.SendBookingReturned(ctx, owner.Email, borrower.Name, item.Title, b.TotalPrice); err != nil {
				logger.Warn("Failed to send booking return email", "booking_id", b.ID, "error", err)
			}
		}
	default:
		return
	}

	note := &domain.Notification{
		UserID:  recipient.ID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       "BOOKING_" + strings.ToUpper(string(status)),
			"booking_id": b.ID,
		},
	}
	if err := s.repos.Notifications.Create(ctx, note); err != nil {
		logger.Warn("Failed to create booking notification", "booking_id", b.ID, "error", err)
	}
}
