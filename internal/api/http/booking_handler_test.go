package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "lendloop-backend/internal/api/http"
	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/security"
)

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) CreateBooking(ctx context.Context, borrowerID, itemID string, start, end time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, borrowerID, itemID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, actorID, bookingID string, newStatus domain.BookingStatus) error {
	return m.Called(ctx, actorID, bookingID, newStatus).Error(0)
}

func (m *MockBookingService) ExpireStalePending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockQueryService struct{ mock.Mock }

func (m *MockQueryService) BookingsByUser(ctx context.Context, userID string) *domain.UserBookings {
	return m.Called(ctx, userID).Get(0).(*domain.UserBookings)
}

func (m *MockQueryService) PendingLenderCount(ctx context.Context, userID string) int {
	return m.Called(ctx, userID).Int(0)
}

func (m *MockQueryService) UserHistory(ctx context.Context, authUserID string) *domain.UserBookings {
	return m.Called(ctx, authUserID).Get(0).(*domain.UserBookings)
}

func (m *MockQueryService) UserProfileStats(ctx context.Context, userID string) domain.ProfileStats {
	return m.Called(ctx, userID).Get(0).(domain.ProfileStats)
}

func (m *MockQueryService) CreditHistory(ctx context.Context, userID string, page, pageSize int) []domain.CreditTransaction {
	return m.Called(ctx, userID, page, pageSize).Get(0).([]domain.CreditTransaction)
}

func newTestRouter(bookingSvc *MockBookingService, querySvc *MockQueryService) (http.Handler, security.TokenManager) {
	tm := security.NewTokenManager("test-secret-that-is-long-enough-0", 15*time.Minute, time.Hour)
	handlers := httpapi.Handlers{
		Booking: httpapi.NewBookingHandler(bookingSvc, querySvc),
	}
	return httpapi.NewRouter(handlers, httpapi.NewAuthMiddleware(tm)), tm
}

func authedRequest(t *testing.T, tm security.TokenManager, method, target, body string) *http.Request {
	t.Helper()
	token, err := tm.GenerateAccessToken("user-1", "user@test.com")
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestBookingHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		booking := &domain.Booking{ID: "booking-1", ItemID: "item-1", BorrowerID: "user-1", TotalPrice: 20, Status: domain.BookingStatusPending}
		bookingSvc.On("CreateBooking", mock.Anything, "user-1", "item-1",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)).
			Return(booking, nil)

		req := authedRequest(t, tm, http.MethodPost, "/api/v1/bookings",
			`{"item_id":"item-1","start_date":"2025-06-01","end_date":"2025-06-03"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var body struct {
			Success bool           `json:"success"`
			Data    domain.Booking `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "booking-1", body.Data.ID)
	})

	t.Run("Insufficient credits maps to 422", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		bookingSvc.On("CreateBooking", mock.Anything, "user-1", "item-1", mock.Anything, mock.Anything).
			Return(nil, &domain.InsufficientCreditsError{Required: 20, Available: 15})

		req := authedRequest(t, tm, http.MethodPost, "/api/v1/bookings",
			`{"item_id":"item-1","start_date":"2025-06-01","end_date":"2025-06-03"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Insufficient credits. You need 20 credits but have 15.")
	})

	t.Run("Bad date", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		req := authedRequest(t, tm, http.MethodPost, "/api/v1/bookings",
			`{"item_id":"item-1","start_date":"yesterday","end_date":"2025-06-03"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		bookingSvc.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing token", func(t *testing.T) {
		router, _ := newTestRouter(new(MockBookingService), new(MockQueryService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		bookingSvc.On("UpdateStatus", mock.Anything, "user-1", "booking-1", domain.BookingStatusApproved).Return(nil)

		req := authedRequest(t, tm, http.MethodPatch, "/api/v1/bookings/booking-1/status", `{"status":"approved"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Invalid transition maps to 400", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		bookingSvc.On("UpdateStatus", mock.Anything, "user-1", "booking-1", domain.BookingStatusApproved).
			Return(domain.ErrInvalidTransition)

		req := authedRequest(t, tm, http.MethodPatch, "/api/v1/bookings/booking-1/status", `{"status":"approved"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Non-owner maps to 403", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		bookingSvc.On("UpdateStatus", mock.Anything, "user-1", "booking-1", domain.BookingStatusApproved).
			Return(domain.ErrUnauthorized)

		req := authedRequest(t, tm, http.MethodPatch, "/api/v1/bookings/booking-1/status", `{"status":"approved"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Unknown status is rejected before the service", func(t *testing.T) {
		bookingSvc := new(MockBookingService)
		router, tm := newTestRouter(bookingSvc, new(MockQueryService))

		req := authedRequest(t, tm, http.MethodPatch, "/api/v1/bookings/booking-1/status", `{"status":"archived"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		bookingSvc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingHandler_PendingCount(t *testing.T) {
	bookingSvc := new(MockBookingService)
	querySvc := new(MockQueryService)
	router, tm := newTestRouter(bookingSvc, querySvc)

	querySvc.On("PendingLenderCount", mock.Anything, "user-1").Return(3)

	req := authedRequest(t, tm, http.MethodGet, "/api/v1/my/bookings/pending-count", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending_count":3`)
}

func TestBookingHandler_History(t *testing.T) {
	bookingSvc := new(MockBookingService)
	querySvc := new(MockQueryService)
	router, tm := newTestRouter(bookingSvc, querySvc)

	querySvc.On("UserHistory", mock.Anything, "user-1").Return(&domain.UserBookings{
		Borrowed: []domain.BookingDetail{{ItemTitle: "Drill"}},
		Lent:     []domain.BookingDetail{},
	})

	req := authedRequest(t, tm, http.MethodGet, "/api/v1/my/bookings", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Drill")
}
