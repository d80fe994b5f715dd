package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
	queryService   service.QueryService
}

func NewBookingHandler(bookingService service.BookingService, queryService service.QueryService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, queryService: queryService}
}

type createBookingRequest struct {
	ItemID    string `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// parseDate accepts full RFC 3339 timestamps and plain calendar dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), userIDFromContext(r.Context()), req.ItemID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	status := domain.BookingStatus(req.Status)
	if !domain.ValidStatus(status) {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	err := h.bookingService.UpdateStatus(r.Context(), userIDFromContext(r.Context()), mux.Vars(r)["id"], status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

// History returns the caller's bookings split into borrowed and lent.
func (h *BookingHandler) History(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.queryService.UserHistory(r.Context(), userIDFromContext(r.Context())))
}

// PendingCount returns how many requests are waiting on the caller as a
// lender, for the dashboard badge.
func (h *BookingHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	count := h.queryService.PendingLenderCount(r.Context(), userIDFromContext(r.Context()))
	respondOK(w, map[string]int{"pending_count": count})
}

func (h *BookingHandler) CreditHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	transactions := h.queryService.CreditHistory(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	respondOK(w, transactions)
}
